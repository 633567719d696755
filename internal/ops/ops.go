// Package ops implements the query operations shared by the CLI and the MCP server.
package ops

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hpungsan/clipmesh/internal/clip"
)

const (
	// DefaultListLimit applies when a list request asks for zero or fewer items.
	DefaultListLimit = 10

	// PreviewChars is the number of characters kept in a one-line preview.
	PreviewChars = 50
)

// Reader is the read side of the history store.
type Reader interface {
	Get(limit int) []clip.Item
	Search(query string) []clip.Item
	Find(id string) (clip.Item, bool)
}

// Summary is the one-line view of an item used by list and search.
type Summary struct {
	ID              string           `json:"id"`
	Preview         string           `json:"preview"`
	Timestamp       time.Time        `json:"timestamp"`
	ContentType     clip.ContentType `json:"content_type"`
	DeviceID        string           `json:"device_id"`
	Transformations int              `json:"transformations"`
}

// Summarize builds the Summary for item.
func Summarize(item clip.Item) Summary {
	return Summary{
		ID:              item.ID,
		Preview:         Preview(item.Content),
		Timestamp:       item.Timestamp,
		ContentType:     item.ContentType,
		DeviceID:        item.DeviceID,
		Transformations: len(item.Transformations),
	}
}

func summarizeAll(items []clip.Item) []Summary {
	out := make([]Summary, 0, len(items))
	for _, item := range items {
		out = append(out, Summarize(item))
	}
	return out
}

// Preview truncates content to PreviewChars characters plus "..." and
// collapses line breaks (\r\n, \n or a lone \r) to spaces.
func Preview(content string) string {
	s := strings.ReplaceAll(content, "\r\n", "\n")
	if utf8.RuneCountInString(s) > PreviewChars {
		s = string([]rune(s)[:PreviewChars]) + "..."
	}
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}
