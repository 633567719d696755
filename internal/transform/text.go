package transform

import (
	"strings"

	"github.com/hpungsan/clipmesh/internal/clip"
)

// CleanedTone tags the whitespace cleanup result.
const CleanedTone = "cleaned"

// TextTransformer produces a whitespace-cleaned copy of Text, Email and Url
// items: every line trimmed, empty lines dropped, lines rejoined with "\n".
type TextTransformer struct{}

// Eligible implements Transformer.
func (TextTransformer) Eligible(ct clip.ContentType) bool {
	return ct == clip.TypeText || ct == clip.TypeEmail || ct == clip.TypeURL
}

// Kind implements Transformer.
func (TextTransformer) Kind() clip.TransformType {
	return clip.ToneAdjustment(CleanedTone)
}

// Transform implements Transformer.
func (TextTransformer) Transform(content string) (string, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}
