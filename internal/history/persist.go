package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpungsan/clipmesh/internal/clip"
)

// decodeDocument parses a history file. Duplicate ids are rejected.
func decodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	if doc.Items == nil {
		doc.Items = []clip.Item{}
	}

	seen := make(map[string]bool, len(doc.Items))
	for _, item := range doc.Items {
		if seen[item.ID] {
			return Document{}, fmt.Errorf("duplicate item id %s", item.ID)
		}
		seen[item.ID] = true
	}
	return doc, nil
}

// writeAtomic writes doc to a temp file next to path, then renames it over
// path. Readers see either the old or the new document, never a torn one.
func writeAtomic(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}

	success = true
	return nil
}
