package aiquiz

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	mimeText = "text/plain"
	mimePDF  = "application/pdf"
)

var sourceTypes = map[string]string{
	".txt": mimeText,
	".md":  mimeText,
	".pdf": mimePDF,
}

// LoadSources reads the supported files directly inside dir, sorted by name.
// Subdirectories and other file types are skipped. A missing dir is ErrNoSources.
func LoadSources(dir string) ([]SourceDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory %s does not exist", ErrNoSources, dir)
		}
		return nil, fmt.Errorf("failed to read source directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var docs []SourceDocument
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		mime, ok := sourceTypes[strings.ToLower(filepath.Ext(e.Name()))]
		if !ok {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read source %s: %w", e.Name(), err)
		}
		if mime == mimeText && strings.TrimSpace(string(data)) == "" {
			continue
		}
		docs = append(docs, SourceDocument{Name: e.Name(), MIMEType: mime, Data: data})
	}
	return docs, nil
}
