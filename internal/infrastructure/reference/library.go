package reference

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/secureai/docshield/internal/core/domain"
)

// Library maps each document type to its reference file and prompt frame
// through a manifest validated at startup: one entry per enum member, so
// adding a type is a data change. Reference files are read per lookup and a
// missing or unreadable file degrades to empty text with a logged
// diagnostic, never an aborted operation.
type Library struct {
	dir     string
	entries map[domain.DocumentType]manifestEntry
}

type manifestEntry struct {
	File   string `yaml:"file"`
	Prompt string `yaml:"prompt"`
}

type manifest struct {
	References map[string]manifestEntry `yaml:"references"`
}

func Load(dir, manifestPath string) (*Library, error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read reference manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse reference manifest: %w", err)
	}

	entries := make(map[domain.DocumentType]manifestEntry, len(m.References))
	for name, entry := range m.References {
		docType, ok := domain.ParseDocumentType(name)
		if !ok {
			return nil, fmt.Errorf("reference manifest names unknown document type %q", name)
		}
		if entry.File == "" {
			return nil, fmt.Errorf("reference manifest entry %s has no file", name)
		}
		entries[docType] = entry
	}

	for _, docType := range domain.AllDocumentTypes() {
		if _, ok := entries[docType]; !ok {
			return nil, fmt.Errorf("reference manifest missing entry for %s", docType)
		}
	}

	return &Library{dir: dir, entries: entries}, nil
}

func (l *Library) ReferenceText(docType domain.DocumentType) string {
	entry, ok := l.entries[docType]
	if !ok {
		return ""
	}

	raw, err := os.ReadFile(filepath.Join(l.dir, entry.File))
	if err != nil {
		slog.Warn("reference_file_unreadable",
			"document_type", string(docType),
			"file", entry.File,
			"error", err,
		)
		return ""
	}
	return string(raw)
}

func (l *Library) PromptFrame(docType domain.DocumentType) string {
	return l.entries[docType].Prompt
}
