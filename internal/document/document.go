// Package document persists statement trees. JSON and YAML share one wire
// form that keeps every node id, so references survive a round trip.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/chainlang/internal/ast"
	"gopkg.in/yaml.v3"
)

// Document is a named collection of top-level statements, usually user
// operations.
type Document struct {
	Name       string
	Operations []*ast.Statement
}

// Format selects a codec.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown document format %q", s)
}

// FormatOf picks the codec from a file name.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

func (d *Document) wire() *wireDocument {
	return &wireDocument{Name: d.Name, Operations: encodeStatements(d.Operations)}
}

func fromWire(w *wireDocument) (*Document, error) {
	stmts, err := decodeStatements(w.Operations)
	if err != nil {
		return nil, err
	}
	return &Document{Name: w.Name, Operations: stmts}, nil
}

// Marshal encodes doc in format.
func Marshal(doc *Document, format Format) ([]byte, error) {
	w := doc.wire()
	switch format {
	case FormatYAML:
		return yaml.Marshal(w)
	case FormatJSON, "":
		return json.MarshalIndent(w, "", "  ")
	}
	return nil, fmt.Errorf("unknown document format %q", format)
}

// Unmarshal decodes a document in format.
func Unmarshal(data []byte, format Format) (*Document, error) {
	var w wireDocument
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("JSON parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
	doc, err := fromWire(&w)
	if err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return doc, nil
}

// Load reads a document file, choosing the codec by extension.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := Unmarshal(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save writes a document file, choosing the codec by extension.
func Save(path string, doc *Document) error {
	data, err := Marshal(doc, FormatOf(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
