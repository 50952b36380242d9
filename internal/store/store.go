// Package store persists documents by name in an embedded database.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/funvibe/chainlang/internal/config"
	"github.com/funvibe/chainlang/internal/document"
)

// ErrDocumentNotFound is returned by Load and Delete for an unknown name.
var ErrDocumentNotFound = errors.New("document not found")

// Entry describes a stored document without decoding it.
type Entry struct {
	Name      string
	Size      int
	UpdatedAt time.Time
}

// Store is a named collection of documents.
type Store interface {
	Save(ctx context.Context, doc *document.Document) error
	Load(ctx context.Context, name string) (*document.Document, error)
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// Open opens the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		s, err := NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	case "bolt":
		return NewBoltStore(cfg.Path)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

func encode(doc *document.Document) ([]byte, error) {
	if doc == nil || doc.Name == "" {
		return nil, errors.New("document has no name")
	}
	data, err := document.Marshal(doc, document.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document %s: %w", doc.Name, err)
	}
	return data, nil
}

func decode(name string, data []byte) (*document.Document, error) {
	doc, err := document.Unmarshal(data, document.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", name, err)
	}
	return doc, nil
}
