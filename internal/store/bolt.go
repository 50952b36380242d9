package store

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/funvibe/chainlang/internal/document"
	bolt "go.etcd.io/bbolt"
)

var (
	documentsBucket = []byte("documents")
	updatedBucket   = []byte("updated")
)

// BoltStore keeps document bodies in one bucket and their modification times
// in another, both keyed by name.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if needed) the bolt file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{documentsBucket, updatedBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Save(_ context.Context, doc *document.Document) error {
	body, err := encode(doc)
	if err != nil {
		return err
	}
	stamp := make([]byte, 8)
	binary.BigEndian.PutUint64(stamp, uint64(time.Now().UnixNano()))
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(documentsBucket).Put([]byte(doc.Name), body); err != nil {
			return fmt.Errorf("failed to save document %s: %w", doc.Name, err)
		}
		return tx.Bucket(updatedBucket).Put([]byte(doc.Name), stamp)
	})
}

func (s *BoltStore) Load(_ context.Context, name string) (*document.Document, error) {
	var body []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(documentsBucket).Get([]byte(name))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
		}
		// v is only valid inside the transaction
		body = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decode(name, body)
}

func (s *BoltStore) List(_ context.Context) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		updated := tx.Bucket(updatedBucket)
		return tx.Bucket(documentsBucket).ForEach(func(k, v []byte) error {
			e := Entry{Name: string(k), Size: len(v)}
			if stamp := updated.Get(k); len(stamp) == 8 {
				e.UpdatedAt = time.Unix(0, int64(binary.BigEndian.Uint64(stamp)))
			}
			entries = append(entries, e)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return entries, nil
}

func (s *BoltStore) Delete(_ context.Context, name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		docs := tx.Bucket(documentsBucket)
		if docs.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
		}
		if err := docs.Delete([]byte(name)); err != nil {
			return err
		}
		return tx.Bucket(updatedBucket).Delete([]byte(name))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
