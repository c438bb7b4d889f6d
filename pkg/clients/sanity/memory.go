package sanity

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/hashicorp/go-memdb"
	"gopkg.in/yaml.v3"

	"github.com/primalspirits/signup-page/pkg/models"
)

const documentTable = "document"

// Document is one stored content document
type Document struct {
	ID      string
	Type    string
	Content *models.PageContent
}

// MemoryStore serves page content from memory. It stands in for a Sanity
// project during local development and in tests.
type MemoryStore struct {
	db      *memdb.MemDB
	fetches atomic.Int64
}

var _ Client = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore() (*MemoryStore, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			documentTable: {
				Name: documentTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"type": {
						Name:    "type",
						Unique:  false,
						Indexer: &memdb.StringFieldIndex{Field: "Type"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("error creating content store: %w", err)
	}
	return &MemoryStore{db: db}, nil
}

// Put inserts or replaces a document
func (s *MemoryStore) Put(doc *Document) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(documentTable, doc); err != nil {
		return fmt.Errorf("error storing document %s: %w", doc.ID, err)
	}
	txn.Commit()
	return nil
}

// PutSignupPage stores content as the signup page singleton
func (s *MemoryStore) PutSignupPage(content *models.PageContent) error {
	return s.Put(&Document{ID: DocumentType, Type: DocumentType, Content: content})
}

// FetchSignupPage returns a copy of the first signup page document
func (s *MemoryStore) FetchSignupPage(ctx context.Context) (*models.PageContent, error) {
	s.fetches.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(documentTable, "type", DocumentType)
	if err != nil {
		return nil, fmt.Errorf("error reading content store: %w", err)
	}
	if raw == nil {
		return nil, ErrNotFound
	}

	doc := raw.(*Document)
	content := *doc.Content
	content.Gallery = append([]models.GalleryImage(nil), doc.Content.Gallery...)
	return &content, nil
}

// Fetches reports how many times content has been requested
func (s *MemoryStore) Fetches() int64 {
	return s.fetches.Load()
}

// LoadFixture seeds the store with a YAML encoded signup page
func (s *MemoryStore) LoadFixture(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading fixture: %w", err)
	}

	var content models.PageContent
	if err := yaml.Unmarshal(data, &content); err != nil {
		return fmt.Errorf("error parsing fixture %s: %w", path, err)
	}
	if err := ValidateContent(&content); err != nil {
		return fmt.Errorf("fixture %s: %w", path, err)
	}
	return s.PutSignupPage(&content)
}
