package rrtf

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory DocumentStorage.
// All data is lost when the process terminates.
type MemoryStorage struct {
	mu        sync.RWMutex
	documents map[string][]*StoredDocument // name -> versions, newest first
	closed    bool
}

// MemoryStorageDriver is the driver for creating MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage. The connection string is ignored.
func (d *MemoryStorageDriver) Open(connectionString string) (DocumentStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory document storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		documents: make(map[string][]*StoredDocument),
	}
}

// Get retrieves the latest version of a document by name.
func (s *MemoryStorage) Get(ctx context.Context, name string) (*StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions, ok := s.documents[name]
	if !ok || len(versions) == 0 {
		return nil, NewDocumentNotFoundError(name)
	}
	return copyStoredDocument(versions[0]), nil
}

// GetVersion retrieves a specific version of a document.
func (s *MemoryStorage) GetVersion(ctx context.Context, name string, version int) (*StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	for _, doc := range s.documents[name] {
		if doc.Version == version {
			return copyStoredDocument(doc), nil
		}
	}
	return nil, NewDocumentVersionNotFoundError(name, version)
}

// Save stores a document as the next version of its name.
func (s *MemoryStorage) Save(ctx context.Context, doc *StoredDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.Name == StringValueEmpty {
		return NewInvalidDocumentNameError()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	now := time.Now()
	versions := s.documents[doc.Name]

	nextVersion := 1
	if len(versions) > 0 {
		nextVersion = versions[0].Version + 1
	}

	stored := &StoredDocument{
		ID:        generateDocumentID(),
		Name:      doc.Name,
		Markup:    doc.Markup,
		Version:   nextVersion,
		Metadata:  copyStringMap(doc.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc.ID = stored.ID
	doc.Version = stored.Version
	doc.CreatedAt = stored.CreatedAt
	doc.UpdatedAt = stored.UpdatedAt

	s.documents[doc.Name] = append([]*StoredDocument{stored}, versions...)
	return nil
}

// Delete removes all versions of a document.
func (s *MemoryStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.documents[name]; !ok {
		return NewDocumentNotFoundError(name)
	}
	delete(s.documents, name)
	return nil
}

// List returns documents matching the query.
func (s *MemoryStorage) List(ctx context.Context, query *DocumentQuery) ([]*StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	if query == nil {
		query = &DocumentQuery{}
	}

	var results []*StoredDocument
	for _, versions := range s.documents {
		if len(versions) == 0 {
			continue
		}
		candidates := versions[:1]
		if query.IncludeAllVersions {
			candidates = versions
		}
		for _, doc := range candidates {
			if matchesDocumentQuery(doc, query) {
				results = append(results, copyStoredDocument(doc))
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Name != results[j].Name {
			return results[i].Name < results[j].Name
		}
		return results[i].Version > results[j].Version
	})

	return paginate(results, query), nil
}

// Exists checks if a document with the given name exists.
func (s *MemoryStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	return len(s.documents[name]) > 0, nil
}

// ListVersions returns all version numbers for a document, newest first.
func (s *MemoryStorage) ListVersions(ctx context.Context, name string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	versions := s.documents[name]
	result := make([]int, len(versions))
	for i, doc := range versions {
		result[i] = doc.Version
	}
	return result, nil
}

// Close marks the storage as closed.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.documents = nil
	return nil
}
