package internal

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Identified is anything registered under a markup identifier.
type Identified interface {
	Identifier() string
}

// Registry maps identifiers to entries with first-come-wins semantics.
// It is safe for concurrent read/write access.
type Registry[T Identified] struct {
	entries map[string]T
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewRegistry creates a new registry.
func NewRegistry[T Identified](logger *zap.Logger) *Registry[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRegistryCreated)
	return &Registry[T]{
		entries: make(map[string]T),
		logger:  logger,
	}
}

// Register adds an entry to the registry.
// If an entry with the same identifier already exists, returns an error
// and keeps the existing one.
func (r *Registry[T]) Register(entry T) error {
	if any(entry) == nil {
		return NewRegistryError(ErrMsgNilEntry, StringValueEmpty)
	}

	id := entry.Identifier()
	if id == StringValueEmpty {
		return NewRegistryError(ErrMsgEmptyIdentifier, StringValueEmpty)
	}
	if !IsIdentifier(id) {
		return NewRegistryError(ErrMsgInvalidIdentifier, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.entries[id]; exists {
		r.logger.Warn(LogMsgRegistryCollision,
			zap.String(LogFieldIdentifier, id),
			zap.String(LogFieldExisting, existing.Identifier()),
		)
		return NewRegistryError(ErrMsgEntryExists, id)
	}

	r.entries[id] = entry
	r.logger.Debug(LogMsgEntryRegistered, zap.String(LogFieldIdentifier, id))
	return nil
}

// MustRegister adds an entry and panics if registration fails.
func (r *Registry[T]) MustRegister(entry T) {
	if err := r.Register(entry); err != nil {
		panic(err)
	}
}

// Get retrieves an entry by identifier.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[id]
	return entry, exists
}

// Has checks if an entry is registered for the given identifier.
func (r *Registry[T]) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.entries[id]
	return exists
}

// List returns all registered identifiers in sorted order.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of registered entries.
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// RegistryError represents a registry operation error
type RegistryError struct {
	Message    string
	Identifier string
}

// NewRegistryError creates a new registry error
func NewRegistryError(message, identifier string) *RegistryError {
	return &RegistryError{
		Message:    message,
		Identifier: identifier,
	}
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	if e.Identifier != StringValueEmpty {
		return fmt.Sprintf(ErrFmtIdentifierMessage, e.Message, e.Identifier)
	}
	return e.Message
}
