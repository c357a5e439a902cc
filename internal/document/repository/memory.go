package repository

import (
	"sync"

	"github.com/legalease/legalease/backend/go-services/internal/document"
)

// MemoryRepo keeps the document sequence in process memory. Used for unit
// tests and for running without a data directory.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs []document.GeneratedDocument
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: []document.GeneratedDocument{}}
}

func (m *MemoryRepo) List() ([]document.GeneratedDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]document.GeneratedDocument, len(m.docs))
	copy(out, m.docs)
	return out, nil
}

func (m *MemoryRepo) Get(id string) (document.GeneratedDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return document.GeneratedDocument{}, ErrNotFound
}

func (m *MemoryRepo) Add(doc document.GeneratedDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, doc)
	return nil
}

func (m *MemoryRepo) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.docs[:0]
	for _, d := range m.docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	m.docs = kept
	return nil
}
