package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/legalease/legalease/backend/go-services/internal/document"
)

// FileRepo persists the whole document sequence as one JSON array in a
// single file — the durable slot backing "My Documents". Every mutation
// rewrites the full snapshot: last writer wins, no partial merges.
// Concurrent writers from other processes are not reconciled; that is an
// accepted limitation of the slot, not something this repo papers over.
type FileRepo struct {
	mu   sync.Mutex
	path string
	docs []document.GeneratedDocument
}

// NewFileRepo opens (or creates) the snapshot at path and loads it.
func NewFileRepo(path string) (*FileRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create document store directory: %w", err)
	}
	r := &FileRepo{path: path}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	r.docs = []document.GeneratedDocument{}
	b, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read document snapshot: %w", err)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, &r.docs); err != nil {
		return fmt.Errorf("decode document snapshot: %w", err)
	}
	return nil
}

// persistLocked writes the full in-memory sequence back to the slot.
// Must be called with r.mu held.
func (r *FileRepo) persistLocked() error {
	b, err := json.MarshalIndent(r.docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document snapshot: %w", err)
	}
	if err := os.WriteFile(r.path, b, 0o644); err != nil {
		return fmt.Errorf("write document snapshot: %w", err)
	}
	return nil
}

func (r *FileRepo) List() ([]document.GeneratedDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]document.GeneratedDocument, len(r.docs))
	copy(out, r.docs)
	return out, nil
}

func (r *FileRepo) Get(id string) (document.GeneratedDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return document.GeneratedDocument{}, ErrNotFound
}

func (r *FileRepo) Add(doc document.GeneratedDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, doc)
	if err := r.persistLocked(); err != nil {
		// roll back the in-memory append so memory and slot stay in step
		r.docs = r.docs[:len(r.docs)-1]
		return err
	}
	return nil
}

func (r *FileRepo) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := make([]document.GeneratedDocument, 0, len(r.docs))
	removed := false
	for _, d := range r.docs {
		if d.ID == id {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	if !removed {
		return nil
	}
	prev := r.docs
	r.docs = kept
	if err := r.persistLocked(); err != nil {
		r.docs = prev
		return err
	}
	return nil
}
