package repository

import (
	"errors"

	"github.com/legalease/legalease/backend/go-services/internal/document"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Repository is an ordered, append-only (with delete) collection of
// generated documents. List always returns creation order. Remove is
// idempotent: removing an unknown id is a no-op, not an error.
type Repository interface {
	List() ([]document.GeneratedDocument, error)
	Get(id string) (document.GeneratedDocument, error)
	Add(doc document.GeneratedDocument) error
	Remove(id string) error
}
