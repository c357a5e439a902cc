package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/legalease/legalease/backend/go-services/internal/document"
	"github.com/legalease/legalease/backend/go-services/internal/document/repository"
)

var (
	ErrNotFound = errors.New("not found")
)

// Service defines the document-store operations used by the handler layer.
type Service interface {
	List() ([]document.GeneratedDocument, error)
	Get(id string) (document.GeneratedDocument, error)
	Add(doc document.GeneratedDocument) error
	Remove(id string) error
}

type storeService struct {
	repo repository.Repository
}

// NewService wraps a repository with the store-level error mapping.
func NewService(repo repository.Repository) Service {
	return &storeService{repo: repo}
}

func (s *storeService) List() ([]document.GeneratedDocument, error) {
	return s.repo.List()
}

func (s *storeService) Get(id string) (document.GeneratedDocument, error) {
	d, err := s.repo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return document.GeneratedDocument{}, ErrNotFound
		}
		return document.GeneratedDocument{}, err
	}
	return d, nil
}

func (s *storeService) Add(doc document.GeneratedDocument) error {
	return s.repo.Add(doc)
}

func (s *storeService) Remove(id string) error {
	return s.repo.Remove(id)
}

// Manager hands out one Service per user slot. Each user gets an isolated
// file-backed snapshot under the data directory; with an empty data
// directory every slot is memory-only (useful in tests and dev).
type Manager struct {
	mu      sync.Mutex
	dataDir string
	stores  map[string]Service
}

func NewManager(dataDir string) *Manager {
	return &Manager{dataDir: dataDir, stores: map[string]Service{}}
}

var safeSlotRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._@-]*$`)

// slotFile maps a client identity to a snapshot filename. Identities come
// from headers or IPs, so anything that is not a plain token is hashed
// instead of joined into the path.
func slotFile(userID string) string {
	if safeSlotRe.MatchString(userID) {
		return userID + ".json"
	}
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:]) + ".json"
}

// Get returns the store for userID, creating it on first use.
func (m *Manager) Get(userID string) (Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if svc, ok := m.stores[userID]; ok {
		return svc, nil
	}
	var repo repository.Repository
	if m.dataDir == "" {
		repo = repository.NewMemoryRepo()
	} else {
		fr, err := repository.NewFileRepo(filepath.Join(m.dataDir, "documents", slotFile(userID)))
		if err != nil {
			return nil, fmt.Errorf("open document store for %s: %w", userID, err)
		}
		repo = fr
	}
	svc := NewService(repo)
	m.stores[userID] = svc
	return svc, nil
}
