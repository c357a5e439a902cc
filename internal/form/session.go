package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/legalease/legalease/backend/go-services/internal/document"
	"github.com/legalease/legalease/backend/go-services/internal/document/service"
	"github.com/legalease/legalease/backend/go-services/internal/export"
	"github.com/legalease/legalease/backend/go-services/internal/llm"
	"github.com/legalease/legalease/backend/go-services/internal/registry"
)

const (
	// DefaultLanguage is the drafting language until the user picks another.
	DefaultLanguage = "en"
	// DefaultFilename is used when the user never names the download.
	DefaultFilename = "Legal_Document.pdf"
)

var (
	// ErrNoDocType is returned when submitting before a document type is chosen.
	ErrNoDocType = errors.New("no document type selected")
	// ErrUnknownDocType is returned for a type with no registered schema.
	ErrUnknownDocType = errors.New("unknown document type")
	// ErrGenerationInFlight rejects a submit while a previous one is running.
	ErrGenerationInFlight = errors.New("generation already in progress")
)

// MissingFieldError names the first required field the user left empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// UnknownFieldError is returned when a value is set for a field that is not
// part of the current document type's schema.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field for document type: %s", e.Field)
}

// Session tracks one user's form state: the selected document type, the
// values entered so far, language and filename choices, and whether a
// generation is currently running. All methods are safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	docType  registry.DocumentType
	values   map[string]string
	language string
	filename string
	inFlight bool
}

func NewSession() *Session {
	return &Session{
		values:   map[string]string{},
		language: DefaultLanguage,
		filename: DefaultFilename,
	}
}

// SetDocType switches the form to a new document type. Entered values are
// discarded: the new type has its own schema and stale values must not leak
// into the generation prompt.
func (s *Session) SetDocType(t registry.DocumentType) error {
	if !registry.Known(t) {
		return ErrUnknownDocType
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docType == t {
		return nil
	}
	s.docType = t
	s.values = map[string]string{}
	return nil
}

// DocType returns the currently selected document type ("" when none).
func (s *Session) DocType() registry.DocumentType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docType
}

// SetField records a value for one of the current type's required fields.
func (s *Session) SetField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docType == "" {
		return ErrNoDocType
	}
	for _, f := range registry.Fields(s.docType) {
		if f == name {
			s.values[name] = value
			return nil
		}
	}
	return &UnknownFieldError{Field: name}
}

// SetLanguage selects the drafting language. An empty code restores the default.
func (s *Session) SetLanguage(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code == "" {
		code = DefaultLanguage
	}
	s.language = code
}

func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetFilename names the eventual PDF download. An empty name restores the default.
func (s *Session) SetFilename(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		name = DefaultFilename
	}
	s.filename = export.EnsurePDFExt(name)
}

func (s *Session) Filename() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filename
}

// Values returns a copy of the entered field values.
func (s *Session) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Validate checks that every required field has a non-empty value, reporting
// the first gap in schema order.
func (s *Session) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked()
}

func (s *Session) validateLocked() error {
	if s.docType == "" {
		return ErrNoDocType
	}
	for _, f := range registry.Fields(s.docType) {
		if strings.TrimSpace(s.values[f]) == "" {
			return &MissingFieldError{Field: f}
		}
	}
	return nil
}

// Submit validates the form, asks the drafter for the document text and saves
// the result to the user's store. At most one generation runs per session; a
// concurrent call fails fast with ErrGenerationInFlight. The store is only
// touched after a successful draft.
func (s *Session) Submit(ctx context.Context, drafter llm.Drafter, store service.Service) (string, document.GeneratedDocument, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return "", document.GeneratedDocument{}, ErrGenerationInFlight
	}
	if err := s.validateLocked(); err != nil {
		s.mu.Unlock()
		return "", document.GeneratedDocument{}, err
	}
	s.inFlight = true
	docType := string(s.docType)
	language := s.language
	filename := s.filename
	fields := make(map[string]string, len(s.values))
	for k, v := range s.values {
		fields[k] = v
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	text, err := drafter.Draft(ctx, docType, language, fields)
	if err != nil {
		return "", document.GeneratedDocument{}, err
	}

	doc := document.GeneratedDocument{
		ID:        uuid.NewString(),
		Filename:  filename,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.Add(doc); err != nil {
		return "", document.GeneratedDocument{}, err
	}
	return text, doc, nil
}

// Manager hands out one form session per user.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: map[string]*Session{}}
}

// Get returns the session for userID, creating it on first use.
func (m *Manager) Get(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := NewSession()
	m.sessions[userID] = s
	return s
}
