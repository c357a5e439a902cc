package llm

import (
	"context"
	"errors"
	"fmt"
)

// Drafter is the boundary to the external drafting model. Implementations
// must map every transport failure, non-success status, or malformed
// response to a *GenerationError — never a panic and never a raw decode
// error leaking to callers.
type Drafter interface {
	// Draft produces the full text of a legal document of the given type
	// from the collected form fields.
	Draft(ctx context.Context, docType string, language string, fields map[string]string) (string, error)
	// Chat answers a free-form legal question.
	Chat(ctx context.Context, prompt string) (string, error)
}

// GenerationError is the single failure kind for upstream drafting calls.
// It is retryable from the caller's point of view; the session that issued
// the request stays usable.
type GenerationError struct {
	Op  string // "draft" or "chat"
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsGenerationError reports whether err (or anything it wraps) is an
// upstream generation failure.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
