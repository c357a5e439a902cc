package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/legalease/legalease/backend/go-services/internal/models"
)

// ErrInvalidCredentials is returned when email or password do not match
var ErrInvalidCredentials = errors.New("invalid email or password")

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidationError reports the first registration field that failed validation
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RegisterInput carries the fields collected by the signup form
type RegisterInput struct {
	Name     string
	Age      int
	Email    string
	Phone    string
	Password string
}

// Service encapsulates profile-related business logic
type Service struct {
	repo ProfileRepository
}

func NewService(r ProfileRepository) *Service {
	return &Service{repo: r}
}

// Register validates input, hashes the password and stores the profile
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !emailRe.MatchString(in.Email) {
		return nil, &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if in.Phone != "" && !phoneRe.MatchString(in.Phone) {
		return nil, &ValidationError{Field: "phone", Reason: "must be 10 digits"}
	}
	if len(in.Password) < 8 {
		return nil, &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	p := &models.Profile{
		Name:         in.Name,
		Age:          in.Age,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
	}
	return s.repo.Create(ctx, p)
}

// Authenticate checks email and password and returns the matching profile
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Profile, error) {
	p, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

// GetByID returns the profile for the given id, or nil when absent
func (s *Service) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile saves the mutable profile fields
func (s *Service) UpdateProfile(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if p.Phone != "" && !phoneRe.MatchString(p.Phone) {
		return nil, &ValidationError{Field: "phone", Reason: "must be 10 digits"}
	}
	return s.repo.Update(ctx, p)
}
