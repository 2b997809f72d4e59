// Package contact models contact-form submissions and their persistence.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrNotFound is returned when a submission id is unknown to the store.
	ErrNotFound = errors.New("contact: submission not found")
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("contact: invalid submission")
)

// Status tracks the follow-up of a submission.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ParseStatus accepts the three known statuses.
func ParseStatus(value string) (Status, error) {
	switch s := Status(strings.TrimSpace(strings.ToLower(value))); s {
	case StatusNew, StatusInProgress, StatusCompleted:
		return s, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalid, value)
	}
}

// Form is the raw payload of the contact form.
type Form struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Model         string `json:"model"`
	Message       string `json:"message"`
	Customization string `json:"customization,omitempty"`
}

// Submission is a persisted contact request.
type Submission struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Model         string    `json:"model"`
	Message       string    `json:"message"`
	Customization string    `json:"customization,omitempty"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Normalize trims every field, composes accents (NFC) and lowercases the email address.
func Normalize(f Form) Form {
	clean := func(s string) string {
		return norm.NFC.String(strings.TrimSpace(s))
	}
	return Form{
		Name:          clean(f.Name),
		Email:         strings.ToLower(clean(f.Email)),
		Model:         clean(f.Model),
		Message:       clean(f.Message),
		Customization: clean(f.Customization),
	}
}

// ValidationError lists the required fields that were left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Validate checks that name, email, model and message are present.
func Validate(f Form) error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(f.Model) == "" {
		missing = append(missing, "model")
	}
	if strings.TrimSpace(f.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// ListOptions filters Store.List. A zero value lists everything.
type ListOptions struct {
	Status Status
}

// Store persists submissions.
type Store interface {
	Create(ctx context.Context, s *Submission) error
	Get(ctx context.Context, id uuid.UUID) (*Submission, error)
	List(ctx context.Context, opts ListOptions) ([]Submission, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, at time.Time) error
}
