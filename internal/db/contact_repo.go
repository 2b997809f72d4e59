package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/csheth/webmodels/internal/contact"
	"github.com/google/uuid"
)

var _ contact.Store = (*Repository)(nil)

// dbContact is a contact row. Timestamps are unix milliseconds.
type dbContact struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	Model         string    `db:"model"`
	Message       string    `db:"message"`
	Customization string    `db:"customization"`
	Status        string    `db:"status"`
	CreatedAt     int64     `db:"created_at"`
	UpdatedAt     int64     `db:"updated_at"`
}

func toDomainContact(row *dbContact) *contact.Submission {
	return &contact.Submission{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		Model:         row.Model,
		Message:       row.Message,
		Customization: row.Customization,
		Status:        contact.Status(row.Status),
		CreatedAt:     time.UnixMilli(row.CreatedAt).UTC(),
		UpdatedAt:     time.UnixMilli(row.UpdatedAt).UTC(),
	}
}

// Create inserts a new submission.
func (repo *Repository) Create(ctx context.Context, s *contact.Submission) error {
	if s == nil {
		return errors.New("creating contact: nil submission")
	}
	query := `INSERT INTO contact(id, name, email, model, message, customization, status, created_at, updated_at)
		VALUES (:id, :name, :email, :model, :message, :customization, :status, :created_at, :updated_at)`

	row := dbContact{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Model:         s.Model,
		Message:       s.Message,
		Customization: s.Customization,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt.UnixMilli(),
		UpdatedAt:     s.UpdatedAt.UnixMilli(),
	}
	if _, err := repo.dbConn.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("creating contact %s: %w", s.ID, err)
	}
	return nil
}

// Get retrieves a submission by id.
func (repo *Repository) Get(ctx context.Context, id uuid.UUID) (*contact.Submission, error) {
	var row dbContact
	query := `SELECT * FROM contact WHERE id = ?`

	if err := repo.dbConn.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contact.ErrNotFound
		}
		return nil, fmt.Errorf("getting contact %s: %w", id, err)
	}
	return toDomainContact(&row), nil
}

// List returns submissions newest first, optionally filtered by status.
func (repo *Repository) List(ctx context.Context, opts contact.ListOptions) ([]contact.Submission, error) {
	var rows []dbContact
	query := `SELECT * FROM contact ORDER BY created_at DESC`
	args := []any{}
	if opts.Status != "" {
		query = `SELECT * FROM contact WHERE status = ? ORDER BY created_at DESC`
		args = append(args, string(opts.Status))
	}

	if err := repo.dbConn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}

	subs := make([]contact.Submission, len(rows))
	for i := range rows {
		subs[i] = *toDomainContact(&rows[i])
	}
	return subs, nil
}

// UpdateStatus changes the status and bumps updated_at.
func (repo *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status contact.Status, at time.Time) error {
	query := `UPDATE contact SET status = ?, updated_at = ? WHERE id = ?`

	result, err := repo.dbConn.ExecContext(ctx, query, string(status), at.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("updating contact status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("fetching rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return contact.ErrNotFound
	}
	return nil
}
