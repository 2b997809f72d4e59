package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/csheth/webmodels/internal/contact"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	repo, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.Open() failed: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testSubmission(t *testing.T, name string, created time.Time) *contact.Submission {
	t.Helper()
	id, err := uuid.NewV7()
	if err != nil {
		t.Fatalf("creating uuid: %v", err)
	}
	return &contact.Submission{
		ID:        id,
		Name:      name,
		Email:     name + "@example.fr",
		Model:     "vente-artisanale",
		Message:   "Bonjour",
		Status:    contact.StatusNew,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestNewAppliesMigrationsTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.Get(&count, `SELECT COUNT(*) FROM contact`))
	assert.Zero(t, count)
}

func TestNewAppliesConnectionPragmas(t *testing.T) {
	conn, err := New(filepath.Join(t.TempDir(), "pragmas.db"))
	require.NoError(t, err)
	defer conn.Close()

	var journal string
	require.NoError(t, conn.Get(&journal, `PRAGMA journal_mode`))
	assert.Equal(t, "wal", journal)

	var timeout int
	require.NoError(t, conn.Get(&timeout, `PRAGMA busy_timeout`))
	assert.Equal(t, 5000, timeout)

	var foreignKeys int
	require.NoError(t, conn.Get(&foreignKeys, `PRAGMA foreign_keys`))
	assert.Equal(t, 1, foreignKeys)
}

func TestContactRepo_CreateAndGet(t *testing.T) {
	t.Run("should round trip a submission", func(t *testing.T) {
		repo := setupTestDB(t)
		ctx := context.Background()

		want := testSubmission(t, "ana", time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC))
		want.Customization = "logo en or"
		require.NoError(t, repo.Create(ctx, want))

		got, err := repo.Get(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
	t.Run("should return ErrNotFound for unknown ids", func(t *testing.T) {
		repo := setupTestDB(t)

		_, err := repo.Get(context.Background(), uuid.New())
		assert.ErrorIs(t, err, contact.ErrNotFound)
	})
	t.Run("should reject duplicate ids", func(t *testing.T) {
		repo := setupTestDB(t)
		ctx := context.Background()

		sub := testSubmission(t, "ana", time.Now().UTC())
		require.NoError(t, repo.Create(ctx, sub))
		assert.Error(t, repo.Create(ctx, sub))
	})
}

func TestContactRepo_List(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	a := testSubmission(t, "ana", base)
	b := testSubmission(t, "bob", base.Add(time.Hour))
	c := testSubmission(t, "cid", base.Add(2*time.Hour))
	for _, s := range []*contact.Submission{a, b, c} {
		require.NoError(t, repo.Create(ctx, s))
	}
	require.NoError(t, repo.UpdateStatus(ctx, b.ID, contact.StatusCompleted, base.Add(3*time.Hour)))

	all, err := repo.List(ctx, contact.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"cid", "bob", "ana"}, []string{all[0].Name, all[1].Name, all[2].Name})

	fresh, err := repo.List(ctx, contact.ListOptions{Status: contact.StatusNew})
	require.NoError(t, err)
	require.Len(t, fresh, 2)
	assert.Equal(t, c.ID, fresh[0].ID)

	done, err := repo.List(ctx, contact.ListOptions{Status: contact.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.True(t, base.Add(3*time.Hour).Equal(done[0].UpdatedAt))
}

func TestContactRepo_UpdateStatus(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	err := repo.UpdateStatus(ctx, uuid.New(), contact.StatusCompleted, time.Now())
	assert.ErrorIs(t, err, contact.ErrNotFound)

	// the CHECK constraint rejects unknown statuses
	sub := testSubmission(t, "ana", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, sub))
	assert.Error(t, repo.UpdateStatus(ctx, sub.ID, contact.Status("archived"), time.Now()))
}

func TestServiceOverRepository(t *testing.T) {
	repo := setupTestDB(t)
	svc := contact.NewService(repo)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, contact.Form{Name: "Léa", Email: "LEA@example.fr", Model: "boulangerie", Message: "Un site"})
	require.NoError(t, err)

	got, err := svc.SetStatus(ctx, sub.ID, contact.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, "lea@example.fr", got.Email)
	assert.Equal(t, contact.StatusInProgress, got.Status)
}
