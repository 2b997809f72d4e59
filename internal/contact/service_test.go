package contact

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	Store
	err error
}

func (f failingStore) Create(context.Context, *Submission) error {
	return f.err
}

func newTestService(t *testing.T, now time.Time) (*Service, *FileStore) {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "contacts.json"))
	clock := func() time.Time { return now }
	return NewService(store, WithClock(clock)), store
}

func TestSubmitStoresNormalizedSubmission(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	svc, store := newTestService(t, now)

	sub, err := svc.Submit(context.Background(), Form{
		Name:          " Léa ",
		Email:         "LEA@Example.fr",
		Model:         "studio-tatouage",
		Message:       "Je voudrais un portfolio",
		Customization: " couleurs sombres ",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sub.ID)
	assert.Equal(t, "Léa", sub.Name)
	assert.Equal(t, "lea@example.fr", sub.Email)
	assert.Equal(t, "couleurs sombres", sub.Customization)
	assert.Equal(t, StatusNew, sub.Status)
	assert.True(t, now.Equal(sub.CreatedAt))

	stored, err := store.Get(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.Message, stored.Message)
}

func TestSubmitRejectsIncompleteForm(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t, time.Now())
	_, err := svc.Submit(context.Background(), Form{Name: "Léa", Email: "  "})
	require.ErrorIs(t, err, ErrInvalid)

	subs, err := store.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, subs, "invalid forms must not be stored")
}

func TestSubmitWrapsStoreErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	svc := NewService(failingStore{err: boom})
	_, err := svc.Submit(context.Background(), Form{Name: "a", Email: "b", Model: "c", Message: "d"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "storing submission")
}

func TestSubmitIDGeneratorFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("entropy")
	svc := NewService(NewFileStore(filepath.Join(t.TempDir(), "c.json")), WithIDGenerator(func() (uuid.UUID, error) {
		return uuid.Nil, boom
	}))
	_, err := svc.Submit(context.Background(), Form{Name: "a", Email: "b", Model: "c", Message: "d"})
	assert.ErrorIs(t, err, boom)
}

func TestSetStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()
	sub, err := svc.Submit(ctx, Form{Name: "a", Email: "b@c.fr", Model: "autre", Message: "d"})
	require.NoError(t, err)

	updated, err := svc.SetStatus(ctx, sub.ID, StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, updated.Status)

	_, err = svc.SetStatus(ctx, sub.ID, Status("archived"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.SetStatus(ctx, uuid.New(), StatusCompleted)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.List(ctx, ListOptions{Status: StatusInProgress})
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := svc.Get(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got.Status)

	updated, err = svc.SetStatus(ctx, sub.ID, Status(" Completed "))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
}
