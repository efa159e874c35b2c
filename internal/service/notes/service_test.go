package notes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/platform/memory"
	"github.com/nhaldane/taskticker/internal/store"
	"github.com/nhaldane/taskticker/internal/testutils"
)

func newTestNoteService(t *testing.T) (Service, store.NoteStore) {
	t.Helper()

	log, _ := testutils.NewRecordingLogger()
	noteStore := memory.NewMemoryNoteStore(log)
	return NewService(noteStore, log), noteStore
}

func TestCreateStoresNote(t *testing.T) {
	t.Parallel()

	svc, noteStore := newTestNoteService(t)
	ctx := context.Background()
	taskID := uuid.New()

	note, err := svc.Create(ctx, "Call the plumber", "household", []string{"urgent"}, taskID)

	require.NoError(t, err)
	assert.Equal(t, "Call the plumber", note.Content)
	assert.Equal(t, "household", note.Label)
	assert.Equal(t, []string{"urgent"}, note.Tags)
	assert.Equal(t, taskID, note.TaskID)

	stored, err := noteStore.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Call the plumber", stored.Content)
}

func TestCreateUnattachedNote(t *testing.T) {
	t.Parallel()

	svc, _ := newTestNoteService(t)

	note, err := svc.Create(context.Background(), "Standalone thought", "", nil, uuid.Nil)

	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, note.TaskID)
}

func TestCreateRejectsEmptyContent(t *testing.T) {
	t.Parallel()

	svc, noteStore := newTestNoteService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "", nil, uuid.Nil)

	assert.ErrorIs(t, err, domain.ErrEmptyNoteContent)

	notes, err := noteStore.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes, "Nothing may be stored for a rejected note")
}

func TestUpdateArchivesPriorRevision(t *testing.T) {
	t.Parallel()

	svc, _ := newTestNoteService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, "first draft", "", nil, uuid.Nil)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, note.ID, "second draft")
	require.NoError(t, err)
	assert.Equal(t, "second draft", updated.Content)
	assert.Equal(t, []string{"first draft"}, updated.History)

	updated, err = svc.Update(ctx, note.ID, "final draft")
	require.NoError(t, err)
	assert.Equal(t, "final draft", updated.Content)
	assert.Equal(t, []string{"first draft", "second draft"}, updated.History,
		"Revisions accumulate oldest first")
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	// The archived revisions survive the store round-trip.
	stored, err := svc.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"first draft", "second draft"}, stored.History)
}

func TestUpdateMissingNote(t *testing.T) {
	t.Parallel()

	svc, _ := newTestNoteService(t)

	_, err := svc.Update(context.Background(), uuid.New(), "anything")

	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestUpdateRejectsEmptyContent(t *testing.T) {
	t.Parallel()

	svc, _ := newTestNoteService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, "keep me", "", nil, uuid.Nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, note.ID, "")
	assert.ErrorIs(t, err, domain.ErrEmptyNoteContent)

	stored, err := svc.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", stored.Content, "A rejected update must not change the note")
	assert.Empty(t, stored.History)
}

func TestDeleteRemovesNote(t *testing.T) {
	t.Parallel()

	svc, _ := newTestNoteService(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, "short lived", "", nil, uuid.Nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, note.ID))

	_, err = svc.Get(ctx, note.ID)
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestDeleteMissingNote(t *testing.T) {
	t.Parallel()

	svc, _ := newTestNoteService(t)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestGetByTaskReturnsLinkedNotes(t *testing.T) {
	t.Parallel()

	svc, _ := newTestNoteService(t)
	ctx := context.Background()
	taskID := uuid.New()

	first, err := svc.Create(ctx, "older", "", nil, taskID)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "newer", "", nil, taskID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "unrelated", "", nil, uuid.New())
	require.NoError(t, err)

	linked, err := svc.GetByTask(ctx, taskID)

	require.NoError(t, err)
	require.Len(t, linked, 2)
	assert.Equal(t, first.ID, linked[0].ID, "Linked notes come back oldest first")
	assert.Equal(t, second.ID, linked[1].ID)
}
