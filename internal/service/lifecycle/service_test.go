package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/domain/recur"
	"github.com/nhaldane/taskticker/internal/events"
	"github.com/nhaldane/taskticker/internal/testutils"
)

// captureHandler records every event it receives and can be primed to fail.
type captureHandler struct {
	seen []*events.Event
	err  error
}

func (h *captureHandler) HandleEvent(_ context.Context, event *events.Event) error {
	h.seen = append(h.seen, event)
	return h.err
}

func newTestService(t *testing.T) (Service, *captureHandler) {
	t.Helper()

	log, _ := testutils.NewRecordingLogger()
	handler := &captureHandler{}
	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(handler)

	return NewService(recur.NewDefaultScheduler(), emitter, log), handler
}

func TestNewServicePanicsOnNilScheduler(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewService(nil, events.NewInMemoryEventEmitter(nil), nil)
	})
}

func TestNewServicePanicsOnNilEmitter(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewService(recur.NewDefaultScheduler(), nil, nil)
	})
}

func TestToggleNilTask(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	clones, err := svc.Toggle(nil, domain.Lookup{}, time.Now().UTC())

	assert.ErrorIs(t, err, ErrNilTask)
	assert.Nil(t, clones)
}

func TestToggleCompletesPendingTask(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	task := testutils.MustNewTask(t, "File taxes", domain.TaskMeta{})

	clones, err := svc.Toggle(task, domain.Lookup{task.ID: task}, time.Now().UTC())

	require.NoError(t, err)
	assert.Nil(t, clones, "A non-recurring task yields no clone")
	assert.Equal(t, domain.StatusDone, task.Status)
}

func TestToggleReopensDoneTask(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	// The incomplete dependency must not matter: only transitions to done
	// are guarded.
	blocker := testutils.MustNewTask(t, "Blocker", domain.TaskMeta{})
	task := testutils.MustNewTask(t, "Reopen me", domain.TaskMeta{
		Status:    domain.StatusDone,
		DependsOn: blocker.ID,
	})
	lookup := domain.NewLookup([]*domain.Task{blocker, task})

	clones, err := svc.Toggle(task, lookup, time.Now().UTC())

	require.NoError(t, err)
	assert.Nil(t, clones)
	assert.Equal(t, domain.StatusPending, task.Status)
}

func TestToggleBlockedByDependencyLeavesStatusUnchanged(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	blocker := testutils.MustNewTask(t, "Buy paint", domain.TaskMeta{})
	task := testutils.MustNewTask(t, "Paint fence", domain.TaskMeta{
		DependsOn: blocker.ID,
	})
	lookup := domain.NewLookup([]*domain.Task{blocker, task})

	clones, err := svc.Toggle(task, lookup, time.Now().UTC())

	assert.ErrorIs(t, err, ErrBlockedByDependency)
	assert.Nil(t, clones)
	assert.Equal(t, domain.StatusPending, task.Status,
		"A rejected toggle must leave the task unmodified")
}

func TestToggleBlockedBySubtasksLeavesStatusUnchanged(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	subtask := testutils.MustNewTask(t, "Pack boxes", domain.TaskMeta{})
	task := testutils.MustNewTask(t, "Move house", domain.TaskMeta{
		Subtasks: []uuid.UUID{subtask.ID},
	})
	lookup := domain.NewLookup([]*domain.Task{subtask, task})

	clones, err := svc.Toggle(task, lookup, time.Now().UTC())

	assert.ErrorIs(t, err, ErrBlockedBySubtasks)
	assert.Nil(t, clones)
	assert.Equal(t, domain.StatusPending, task.Status)
}

func TestToggleMissingDependencyDoesNotBlock(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	task := testutils.MustNewTask(t, "Orphaned dependency", domain.TaskMeta{
		DependsOn: uuid.New(),
	})

	_, err := svc.Toggle(task, domain.Lookup{task.ID: task}, time.Now().UTC())

	require.NoError(t, err, "A stale dependency id must not freeze the task")
	assert.Equal(t, domain.StatusDone, task.Status)
}

func TestToggleCompletedDependencySatisfiesGuard(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	done := testutils.MustNewTask(t, "Prepare slides", domain.TaskMeta{
		Status: domain.StatusDone,
	})
	task := testutils.MustNewTask(t, "Give talk", domain.TaskMeta{
		DependsOn: done.ID,
	})
	lookup := domain.NewLookup([]*domain.Task{done, task})

	_, err := svc.Toggle(task, lookup, time.Now().UTC())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, task.Status)
}

func TestToggleShallowRecurrenceReturnsClone(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	task := testutils.MustNewTask(t, "Weekly review", domain.TaskMeta{
		DueDate: testutils.Date(2024, time.January, 1),
		Recurrence: domain.Recurrence{
			Frequency: domain.FrequencyWeekly,
			Interval:  1,
			CloneType: domain.CloneShallow,
		},
	})

	clones, err := svc.Toggle(task, domain.Lookup{task.ID: task}, time.Now().UTC())

	require.NoError(t, err)
	require.Len(t, clones, 1)
	assert.Equal(t, domain.StatusDone, task.Status)

	clone := clones[0]
	assert.Equal(t, testutils.Date(2024, time.January, 8), clone.DueDate)
	assert.Equal(t, domain.StatusPending, clone.Status)
	assert.False(t, clone.Recurrence.Active())
	assert.NotEqual(t, task.ID, clone.ID)
}

func TestToggleDeepRecurrenceClonesSubtree(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	// Subtasks must already be done or the toggle is rejected.
	childOne := testutils.MustNewTask(t, "Mow lawn", domain.TaskMeta{
		DueDate: testutils.Date(2024, time.April, 2),
		Status:  domain.StatusDone,
	})
	childTwo := testutils.MustNewTask(t, "Trim hedge", domain.TaskMeta{
		DueDate: testutils.Date(2024, time.April, 3),
		Status:  domain.StatusDone,
	})
	task := testutils.MustNewTask(t, "Garden day", domain.TaskMeta{
		DueDate:  testutils.Date(2024, time.April, 1),
		Subtasks: []uuid.UUID{childOne.ID, childTwo.ID},
		Recurrence: domain.Recurrence{
			Frequency: domain.FrequencyDaily,
			Interval:  3,
			CloneType: domain.CloneDeep,
		},
	})
	lookup := domain.NewLookup([]*domain.Task{task, childOne, childTwo})

	clones, err := svc.Toggle(task, lookup, time.Now().UTC())

	require.NoError(t, err)
	require.Len(t, clones, 3, "Deep recurrence clones the whole subtree")

	rootClone := clones[0]
	assert.Equal(t, testutils.Date(2024, time.April, 4), rootClone.DueDate)
	require.Len(t, rootClone.Subtasks, 2)
	assert.Equal(t, testutils.Date(2024, time.April, 5), clones[1].DueDate,
		"Children shift by the same delta as the root")
	assert.Equal(t, domain.StatusPending, clones[1].Status,
		"Cloned subtasks restart as pending")
}

func TestToggleInvalidRuleLeavesStatusUnchanged(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	task := &domain.Task{
		ID:      uuid.New(),
		Title:   "Broken rule",
		Status:  domain.StatusPending,
		DueDate: testutils.Date(2024, time.April, 1),
		Recurrence: domain.Recurrence{
			Frequency: domain.FrequencyDaily,
			Interval:  0,
			CloneType: domain.CloneShallow,
		},
	}

	clones, err := svc.Toggle(task, domain.Lookup{task.ID: task}, time.Now().UTC())

	require.Error(t, err)
	assert.Nil(t, clones)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "toggle", svcErr.Operation)
	assert.Equal(t, domain.StatusPending, task.Status,
		"A failed clone must not leave the task completed")
}

func TestCompleteMarksTaskDoneAndEmitsEvent(t *testing.T) {
	t.Parallel()

	svc, handler := newTestService(t)
	task := testutils.MustNewTask(t, "Ship release", domain.TaskMeta{})
	now := time.Date(2024, time.July, 4, 16, 45, 0, 0, time.UTC)

	err := svc.Complete(context.Background(), task, domain.Lookup{task.ID: task}, now)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, task.Status)

	require.Len(t, handler.seen, 1)
	event := handler.seen[0]
	assert.Equal(t, events.EventTaskCompleted, event.Type)

	var payload events.TaskCompletedPayload
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, task.ID, payload.TaskID)
	assert.Equal(t, "Ship release", payload.Title)
	assert.Equal(t, now, payload.CompletedAt)
}

func TestCompleteAlreadyDoneIsNoOp(t *testing.T) {
	t.Parallel()

	svc, handler := newTestService(t)
	task := testutils.MustNewTask(t, "Old news", domain.TaskMeta{
		Status: domain.StatusDone,
	})

	err := svc.Complete(context.Background(), task, domain.Lookup{task.ID: task}, time.Now().UTC())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, task.Status)
	assert.Empty(t, handler.seen, "Re-completing must not emit another event")
}

func TestCompleteBlockedByDependency(t *testing.T) {
	t.Parallel()

	svc, handler := newTestService(t)
	blocker := testutils.MustNewTask(t, "Sign contract", domain.TaskMeta{})
	task := testutils.MustNewTask(t, "Invoice client", domain.TaskMeta{
		DependsOn: blocker.ID,
	})
	lookup := domain.NewLookup([]*domain.Task{blocker, task})

	err := svc.Complete(context.Background(), task, lookup, time.Now().UTC())

	assert.ErrorIs(t, err, ErrBlockedByDependency)
	assert.Equal(t, domain.StatusPending, task.Status)
	assert.Empty(t, handler.seen)
}

func TestCompleteNeverClones(t *testing.T) {
	t.Parallel()

	svc, handler := newTestService(t)
	task := testutils.MustNewTask(t, "Daily standup", domain.TaskMeta{
		DueDate: testutils.Date(2024, time.April, 1),
		Recurrence: domain.Recurrence{
			Frequency: domain.FrequencyDaily,
			Interval:  1,
			CloneType: domain.CloneShallow,
		},
	})

	err := svc.Complete(context.Background(), task, domain.Lookup{task.ID: task}, time.Now().UTC())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, task.Status)
	require.Len(t, handler.seen, 1, "Complete emits but never clones")
}

func TestCompleteHandlerFailureSurfaces(t *testing.T) {
	t.Parallel()

	log, _ := testutils.NewRecordingLogger()
	handler := &captureHandler{err: errors.New("notes store unavailable")}
	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(handler)
	svc := NewService(recur.NewDefaultScheduler(), emitter, log)

	task := testutils.MustNewTask(t, "Flaky handler", domain.TaskMeta{})

	err := svc.Complete(context.Background(), task, domain.Lookup{task.ID: task}, time.Now().UTC())

	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "complete", svcErr.Operation)
	assert.Equal(t, domain.StatusDone, task.Status,
		"The status change is applied before handlers run")
}
