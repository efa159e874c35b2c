package lifecycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/domain/recur"
	"github.com/nhaldane/taskticker/internal/events"
	"github.com/nhaldane/taskticker/internal/platform/logger"
)

// Verify interface compliance at compile time
var _ Service = (*lifecycleServiceImpl)(nil)

// lifecycleServiceImpl implements the Service interface.
type lifecycleServiceImpl struct {
	scheduler recur.Scheduler
	emitter   events.EventEmitter
	logger    *slog.Logger
}

// NewService creates a new lifecycle Service implementation.
func NewService(
	scheduler recur.Scheduler,
	emitter events.EventEmitter,
	logger *slog.Logger,
) Service {
	// Validate inputs
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if emitter == nil {
		panic("emitter cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &lifecycleServiceImpl{
		scheduler: scheduler,
		emitter:   emitter,
		logger:    logger.With(slog.String("component", "lifecycle_service")),
	}
}

// Toggle implements Service.Toggle.
func (s *lifecycleServiceImpl) Toggle(
	task *domain.Task,
	lookup domain.Lookup,
	now time.Time,
) ([]*domain.Task, error) {
	if task == nil {
		return nil, ErrNilTask
	}

	// Reopening is never guarded.
	if task.IsDone() {
		task.Status = domain.StatusPending
		s.logger.Debug("task reopened", slog.String("task_id", task.ID.String()))
		return nil, nil
	}

	if err := s.checkBlocked(task, lookup, s.logger); err != nil {
		return nil, err
	}

	if !task.Recurrence.Active() {
		task.Status = domain.StatusDone
		s.logger.Debug("task completed", slog.String("task_id", task.ID.String()))
		return nil, nil
	}

	// Compute the next due date before flipping status so a bad rule
	// leaves the task untouched.
	nextDue, err := s.scheduler.NextDue(task.Recurrence, task.DueDate, now)
	if err != nil {
		s.logger.Error("failed to compute next due date",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return nil, NewToggleError("failed to compute next due date", err)
	}

	task.Status = domain.StatusDone

	var clones []*domain.Task
	if task.Recurrence.CloneType == domain.CloneDeep {
		clones = deepClone(task, lookup, nextDue, now)
	} else {
		clones = []*domain.Task{shallowClone(task, nextDue, now)}
	}

	s.logger.Debug("task completed with recurrence clone",
		slog.String("task_id", task.ID.String()),
		slog.String("clone_id", clones[0].ID.String()),
		slog.Int("clone_count", len(clones)),
		slog.String("next_due", nextDue.Format(domain.DateLayout)))
	return clones, nil
}

// Complete implements Service.Complete.
func (s *lifecycleServiceImpl) Complete(
	ctx context.Context,
	task *domain.Task,
	lookup domain.Lookup,
	now time.Time,
) error {
	if task == nil {
		return ErrNilTask
	}

	// Get logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task.IsDone() {
		log.Debug("task already completed", slog.String("task_id", task.ID.String()))
		return nil
	}

	if err := s.checkBlocked(task, lookup, log); err != nil {
		return err
	}

	task.Status = domain.StatusDone

	event, err := events.NewTaskCompleted(task.ID, task.Title, now)
	if err != nil {
		log.Error("failed to build completion event",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return NewCompleteError("failed to build completion event", err)
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit completion event",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return NewCompleteError("failed to emit completion event", err)
	}

	log.Debug("task completed",
		slog.String("task_id", task.ID.String()),
		slog.String("title", task.Title))
	return nil
}

// checkBlocked applies the guards for a transition to done. The rejected
// task is left unmodified.
func (s *lifecycleServiceImpl) checkBlocked(
	task *domain.Task,
	lookup domain.Lookup,
	log *slog.Logger,
) error {
	if task.IsBlocked(lookup) {
		log.Warn("transition to done rejected, dependency incomplete",
			slog.String("task_id", task.ID.String()),
			slog.String("depends_on", task.DependsOn.String()))
		return ErrBlockedByDependency
	}

	if task.IsParentBlocked(lookup) {
		log.Warn("transition to done rejected, subtasks incomplete",
			slog.String("task_id", task.ID.String()))
		return ErrBlockedBySubtasks
	}

	return nil
}
