package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nhaldane/taskticker/internal/domain"
)

// Common error types for the lifecycle Service. The blocked sentinels carry
// the exact text shown to the user, so callers can print them verbatim.
var (
	// ErrNilTask indicates the task argument was nil.
	ErrNilTask = errors.New("task cannot be nil")

	// ErrBlockedByDependency indicates the task's dependency is not done yet.
	ErrBlockedByDependency = errors.New("This task is blocked by another incomplete task.")

	// ErrBlockedBySubtasks indicates at least one subtask is not done yet.
	ErrBlockedBySubtasks = errors.New("This task has incomplete subtasks.")
)

// Service transitions tasks between pending and done and spawns the
// recurrence clone that follows a completed recurring task.
type Service interface {
	// Toggle flips the task's status between pending and done.
	//
	// Transitions to done are guarded: if an incomplete dependency or an
	// incomplete subtask blocks the task, Toggle returns
	// ErrBlockedByDependency or ErrBlockedBySubtasks and leaves the task
	// unmodified. Transitions back to pending are never guarded.
	//
	// Parameters:
	//   - task: the task to transition; mutated in place on success
	//   - lookup: id index over the caller's collection, used to resolve
	//     the dependency and subtask guards and the deep-clone subtree
	//   - now: clock input for the clone's created_at and due-date floor
	//
	// Returns:
	//   - ([]*domain.Task, nil): the fresh recurrence clone subtree in
	//     preorder, root clone first, when the task transitioned to done
	//     and carries an active recurrence rule. A shallow rule yields a
	//     single element; a deep rule yields the root plus every cloned
	//     descendant.
	//   - (nil, nil): the transition succeeded and no clone was due
	//   - (nil, error): the transition was rejected or cloning failed
	//
	// The caller owns the returned clones: the service never inserts them
	// into the collection or the lookup.
	Toggle(task *domain.Task, lookup domain.Lookup, now time.Time) ([]*domain.Task, error)

	// Complete marks the task done, one way. It applies the same blocked
	// guards as Toggle, never clones, and emits a TaskCompleted event so
	// registered handlers can react (the notes handler records a summary
	// note). Completing an already-done task is a no-op.
	//
	// Emission is synchronous: a handler failure surfaces as the returned
	// error, after the status change has already been applied.
	Complete(ctx context.Context, task *domain.Task, lookup domain.Lookup, now time.Time) error
}

// ServiceError wraps errors from the lifecycle service with additional
// context, so consumers can differentiate failure sites with errors.As
// instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "toggle", "complete")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewToggleError returns a new ServiceError for the toggle operation.
func NewToggleError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "toggle",
		Message:   message,
		Err:       err,
	}
}

// NewCompleteError returns a new ServiceError for the complete operation.
func NewCompleteError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "complete",
		Message:   message,
		Err:       err,
	}
}
