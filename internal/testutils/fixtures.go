package testutils

import (
	"testing"
	"time"

	"github.com/nhaldane/taskticker/internal/domain"
)

// MustNewTask builds a task and fails the test on a validation error.
func MustNewTask(t *testing.T, title string, meta domain.TaskMeta) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(title, meta)
	if err != nil {
		t.Fatalf("failed to build test task %q: %v", title, err)
	}
	return task
}

// MustNewNote builds a note and fails the test on a validation error.
func MustNewNote(t *testing.T, content string) *domain.Note {
	t.Helper()

	note, err := domain.NewNote(content, "", nil)
	if err != nil {
		t.Fatalf("failed to build test note: %v", err)
	}
	return note
}

// Date builds a UTC midnight timestamp, the canonical due date form.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
