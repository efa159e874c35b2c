package store_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhaldane/taskticker/internal/store"
)

// TestErrorDefinitions ensures that the error definitions in the store
// package are defined as expected and can be used with errors.Is.
func TestErrorDefinitions(t *testing.T) {
	t.Parallel()

	// Create functions that return the standard errors
	// This simulates how store implementations might return these errors
	taskNotFoundFn := func() error {
		return store.ErrTaskNotFound
	}

	noteNotFoundFn := func() error {
		return store.ErrNoteNotFound
	}

	// Test ErrTaskNotFound
	t.Run("ErrTaskNotFound", func(t *testing.T) {
		t.Parallel()

		// Get the error from the function
		err := taskNotFoundFn()

		// Verify it can be detected with errors.Is
		assert.True(t, errors.Is(err, store.ErrTaskNotFound))
		assert.True(t, errors.Is(err, store.ErrNotFound))
		assert.False(t, errors.Is(err, store.ErrNoteNotFound))

		// Verify the error message
		assert.Equal(t, "entity not found: task", err.Error())
	})

	// Test ErrNoteNotFound
	t.Run("ErrNoteNotFound", func(t *testing.T) {
		t.Parallel()

		// Get the error from the function
		err := noteNotFoundFn()

		// Verify it can be detected with errors.Is
		assert.True(t, errors.Is(err, store.ErrNoteNotFound))
		assert.True(t, errors.Is(err, store.ErrNotFound))
		assert.False(t, errors.Is(err, store.ErrTaskNotFound))

		// Verify the error message
		assert.Equal(t, "entity not found: note", err.Error())
	})
}
