package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/platform/logger"
	"github.com/nhaldane/taskticker/internal/store"
)

// MemoryTaskStore implements the store.TaskStore interface with an
// in-memory map guarded by a mutex. Tasks are kept in a map for O(1)
// lookup and a separate slice preserves insertion order so Load returns a
// stable ordering.
//
// The store holds the same *Task pointers the caller works with; it does
// not copy entities. That matches the engine's single-session model, where
// the caller owns the collection and the store only remembers it.
type MemoryTaskStore struct {
	mu     sync.RWMutex
	tasks  map[uuid.UUID]*domain.Task
	order  []uuid.UUID
	logger *slog.Logger
}

// NewMemoryTaskStore creates an empty in-memory task store.
// If logger is nil, a default logger will be used.
func NewMemoryTaskStore(logger *slog.Logger) *MemoryTaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryTaskStore{
		tasks:  make(map[uuid.UUID]*domain.Task),
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure MemoryTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MemoryTaskStore)(nil)

// Load implements store.TaskStore.Load
// It returns the stored tasks in insertion order. An empty store returns
// an empty slice.
func (s *MemoryTaskStore) Load(ctx context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id])
	}
	return tasks, nil
}

// Save implements store.TaskStore.Save
// It replaces the stored collection with the given tasks. Every task must
// pass domain validation; on failure nothing is replaced.
func (s *MemoryTaskStore) Save(ctx context.Context, tasks []*domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			log.Warn("task validation failed during save",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make(map[uuid.UUID]*domain.Task, len(tasks))
	s.order = s.order[:0]
	for _, task := range tasks {
		if _, exists := s.tasks[task.ID]; !exists {
			s.order = append(s.order, task.ID)
		}
		s.tasks[task.ID] = task
	}

	log.Debug("saved task collection", slog.Int("task_count", len(tasks)))
	return nil
}
