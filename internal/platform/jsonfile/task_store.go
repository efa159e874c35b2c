package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/platform/logger"
	"github.com/nhaldane/taskticker/internal/store"
)

// JSONTaskStore implements the store.TaskStore interface over a tasks.json
// document in a data directory. A mutex serializes file access within the
// process; cross-process coordination is out of scope.
type JSONTaskStore struct {
	dir    string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewJSONTaskStore creates a new JSONTaskStore rooted at dir. The directory
// is created on first save. If logger is nil, a default logger is used.
func NewJSONTaskStore(dir string, logger *slog.Logger) *JSONTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONTaskStore{
		dir:    dir,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Verify JSONTaskStore implements store.TaskStore interface (compile-time check)
var _ store.TaskStore = (*JSONTaskStore)(nil)

// Load implements store.TaskStore.Load.
// A missing file yields an empty collection. A document that is malformed
// or fails schema validation yields a StoreError wrapping
// store.ErrInvalidEntity with the collected violations.
func (s *JSONTaskStore) Load(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, tasksFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("task file does not exist, starting with empty collection",
				slog.String("path", path))
			return []*domain.Task{}, nil
		}
		log.Error("failed to read task file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "load", "failed to read file", err)
	}

	tasks, err := decodeTasks(raw, "load")
	if err != nil {
		log.Warn("task file failed validation",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("loaded task collection", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Save implements store.TaskStore.Save.
// It validates every task, copies the previous document to the backup
// file, and writes the new collection. A failed backup copy is logged but
// does not block the save.
func (s *JSONTaskStore) Save(ctx context.Context, tasks []*domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			log.Warn("task validation failed during save",
				slog.String("task_id", task.ID.String()),
				slog.String("error", err.Error()))
			return store.NewStoreError("task", "save", "invalid task", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return store.NewStoreError("task", "save", "failed to create data directory", err)
	}

	path := filepath.Join(s.dir, tasksFileName)
	backupPath := filepath.Join(s.dir, backupFileName)

	if fileExists(path) {
		if err := copyFile(path, backupPath); err != nil {
			log.Warn("failed to write backup file, continuing with save",
				slog.String("path", backupPath),
				slog.String("error", err.Error()))
		}
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	if err := writeJSONFile(path, tasks); err != nil {
		log.Error("failed to write task file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "save", "failed to write file", err)
	}

	log.Debug("saved task collection", slog.Int("count", len(tasks)))
	return nil
}

// BackupExists reports whether a backup task document is present.
func (s *JSONTaskStore) BackupExists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fileExists(filepath.Join(s.dir, backupFileName))
}

// RecoverFromBackup restores tasks.json from the backup document and
// returns the recovered collection. The backup is validated before it
// replaces the current file, so a bad backup never clobbers it. Returns a
// StoreError wrapping store.ErrNotFound if no backup exists.
func (s *JSONTaskStore) RecoverFromBackup(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, tasksFileName)
	backupPath := filepath.Join(s.dir, backupFileName)

	raw, err := os.ReadFile(backupPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("no backup file to recover from", slog.String("path", backupPath))
			return nil, store.NewStoreError("task", "recover", "no backup file exists", store.ErrNotFound)
		}
		return nil, store.NewStoreError("task", "recover", "failed to read backup file", err)
	}

	tasks, err := decodeTasks(raw, "recover")
	if err != nil {
		log.Error("backup document failed validation",
			slog.String("path", backupPath),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return nil, store.NewStoreError("task", "recover", "failed to restore backup", err)
	}

	log.Warn("recovered task collection from backup",
		slog.String("backup", backupPath),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// decodeTasks validates a raw task document against the embedded schema and
// decodes it. The operation name flows into the returned StoreError.
func decodeTasks(raw []byte, operation string) ([]*domain.Task, error) {
	if err := validateDocument(taskSchema, raw); err != nil {
		return nil, store.NewStoreError("task", operation, err.Error(), store.ErrInvalidEntity)
	}

	tasks := []*domain.Task{}
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, store.NewStoreError("task", operation, err.Error(), store.ErrInvalidEntity)
	}

	return tasks, nil
}
