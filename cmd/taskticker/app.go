package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nhaldane/taskticker/internal/config"
	"github.com/nhaldane/taskticker/internal/domain"
	"github.com/nhaldane/taskticker/internal/domain/recur"
	"github.com/nhaldane/taskticker/internal/events"
	"github.com/nhaldane/taskticker/internal/platform/badgerstore"
	"github.com/nhaldane/taskticker/internal/platform/jsonfile"
	"github.com/nhaldane/taskticker/internal/platform/logger"
	"github.com/nhaldane/taskticker/internal/platform/memory"
	"github.com/nhaldane/taskticker/internal/service/lifecycle"
	"github.com/nhaldane/taskticker/internal/service/notes"
	"github.com/nhaldane/taskticker/internal/store"
	"github.com/nhaldane/taskticker/internal/validation"
)

// app bundles the configured dependencies every command needs. It is built
// fresh per invocation; nothing here survives the process.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	tasks store.TaskStore
	notes store.NoteStore

	// jsonTasks is the concrete json store when that backend is active,
	// nil otherwise. The recover and watch commands need it.
	jsonTasks *jsonfile.JSONTaskStore

	validator *validation.Validator
	lifecycle lifecycle.Service
	noteSvc   notes.Service

	closeFn func() error
}

// newApp loads configuration and assembles the storage backend and services.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	a := &app{
		cfg:     cfg,
		logger:  log,
		closeFn: func() error { return nil },
	}

	switch cfg.Storage.Backend {
	case "json":
		a.jsonTasks = jsonfile.NewJSONTaskStore(cfg.Storage.Dir, log)
		a.tasks = a.jsonTasks
		a.notes = jsonfile.NewJSONNoteStore(cfg.Storage.Dir, log)
	case "badger":
		dbCfg := badgerstore.DefaultConfig(filepath.Join(cfg.Storage.Dir, "badger"))
		dbCfg.SyncWrites = cfg.Storage.SyncWrites
		dbCfg.Logger = log
		db, err := badgerstore.Open(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger backend: %w", err)
		}
		a.tasks = badgerstore.NewBadgerTaskStore(db, log)
		a.notes = badgerstore.NewBadgerNoteStore(db, log)
		a.closeFn = db.Close
	case "memory":
		a.tasks = memory.NewMemoryTaskStore(log)
		a.notes = memory.NewMemoryNoteStore(log)
	default:
		// config.Load validates the backend name, so this is unreachable
		// unless the validation rules drift.
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	a.validator = validation.New(cfg.Validation.Rules(), log)
	a.noteSvc = notes.NewService(a.notes, log)

	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(notes.NewCompletionHandler(a.noteSvc, log))

	scheduler := recur.NewSchedulerWithParams(recur.NewParams(recur.ParamsConfig{
		MonthlyClampDay: cfg.Recurrence.MonthlyClampDay,
	}))
	a.lifecycle = lifecycle.NewService(scheduler, emitter, log)

	return a, nil
}

// Close releases the storage backend. Safe to call on every path.
func (a *app) Close() error {
	return a.closeFn()
}

// loadTasks reads the full task collection and builds its lookup index.
func (a *app) loadTasks(ctx context.Context) ([]*domain.Task, domain.Lookup, error) {
	tasks, err := a.tasks.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return tasks, domain.NewLookup(tasks), nil
}

// saveTasks persists the full task collection.
func (a *app) saveTasks(ctx context.Context, tasks []*domain.Task) error {
	if err := a.tasks.Save(ctx, tasks); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// findTask resolves a task reference given as a full uuid or an unambiguous
// id prefix, the way git resolves short hashes.
func findTask(tasks []*domain.Task, ref string) (*domain.Task, error) {
	if id, err := uuid.Parse(ref); err == nil {
		for _, t := range tasks {
			if t.ID == id {
				return t, nil
			}
		}
		return nil, fmt.Errorf("no task with id %s", ref)
	}

	prefix := strings.ToLower(strings.TrimSpace(ref))
	if prefix == "" {
		return nil, fmt.Errorf("empty task reference")
	}

	var match *domain.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID.String(), prefix) {
			if match != nil {
				return nil, fmt.Errorf("task reference %q is ambiguous", ref)
			}
			match = t
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no task matching %q", ref)
	}
	return match, nil
}

// shortID renders the display form of a task id.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
