package badgerstore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Key prefixes for the stored entity types.
const (
	taskKeyPrefix = "task/"
	noteKeyPrefix = "note/"
)

// Config holds the settings for opening a BadgerDB instance.
type Config struct {
	// Path is the directory for the database files. Required unless
	// InMemory is set, in which case it is ignored.
	Path string

	// InMemory keeps all data in memory with no disk persistence.
	InMemory bool

	// SyncWrites makes every write wait for the disk sync.
	SyncWrites bool

	// Logger receives BadgerDB's internal log output. If nil, that
	// output is discarded.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration for a persistent database at
// path.
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		SyncWrites: false,
	}
}

// InMemoryConfig returns the configuration for an in-memory database,
// suited to tests.
func InMemoryConfig() Config {
	return Config{
		InMemory: true,
	}
}

// badgerLogger adapts slog.Logger to badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Open opens a BadgerDB instance with the given configuration, creating the
// database directory if needed. The caller must Close the returned handle.
func Open(cfg Config) (*badger.DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for a persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	return db, nil
}

// taskKey builds the database key for a task id.
func taskKey(id uuid.UUID) []byte {
	return []byte(taskKeyPrefix + id.String())
}

// noteKey builds the database key for a note id.
func noteKey(id uuid.UUID) []byte {
	return []byte(noteKeyPrefix + id.String())
}
