package jsonfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow is how long Watch waits after the last file event before
// emitting the batched changes. Editors and the store itself produce bursts
// of events per logical write.
const debounceWindow = 200 * time.Millisecond

// Op is the kind of change observed on a data file.
type Op int

// Possible change operations
const (
	OpCreate Op = iota
	OpWrite
	OpRemove
	OpRename
)

// String returns the string representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Change is a debounced notification that a data file changed on disk.
type Change struct {
	Path string
	Op   Op
}

// Watch emits change notifications for the JSON documents under dir until
// ctx is canceled, at which point the returned channel closes. Events are
// debounced and deduplicated per path, keeping the newest operation, and
// only tasks.json and notes.json are reported; the backup file and anything
// else in the directory stay silent. The directory is created if it does
// not exist yet. If logger is nil, a default logger is used.
func Watch(ctx context.Context, dir string, logger *slog.Logger) (<-chan Change, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "file_watcher"))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	out := make(chan Change, 16)

	go func() {
		defer close(out)
		defer fw.Close()

		var batch []Change
		seen := make(map[string]int)
		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if !watchedFile(event.Name) || event.Op == fsnotify.Chmod {
					continue
				}

				change := Change{Path: event.Name, Op: opOf(event.Op)}
				if i, dup := seen[event.Name]; dup {
					batch[i] = change
				} else {
					seen[event.Name] = len(batch)
					batch = append(batch, change)
				}

				if timer == nil {
					timer = time.NewTimer(debounceWindow)
					timerC = timer.C
				} else {
					timer.Reset(debounceWindow)
				}

			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Warn("file watcher error", slog.String("error", err.Error()))

			case <-timerC:
				for _, change := range batch {
					select {
					case out <- change:
					case <-ctx.Done():
						return
					}
				}
				batch = batch[:0]
				seen = make(map[string]int)
				timer = nil
				timerC = nil
			}
		}
	}()

	return out, nil
}

// watchedFile reports whether path is one of the data files Watch reports
// on. The backup file is excluded: it only ever changes as a side effect of
// a task save, which already produces a tasks.json event.
func watchedFile(path string) bool {
	switch filepath.Base(path) {
	case tasksFileName, notesFileName:
		return true
	default:
		return false
	}
}

// opOf converts an fsnotify operation to the reported Op.
func opOf(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	default:
		return OpWrite
	}
}
