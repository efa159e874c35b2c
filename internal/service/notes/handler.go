package notes

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nhaldane/taskticker/internal/events"
	"github.com/nhaldane/taskticker/internal/platform/logger"
)

// Verify interface compliance at compile time
var _ events.EventHandler = (*CompletionHandler)(nil)

// CompletionHandler records a summary note whenever a task completes. The
// note links back to the task through its TaskID; the handler never touches
// the task collection.
type CompletionHandler struct {
	notes  Service
	logger *slog.Logger
}

// NewCompletionHandler creates a handler that writes completion summaries
// through the given notes service.
func NewCompletionHandler(notes Service, logger *slog.Logger) *CompletionHandler {
	if notes == nil {
		panic("notes service cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CompletionHandler{
		notes:  notes,
		logger: logger.With(slog.String("component", "completion_handler")),
	}
}

// HandleEvent implements events.EventHandler. Events other than
// EventTaskCompleted are ignored.
func (h *CompletionHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.EventTaskCompleted {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, h.logger)

	var payload events.TaskCompletedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		log.Error("failed to decode task_completed payload",
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to decode task_completed payload: %w", err)
	}

	content := fmt.Sprintf("Task '%s' was completed on %s.",
		payload.Title, payload.CompletedAt.Format(time.RFC3339))

	note, err := h.notes.Create(ctx, content, "", nil, payload.TaskID)
	if err != nil {
		log.Error("failed to record completion note",
			slog.String("task_id", payload.TaskID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to record completion note: %w", err)
	}

	log.Debug("recorded completion note",
		slog.String("task_id", payload.TaskID.String()),
		slog.String("note_id", note.ID.String()))
	return nil
}
