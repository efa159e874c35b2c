package undo

import "log/slog"

// DefaultLimit is the undo stack depth used when no explicit limit is
// configured.
const DefaultLimit = 20

// Manager maintains the undo and redo stacks. It is not safe for
// concurrent use; the engine assumes a single session mutating one task
// collection at a time.
type Manager struct {
	limit  int
	undo   []Command
	redo   []Command
	logger *slog.Logger
}

// New creates a Manager holding at most limit history entries. Limits
// below 1 fall back to DefaultLimit. If logger is nil, slog.Default() is
// used.
func New(limit int, logger *slog.Logger) *Manager {
	if limit < 1 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		limit:  limit,
		logger: logger.With("component", "undo"),
	}
}

// NewDefault creates a Manager with DefaultLimit and the default logger.
func NewDefault() *Manager {
	return New(DefaultLimit, nil)
}

// Register pushes a command onto the undo stack, dropping the oldest entry
// once the limit is exceeded, and clears the redo stack. The caller has
// already applied the command's effect; Register only records how to
// traverse history from here.
func (m *Manager) Register(cmd Command) {
	m.undo = append(m.undo, cmd)
	if len(m.undo) > m.limit {
		m.undo = m.undo[1:]
	}
	m.redo = nil
}

// Undo reverts the most recent command and moves it onto the redo stack.
// It returns false if the undo stack is empty or the revert failed; a
// failed command stays on the undo stack.
func (m *Manager) Undo() bool {
	if len(m.undo) == 0 {
		return false
	}

	cmd := m.undo[len(m.undo)-1]
	if err := cmd.Revert(); err != nil {
		m.logger.Error("undo failed", "error", err)
		return false
	}

	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, cmd)
	return true
}

// Redo re-applies the most recently undone command and moves it back onto
// the undo stack. It returns false if the redo stack is empty or the apply
// failed; a failed command stays on the redo stack.
func (m *Manager) Redo() bool {
	if len(m.redo) == 0 {
		return false
	}

	cmd := m.redo[len(m.redo)-1]
	if err := cmd.Apply(); err != nil {
		m.logger.Error("redo failed", "error", err)
		return false
	}

	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, cmd)
	return true
}

// CanUndo reports whether any command is available to undo.
func (m *Manager) CanUndo() bool {
	return len(m.undo) > 0
}

// CanRedo reports whether any command is available to redo.
func (m *Manager) CanRedo() bool {
	return len(m.redo) > 0
}

// Len returns the number of commands on the undo stack.
func (m *Manager) Len() int {
	return len(m.undo)
}
