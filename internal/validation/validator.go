package validation

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nhaldane/taskticker/internal/domain"
)

// Rules configures which checks run and how hard they fail. StrictMode
// escalates warnings to blocks on creation checks and turns a failed graph
// audit into an error.
type Rules struct {
	StrictMode             bool
	DependencyOrder        bool
	GroupPriorityExclusive bool
	GroupUniqueNames       bool
}

// DefaultRules returns the rule set used when the caller supplies none:
// lenient mode with every structural check enabled.
func DefaultRules() Rules {
	return Rules{
		StrictMode:             false,
		DependencyOrder:        true,
		GroupPriorityExclusive: true,
		GroupUniqueNames:       true,
	}
}

// Validator audits tasks against a fixed rule set.
type Validator struct {
	rules  Rules
	logger *slog.Logger
}

// New creates a Validator with the given rules.
// A nil logger falls back to slog.Default().
func New(rules Rules, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Validator{
		rules:  rules,
		logger: logger.With("component", "validation"),
	}
}

// Rules returns the rule set the validator was built with.
func (v *Validator) Rules() Rules {
	return v.rules
}

// CreationResult is the outcome of a single-task pre-insertion check.
// Block means the caller must refuse the mutation; Warn invites the caller
// to confirm with the user before proceeding.
type CreationResult struct {
	Warn    bool
	Block   bool
	Message string
}

// CheckCreation validates a candidate task against the rule set before it
// is inserted. Rules are evaluated in a fixed order: self-dependency (a
// hard block regardless of configuration), dependency order, unique names
// within the group, then high-priority exclusivity. Message carries the
// text of the last rule that fired, overwriting earlier non-blocking
// warnings; callers surface it as-is.
func (v *Validator) CheckCreation(task *domain.Task, lookup domain.Lookup) CreationResult {
	// Rule 1: prevent self-dependency
	if task.DependsOn != uuid.Nil && task.DependsOn == task.ID {
		return CreationResult{Warn: true, Block: true, Message: "Task cannot depend on itself."}
	}

	var result CreationResult

	// Rule 2: due date must follow the dependency's
	if v.rules.DependencyOrder && task.DependsOn != uuid.Nil {
		if parent, ok := lookup[task.DependsOn]; ok && dueBefore(task, parent) {
			result.Warn = true
			result.Block = v.rules.StrictMode
			result.Message = "Task is due before its dependency."
		}
	}

	// Rule 3: task title must be unique within its group
	if v.rules.GroupUniqueNames {
		for _, other := range lookup {
			if other.Title == task.Title && other.Group == task.Group && other.ID != task.ID {
				result.Warn = true
				result.Block = v.rules.StrictMode
				result.Message = fmt.Sprintf("Task '%s' already exists in group '%s'.", task.Title, task.Group)
				break
			}
		}
	}

	// Rule 4: only one high-priority task per group
	if v.rules.GroupPriorityExclusive && task.Priority == domain.PriorityHigh {
		for _, other := range lookup {
			if other.Group == task.Group && other.Priority == domain.PriorityHigh && other.ID != task.ID {
				result.Warn = true
				result.Block = v.rules.StrictMode
				result.Message = fmt.Sprintf("Another high-priority task already exists in group '%s'.", task.Group)
				break
			}
		}
	}

	return result
}

// CheckBatch reports whether a batch of tasks is free of high-priority
// group conflicts among its own members. Used before bulk insertion, where
// per-task creation checks cannot see the rest of the batch.
func CheckBatch(tasks []*domain.Task) bool {
	seen := make(map[string]bool)
	for _, t := range tasks {
		if t.Priority != domain.PriorityHigh {
			continue
		}
		if seen[t.Group] {
			return false
		}
		seen[t.Group] = true
	}
	return true
}

// ValidateNoteLink reports whether a note id is referenced by any task.
func ValidateNoteLink(noteID uuid.UUID, linked map[uuid.UUID]struct{}) bool {
	_, ok := linked[noteID]
	return ok
}

// dueBefore reports whether the child's due date falls strictly before the
// parent's. An unset child due date never violates ordering.
func dueBefore(child, parent *domain.Task) bool {
	if child.DueDate.IsZero() {
		return false
	}
	return child.DueDate.Before(parent.DueDate)
}
