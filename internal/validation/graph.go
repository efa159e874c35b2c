package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhaldane/taskticker/internal/domain"
)

// ErrStrictMode marks graph audits escalated into failures by strict mode.
var ErrStrictMode = errors.New("strict mode validation failed")

// Report is the outcome of a whole-graph audit. AffectedTasks lists every
// task the traversal visited, in visit order.
type Report struct {
	IsValid       bool        `json:"is_valid"`
	Errors        []string    `json:"errors"`
	Warnings      []string    `json:"warnings"`
	ValidatedAt   time.Time   `json:"validated_at"`
	AffectedTasks []uuid.UUID `json:"affected_tasks"`
}

// StrictModeError interrupts CheckGraph when strict mode is enabled and the
// audit recorded errors. It carries the report the caller would otherwise
// have received.
type StrictModeError struct {
	Report *Report
}

// Error implements the error interface for StrictModeError.
func (e *StrictModeError) Error() string {
	return "validation failed:\n" + strings.Join(e.Report.Errors, "\n")
}

// Unwrap returns ErrStrictMode to support errors.Is.
func (e *StrictModeError) Unwrap() error {
	return ErrStrictMode
}

// CheckGraph audits the whole task collection. It runs a depth-first
// traversal from every unvisited task, following the depends_on edge and
// all subtask edges with an active recursion stack, recording cycles,
// dangling depends_on references, and ordering violations as errors and
// dangling subtask ids as warnings. Group-level rules (priority
// exclusivity, unique names) run over the full collection afterwards with
// first-seen-exempt semantics: only the second and later offenders are
// flagged.
//
// Every recorded issue is also logged at Warn level. When strict mode is
// enabled and errors exist, CheckGraph returns a *StrictModeError instead
// of the report, so strict-mode callers must handle a failure path rather
// than inspect IsValid.
func (v *Validator) CheckGraph(tasks []*domain.Task) (*Report, error) {
	walk := &graphWalk{
		rules:   v.rules,
		lookup:  domain.NewLookup(tasks),
		visited: make(map[uuid.UUID]bool),
		onStack: make(map[uuid.UUID]bool),
	}

	for _, task := range tasks {
		if !walk.visited[task.ID] {
			walk.visit(task, nil)
		}
	}

	errs := walk.errors
	warnings := walk.warnings

	if v.rules.GroupPriorityExclusive {
		seen := make(map[string]uuid.UUID)
		for _, t := range tasks {
			if t.Priority != domain.PriorityHigh {
				continue
			}
			if _, ok := seen[t.Group]; ok {
				errs = append(errs, fmt.Sprintf("Multiple high-priority tasks in group '%s'", t.Group))
			} else {
				seen[t.Group] = t.ID
			}
		}
	}

	if v.rules.GroupUniqueNames {
		type nameKey struct {
			group string
			title string
		}
		seen := make(map[nameKey]bool)
		for _, t := range tasks {
			key := nameKey{group: t.Group, title: t.Title}
			if seen[key] {
				errs = append(errs, fmt.Sprintf("Duplicate task '%s' in group '%s'", t.Title, t.Group))
			}
			seen[key] = true
		}
	}

	report := &Report{
		IsValid:       len(errs) == 0,
		Errors:        errs,
		Warnings:      warnings,
		ValidatedAt:   time.Now().UTC(),
		AffectedTasks: walk.order,
	}

	for _, issue := range report.Errors {
		v.logger.Warn("validation issue", "issue", issue)
	}
	for _, issue := range report.Warnings {
		v.logger.Warn("validation issue", "issue", issue)
	}

	if v.rules.StrictMode && len(report.Errors) > 0 {
		return nil, &StrictModeError{Report: report}
	}

	return report, nil
}

// graphWalk holds the traversal state of a single CheckGraph call.
type graphWalk struct {
	rules    Rules
	lookup   domain.Lookup
	visited  map[uuid.UUID]bool
	onStack  map[uuid.UUID]bool
	order    []uuid.UUID
	errors   []string
	warnings []string
}

// visit walks one task. path carries the ids of the active recursion chain
// leading to task, most recent last; hitting a task already on the stack
// closes a cycle through it.
func (w *graphWalk) visit(task *domain.Task, path []uuid.UUID) {
	if w.onStack[task.ID] {
		w.errors = append(w.errors, cycleMessage(path, task.ID))
		return
	}
	if w.visited[task.ID] {
		return
	}

	w.onStack[task.ID] = true
	w.visited[task.ID] = true
	w.order = append(w.order, task.ID)

	if task.DependsOn != uuid.Nil {
		if dep, ok := w.lookup[task.DependsOn]; ok {
			if w.rules.DependencyOrder && dueBefore(task, dep) {
				w.errors = append(w.errors, fmt.Sprintf("%s is due before dependency %s", task.Title, dep.Title))
			}
			w.visit(dep, append(path, task.ID))
		} else {
			w.errors = append(w.errors, fmt.Sprintf("%s depends on missing task ID %s", task.Title, task.DependsOn))
		}
	}

	for _, subID := range task.Subtasks {
		if sub, ok := w.lookup[subID]; ok {
			w.visit(sub, append(path, task.ID))
		} else {
			w.warnings = append(w.warnings, fmt.Sprintf("%s has missing subtask ID %s", task.Title, subID))
		}
	}

	delete(w.onStack, task.ID)
}

// cycleMessage renders a cycle as the path from the first occurrence of
// start onward, closed by repeating start.
func cycleMessage(path []uuid.UUID, start uuid.UUID) string {
	first := 0
	for i, id := range path {
		if id == start {
			first = i
			break
		}
	}

	ids := make([]string, 0, len(path)-first+1)
	for _, id := range path[first:] {
		ids = append(ids, id.String())
	}
	ids = append(ids, start.String())

	return "Cycle detected: " + strings.Join(ids, " → ")
}
