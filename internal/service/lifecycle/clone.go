package lifecycle

import (
	"time"

	"github.com/google/uuid"
	"github.com/nhaldane/taskticker/internal/domain"
)

// shallowClone builds the recurrence successor of task as a single node.
// Subtasks are dropped and the recurrence rule does not carry over, so the
// clone recurs only when the user schedules it again.
func shallowClone(task *domain.Task, nextDue time.Time, now time.Time) *domain.Task {
	return &domain.Task{
		ID:         uuid.New(),
		Title:      task.Title,
		Group:      task.Group,
		DueDate:    nextDue,
		CreatedAt:  now,
		Priority:   task.Priority,
		Status:     domain.StatusPending,
		Sequence:   task.Sequence,
		DependsOn:  task.DependsOn,
		Notes:      task.Notes,
		Tags:       copyTags(task.Tags),
		Recurrence: domain.DefaultRecurrence(),
	}
}

// deepClone builds the recurrence successor of task together with its entire
// subtask subtree, returned in preorder with the root clone first. Every
// descendant keeps its relative due spacing: all due dates shift by the one
// delta computed at the root. A depends_on that points inside the subtree
// follows its target's fresh id; a depends_on on an outside task keeps the
// original id even though it now names the previous cycle's task.
func deepClone(task *domain.Task, lookup domain.Lookup, nextDue time.Time, now time.Time) []*domain.Task {
	var delta time.Duration
	if !task.DueDate.IsZero() {
		delta = nextDue.Sub(task.DueDate)
	}

	idMap := make(map[uuid.UUID]uuid.UUID)
	var clones []*domain.Task
	root := cloneSubtree(task, lookup, delta, now, idMap, &clones)
	root.DueDate = nextDue

	// Remap after the whole subtree is cloned so a dependency on a sibling
	// visited later still resolves.
	for _, clone := range clones {
		if clone.DependsOn == uuid.Nil {
			continue
		}
		if freshID, ok := idMap[clone.DependsOn]; ok {
			clone.DependsOn = freshID
		}
	}

	return clones
}

// cloneSubtree clones task and recurses into its subtasks, recording every
// old→new id pair in idMap and every clone in clones. Subtask ids that do
// not resolve in lookup are skipped. An id reached twice keeps its first
// clone and the duplicate edge is dropped, which also stops malformed cyclic
// input from recursing forever.
func cloneSubtree(
	task *domain.Task,
	lookup domain.Lookup,
	delta time.Duration,
	now time.Time,
	idMap map[uuid.UUID]uuid.UUID,
	clones *[]*domain.Task,
) *domain.Task {
	clone := &domain.Task{
		ID:         uuid.New(),
		Title:      task.Title,
		Group:      task.Group,
		DueDate:    shiftDue(task.DueDate, delta),
		CreatedAt:  now,
		Priority:   task.Priority,
		Status:     domain.StatusPending,
		Sequence:   task.Sequence,
		DependsOn:  task.DependsOn,
		Notes:      task.Notes,
		Tags:       copyTags(task.Tags),
		Recurrence: domain.DefaultRecurrence(),
	}
	idMap[task.ID] = clone.ID
	*clones = append(*clones, clone)

	for _, subID := range task.Subtasks {
		sub, ok := lookup[subID]
		if !ok {
			continue
		}
		if _, seen := idMap[subID]; seen {
			continue
		}
		subClone := cloneSubtree(sub, lookup, delta, now, idMap, clones)
		subClone.ParentID = clone.ID
		clone.Subtasks = append(clone.Subtasks, subClone.ID)
	}

	return clone
}

// shiftDue moves a due date by delta. A task with no due date stays undated.
func shiftDue(due time.Time, delta time.Duration) time.Time {
	if due.IsZero() {
		return time.Time{}
	}
	return due.Add(delta)
}

func copyTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
