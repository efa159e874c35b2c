package query

import (
	"strings"

	"github.com/nhaldane/taskticker/internal/domain"
)

// Sentinel filter values meaning "no filter".
const (
	// StatusAll disables status filtering.
	StatusAll = "All"

	// GroupAll disables group filtering.
	GroupAll = "All Groups"
)

// Filter returns the tasks matching the given status and group. The status
// comparison is case-insensitive; the group comparison is exact. Passing
// StatusAll or GroupAll disables the respective filter.
func Filter(tasks []*domain.Task, status, group string) []*domain.Task {
	matched := make([]*domain.Task, 0, len(tasks))

	for _, task := range tasks {
		if status != StatusAll && string(task.Status) != strings.ToLower(status) {
			continue
		}
		if group != GroupAll && task.Group != group {
			continue
		}
		matched = append(matched, task)
	}

	return matched
}

// ValidateDependency reports whether child may depend on parent: a child
// must not be due before the task it depends on. A child without a due
// date always satisfies the ordering.
func ValidateDependency(child, parent *domain.Task) bool {
	if child.DueDate.IsZero() {
		return true
	}
	return !child.DueDate.Before(parent.DueDate)
}
