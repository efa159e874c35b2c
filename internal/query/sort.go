package query

import (
	"sort"

	"github.com/nhaldane/taskticker/internal/domain"
)

// Sort keys accepted by Sort.
const (
	KeyDueDate   = "due_date"
	KeyTitle     = "title"
	KeyGroup     = "group"
	KeyPriority  = "priority"
	KeyStatus    = "status"
	KeySequence  = "sequence"
	KeyCreatedAt = "created_at"
)

// Fallback values for tasks missing the sort field. Both sort after any
// real value, so tasks without the field land at the end of the list.
const (
	dueDateFallback  = "9999-12-31"
	sequenceFallback = 9999
)

// Sort returns the tasks in stable order by the named key. Unrecognized
// keys sort by due date. Tasks missing the key's value sort last.
func Sort(tasks []*domain.Task, key string) []*domain.Task {
	ordered := make([]*domain.Task, len(tasks))
	copy(ordered, tasks)

	less := lessFunc(key)
	sort.SliceStable(ordered, func(i, j int) bool {
		return less(ordered[i], ordered[j])
	})

	return ordered
}

func lessFunc(key string) func(a, b *domain.Task) bool {
	switch key {
	case KeyTitle:
		return func(a, b *domain.Task) bool { return stringLess(a.Title, b.Title) }
	case KeyGroup:
		return func(a, b *domain.Task) bool { return stringLess(a.Group, b.Group) }
	case KeyPriority:
		return func(a, b *domain.Task) bool { return stringLess(string(a.Priority), string(b.Priority)) }
	case KeyStatus:
		return func(a, b *domain.Task) bool { return stringLess(string(a.Status), string(b.Status)) }
	case KeySequence:
		return func(a, b *domain.Task) bool { return sequenceOf(a) < sequenceOf(b) }
	case KeyCreatedAt:
		return createdBefore
	default:
		return func(a, b *domain.Task) bool { return dueDateOf(a) < dueDateOf(b) }
	}
}

// dueDateOf renders the due date as a lexically sortable string, with the
// far-future fallback for tasks that have none.
func dueDateOf(t *domain.Task) string {
	if t.DueDate.IsZero() {
		return dueDateFallback
	}
	return t.DueDate.Format(domain.DateLayout)
}

func sequenceOf(t *domain.Task) int {
	if t.Sequence == 0 {
		return sequenceFallback
	}
	return t.Sequence
}

// stringLess orders non-empty strings lexically and pushes empty values to
// the end.
func stringLess(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	return a < b
}

func createdBefore(a, b *domain.Task) bool {
	if a.CreatedAt.IsZero() {
		return false
	}
	if b.CreatedAt.IsZero() {
		return true
	}
	return a.CreatedAt.Before(b.CreatedAt)
}
