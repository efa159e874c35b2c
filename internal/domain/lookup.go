package domain

import "github.com/google/uuid"

// Lookup indexes tasks by id for dependency and subtask resolution. The
// caller owns it and must keep it in sync with the task collection after
// every add, remove, or clone; the engine never refreshes it.
type Lookup map[uuid.UUID]*Task

// NewLookup builds a Lookup over the given tasks. If two tasks share an id
// the later one wins.
func NewLookup(tasks []*Task) Lookup {
	lookup := make(Lookup, len(tasks))
	for _, t := range tasks {
		lookup[t.ID] = t
	}
	return lookup
}

// Add indexes a task, replacing any previous entry under the same id.
func (l Lookup) Add(t *Task) {
	l[t.ID] = t
}

// Remove drops a task id from the index.
func (l Lookup) Remove(id uuid.UUID) {
	delete(l, id)
}
