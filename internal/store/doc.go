// Package store defines interfaces for task and note persistence.
// These interfaces abstract the underlying storage mechanism from the
// engine's core logic, allowing business rules to remain independent of
// whether collections live in a JSON file, a Badger database, or memory.
package store
