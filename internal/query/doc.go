// Package query provides pure helpers for narrowing and ordering task
// collections. Filtering and sorting never mutate their input; both return
// fresh slices so callers can keep the canonical task list untouched while
// rendering views of it.
package query
