// Package undo implements a linear-history command ledger. Callers perform
// a mutation, register a Command capturing how to revert and re-apply it,
// and the Manager maintains bounded undo/redo stacks with conventional
// editor semantics: registering a new command clears the redo stack, and
// the oldest history entry is dropped once the configured limit is
// exceeded. The ledger knows nothing about what the commands mutate.
package undo
