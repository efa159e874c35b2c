// Package memory provides in-memory implementations of the store
// interfaces. State is ephemeral and lives only for the duration of the
// process; tests and the "memory" storage backend use it as a scratch
// store with no durability.
package memory
