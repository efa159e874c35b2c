// Package events carries lifecycle notifications between the task engine
// and its collaborators.
//
// The lifecycle service emits an event when a task reaches a state other
// components care about (completion, for now) without knowing which
// handlers will process it. The notes service registers a handler that
// turns completion events into summary notes. This keeps the engine free
// of a direct dependency on note management.
//
// The primary components are:
// - Event: A lifecycle notification with a typed JSON payload
// - EventHandler: Interface for components that consume events
// - EventEmitter: Interface for components that publish events
package events
