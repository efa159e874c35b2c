// Package badgerstore implements the store interfaces on BadgerDB, an
// embedded key-value database. Tasks live under task/<uuid> keys and notes
// under note/<uuid>, both as the entities' JSON wire form, so a collection
// survives process restarts without an external server.
//
// Open returns a *badger.DB that the task and note stores share; the caller
// owns its lifecycle and must Close it. Whole-collection Save replaces
// every record under the prefix in one transaction. Load returns records in
// key order; callers that need a display order sort afterwards, which the
// engine does anyway.
package badgerstore
