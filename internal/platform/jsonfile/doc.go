// Package jsonfile implements the store interfaces over plain JSON
// documents in a data directory: tasks.json for the task collection,
// notes.json for notes, and tasks_backup.json holding the previous task
// document.
//
// Writes are whole-document: Save marshals the full collection with
// two-space indentation and replaces the file, copying the previous task
// document to the backup file first. A failed backup copy is logged and
// does not block the save. Loads validate the raw document against an
// embedded JSON Schema before decoding, so a corrupted file surfaces as
// store.ErrInvalidEntity instead of a half-decoded collection; the backup
// can then be restored with RecoverFromBackup.
//
// Watch emits debounced change notifications for the data files, letting
// callers re-read the collections when another process rewrites them.
package jsonfile
