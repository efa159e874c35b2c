// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config file, and environment variables. It
// provides type-safe access to the settings the storage, logging,
// validation, undo, and recurrence components need while keeping
// configuration details separate from business logic.
package config
