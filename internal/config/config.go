package config

import "github.com/nhaldane/taskticker/internal/validation"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Storage    StorageConfig    `mapstructure:"storage" validate:"required"`
	Logging    LoggingConfig    `mapstructure:"logging" validate:"required"`
	Validation ValidationConfig `mapstructure:"validation"`
	Undo       UndoConfig       `mapstructure:"undo" validate:"required"`
	Recurrence RecurrenceConfig `mapstructure:"recurrence" validate:"required"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend    string `mapstructure:"backend" validate:"required,oneof=json badger memory"`
	Dir        string `mapstructure:"dir" validate:"required"`
	SyncWrites bool   `mapstructure:"sync_writes"`
	// Add other storage settings as needed (e.g., backup retention)
}

// LoggingConfig contains all logging-related configuration settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// ValidationConfig toggles the graph and creation rule set. All rules off
// is a legal configuration, so no field here is required.
type ValidationConfig struct {
	StrictMode             bool `mapstructure:"strict_mode"`
	DependencyOrder        bool `mapstructure:"dependency_order"`
	GroupPriorityExclusive bool `mapstructure:"group_priority_exclusive"`
	GroupUniqueNames       bool `mapstructure:"group_unique_names"`
}

// Rules converts the configuration into the validation package's rule set.
func (c ValidationConfig) Rules() validation.Rules {
	return validation.Rules{
		StrictMode:             c.StrictMode,
		DependencyOrder:        c.DependencyOrder,
		GroupPriorityExclusive: c.GroupPriorityExclusive,
		GroupUniqueNames:       c.GroupUniqueNames,
	}
}

// UndoConfig bounds the undo/redo history.
type UndoConfig struct {
	Limit int `mapstructure:"limit" validate:"required,gte=1,lte=1000"`
}

// RecurrenceConfig tunes recurrence date arithmetic.
type RecurrenceConfig struct {
	MonthlyClampDay int `mapstructure:"monthly_clamp_day" validate:"required,gte=1,lte=28"`
}
