package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from defaults, an optional config file, and
// environment variables, in increasing order of precedence. Environment
// variables use the TASKTICKER_ prefix with underscores for nesting, e.g.
// TASKTICKER_STORAGE_BACKEND. Returns a populated Config struct or an
// error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults keep a bare environment fully functional
	v.SetDefault("storage.backend", "json")
	v.SetDefault("storage.dir", "data")
	v.SetDefault("storage.sync_writes", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("validation.strict_mode", false)
	v.SetDefault("validation.dependency_order", true)
	v.SetDefault("validation.group_priority_exclusive", true)
	v.SetDefault("validation.group_unique_names", true)
	v.SetDefault("undo.limit", 20)
	v.SetDefault("recurrence.monthly_clamp_day", 28)

	// Optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables take precedence over file values
	v.SetEnvPrefix("TASKTICKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
