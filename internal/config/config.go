package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	Import   ImportConfig   `mapstructure:"import" validate:"required"`
}

// DatabaseConfig contains the settings of the embedded SQLite store.
type DatabaseConfig struct {
	// Path is the SQLite database file. It is created on first open.
	Path          string `mapstructure:"path" validate:"required"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms" validate:"gte=0"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// ImportConfig contains defaults for the delimited-text importer.
type ImportConfig struct {
	DedupMode string `mapstructure:"dedup_mode" validate:"required,oneof=word word+translation"`
}
