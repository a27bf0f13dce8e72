package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load, e.g.
// VOCABCARDS_DATABASE_PATH.
const EnvPrefix = "VOCABCARDS"

// Default values applied before any file or environment source.
const (
	DefaultDatabasePath  = "vocabcards.db"
	DefaultBusyTimeoutMS = 5000
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultDedupMode     = "word"
)

type loadOptions struct {
	v          *viper.Viper
	configFile string
}

// Option customizes Load.
type Option func(*loadOptions)

// WithViper makes Load read from v, typically one that already has command-line
// flags bound to it. Without this option a fresh instance is used.
func WithViper(v *viper.Viper) Option {
	return func(o *loadOptions) { o.v = v }
}

// WithConfigFile reads the given file instead of searching the default
// locations. A missing explicit file is an error.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) { o.configFile = path }
}

// Load configuration from defaults, an optional config file and environment
// variables, in increasing order of precedence. Flags bound to a viper
// instance passed via WithViper take precedence over all of them.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(opts ...Option) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}
	v := o.v
	if v == nil {
		v = viper.New()
	}

	setDefaults(v)

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
	} else {
		v.SetConfigName("vocabcards")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".vocabcards"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("database.busy_timeout_ms", DefaultBusyTimeoutMS)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("import.dedup_mode", DefaultDedupMode)
}
