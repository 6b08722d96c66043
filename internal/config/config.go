package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application configuration.
type Config struct {
	Port          int           `mapstructure:"PORT"`
	GinMode       string        `mapstructure:"GIN_MODE"`
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
	LogPretty     bool          `mapstructure:"LOG_PRETTY"`
	StoreDriver   string        `mapstructure:"STORE_DRIVER"`
	DatabaseURL   string        `mapstructure:"DATABASE_URL"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	TokenTTL      time.Duration `mapstructure:"TOKEN_TTL"`
	IDStrategy    string        `mapstructure:"ID_STRATEGY"`
	CascadeDelete bool          `mapstructure:"CASCADE_DELETE"`

	// ConfigFile is the .env file that was read, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

var defaults = map[string]any{
	"PORT":           4000,
	"GIN_MODE":       "release",
	"LOG_LEVEL":      "info",
	"LOG_PRETTY":     false,
	"STORE_DRIVER":   "memory",
	"DATABASE_URL":   "",
	"JWT_SECRET":     "",
	"TOKEN_TTL":      "168h",
	"ID_STRATEGY":    "numeric",
	"CASCADE_DELETE": false,
}

// LoadConfig loads the configuration from a .env file found in paths (the
// working directory when none are given) and environment variables.
// Environment variables win over the file.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that cannot be served.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: PORT %d out of range", ErrInvalidConfig, c.Port)
	}
	switch c.StoreDriver {
	case "memory":
	case "postgres", "sqlite":
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for STORE_DRIVER %s", ErrInvalidConfig, c.StoreDriver)
		}
	default:
		return fmt.Errorf("%w: unknown STORE_DRIVER %q", ErrInvalidConfig, c.StoreDriver)
	}
	switch c.IDStrategy {
	case "numeric", "uuid":
	default:
		return fmt.Errorf("%w: unknown ID_STRATEGY %q", ErrInvalidConfig, c.IDStrategy)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: TOKEN_TTL must be positive", ErrInvalidConfig)
	}
	return nil
}

// AuthEnabled reports whether mutations require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
