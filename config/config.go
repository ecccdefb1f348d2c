package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Catalog     CatalogConfig
	TastingLog  TastingLogConfig
	Interpreter InterpreterConfig
	Packaging   PackagingConfig
	RateLimit   RateLimitConfig
	Logging     LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig points at the catalog export file
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// TastingLogConfig configures the optional tasting-log based personalization
type TastingLogConfig struct {
	Path      string  `mapstructure:"path"`
	UserID    string  `mapstructure:"user_id"`
	MinRating float64 `mapstructure:"min_rating"`
}

// InterpreterConfig configures the natural-language query interpreter
type InterpreterConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	Host              string        `mapstructure:"host"`
	Model             string        `mapstructure:"model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
}

// PackagingConfig holds the eligibility packaging policy. The deployed
// profiles historically disagreed on the upper bound, so it is a setting
// rather than a constant.
type PackagingConfig struct {
	MinVolumeML float64 `mapstructure:"min_volume_ml"`
	MaxVolumeML float64 `mapstructure:"max_volume_ml"`
	ExcludeBox  bool    `mapstructure:"exclude_box"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/systembolaget/")

	v.SetEnvPrefix("SYSTEMBOLAGET")
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional - env vars and defaults are enough
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("catalog.path", "shared/wine_database.json")

	v.SetDefault("tastinglog.path", "")
	v.SetDefault("tastinglog.user_id", "default")
	v.SetDefault("tastinglog.min_rating", 4.0)

	v.SetDefault("interpreter.enabled", false)
	v.SetDefault("interpreter.host", "http://localhost:8081")
	v.SetDefault("interpreter.timeout", "30s")
	v.SetDefault("interpreter.max_retries", 3)
	v.SetDefault("interpreter.requests_per_minute", 60)
	v.SetDefault("interpreter.cache_ttl", "1h")

	// Baseline packaging profile: standard bottles, no upper bound
	v.SetDefault("packaging.min_volume_ml", 750)
	v.SetDefault("packaging.max_volume_ml", 0)
	v.SetDefault("packaging.exclude_box", false)

	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("logging.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set SYSTEMBOLAGET_CATALOG_PATH)")
	}

	if config.Packaging.MinVolumeML < 0 {
		return fmt.Errorf("packaging min volume must not be negative, got: %v", config.Packaging.MinVolumeML)
	}
	if config.Packaging.MaxVolumeML != 0 && config.Packaging.MaxVolumeML < config.Packaging.MinVolumeML {
		return fmt.Errorf("packaging max volume %v is below min volume %v",
			config.Packaging.MaxVolumeML, config.Packaging.MinVolumeML)
	}

	if config.Interpreter.Enabled && config.Interpreter.Host == "" {
		return fmt.Errorf("interpreter host is required when the interpreter is enabled")
	}

	return nil
}
