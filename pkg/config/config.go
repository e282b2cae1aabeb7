package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/devicedetector/pkg/cascade"
	"github.com/dmitrymomot/devicedetector/pkg/logger"
	"github.com/dmitrymomot/devicedetector/pkg/resultcache"
)

// Prefix is prepended to every variable name.
const Prefix = "DETECTOR_"

// Config is the detector configuration. Variable names are listed without
// Prefix.
type Config struct {
	// RulesDir replaces the embedded fixtures. Empty uses the fixtures.
	RulesDir          string        `env:"RULES_DIR"`
	MaxUALength       int           `env:"MAX_UA_LENGTH" envDefault:"2048"`
	VersionTruncation int           `env:"VERSION_TRUNCATION" envDefault:"0"`
	CacheSize         int           `env:"CACHE_SIZE" envDefault:"10000"` // 0 disables the memory store
	CacheTTL          time.Duration `env:"CACHE_TTL" envDefault:"24h"`
	Redis             resultcache.RedisConfig

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	WatchRules       bool   `env:"WATCH_RULES" envDefault:"false"`
	HTTPAddr         string `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"uadetect"`
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.MaxUALength <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UA_LENGTH must be positive, got %d", c.MaxUALength))
	}
	if c.VersionTruncation < cascade.TruncateNone || c.VersionTruncation > cascade.TruncateBuild {
		errs = append(errs, fmt.Errorf("VERSION_TRUNCATION must be between %d and %d, got %d",
			cascade.TruncateNone, cascade.TruncateBuild, c.VersionTruncation))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("CACHE_SIZE must not be negative, got %d", c.CacheSize))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	switch logger.Format(c.LogFormat) {
	case logger.FormatJSON, logger.FormatText:
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be %q or %q, got %q", logger.FormatJSON, logger.FormatText, c.LogFormat))
	}

	if c.RulesDir != "" {
		if fi, err := os.Stat(c.RulesDir); err != nil {
			errs = append(errs, fmt.Errorf("RULES_DIR: %w", err))
		} else if !fi.IsDir() {
			errs = append(errs, fmt.Errorf("RULES_DIR: %s is not a directory", c.RulesDir))
		}
	}
	if c.WatchRules && c.RulesDir == "" {
		errs = append(errs, errors.New("WATCH_RULES requires RULES_DIR"))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// LoggerOptions returns the logger options for the configured level and
// format. Call after Validate.
func (c Config) LoggerOptions() []logger.Option {
	return []logger.Option{
		logger.WithLevelName(c.LogLevel),
		logger.WithFormat(logger.Format(c.LogFormat)),
	}
}

// CacheEnabled reports whether any result store is configured.
func (c Config) CacheEnabled() bool {
	return c.CacheSize > 0 || c.Redis.ConnectionURL != ""
}
