package hlog

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

// Config holds the settings applied by Initialize.
//
// Example YAML:
//
//	outputFormat: "[{severity}] {name}: {message}"
//	defaultSeverity: warn
//	levels:
//	  net: info
//	  net.http: debug
type Config struct {
	// OutputFormat is the console template. Empty means DefaultOutputFormat.
	OutputFormat string `yaml:"outputFormat" env:"HLOG_CONSOLE_OUTPUT_FORMAT"`

	// DefaultSeverity is the threshold of the root logger.
	DefaultSeverity Severity `yaml:"defaultSeverity" env:"HLOG_DEFAULT_SEVERITY" env-default:"INFO"`

	// Levels sets explicit per-logger thresholds. YAML only.
	Levels map[string]Severity `yaml:"levels"`
}

// DefaultConfig returns a Config with the default template and an INFO threshold.
func DefaultConfig() Config {
	return Config{
		OutputFormat:    DefaultOutputFormat,
		DefaultSeverity: InfoIssuer,
	}
}

// ReadEnvConfig reads HLOG_CONSOLE_OUTPUT_FORMAT and HLOG_DEFAULT_SEVERITY.
// An unset or empty template yields DefaultOutputFormat. On error the
// returned Config still carries usable defaults.
func ReadEnvConfig() (Config, error) {
	var cfg Config
	err := cleanenv.ReadEnv(&cfg)
	return normalizeConfig(cfg), wrapConfigError(err, "environment")
}

// LoadConfig reads a YAML (or any cleanenv-supported) file at path, then
// applies environment overrides.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(path, &cfg)
	return normalizeConfig(cfg), wrapConfigError(err, path)
}

func normalizeConfig(cfg Config) Config {
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = DefaultOutputFormat
	}
	if cfg.DefaultSeverity == UnsetIssuer || !cfg.DefaultSeverity.IsThreshold() {
		cfg.DefaultSeverity = InfoIssuer
	}
	return cfg
}

func wrapConfigError(err error, source string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(ErrInvalidArgument, "reading logging configuration from %s: %v", source, err)
}
