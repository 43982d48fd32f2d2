package m3u8

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the package configuration
type Config struct {
	Parser  *ParserConfig  `yaml:"parser" json:"parser"`
	Logging *LoggingConfig `yaml:"logging" json:"logging"`
}

// ParserConfig controls how Parse treats malformed and unknown input.
type ParserConfig struct {
	// Strict rejects unknown tags, syntax errors and version
	// incompatibilities instead of skipping them.
	Strict bool `yaml:"strict" json:"strict"`

	// CustomTagParser, when set, is offered every comment line before
	// built-in dispatch. Not configurable from YAML.
	CustomTagParser CustomTagFunc `yaml:"-" json:"-"`

	// Validator overrides the version-compatibility pre-check used in
	// strict mode. Nil selects the default rule set.
	Validator VersionValidator `yaml:"-" json:"-"`
}

// LoggingConfig configures the package logger.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// DefaultConfig returns the default configuration: lenient parsing,
// standard validation rules, warnings-and-up logging.
func DefaultConfig() *Config {
	return &Config{
		Parser:  &ParserConfig{},
		Logging: &LoggingConfig{Level: "warn"},
	}
}

// LoadConfig reads a YAML configuration file, layering it over the
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration bytes, layering them over the
// defaults.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.Parser == nil {
		return fmt.Errorf("parser configuration is required")
	}
	if c.Logging != nil {
		switch c.Logging.Level {
		case "", "trace", "debug", "info", "warn", "error", "off":
		default:
			return fmt.Errorf("invalid log level: %q", c.Logging.Level)
		}
	}
	return nil
}
