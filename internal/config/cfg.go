// Package config holds the tool configuration: document assembly options,
// logo sources and logging destinations, loaded from YAML over built-in
// defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"github.com/reportkit/reportkit/internal/markup"
)

const appName = "reportkit"

type (
	LogoConfig struct {
		Path string `yaml:"path,omitempty"`
		URL  string `yaml:"url,omitempty"`
	}

	DocumentConfig struct {
		ParagraphMode string     `yaml:"paragraph_mode"`
		Logo          LogoConfig `yaml:"logo"`
		ResourcePaths []string   `yaml:"resource_paths,omitempty"`
	}

	Config struct {
		Version  int            `yaml:"version"`
		Document DocumentConfig `yaml:"document"`
		Logging  LoggingConfig  `yaml:"logging"`
	}
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version: 1,
		Document: DocumentConfig{
			ParagraphMode: "plain",
		},
		Logging: LoggingConfig{
			Console: LoggerConfig{Level: "normal"},
			File:    LoggerConfig{Level: "none", Destination: appName + ".log", Mode: "overwrite"},
		},
	}
}

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration file at the given path,
// superimposes its values on the defaults and validates the result. An
// empty path yields the defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg := Default()
	if len(path) == 0 {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Dump serializes the configuration back to YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

func (cfg *Config) validate() error {
	var errs error
	if cfg.Version != 1 {
		errs = multierr.Append(errs, fmt.Errorf("unsupported configuration version %d", cfg.Version))
	}
	if _, err := markup.ParseMode(cfg.Document.ParagraphMode); err != nil {
		errs = multierr.Append(errs, err)
	}
	if cfg.Document.Logo.Path != "" && cfg.Document.Logo.URL != "" {
		errs = multierr.Append(errs, errors.New("logo path and url are mutually exclusive"))
	}
	errs = multierr.Append(errs, cfg.Logging.Console.validate("console"))
	errs = multierr.Append(errs, cfg.Logging.File.validate("file"))
	if cfg.Logging.File.Level != "" && cfg.Logging.File.Level != "none" && cfg.Logging.File.Destination == "" {
		errs = multierr.Append(errs, errors.New("file logging enabled without a destination"))
	}
	return errs
}

func (lc *LoggerConfig) validate(name string) error {
	var errs error
	switch lc.Level {
	case "", "none", "normal", "debug":
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown %s log level %q", name, lc.Level))
	}
	switch lc.Mode {
	case "", "append", "overwrite":
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown %s log mode %q", name, lc.Mode))
	}
	return errs
}
