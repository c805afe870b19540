// Package config loads run settings for the db2md CLI from a YAML or TOML
// file. Command-line flags override what the file sets.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml/v2"

	"github.com/alnah/go-db2md/internal/batch"
	"github.com/alnah/go-db2md/internal/fileutil"
	"github.com/alnah/go-db2md/internal/logging"
	"github.com/alnah/go-db2md/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxFilterLength = 255
	MaxPathLength   = 4096
	MaxHeaderLength = 50
)

// AppName names the user config directory.
const AppName = "db2md"

// Config holds the settings of a conversion run.
type Config struct {
	LogLevel      string         `yaml:"logLevel" toml:"logLevel" json:"logLevel"`
	LogFormat     string         `yaml:"logFormat" toml:"logFormat" json:"logFormat"`
	OutFolder     string         `yaml:"outFolder" toml:"outFolder" json:"outFolder"`
	Filter        string         `yaml:"filter" toml:"filter" json:"filter"`
	DryRun        bool           `yaml:"dryRun" toml:"dryRun" json:"dryRun"`
	NoMetadata    bool           `yaml:"noMetadata" toml:"noMetadata" json:"noMetadata"`
	ExtraMetadata map[string]any `yaml:"extraMetadata" toml:"extraMetadata" json:"extraMetadata"`
	HTMLPreview   bool           `yaml:"htmlPreview" toml:"htmlPreview" json:"htmlPreview"`
	PandocPath    string         `yaml:"pandocPath" toml:"pandocPath" json:"pandocPath"`
	Columns       []batch.Column `yaml:"columns" toml:"columns" json:"columns"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  logging.LevelWarn.String(),
		LogFormat: logging.FormatConsole,
		Columns:   append([]batch.Column(nil), batch.DefaultColumns...),
	}
}

// Validate checks value sets and lengths.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.By(func(value any) error {
			s, _ := value.(string)
			if s == "" {
				return nil
			}
			if _, err := logging.ParseLevel(s); err != nil {
				return validation.NewError("validation_log_level", "must be one of DEBUG, INFO, WARN, ERROR")
			}
			return nil
		})),
		validation.Field(&c.LogFormat, validation.In(logging.FormatConsole, logging.FormatJSON)),
		validation.Field(&c.Filter, validation.Length(0, MaxFilterLength)),
		validation.Field(&c.OutFolder, validation.Length(0, MaxPathLength)),
		validation.Field(&c.PandocPath, validation.Length(0, MaxPathLength)),
		validation.Field(&c.Columns, validation.Each(validation.By(validateColumn))),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}

func validateColumn(value any) error {
	col, ok := value.(batch.Column)
	if !ok {
		return validation.NewError("validation_column", "must be a column")
	}
	return validation.ValidateStruct(&col,
		validation.Field(&col.Header, validation.Required, validation.Length(1, MaxHeaderLength)),
		validation.Field(&col.ImportKey, validation.By(func(any) error {
			if (col.ImportKey == "") == (col.ResultKey == "") {
				return validation.NewError("validation_column_key", "exactly one of importKey and resultKey must be set")
			}
			return nil
		})),
	)
}

// Level returns the parsed log level, defaulting to WARN.
func (c *Config) Level() logging.Level {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return logging.LevelWarn
	}
	return level
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched as <name>.yaml, <name>.yml or <name>.toml in the
// current directory and then in the user config directory. Unset fields
// keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Columns = nil
	if err := decode(configPath, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = append([]batch.Column(nil), batch.DefaultColumns...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
	}
	return yamlutil.UnmarshalStrict(data, cfg)
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the files a config name may resolve to, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml", ".toml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
