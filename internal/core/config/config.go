// Package config handles configuration loading and validation for task-tracker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/tasktracker/internal/core/styles"
	"github.com/colonyops/tasktracker/internal/core/task"
)

// DefaultTasksFile is the task file name used when tasks_file is not set.
const DefaultTasksFile = "tasks.json"

// Config holds the application configuration.
type Config struct {
	TasksFile string     `yaml:"tasks_file" toml:"tasks_file"`
	Theme     string     `yaml:"theme" toml:"theme"`
	List      ListConfig `yaml:"list" toml:"list"`
	DataDir   string     `yaml:"-" toml:"-"` // set by caller, not from config file
}

// ListConfig controls the list command.
type ListConfig struct {
	DefaultFilter string `yaml:"default_filter" toml:"default_filter"`
	Glyphs        *bool  `yaml:"glyphs" toml:"glyphs"` // nil = enabled
}

// ShowGlyphs reports whether status glyphs are rendered in listings.
func (l ListConfig) ShowGlyphs() bool {
	return l.Glyphs == nil || *l.Glyphs
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TasksFile: DefaultTasksFile,
		Theme:     styles.DefaultTheme,
		List: ListConfig{
			DefaultFilter: string(task.FilterAll),
		},
	}
}

// Load reads configuration from the given path and validates it.
// Files ending in .toml are decoded as TOML, anything else as YAML.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Read(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation. Used by commands that must work with a
// broken config, such as help and config validate.
func Read(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := decode(configPath, data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TasksFile == "" {
		c.TasksFile = defaults.TasksFile
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.List.DefaultFilter == "" {
		c.List.DefaultFilter = defaults.List.DefaultFilter
	}
}

// TasksPath returns the absolute path of the task file. Relative tasks_file
// values resolve against the data directory.
func (c *Config) TasksPath() string {
	if filepath.IsAbs(c.TasksFile) {
		return c.TasksFile
	}
	return filepath.Join(c.DataDir, c.TasksFile)
}

// DefaultFilter returns the parsed list.default_filter value.
func (c *Config) DefaultFilter() task.Filter {
	f, ok := task.ParseFilter(c.List.DefaultFilter)
	if !ok {
		return task.FilterAll
	}
	return f
}
