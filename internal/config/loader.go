// Package config provides configuration loading and management for genrss.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amsehili/genrss/internal/debug"
	"github.com/amsehili/genrss/pkg/config"
)

const (
	// ConfigFileName is the default configuration file name
	ConfigFileName = ".genrss.json"

	// ConfigEnvVar is the environment variable to specify a custom config path
	ConfigEnvVar = "GENRSS_CONFIG"
)

// Loader handles locating and loading configuration files
type Loader struct {
	// SearchPaths contains the paths to search for configuration files
	SearchPaths []string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		SearchPaths: getDefaultSearchPaths(),
	}
}

// Load attempts to load configuration from the environment variable and
// the default search paths. A missing configuration is not an error:
// genrss works from flags alone, so (nil, nil) means "no config found".
func (l *Loader) Load() (*config.Config, error) {
	debug.LogSection("Configuration Loading")

	if envPath := os.Getenv(ConfigEnvVar); envPath != "" {
		debug.Log("Loading config from environment variable %s: %s", ConfigEnvVar, envPath)
		cfg, err := l.LoadFromPath(envPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", ConfigEnvVar, err)
		}
		return cfg, nil
	}

	debug.Log("Searching for config in default paths: %v", l.SearchPaths)
	for _, searchPath := range l.SearchPaths {
		configPath := filepath.Join(searchPath, ConfigFileName)
		debug.Log("Checking path: %s", configPath)
		if _, err := os.Stat(configPath); err == nil {
			debug.Log("Found config at: %s", configPath)
			cfg, err := l.LoadFromPath(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
			}
			return cfg, nil
		}
	}

	debug.Log("No configuration file found")
	return nil, nil
}

// LoadFromPath loads configuration from a specific file path
func (l *Loader) LoadFromPath(path string) (*config.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the user's own flags/env
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := config.LoadFromJSON(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes a configuration file to the given path
func Save(cfg *config.Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := cfg.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing configuration: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// getDefaultSearchPaths returns the current directory followed by the
// user's home directory
func getDefaultSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	return paths
}
