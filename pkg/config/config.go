// Package config provides the core configuration types and validation logic for genrss.
package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Config represents a stored feed configuration (.genrss.json)
type Config struct {
	Version     string `json:"version"`
	Host        string `json:"host,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	OutFile     string `json:"outFile,omitempty"`

	Extensions     []string `json:"extensions,omitempty"`
	Recursive      bool     `json:"recursive,omitempty"`
	FollowSymlinks bool     `json:"followSymlinks,omitempty"`
	SortByModTime  bool     `json:"sortByModTime,omitempty"`
	UseMetadata    bool     `json:"useMetadata,omitempty"`

	// ProbeTimeout bounds each external duration probe, in milliseconds
	ProbeTimeout int `json:"probeTimeout,omitempty"`
}

// Validate performs validation on the Config
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}

	if c.ProbeTimeout < 0 {
		return fmt.Errorf("probeTimeout must be non-negative")
	}

	if err := validateImage(c.Image); err != nil {
		return err
	}

	for i, ext := range c.Extensions {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("extension %d is empty", i)
		}
	}

	return nil
}

// validateImage accepts absolute http(s) URLs and relative paths that do
// not escape the host base directory.
func validateImage(image string) error {
	if image == "" {
		return nil
	}

	lower := strings.ToLower(image)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return nil
	}
	if strings.HasPrefix(image, "/") {
		return fmt.Errorf("image must be an http(s) URL or a relative path")
	}
	for _, part := range strings.Split(image, "/") {
		if part == ".." {
			return fmt.Errorf("image path must not contain %q", "..")
		}
	}
	return nil
}

// LoadFromJSON parses a configuration from JSON data
func LoadFromJSON(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &cfg, nil
}

// ToJSON serializes the configuration to indented JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
