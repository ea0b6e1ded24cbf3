package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pevans/newsentry/discovery"
	"gopkg.in/yaml.v3"
)

// LogConfig controls logger output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Pretty bool   `yaml:"pretty"` // colored console output instead of JSON
}

// FileConfig represents the structure of ~/.newsentry/config.yaml.
type FileConfig struct {
	Log  LogConfig            `yaml:"log"`
	Scan discovery.ScanConfig `yaml:"scan"`
}

// Default returns the configuration used when no file exists.
func Default() *FileConfig {
	return &FileConfig{
		Log:  LogConfig{Level: "info"},
		Scan: discovery.DefaultScanConfig(),
	}
}

// DefaultPath returns ~/.newsentry/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".newsentry", "config.yaml"), nil
}

// LoadConfigFile loads configuration from path, or from DefaultPath when path
// is empty. A missing file yields Default() (not an error). Values absent
// from the file keep their defaults. Returns error if the file exists but
// cannot be parsed.
func LoadConfigFile(path string) (*FileConfig, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := Default()

	// Read file
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil // File doesn't exist -- not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML over the defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
