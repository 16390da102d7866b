// Package config loads the optional llmq YAML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
)

// Defaults mirror a stock local Ollama install.
const (
	DefaultModel = "llama3.2:1b-instruct-q2_K"
	DefaultHost  = "http://127.0.0.1:11434"
)

// File is the YAML structure of the llmq config file. Every field is
// optional; flags override config values, which override built-in
// defaults.
type File struct {
	// Model is the model ID sent with every completion request.
	Model string `yaml:"model"`

	// Host is the base URL of the inference server.
	Host string `yaml:"host"`

	// Timeout bounds the whole exchange, as a Go duration string
	// ("30s", "2m"). Empty means no timeout: an unresponsive server
	// stalls the invocation.
	Timeout string `yaml:"timeout"`

	// LogLevel sets stderr log verbosity: debug|info|warn|error.
	LogLevel string `yaml:"log_level"`
}

// TimeoutDuration parses the Timeout field. Empty means zero (no timeout).
func (c *File) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config: invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// DefaultPath returns the default config file location
// (~/.config/llmq/llmq.yaml on Linux) or "" when no user config
// directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "llmq", "llmq.yaml")
}

// Load reads and parses the config file at path, expanding ${ENV_VAR}
// references in the raw YAML. When path is "" the default location is
// tried, and a missing file yields a zero-value config rather than an
// error; an explicitly named file must exist.
func Load(path string) (*File, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return &File{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg File
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &cfg, nil
}
