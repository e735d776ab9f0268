// Package config loads batch job files for the gradtape CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/gradtape/internal/autodiff"
)

// Common errors.
var (
	ErrNoJobs           = errors.New("no jobs defined")
	ErrInvalidTraversal = errors.New("invalid traversal")
	ErrInvalidJob       = errors.New("invalid job")
)

// Environment variables that override file settings.
const (
	EnvTraversal = "GRADTAPE_TRAVERSAL"
	EnvWorkers   = "GRADTAPE_WORKERS"
)

// Config is a batch of expressions to differentiate.
type Config struct {
	Traversal string `yaml:"traversal"` // "topological" (default) or "recursive"
	Workers   int    `yaml:"workers"`   // 0 means runtime.NumCPU()
	Jobs      []Job  `yaml:"jobs"`
}

// Job is one named expression with its variable bindings.
type Job struct {
	Name string             `yaml:"name"`
	Expr string             `yaml:"expr"`
	Vars map[string]float64 `yaml:"vars"`
}

// Default returns a config with no jobs and default settings.
func Default() *Config {
	return &Config{
		Traversal: autodiff.TraversalTopological.String(),
	}
}

// Load reads and validates a YAML job file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML job file, applies environment overrides and validates
// the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvTraversal); v != "" {
		c.Traversal = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvWorkers, v, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate checks settings and jobs. Unnamed jobs are named job-N.
func (c *Config) Validate() error {
	if _, err := autodiff.ParseTraversal(c.Traversal); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTraversal, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if len(c.Jobs) == 0 {
		return ErrNoJobs
	}

	seen := make(map[string]bool, len(c.Jobs))
	for i := range c.Jobs {
		job := &c.Jobs[i]
		if job.Name == "" {
			job.Name = fmt.Sprintf("job-%d", i+1)
		}
		if seen[job.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidJob, job.Name)
		}
		seen[job.Name] = true
		if strings.TrimSpace(job.Expr) == "" {
			return fmt.Errorf("%w: %s: empty expression", ErrInvalidJob, job.Name)
		}
	}
	return nil
}

// TraversalMode returns the parsed traversal. Call after Validate.
func (c *Config) TraversalMode() autodiff.Traversal {
	t, err := autodiff.ParseTraversal(c.Traversal)
	if err != nil {
		return autodiff.TraversalTopological
	}
	return t
}

// WorkerCount returns the effective number of workers.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
