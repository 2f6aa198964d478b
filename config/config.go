// Package config loads the YAML run configuration: run limits, judge
// provider, framework/method registration, scenario catalog location, and
// output settings.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gokugml/membench/core"
)

// Duration wraps time.Duration so YAML can carry values like "5m" or "90s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// RunConfig tunes one evaluation run.
type RunConfig struct {
	// Concurrency is the maximum number of in-flight retrieval+judging
	// calls. Zero uses the engine default.
	Concurrency int `yaml:"concurrency"`
	// Timeout bounds the whole run; zero disables it.
	Timeout Duration `yaml:"timeout"`
	// MaxJudgeCalls caps judge invocations per run; zero is unlimited.
	MaxJudgeCalls int `yaml:"max_judge_calls"`
}

// JudgeConfig selects and tunes the similarity judge backend.
type JudgeConfig struct {
	// Provider is one of "anthropic", "openai" or "mock".
	Provider string `yaml:"provider"`
	// Model overrides the provider's default model identifier.
	Model string `yaml:"model"`
	// Temperature for judge completions. Keep at 0 for reproducible scoring.
	Temperature float64 `yaml:"temperature"`
	// MaxTokens bounds the judge response length. Zero uses the backend
	// default.
	MaxTokens int `yaml:"max_tokens"`
}

// MethodConfig declares one retrieval method of a framework.
type MethodConfig struct {
	Name string `yaml:"name"`
	// Core designates the framework's general-purpose method.
	Core bool `yaml:"core"`
	// Weight is the method's share in the framework aggregate; zero or
	// omitted means 1.
	Weight float64 `yaml:"weight"`
}

// FrameworkConfig declares one memory framework under test.
type FrameworkConfig struct {
	Name    string         `yaml:"name"`
	Methods []MethodConfig `yaml:"methods"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Format is "text" or "json".
	Format string `yaml:"format"`
	// Path saves the report to a file; empty writes to stdout.
	Path string `yaml:"path"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`
	// Format is "json" or "text".
	Format string `yaml:"format"`
}

// Config is the full run configuration file.
type Config struct {
	Run RunConfig `yaml:"run"`

	Judge JudgeConfig `yaml:"judge"`

	// Scenarios is the path to the scenario catalog YAML.
	Scenarios string `yaml:"scenarios"`

	Frameworks []FrameworkConfig `yaml:"frameworks"`

	Output OutputConfig `yaml:"output"`

	Logging LogConfig `yaml:"logging"`
}

// Default returns the baseline configuration: mock judge, text output to
// stdout, info-level JSON logging.
func Default() *Config {
	return &Config{
		Judge:   JudgeConfig{Provider: "mock"},
		Output:  OutputConfig{Format: "text"},
		Logging: LogConfig{Level: "info", Format: "json"},
	}
}

// Load decodes a configuration from r on top of the defaults and validates
// it.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and decodes the configuration file at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

var validProviders = map[string]bool{"anthropic": true, "openai": true, "mock": true}

var validFormats = map[string]bool{"text": true, "json": true}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks internal consistency. All violations are configuration
// errors, fatal before a run starts.
func (c *Config) Validate() error {
	if c.Scenarios == "" {
		return core.NewConfigurationError("scenarios path must be set")
	}
	if !validProviders[c.Judge.Provider] {
		return core.NewConfigurationError("unknown judge provider %q", c.Judge.Provider)
	}
	if !validFormats[c.Output.Format] {
		return core.NewConfigurationError("unknown output format %q", c.Output.Format)
	}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return core.NewConfigurationError("unknown log level %q", c.Logging.Level)
	}
	if c.Run.Concurrency < 0 {
		return core.NewConfigurationError("concurrency must not be negative")
	}
	if c.Run.MaxJudgeCalls < 0 {
		return core.NewConfigurationError("max_judge_calls must not be negative")
	}

	if len(c.Frameworks) == 0 {
		return core.NewConfigurationError("at least one framework must be configured")
	}
	seenFrameworks := make(map[string]bool, len(c.Frameworks))
	for _, fw := range c.Frameworks {
		if fw.Name == "" {
			return core.NewConfigurationError("framework name must be non-empty")
		}
		if seenFrameworks[fw.Name] {
			return core.NewConfigurationError("framework %q is configured twice", fw.Name)
		}
		seenFrameworks[fw.Name] = true

		if len(fw.Methods) == 0 {
			return core.NewConfigurationError("framework %q has no methods", fw.Name)
		}
		seenMethods := make(map[string]bool, len(fw.Methods))
		coreCount := 0
		for _, m := range fw.Methods {
			if m.Name == "" {
				return core.NewConfigurationError("framework %q has a method without a name", fw.Name)
			}
			if seenMethods[m.Name] {
				return core.NewConfigurationError("framework %q declares method %q twice", fw.Name, m.Name)
			}
			seenMethods[m.Name] = true
			if m.Weight < 0 {
				return core.NewConfigurationError("method %s/%s has a negative weight", fw.Name, m.Name)
			}
			if m.Core {
				coreCount++
			}
		}
		if coreCount > 1 {
			return core.NewConfigurationError("framework %q designates more than one core method", fw.Name)
		}
	}
	return nil
}
