package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokugml/membench/core"
)

const validYAML = `
run:
  concurrency: 8
  timeout: 5m
  max_judge_calls: 200
judge:
  provider: anthropic
  model: claude-3-5-sonnet-20241022
  temperature: 0.0
scenarios: scenarios.yaml
frameworks:
  - name: local
    methods:
      - name: context
        core: true
        weight: 2.0
      - name: profile
      - name: search
output:
  format: json
  path: results.json
logging:
  level: debug
  format: text
`

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(strings.NewReader(validYAML))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Run.Concurrency)
	assert.Equal(t, 5*time.Minute, cfg.Run.Timeout.Std())
	assert.Equal(t, 200, cfg.Run.MaxJudgeCalls)
	assert.Equal(t, "anthropic", cfg.Judge.Provider)
	assert.Equal(t, "scenarios.yaml", cfg.Scenarios)

	require.Len(t, cfg.Frameworks, 1)
	fw := cfg.Frameworks[0]
	assert.Equal(t, "local", fw.Name)
	require.Len(t, fw.Methods, 3)
	assert.True(t, fw.Methods[0].Core)
	assert.Equal(t, 2.0, fw.Methods[0].Weight)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_DefaultsApply(t *testing.T) {
	minimal := `
scenarios: scenarios.yaml
frameworks:
  - name: local
    methods:
      - name: context
`
	cfg, err := Load(strings.NewReader(minimal))
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.Judge.Provider)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Zero(t, cfg.Run.Timeout.Std())
}

func TestLoad_BadDuration(t *testing.T) {
	bad := strings.Replace(validYAML, "5m", "five minutes", 1)
	_, err := Load(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration")
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(strings.NewReader(validYAML + "\nunexpected: true\n"))
	assert.Error(t, err)
}

func TestValidate_Failures(t *testing.T) {
	mutate := func(fn func(c *Config)) *Config {
		cfg, err := Load(strings.NewReader(validYAML))
		require.NoError(t, err)
		fn(cfg)
		return cfg
	}

	tests := []struct {
		name string
		cfg  *Config
	}{
		{"missing scenarios", mutate(func(c *Config) { c.Scenarios = "" })},
		{"unknown provider", mutate(func(c *Config) { c.Judge.Provider = "grok" })},
		{"unknown output format", mutate(func(c *Config) { c.Output.Format = "xml" })},
		{"unknown log level", mutate(func(c *Config) { c.Logging.Level = "trace" })},
		{"negative concurrency", mutate(func(c *Config) { c.Run.Concurrency = -1 })},
		{"no frameworks", mutate(func(c *Config) { c.Frameworks = nil })},
		{"framework without methods", mutate(func(c *Config) { c.Frameworks[0].Methods = nil })},
		{"duplicate method", mutate(func(c *Config) {
			c.Frameworks[0].Methods[1].Name = "context"
		})},
		{"two core methods", mutate(func(c *Config) {
			c.Frameworks[0].Methods[1].Core = true
		})},
		{"negative weight", mutate(func(c *Config) {
			c.Frameworks[0].Methods[1].Weight = -1
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			var cfgErr *core.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}
