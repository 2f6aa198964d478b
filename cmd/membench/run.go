package main

import (
	"context"
	"fmt"
	"os"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/gokugml/membench/catalog"
	"github.com/gokugml/membench/config"
	"github.com/gokugml/membench/core"
	"github.com/gokugml/membench/engine"
	"github.com/gokugml/membench/judge"
	"github.com/gokugml/membench/logging"
	"github.com/gokugml/membench/memstore"
	"github.com/gokugml/membench/model"
	"github.com/gokugml/membench/model/anthropic"
	"github.com/gokugml/membench/model/openai"
	"github.com/gokugml/membench/report"
)

// buildRunCmd creates the "run" command that executes one evaluation run.
func buildRunCmd() *cobra.Command {
	var (
		configPath string
		outputPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a comparative evaluation",
		Long: `Run a comparative evaluation over the configured frameworks and scenario
catalog, then render the comparison report.

The run:
1. Loads the configuration and the scenario catalog
2. Registers the configured framework retrieval methods
3. Evaluates every applicable (framework, method, scenario) triple
4. Aggregates, analyzes and renders the four-layer comparison`,
		Example: `  # Run with the default config file
  membench run

  # Run with a custom config and save JSON results
  membench run --config eval.yaml --format json --output results.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluation(cmd.Context(), configPath, outputPath, format)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "membench.yaml", "Path to YAML configuration file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: text or json (overrides config)")
	return cmd
}

// buildValidateCmd creates the "validate" command: configuration and catalog
// checks without any retrieval or judge calls.
func buildValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and scenario catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			cat, err := catalog.LoadFile(cfg.Scenarios)
			if err != nil {
				return err
			}
			if _, err := buildRegistry(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration OK: %d frameworks, %d scenarios\n",
				len(cfg.Frameworks), cat.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "membench.yaml", "Path to YAML configuration file")
	return cmd
}

func runEvaluation(ctx context.Context, configPath, outputPath, format string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if outputPath != "" {
		cfg.Output.Path = outputPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := buildLogger(cfg)

	cat, err := catalog.LoadFile(cfg.Scenarios)
	if err != nil {
		return err
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	j, err := buildJudge(cfg)
	if err != nil {
		return err
	}

	eng := engine.New(registry, cat, j,
		engine.WithConfig(engine.Config{
			Concurrency:   cfg.Run.Concurrency,
			RunTimeout:    cfg.Run.Timeout.Std(),
			MaxJudgeCalls: cfg.Run.MaxJudgeCalls,
		}),
		engine.WithLogger(logger),
	)

	rep, err := eng.Run(ctx)
	if err != nil {
		return err
	}

	assembler := buildAssembler(cfg.Output.Format)
	if cfg.Output.Path != "" {
		if err := report.WriteFile(cfg.Output.Path, assembler, rep); err != nil {
			return err
		}
		fmt.Printf("Report saved to %s\n", cfg.Output.Path)
		return nil
	}
	return report.Write(os.Stdout, assembler, rep)
}

func buildLogger(cfg *config.Config) *logging.RunLogger {
	level := logging.LogLevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = logging.LogLevelDebug
	case "warn":
		level = logging.LogLevelWarn
	case "error":
		level = logging.LogLevelError
	}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.Logging.Format,
		Output:    os.Stderr,
		Component: "membench",
	})
}

// buildRegistry wires the configured frameworks. Only the built-in local
// framework ships adapters; other frameworks need their adapters registered
// through the library API.
func buildRegistry(cfg *config.Config) (*core.Registry, error) {
	registry := core.NewRegistry()
	for _, fw := range cfg.Frameworks {
		if fw.Name != memstore.Framework {
			return nil, core.NewConfigurationError(
				"framework %q has no built-in adapters; use the library API to register it", fw.Name)
		}
		for _, m := range fw.Methods {
			adapter, err := memstore.Adapter(m.Name)
			if err != nil {
				return nil, err
			}
			opts := m
			err = registry.Register(fw.Name, m.Name, adapter, func(o *core.RegisterOptions) {
				o.Core = opts.Core
				o.Weight = opts.Weight
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return registry, nil
}

func buildJudge(cfg *config.Config) (core.Judge, error) {
	var m model.Model
	switch cfg.Judge.Provider {
	case "anthropic":
		m = anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Judge.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Judge.Model)
			}
			o.Temperature = cfg.Judge.Temperature
			if cfg.Judge.MaxTokens > 0 {
				o.MaxTokens = int64(cfg.Judge.MaxTokens)
			}
		})
	case "openai":
		m = openai.NewModel(func(o *openai.Options) {
			if cfg.Judge.Model != "" {
				o.Model = cfg.Judge.Model
			}
			o.Temperature = cfg.Judge.Temperature
			if cfg.Judge.MaxTokens > 0 {
				o.MaxCompletionTokens = int64(cfg.Judge.MaxTokens)
			}
		})
	case "mock":
		m = model.NewMockModel("mock-judge")
	default:
		return nil, core.NewConfigurationError("unknown judge provider %q", cfg.Judge.Provider)
	}
	return judge.NewLLMJudge(m), nil
}

func buildAssembler(format string) report.Assembler {
	if format == "json" {
		return &report.JSONAssembler{Indent: true}
	}
	return &report.TextAssembler{}
}
