// Package main provides the membench CLI: comparative evaluation of memory
// framework retrieval quality.
//
// # Basic Usage
//
// Run an evaluation:
//
//	membench run --config membench.yaml
//
// Validate a configuration and scenario catalog without making any calls:
//
//	membench validate --config membench.yaml
//
// # Environment Variables
//
//   - ANTHROPIC_API_KEY: Anthropic API key when the judge provider is "anthropic"
//   - OPENAI_API_KEY: OpenAI API key when the judge provider is "openai"
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := buildRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "membench",
		Short:         "Comparative evaluation of memory framework retrieval quality",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		buildRunCmd(),
		buildValidateCmd(),
	)
	return rootCmd
}
