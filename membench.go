// Package membench provides a high-level façade over the evaluation engine
// for comparing memory frameworks. Most applications interact with this
// package by:
//  1. Creating a Membench via New() with a scenario catalog (optionally
//     overriding the default mock judge and engine configuration)
//  2. Registering framework/method retrieval adapters
//  3. Calling Run() to produce the comparison report
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. The defaults (mock judge, discarded logs) are safe for
// local development and testing; real comparisons supply an LLM-backed judge
// and a structured logger.
package membench

import (
	"context"

	"github.com/gokugml/membench/analysis"
	"github.com/gokugml/membench/catalog"
	"github.com/gokugml/membench/core"
	"github.com/gokugml/membench/engine"
	"github.com/gokugml/membench/judge"
	"github.com/gokugml/membench/logging"
	"github.com/gokugml/membench/model"
)

// Options configures the Membench instance.
type Options struct {
	// EngineConfig tunes concurrency, run timeout and the judge budget.
	EngineConfig engine.Config

	// Judge scores retrieved text against expected content. Defaults to an
	// LLM judge over a mock model, suitable only for development.
	Judge core.Judge

	// Logger receives run logs. Defaults to discarding them.
	Logger *logging.RunLogger
}

// Membench aggregates a scenario catalog and an adapter registry, and runs
// comparative evaluations over them.
type Membench struct {
	opts     Options
	registry *core.Registry
	catalog  *catalog.Catalog
}

// New creates a Membench for the given catalog with optional overrides.
func New(cat *catalog.Catalog, optFns ...func(o *Options)) *Membench {
	opts := Options{
		EngineConfig: engine.DefaultConfig,
		Judge:        judge.NewLLMJudge(model.NewMockModel("mock-judge")),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Membench{
		opts:     opts,
		registry: core.NewRegistry(),
		catalog:  cat,
	}
}

// Register adds a retrieval adapter for a framework/method pair.
func (m *Membench) Register(framework, method string, adapter core.MethodAdapter, optFns ...func(o *core.RegisterOptions)) error {
	return m.registry.Register(framework, method, adapter, optFns...)
}

// Registry exposes the underlying adapter registry for advanced setups.
func (m *Membench) Registry() *core.Registry {
	return m.registry
}

// Run executes one comparative evaluation and returns the report.
func (m *Membench) Run(ctx context.Context) (*analysis.Report, error) {
	engineOpts := []func(o *engine.Options){
		engine.WithConfig(m.opts.EngineConfig),
	}
	if m.opts.Logger != nil {
		engineOpts = append(engineOpts, engine.WithLogger(m.opts.Logger))
	}

	eng := engine.New(m.registry, m.catalog, m.opts.Judge, engineOpts...)
	return eng.Run(ctx)
}
