package engine

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gokugml/membench/aggregate"
	"github.com/gokugml/membench/analysis"
	"github.com/gokugml/membench/catalog"
	"github.com/gokugml/membench/core"
	"github.com/gokugml/membench/logging"
)

// Config defines tuning parameters for a run.
//
// Additional concerns (logger, judge budget overrides) are configured via
// functional options rather than expanding this struct.
type Config struct {
	// Concurrency limits the number of retrieval+judging calls in flight at
	// once. Exceeding the bound queues rather than fails. Set to 0 to use
	// the default.
	Concurrency int

	// RunTimeout bounds the whole run. Calls still pending when it expires
	// are cancelled and recorded with a timeout status; completed records
	// are kept. Zero means no run-level timeout.
	RunTimeout time.Duration

	// MaxJudgeCalls caps the number of judge invocations that reach the
	// model within one run. Records past the cap are flagged as errors
	// instead of judged. Zero means unlimited.
	MaxJudgeCalls int
}

// DefaultConfig provides conservative defaults: a small pool that respects
// typical model-provider rate limits, no run timeout, no judge budget.
var DefaultConfig = Config{
	Concurrency: 4,
}

// Options configures an Engine instance using the functional options pattern.
type Options struct {
	// Config contains operational parameters for the run behavior.
	// Defaults to DefaultConfig if not specified.
	Config Config

	// Logger receives per-call and run-summary log entries. Defaults to a
	// discarding logger so the engine has no logging side effects unless
	// asked for.
	Logger *logging.RunLogger
}

// WithConfig sets the full run configuration.
func WithConfig(cfg Config) func(o *Options) {
	return func(o *Options) { o.Config = cfg }
}

// WithConcurrency sets the maximum number of in-flight calls.
func WithConcurrency(n int) func(o *Options) {
	return func(o *Options) { o.Config.Concurrency = n }
}

// WithRunTimeout sets the run-level timeout.
func WithRunTimeout(d time.Duration) func(o *Options) {
	return func(o *Options) { o.Config.RunTimeout = d }
}

// WithMaxJudgeCalls caps judge invocations per run.
func WithMaxJudgeCalls(n int) func(o *Options) {
	return func(o *Options) { o.Config.MaxJudgeCalls = n }
}

// WithLogger sets the run logger.
func WithLogger(l *logging.RunLogger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// Engine coordinates one comparative evaluation run over a scenario catalog
// and a registry of framework/method adapters. It is immutable after
// construction; Run may be called repeatedly, each call being an independent
// run with its own identifier and records.
type Engine struct {
	registry *core.Registry
	catalog  *catalog.Catalog
	judge    core.Judge
	config   Config
	logger   *logging.RunLogger
}

// New creates an Engine for the given adapters, scenarios and judge.
//
// The arguments are validated at Run time, not here, so construction always
// succeeds and configuration problems surface as a ConfigurationError before
// any retrieval or judging begins.
func New(registry *core.Registry, cat *catalog.Catalog, judge core.Judge, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Config: DefaultConfig,
		Logger: logging.NewLogger(&logging.LoggerConfig{
			Level:     logging.LogLevelError,
			Output:    io.Discard,
			Component: "engine",
		}),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Engine{
		registry: registry,
		catalog:  cat,
		judge:    judge,
		config:   opts.Config,
		logger:   opts.Logger,
	}
}

// task is one (framework, method, scenario) triple to evaluate, with the
// inputs both calls need.
type task struct {
	key       core.Key
	conv      core.Conversation
	checklist []string
}

// Run executes the full evaluation and returns the comparison report.
//
// Configuration errors are fatal and returned before any retrieval or
// judging call is made. After that point the run always produces a report:
// retrieval and judge failures, timeouts and exhausted budgets become
// status-flagged records that the analysis degrades to "insufficient data"
// markers rather than aborting.
func (e *Engine) Run(ctx context.Context) (*analysis.Report, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := e.logger.WithRun(runID)
	start := time.Now()

	runCtx := ctx
	cancel := func() {}
	if e.config.RunTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, e.config.RunTimeout)
	}
	defer cancel()

	tasks := e.buildTasks()
	results := make([]core.Evaluation, len(tasks))
	limiter := core.NewCallLimiter(e.config.MaxJudgeCalls)

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency())
	for i, t := range tasks {
		g.Go(func() error {
			results[i] = e.evaluate(runCtx, t, limiter, logger)
			return nil
		})
	}
	// Workers record failures instead of returning them.
	_ = g.Wait()

	frameworks := e.registry.Frameworks()
	coreMethods := make(map[string]core.MethodKey, len(frameworks))
	for _, fw := range frameworks {
		if key, ok := e.registry.CoreMethod(fw); ok {
			coreMethods[fw] = key
		}
	}

	cases := e.catalog.Scenarios()
	scenarios := make([]string, len(cases))
	for i, tc := range cases {
		scenarios[i] = tc.ScenarioID
	}

	report := analysis.Analyze(analysis.Input{
		Evaluations: results,
		Order:       e.registry.Methods(),
		Frameworks:  frameworks,
		CoreMethods: coreMethods,
		Weights:     aggregate.Weights(e.registry.Weights()),
		Scenarios:   scenarios,
		RunID:       runID,
	})

	logger.LogRunSummary(report.Totals.Triples, report.Totals.Scored, report.Totals.Failed, time.Since(start))
	return report, nil
}

// validate surfaces configuration problems before any call starts.
func (e *Engine) validate() error {
	if e.registry == nil || e.registry.Len() == 0 {
		return core.NewConfigurationError("no framework/method adapters registered")
	}
	if e.catalog == nil || e.catalog.Len() == 0 {
		return core.NewConfigurationError("scenario catalog is empty")
	}
	if e.judge == nil {
		return core.NewConfigurationError("similarity judge is not configured")
	}

	cases := e.catalog.Scenarios()
	for _, key := range e.registry.Methods() {
		applicable := false
		for _, tc := range cases {
			if e.catalog.Applicable(tc.ScenarioID, key.Method) {
				applicable = true
				break
			}
		}
		if !applicable {
			return core.NewConfigurationError(
				"method %s/%s has no expected-content entry in any scenario", key.Framework, key.Method)
		}
	}
	return nil
}

// buildTasks enumerates the applicable triples in deterministic order:
// catalog order per scenario, registration order per method. Each unique key
// is dispatched exactly once; its completed record stands in for any repeat
// occurrence within the run. Pairs without an expected-content entry are
// skipped and later surface in the matrix as "not evaluated".
func (e *Engine) buildTasks() []task {
	methods := e.registry.Methods()
	seen := make(map[core.Key]bool)

	var tasks []task
	for _, tc := range e.catalog.Scenarios() {
		for _, mk := range methods {
			if !e.catalog.Applicable(tc.ScenarioID, mk.Method) {
				continue
			}
			key := core.Key{Framework: mk.Framework, Method: mk.Method, Scenario: tc.ScenarioID}
			if seen[key] {
				continue
			}
			seen[key] = true

			checklist, err := e.catalog.Expected(tc.ScenarioID, mk.Method)
			if err != nil {
				continue
			}
			tasks = append(tasks, task{key: key, conv: tc.Conversation, checklist: checklist})
		}
	}
	return tasks
}

// evaluate runs retrieval and judging for one triple and returns the
// immutable record. It never returns an error: failures are contained in the
// record's status fields.
func (e *Engine) evaluate(ctx context.Context, t task, limiter *core.CallLimiter, logger *logging.RunLogger) core.Evaluation {
	ev := core.Evaluation{Key: t.key}

	if err := ctx.Err(); err != nil {
		// The run timed out or was cancelled before this triple started.
		ev.Retrieval = core.RetrievalRecord{Key: t.key, Status: callStatus(err), Reason: err.Error()}
		return ev
	}

	adapter, err := e.registry.Adapter(t.key.MethodKey())
	if err != nil {
		ev.Retrieval = core.RetrievalRecord{Key: t.key, Status: core.StatusError, Reason: err.Error()}
		return ev
	}

	retStart := time.Now()
	text, err := adapter.Retrieve(ctx, t.conv)
	elapsed := time.Since(retStart)
	logger.LogRetrieval(t.key.Framework, t.key.Method, t.key.Scenario, elapsed, err == nil, err)
	if err != nil {
		// Failed retrieval excludes the triple from judging entirely.
		ev.Retrieval = core.RetrievalRecord{Key: t.key, Status: callStatus(err), Reason: err.Error(), Elapsed: elapsed}
		return ev
	}
	ev.Retrieval = core.RetrievalRecord{Key: t.key, Text: text, Status: core.StatusOK, Elapsed: elapsed}

	// The budget counts judge invocations that reach the model; empty
	// retrieved text is scored 0 without one, so it is exempt.
	if strings.TrimSpace(text) != "" {
		if err := limiter.Acquire(); err != nil {
			ev.Score = &core.ScoreRecord{Key: t.key, Status: core.StatusError, Reason: "judge call budget exhausted"}
			return ev
		}
	}

	judgeStart := time.Now()
	judgment, err := e.judge.Judge(ctx, text, t.checklist)
	judgeElapsed := time.Since(judgeStart)
	logger.LogJudgeCall(t.key.Framework, t.key.Method, t.key.Scenario, judgment.Score, judgeElapsed, err == nil, err)
	if err != nil {
		ev.Score = &core.ScoreRecord{Key: t.key, Status: callStatus(err), Reason: err.Error()}
		return ev
	}

	ev.Score = &core.ScoreRecord{
		Key:       t.key,
		Score:     judgment.Score,
		Rationale: judgment.Rationale,
		Status:    core.StatusOK,
	}
	return ev
}

func (e *Engine) concurrency() int {
	if e.config.Concurrency > 0 {
		return e.config.Concurrency
	}
	return DefaultConfig.Concurrency
}

// callStatus maps a call failure to its record status. Deadline expiry is a
// timeout; everything else, including explicit cancellation, is an error.
func callStatus(err error) core.CallStatus {
	if errors.Is(err, context.DeadlineExceeded) {
		return core.StatusTimeout
	}
	return core.StatusError
}
