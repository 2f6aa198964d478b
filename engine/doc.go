// Package engine orchestrates one comparative evaluation run.
//
// The Engine walks the scenario catalog against every registered
// framework/method adapter, runs retrieval and judging for each applicable
// (framework, method, scenario) triple under a bounded-concurrency pool, and
// hands the resulting records to the analysis pipeline.
//
// # Execution Model
//
// Triples are independent: no call observes another call's intermediate
// state. Each triple is dispatched exactly once per run; its completed record
// is reused wherever the same key is needed. Workers never mutate shared
// aggregate state: every call produces an immutable Evaluation written to
// its own result slot, and aggregation happens only after the pool drains.
//
// # Failure Containment
//
// RetrievalError and JudgeError are converted into status-flagged records and
// never abort the run. A run-level timeout cancels still-pending calls and
// marks their records with a timeout status; the partial results still
// produce a valid report. Only configuration errors detected before any call
// starts are fatal.
//
// Example:
//
//	eng := engine.New(registry, cat, judge,
//	    engine.WithConcurrency(8),
//	    engine.WithRunTimeout(5*time.Minute),
//	)
//	report, err := eng.Run(ctx)
package engine
