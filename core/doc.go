// Package core defines the shared contracts of the membench evaluation
// engine: conversation types, the retrieval adapter capability, the
// similarity judge capability, immutable per-call records and the typed
// errors exchanged between components.
//
// Higher level packages (catalog, judge, aggregate, analysis, engine) depend
// only on the interfaces declared here; concrete memory frameworks and judge
// backends are selected at wiring time. This keeps the aggregation and
// analysis code untouched when a new framework or retrieval method is added.
package core
