// Package analysis turns a run's aggregates into the final comparison: four
// sequential, independent layers (core-method comparison, specialized-method
// ranking, scenario-by-method matrix, overall framework comparison) expressed
// as pure functions over the same aggregate data. Each layer produces one
// part of the immutable ComparisonReport; none mutates shared state.
package analysis

import (
	"time"

	"github.com/gokugml/membench/aggregate"
	"github.com/gokugml/membench/core"
)

// Verdict classifies how decisive a score gap is. Thresholds follow the
// reporting convention of the underlying comparison methodology: a gap above
// one full point is significant, above half a point moderate.
type Verdict string

const (
	// VerdictSignificant marks a gap greater than 1.0 points.
	VerdictSignificant Verdict = "significant"
	// VerdictModerate marks a gap greater than 0.5 points.
	VerdictModerate Verdict = "moderate"
	// VerdictComparable marks performance within half a point.
	VerdictComparable Verdict = "comparable"
)

func classifyGap(gap float64) Verdict {
	switch {
	case gap > 1.0:
		return VerdictSignificant
	case gap > 0.5:
		return VerdictModerate
	default:
		return VerdictComparable
	}
}

// CoreEntry is one framework's designated general-purpose method and its
// aggregate in the core comparison layer.
type CoreEntry struct {
	Framework  string         `json:"framework"`
	Method     core.MethodKey `json:"method"`
	Mean       float64        `json:"mean"`
	Sufficient bool           `json:"sufficient"`
}

// CoreComparison is layer 1: the direct cross-framework comparison of each
// framework's core retrieval method.
type CoreComparison struct {
	Entries      []CoreEntry `json:"entries"`
	Winner       string      `json:"winner,omitempty"` // Framework id; empty without sufficient data
	Margin       float64     `json:"margin"`
	AdvantagePct float64     `json:"advantage_pct"` // Margin relative to the full scale, in percent
	Verdict      Verdict     `json:"verdict,omitempty"`
	Insufficient []string    `json:"insufficient,omitempty"` // Frameworks without usable core data
}

// SpecializedEntry is one ranked non-core method.
type SpecializedEntry struct {
	Key         core.MethodKey `json:"key"`
	Mean        float64        `json:"mean"`
	FailureRate float64        `json:"failure_rate"`
}

// SpecializedRanking is layer 2: every non-core method across all frameworks
// ranked by its aggregate, descending.
type SpecializedRanking struct {
	Ranking      []SpecializedEntry `json:"ranking"`
	Insufficient []core.MethodKey   `json:"insufficient,omitempty"` // Excluded for lack of valid scores
}

// CellStatus distinguishes a judged matrix cell from a failed one and from a
// pair that was never evaluated. "Not evaluated" is explicit and never
// representable as a zero score.
type CellStatus string

const (
	// CellScored marks a cell holding a valid judged score.
	CellScored CellStatus = "scored"
	// CellFailed marks an attempted cell whose retrieval or judgment failed.
	CellFailed CellStatus = "failed"
	// CellNotEvaluated marks a method/scenario pair outside the run, e.g. a
	// scenario without an expected-content entry for the method.
	CellNotEvaluated CellStatus = "not_evaluated"
)

// MatrixCell is one entry of the scenario-by-method matrix. Score is
// meaningful only when Status == CellScored.
type MatrixCell struct {
	Status CellStatus `json:"status"`
	Score  int        `json:"score,omitempty"`
}

// ScenarioRow is one scenario's dense row across all registered methods,
// with its best performing pair and ranked shortlist.
type ScenarioRow struct {
	Scenario  string                   `json:"scenario"`
	Cells     []MatrixCell             `json:"cells"` // Aligned with Matrix.Columns
	Best      *aggregate.ScenarioRank  `json:"best,omitempty"`
	Shortlist []aggregate.ScenarioRank `json:"shortlist,omitempty"`
}

// Matrix is layer 3: the full scenario-by-method score matrix.
type Matrix struct {
	Columns []core.MethodKey `json:"columns"` // Registration order
	Rows    []ScenarioRow    `json:"rows"`    // Catalog order
}

// OverallComparison is layer 4: the framework-level comparison, overall
// winner and the confidence the score gap supports.
type OverallComparison struct {
	Frameworks   []aggregate.FrameworkAggregate `json:"frameworks"`
	Winner       string                         `json:"winner,omitempty"`
	RunnerUp     string                         `json:"runner_up,omitempty"`
	Margin       float64                        `json:"margin"`
	AdvantagePct float64                        `json:"advantage_pct"`
	Confidence   float64                        `json:"confidence"` // In [0,1]
	Verdict      Verdict                        `json:"verdict,omitempty"`
	Insufficient []string                       `json:"insufficient,omitempty"`
}

// Totals counts the run's record population, including the entries excluded
// for insufficient data.
type Totals struct {
	Triples             int `json:"triples"`
	Scored              int `json:"scored"`
	Failed              int `json:"failed"`
	InsufficientMethods int `json:"insufficient_methods"`
}

// Report is the immutable ComparisonReport snapshot built once per run:
// all aggregates, the scenario-by-method matrix, per-layer winners, the
// overall winner and its confidence.
type Report struct {
	RunID       string                         `json:"run_id"`
	GeneratedAt time.Time                      `json:"generated_at"`
	Scenarios   []string                       `json:"scenarios"`
	Methods     []aggregate.MethodAggregate    `json:"methods"`
	Frameworks  []aggregate.FrameworkAggregate `json:"frameworks"`
	Core        CoreComparison                 `json:"core_comparison"`
	Specialized SpecializedRanking             `json:"specialized_ranking"`
	Matrix      Matrix                         `json:"matrix"`
	Overall     OverallComparison              `json:"overall"`
	Totals      Totals                         `json:"totals"`
	Evaluations []core.Evaluation              `json:"evaluations,omitempty"` // Raw records for audit
}
