package analysis

import (
	"sort"
	"time"

	"github.com/gokugml/membench/aggregate"
	"github.com/gokugml/membench/core"
)

// Input carries everything the analysis pipeline consumes: the run's
// immutable evaluation records plus the registration metadata that fixes
// every ordering and tie-break.
type Input struct {
	// Evaluations holds one record per applicable (framework, method,
	// scenario) triple, including failed ones. Pairs outside the run have no
	// record; the matrix marks them "not evaluated".
	Evaluations []core.Evaluation
	// Order is the stable registration order of framework/method pairs.
	Order []core.MethodKey
	// Frameworks lists framework ids in first-registration order.
	Frameworks []string
	// CoreMethods designates each framework's general-purpose method. This
	// is configuration-supplied, never inferred from scores.
	CoreMethods map[string]core.MethodKey
	// Weights is the method weighting for framework aggregates.
	Weights aggregate.Weights
	// Scenarios lists scenario ids in catalog order.
	Scenarios []string
	// RunID identifies the evaluation run.
	RunID string
	// Now stamps the report; the zero value means time.Now().
	Now time.Time
}

// Analyze runs the four analysis layers over one run's records and builds
// the ComparisonReport. It is pure up to the timestamp: identical inputs
// produce an identical report.
func Analyze(in Input) *Report {
	methods := aggregate.Methods(in.Evaluations, in.Order)
	frameworks := aggregate.Frameworks(methods, in.Weights, in.Frameworks)

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	report := &Report{
		RunID:       in.RunID,
		GeneratedAt: now,
		Scenarios:   append([]string(nil), in.Scenarios...),
		Methods:     methods,
		Frameworks:  frameworks,
		Core:        CompareCore(methods, in.Frameworks, in.CoreMethods),
		Specialized: RankSpecialized(methods, in.CoreMethods),
		Matrix:      BuildMatrix(in.Evaluations, in.Scenarios, in.Order),
		Overall:     CompareOverall(frameworks),
		Evaluations: append([]core.Evaluation(nil), in.Evaluations...),
	}
	report.Totals = countTotals(in.Evaluations, methods)
	return report
}

// CompareCore is layer 1: it compares each framework's designated core
// method head to head. Frameworks without a core designation or without any
// valid core score are listed as insufficient, never ranked with a zero.
func CompareCore(methods []aggregate.MethodAggregate, frameworks []string, coreMethods map[string]core.MethodKey) CoreComparison {
	byKey := indexMethods(methods)

	cmp := CoreComparison{}
	for _, fw := range frameworks {
		key, ok := coreMethods[fw]
		if !ok {
			cmp.Insufficient = append(cmp.Insufficient, fw)
			continue
		}
		agg, found := byKey[key]
		entry := CoreEntry{Framework: fw, Method: key}
		if found && agg.Sufficient() {
			entry.Mean = agg.Mean
			entry.Sufficient = true
		} else {
			cmp.Insufficient = append(cmp.Insufficient, fw)
		}
		cmp.Entries = append(cmp.Entries, entry)
	}

	var ranked []CoreEntry
	for _, e := range cmp.Entries {
		if e.Sufficient {
			ranked = append(ranked, e)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Mean > ranked[j].Mean })

	switch len(ranked) {
	case 0:
	case 1:
		cmp.Winner = ranked[0].Framework
	default:
		cmp.Winner = ranked[0].Framework
		cmp.Margin = ranked[0].Mean - ranked[1].Mean
		cmp.AdvantagePct = cmp.Margin / float64(core.ScoreScale) * 100
		cmp.Verdict = classifyGap(cmp.Margin)
	}
	return cmp
}

// RankSpecialized is layer 2: every non-core method across all frameworks
// ranked by aggregate descending. Ties break by lower failure rate, then by
// registration order (methods arrive already in registration order and the
// sort is stable).
func RankSpecialized(methods []aggregate.MethodAggregate, coreMethods map[string]core.MethodKey) SpecializedRanking {
	isCore := make(map[core.MethodKey]bool, len(coreMethods))
	for _, key := range coreMethods {
		isCore[key] = true
	}

	ranking := SpecializedRanking{}
	for _, m := range methods {
		if isCore[m.Key] {
			continue
		}
		if !m.Sufficient() {
			ranking.Insufficient = append(ranking.Insufficient, m.Key)
			continue
		}
		ranking.Ranking = append(ranking.Ranking, SpecializedEntry{
			Key:         m.Key,
			Mean:        m.Mean,
			FailureRate: m.FailureRate(),
		})
	}

	sort.SliceStable(ranking.Ranking, func(i, j int) bool {
		a, b := ranking.Ranking[i], ranking.Ranking[j]
		if a.Mean != b.Mean {
			return a.Mean > b.Mean
		}
		return a.FailureRate < b.FailureRate
	})
	return ranking
}

// BuildMatrix is layer 3: the dense scenario-by-method matrix. A cell is
// "scored" or "failed" when the triple was evaluated and "not evaluated"
// when the pair was outside the run, which keeps a true score of 0
// distinguishable from an inapplicable pair.
func BuildMatrix(evals []core.Evaluation, scenarios []string, order []core.MethodKey) Matrix {
	byTriple := make(map[core.Key]core.Evaluation, len(evals))
	for _, e := range evals {
		byTriple[e.Key] = e
	}

	matrix := Matrix{Columns: append([]core.MethodKey(nil), order...)}
	for _, scenario := range scenarios {
		row := ScenarioRow{Scenario: scenario, Cells: make([]MatrixCell, len(order))}
		for i, key := range order {
			triple := core.Key{Framework: key.Framework, Method: key.Method, Scenario: scenario}
			e, ok := byTriple[triple]
			switch {
			case !ok:
				row.Cells[i] = MatrixCell{Status: CellNotEvaluated}
			case e.Scored():
				row.Cells[i] = MatrixCell{Status: CellScored, Score: e.Score.Score}
			default:
				row.Cells[i] = MatrixCell{Status: CellFailed}
			}
		}
		row.Shortlist = aggregate.RankScenario(evals, scenario, order)
		if len(row.Shortlist) > 0 {
			best := row.Shortlist[0]
			row.Best = &best
		}
		matrix.Rows = append(matrix.Rows, row)
	}
	return matrix
}

// CompareOverall is layer 4: framework aggregates, overall winner and
// confidence. Frameworks without any valid score are flagged insufficient
// and excluded from the winner determination.
func CompareOverall(frameworks []aggregate.FrameworkAggregate) OverallComparison {
	cmp := OverallComparison{Frameworks: frameworks}

	var ranked []aggregate.FrameworkAggregate
	for _, fw := range frameworks {
		if fw.Sufficient() {
			ranked = append(ranked, fw)
		} else {
			cmp.Insufficient = append(cmp.Insufficient, fw.Framework)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	switch len(ranked) {
	case 0:
		cmp.Confidence = 0
	case 1:
		cmp.Winner = ranked[0].Framework
		cmp.Confidence = 1
	default:
		cmp.Winner = ranked[0].Framework
		cmp.RunnerUp = ranked[1].Framework
		cmp.Margin = ranked[0].Score - ranked[1].Score
		cmp.AdvantagePct = cmp.Margin / float64(core.ScoreScale) * 100
		cmp.Confidence = Confidence(cmp.Margin)
		cmp.Verdict = classifyGap(cmp.Margin)
	}
	return cmp
}

func indexMethods(methods []aggregate.MethodAggregate) map[core.MethodKey]aggregate.MethodAggregate {
	byKey := make(map[core.MethodKey]aggregate.MethodAggregate, len(methods))
	for _, m := range methods {
		byKey[m.Key] = m
	}
	return byKey
}

func countTotals(evals []core.Evaluation, methods []aggregate.MethodAggregate) Totals {
	totals := Totals{Triples: len(evals)}
	for _, e := range evals {
		switch {
		case e.Scored():
			totals.Scored++
		case e.Failed():
			totals.Failed++
		}
	}
	for _, m := range methods {
		if !m.Sufficient() {
			totals.InsufficientMethods++
		}
	}
	return totals
}
