// Package aggregate reduces the raw per-triple evaluation records of a run
// into method-level, framework-level and scenario-level statistics. All
// functions are pure: they consume immutable records plus an explicit
// registration order and return fresh values, so every tie-break is
// deterministic and nothing here depends on map iteration order.
package aggregate

import (
	"sort"

	"github.com/gokugml/membench/core"
)

// MethodAggregate summarizes one framework/method pair across scenarios.
//
// Mean averages only scenarios with a valid judged score. Failed or timed out
// scenarios are counted in Failures and excluded from the mean: a judge
// failure is missing data, not a bad retrieval, and averaging it in as zero
// would penalize outages as poor quality.
type MethodAggregate struct {
	Key      core.MethodKey `json:"key"`
	Mean     float64        `json:"mean"`
	Scored   int            `json:"scored"`
	Failures int            `json:"failures"`
}

// Sufficient reports whether the pair has at least one valid score and can
// participate in rankings.
func (a MethodAggregate) Sufficient() bool { return a.Scored > 0 }

// FailureRate returns the share of attempted scenarios that failed.
func (a MethodAggregate) FailureRate() float64 {
	attempted := a.Scored + a.Failures
	if attempted == 0 {
		return 0
	}
	return float64(a.Failures) / float64(attempted)
}

// FrameworkAggregate is a framework's overall score: the weighted mean of its
// sufficient method aggregates.
type FrameworkAggregate struct {
	Framework string           `json:"framework"`
	Score     float64          `json:"score"`
	Methods   []core.MethodKey `json:"methods"` // Methods contributing to the score
	Excluded  int              `json:"excluded"` // Methods dropped for insufficient data
}

// Sufficient reports whether at least one method contributed a valid score.
func (a FrameworkAggregate) Sufficient() bool { return len(a.Methods) > 0 }

// Weights maps framework/method pairs to their share in the framework
// aggregate. Pairs without an entry default to weight 1. Reweighting changes
// only the framework mean, never the per-method aggregates.
type Weights map[core.MethodKey]float64

// weight returns the configured weight for a pair, defaulting to 1.
func (w Weights) weight(key core.MethodKey) float64 {
	if w == nil {
		return 1
	}
	if v, ok := w[key]; ok && v > 0 {
		return v
	}
	return 1
}

// Methods computes per-method aggregates over the run's evaluations, in the
// given registration order. Pairs without any evaluation are omitted.
func Methods(evals []core.Evaluation, order []core.MethodKey) []MethodAggregate {
	type bucket struct {
		sum      int
		scored   int
		failures int
	}
	buckets := make(map[core.MethodKey]*bucket, len(order))
	for _, e := range evals {
		key := e.Key.MethodKey()
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		switch {
		case e.Scored():
			b.sum += e.Score.Score
			b.scored++
		case e.Failed():
			b.failures++
		}
	}

	out := make([]MethodAggregate, 0, len(buckets))
	for _, key := range order {
		b, ok := buckets[key]
		if !ok {
			continue
		}
		agg := MethodAggregate{Key: key, Scored: b.scored, Failures: b.failures}
		if b.scored > 0 {
			agg.Mean = float64(b.sum) / float64(b.scored)
		}
		out = append(out, agg)
	}
	return out
}

// Frameworks computes weighted framework aggregates from method aggregates.
// Frameworks appear in the given first-registration order. Methods without a
// valid score are excluded from the weighted mean and counted in Excluded
// rather than dragging the framework down as zeros.
func Frameworks(methods []MethodAggregate, weights Weights, frameworks []string) []FrameworkAggregate {
	byFramework := make(map[string][]MethodAggregate, len(frameworks))
	for _, m := range methods {
		byFramework[m.Key.Framework] = append(byFramework[m.Key.Framework], m)
	}

	out := make([]FrameworkAggregate, 0, len(frameworks))
	for _, fw := range frameworks {
		agg := FrameworkAggregate{Framework: fw}
		var weightedSum, weightSum float64
		for _, m := range byFramework[fw] {
			if !m.Sufficient() {
				agg.Excluded++
				continue
			}
			w := weights.weight(m.Key)
			weightedSum += m.Mean * w
			weightSum += w
			agg.Methods = append(agg.Methods, m.Key)
		}
		if weightSum > 0 {
			agg.Score = weightedSum / weightSum
		}
		out = append(out, agg)
	}
	return out
}

// ScenarioRank is one entry of a scenario's ranked shortlist.
type ScenarioRank struct {
	Key   core.MethodKey `json:"key"`
	Score int            `json:"score"`
}

// RankScenario ranks the scenario's validly scored pairs by score descending.
// Pairs sharing the exact maximum (or any score) keep their relative
// registration order, which makes the ranking deterministic.
func RankScenario(evals []core.Evaluation, scenarioID string, order []core.MethodKey) []ScenarioRank {
	scores := make(map[core.MethodKey]int, len(order))
	for _, e := range evals {
		if e.Key.Scenario != scenarioID || !e.Scored() {
			continue
		}
		scores[e.Key.MethodKey()] = e.Score.Score
	}

	// Insertion in registration order plus a stable sort keeps equal-score
	// pairs in registration order.
	ranked := make([]ScenarioRank, 0, len(scores))
	for _, key := range order {
		score, ok := scores[key]
		if !ok {
			continue
		}
		ranked = append(ranked, ScenarioRank{Key: key, Score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// BestForScenario returns the framework/method pair with the maximum valid
// score for the scenario. When several pairs share the maximum, the pair
// registered first wins. The boolean is false when the scenario has no valid
// score at all.
func BestForScenario(evals []core.Evaluation, scenarioID string, order []core.MethodKey) (core.MethodKey, int, bool) {
	ranked := RankScenario(evals, scenarioID, order)
	if len(ranked) == 0 {
		return core.MethodKey{}, 0, false
	}
	return ranked[0].Key, ranked[0].Score, true
}
