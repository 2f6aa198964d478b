package analysis

import (
	"testing"
	"time"

	"github.com/gokugml/membench/aggregate"
	"github.com/gokugml/membench/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mbContext = core.MethodKey{Framework: "memobase", Method: "context"}
	mbProfile = core.MethodKey{Framework: "memobase", Method: "profile"}
	mbEvents  = core.MethodKey{Framework: "memobase", Method: "search_event"}
	muItems   = core.MethodKey{Framework: "memu", Method: "memory_items"}
	muCluster = core.MethodKey{Framework: "memu", Method: "clustered"}

	order      = []core.MethodKey{mbContext, mbProfile, mbEvents, muItems, muCluster}
	frameworks = []string{"memobase", "memu"}
	coreByFw   = map[string]core.MethodKey{"memobase": mbContext, "memu": muItems}
)

func scored(key core.MethodKey, scenario string, score int) core.Evaluation {
	k := core.Key{Framework: key.Framework, Method: key.Method, Scenario: scenario}
	return core.Evaluation{
		Key:       k,
		Retrieval: core.RetrievalRecord{Key: k, Text: "retrieved", Status: core.StatusOK},
		Score:     &core.ScoreRecord{Key: k, Score: score, Status: core.StatusOK},
	}
}

func failed(key core.MethodKey, scenario string, status core.CallStatus) core.Evaluation {
	k := core.Key{Framework: key.Framework, Method: key.Method, Scenario: scenario}
	return core.Evaluation{
		Key:       k,
		Retrieval: core.RetrievalRecord{Key: k, Status: status, Reason: "injected"},
	}
}

func methodAggs(means map[core.MethodKey]float64) []aggregate.MethodAggregate {
	out := make([]aggregate.MethodAggregate, 0, len(order))
	for _, key := range order {
		mean, ok := means[key]
		if !ok {
			continue
		}
		out = append(out, aggregate.MethodAggregate{Key: key, Mean: mean, Scored: 3})
	}
	return out
}

func TestCompareCore(t *testing.T) {
	methods := methodAggs(map[core.MethodKey]float64{
		mbContext: 7.8,
		muItems:   6.5,
	})

	cmp := CompareCore(methods, frameworks, coreByFw)
	assert.Equal(t, "memobase", cmp.Winner)
	assert.InDelta(t, 1.3, cmp.Margin, 1e-9)
	assert.InDelta(t, 13.0, cmp.AdvantagePct, 1e-9)
	assert.Equal(t, VerdictSignificant, cmp.Verdict)
	assert.Empty(t, cmp.Insufficient)
}

func TestCompareCore_VerdictThresholds(t *testing.T) {
	tests := []struct {
		gap  float64
		want Verdict
	}{
		{1.2, VerdictSignificant},
		{0.7, VerdictModerate},
		{0.3, VerdictComparable},
	}

	for _, tt := range tests {
		methods := methodAggs(map[core.MethodKey]float64{
			mbContext: 6.0 + tt.gap,
			muItems:   6.0,
		})
		cmp := CompareCore(methods, frameworks, coreByFw)
		assert.Equal(t, tt.want, cmp.Verdict, "gap %.1f", tt.gap)
	}
}

func TestCompareCore_InsufficientCoreData(t *testing.T) {
	// memu's core method produced no valid scores at all.
	methods := []aggregate.MethodAggregate{
		{Key: mbContext, Mean: 7.0, Scored: 3},
		{Key: muItems, Scored: 0, Failures: 3},
	}

	cmp := CompareCore(methods, frameworks, coreByFw)
	assert.Equal(t, "memobase", cmp.Winner)
	assert.Equal(t, []string{"memu"}, cmp.Insufficient)
	// A lone sufficient entry cannot have a margin or verdict.
	assert.Zero(t, cmp.Margin)
	assert.Empty(t, cmp.Verdict)
}

func TestRankSpecialized(t *testing.T) {
	methods := []aggregate.MethodAggregate{
		{Key: mbContext, Mean: 7.8, Scored: 3}, // core, excluded
		{Key: mbProfile, Mean: 6.0, Scored: 3, Failures: 1},
		{Key: mbEvents, Mean: 6.0, Scored: 3},
		{Key: muItems, Mean: 6.5, Scored: 3}, // core, excluded
		{Key: muCluster, Mean: 7.2, Scored: 3},
	}

	ranking := RankSpecialized(methods, coreByFw)
	require.Len(t, ranking.Ranking, 3)
	assert.Equal(t, muCluster, ranking.Ranking[0].Key)
	// profile and search_event tie on mean; search_event has the lower
	// failure rate and wins the tie.
	assert.Equal(t, mbEvents, ranking.Ranking[1].Key)
	assert.Equal(t, mbProfile, ranking.Ranking[2].Key)
}

func TestRankSpecialized_InsufficientExcluded(t *testing.T) {
	methods := []aggregate.MethodAggregate{
		{Key: mbProfile, Scored: 0, Failures: 3},
		{Key: muCluster, Mean: 5.5, Scored: 2},
	}

	ranking := RankSpecialized(methods, coreByFw)
	require.Len(t, ranking.Ranking, 1)
	assert.Equal(t, muCluster, ranking.Ranking[0].Key)
	assert.Equal(t, []core.MethodKey{mbProfile}, ranking.Insufficient)
}

func TestBuildMatrix_NotEvaluatedDistinctFromZero(t *testing.T) {
	evals := []core.Evaluation{
		scored(mbContext, "s1", 0), // a true zero score
		scored(muItems, "s1", 6),
		// mbProfile never evaluated for s1
	}

	matrix := BuildMatrix(evals, []string{"s1"}, []core.MethodKey{mbContext, mbProfile, muItems})
	require.Len(t, matrix.Rows, 1)
	row := matrix.Rows[0]

	assert.Equal(t, MatrixCell{Status: CellScored, Score: 0}, row.Cells[0])
	assert.Equal(t, MatrixCell{Status: CellNotEvaluated}, row.Cells[1])
	assert.Equal(t, MatrixCell{Status: CellScored, Score: 6}, row.Cells[2])

	require.NotNil(t, row.Best)
	assert.Equal(t, muItems, row.Best.Key)
}

func TestBuildMatrix_FailedCell(t *testing.T) {
	evals := []core.Evaluation{
		failed(mbContext, "s1", core.StatusTimeout),
	}

	matrix := BuildMatrix(evals, []string{"s1"}, []core.MethodKey{mbContext})
	require.Len(t, matrix.Rows, 1)
	assert.Equal(t, CellFailed, matrix.Rows[0].Cells[0].Status)
	assert.Nil(t, matrix.Rows[0].Best)
}

func TestCompareOverall_WinnerAndConfidence(t *testing.T) {
	aggs := []aggregate.FrameworkAggregate{
		{Framework: "memobase", Score: 7.85, Methods: []core.MethodKey{mbContext}},
		{Framework: "memu", Score: 7.20, Methods: []core.MethodKey{muItems}},
	}

	cmp := CompareOverall(aggs)
	assert.Equal(t, "memobase", cmp.Winner)
	assert.Equal(t, "memu", cmp.RunnerUp)
	assert.Greater(t, cmp.Confidence, 0.5)
	assert.Less(t, cmp.Confidence, 1.0)

	// Swapping the scores flips the winner but keeps the same confidence.
	swapped := []aggregate.FrameworkAggregate{
		{Framework: "memobase", Score: 7.20, Methods: []core.MethodKey{mbContext}},
		{Framework: "memu", Score: 7.85, Methods: []core.MethodKey{muItems}},
	}
	cmp2 := CompareOverall(swapped)
	assert.Equal(t, "memu", cmp2.Winner)
	assert.Equal(t, cmp.Confidence, cmp2.Confidence)
}

func TestCompareOverall_InsufficientFramework(t *testing.T) {
	aggs := []aggregate.FrameworkAggregate{
		{Framework: "memobase", Score: 7.0, Methods: []core.MethodKey{mbContext}},
		{Framework: "memu"}, // no methods contributed
	}

	cmp := CompareOverall(aggs)
	assert.Equal(t, "memobase", cmp.Winner)
	assert.Equal(t, 1.0, cmp.Confidence)
	assert.Equal(t, []string{"memu"}, cmp.Insufficient)
}

func TestCompareOverall_NoData(t *testing.T) {
	cmp := CompareOverall([]aggregate.FrameworkAggregate{{Framework: "memu"}})
	assert.Empty(t, cmp.Winner)
	assert.Equal(t, 0.0, cmp.Confidence)
}

func TestConfidence_Properties(t *testing.T) {
	// Gap 0 is a coin flip.
	assert.InDelta(t, 0.5, Confidence(0), 1e-9)
	// The full scale approaches certainty.
	assert.InDelta(t, 1.0, Confidence(10), 1e-9)
	// Monotonic: widening the gap never lowers confidence.
	prev := 0.0
	for gap := 0.0; gap <= 10; gap += 0.25 {
		c := Confidence(gap)
		assert.GreaterOrEqual(t, c, prev)
		prev = c
	}
	// Symmetric in sign.
	assert.Equal(t, Confidence(2.5), Confidence(-2.5))
}

func TestAnalyze_Deterministic(t *testing.T) {
	evals := []core.Evaluation{
		scored(mbContext, "s1", 8),
		scored(mbContext, "s2", 7),
		scored(mbProfile, "s1", 9),
		scored(muItems, "s1", 6),
		scored(muItems, "s2", 7),
		scored(muCluster, "s1", 5),
		failed(mbEvents, "s1", core.StatusError),
	}

	in := Input{
		Evaluations: evals,
		Order:       order,
		Frameworks:  frameworks,
		CoreMethods: coreByFw,
		Scenarios:   []string{"s1", "s2"},
		RunID:       "run-1",
		Now:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	first := Analyze(in)
	second := Analyze(in)
	assert.Equal(t, first, second)

	assert.Equal(t, "memobase", first.Overall.Winner)
	assert.Equal(t, 7, first.Totals.Triples)
	assert.Equal(t, 6, first.Totals.Scored)
	assert.Equal(t, 1, first.Totals.Failed)
	assert.Equal(t, 1, first.Totals.InsufficientMethods)
}
