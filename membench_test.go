package membench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokugml/membench/catalog"
	"github.com/gokugml/membench/core"
	"github.com/gokugml/membench/internal/testutil"
	"github.com/gokugml/membench/judge"
	"github.com/gokugml/membench/memstore"
	"github.com/gokugml/membench/model"
)

func TestMembench_EndToEndWithLocalFramework(t *testing.T) {
	cat, err := catalog.New(testutil.NewCaseBuilder("time_pref_001").
		User("I drink coffee every morning").
		Assistant("Noted.").
		User("What do I drink in the morning?").
		Expect("context", "likes_morning_coffee").
		Expect("profile", "likes_morning_coffee").
		Expect("search", "likes_morning_coffee").
		Build())
	require.NoError(t, err)

	mock := model.NewMockModel("mock-judge")
	mock.AddResponse("coffee", "Score: 9\nThe retrieved text captures the morning coffee habit.")

	bench := New(cat, func(o *Options) {
		o.Judge = judge.NewLLMJudge(mock)
	})
	require.NoError(t, memstore.RegisterAll(bench.Registry()))

	report, err := bench.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Totals.Triples)
	assert.Equal(t, 3, report.Totals.Scored)
	assert.Equal(t, memstore.Framework, report.Overall.Winner)
	// A single sufficient framework wins outright.
	assert.Equal(t, 1.0, report.Overall.Confidence)
}

func TestMembench_DefaultJudgeScoresWithoutNetwork(t *testing.T) {
	cat, err := catalog.New(catalog.TestCase{
		ScenarioID: "s1",
		Conversation: core.Conversation{
			{Role: "user", Content: "I like tea"},
		},
		Expected: map[string][]string{"echo": {"likes_tea"}},
	})
	require.NoError(t, err)

	bench := New(cat)
	require.NoError(t, bench.Register("stub", "echo", core.MethodAdapterFunc(
		func(_ context.Context, conversation core.Conversation) (string, error) {
			return conversation.Transcript(), nil
		}), func(o *core.RegisterOptions) { o.Core = true }))

	report, err := bench.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Evaluations, 1)
	assert.True(t, report.Evaluations[0].Scored())
}
