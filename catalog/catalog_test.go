package catalog

import (
	"strings"
	"testing"

	"github.com/gokugml/membench/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCase() TestCase {
	return TestCase{
		ScenarioID: "time_pref_001",
		Conversation: core.Conversation{
			{Role: "user", Content: "I drink coffee every morning before work"},
			{Role: "assistant", Content: "An early riser, noted."},
		},
		Expected: map[string][]string{
			"profile": {"likes_morning_coffee"},
			"context": {"drinks coffee in the morning", "works a day job"},
		},
	}
}

func TestNew_Valid(t *testing.T) {
	c, err := New(validCase())
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	tc, err := c.Get("time_pref_001")
	require.NoError(t, err)
	assert.Equal(t, "time_pref_001", tc.ScenarioID)

	checklist, err := c.Expected("time_pref_001", "profile")
	require.NoError(t, err)
	assert.Equal(t, []string{"likes_morning_coffee"}, checklist)
}

func TestNew_RejectsMalformedEntries(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tc *TestCase)
		wantMsg string
	}{
		{"missing id", func(tc *TestCase) { tc.ScenarioID = "" }, "no id"},
		{"empty conversation", func(tc *TestCase) { tc.Conversation = nil }, "empty conversation"},
		{"turn without role", func(tc *TestCase) { tc.Conversation[0].Role = "" }, "missing role"},
		{"no expected content", func(tc *TestCase) { tc.Expected = nil }, "no expected content"},
		{"empty checklist", func(tc *TestCase) { tc.Expected["profile"] = nil }, "empty checklist"},
		{"blank checklist item", func(tc *TestCase) { tc.Expected["profile"] = []string{""} }, "blank checklist item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := validCase()
			tt.mutate(&tc)
			_, err := New(tc)
			require.Error(t, err)
			var cfgErr *core.ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	_, err := New(validCase(), validCase())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate scenario id")
}

func TestExpected_NotFound(t *testing.T) {
	c, err := New(validCase())
	require.NoError(t, err)

	_, err = c.Expected("time_pref_001", "search_event")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = c.Expected("unknown", "profile")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestApplicable(t *testing.T) {
	c, err := New(validCase())
	require.NoError(t, err)

	assert.True(t, c.Applicable("time_pref_001", "profile"))
	assert.False(t, c.Applicable("time_pref_001", "search_event"))
}

func TestScenarios_DefensiveCopy(t *testing.T) {
	c, err := New(validCase())
	require.NoError(t, err)

	s := c.Scenarios()
	s[0].ScenarioID = "mutated"
	s[0].Conversation[0].Content = "mutated turn"
	s[0].Expected["profile"][0] = "mutated item"
	s[0].Expected["injected"] = []string{"new_method"}

	tc, err := c.Get("time_pref_001")
	require.NoError(t, err)
	assert.Equal(t, "time_pref_001", tc.ScenarioID)
	assert.Equal(t, "I drink coffee every morning before work", tc.Conversation[0].Content)
	assert.Equal(t, []string{"likes_morning_coffee"}, tc.Expected["profile"])
	assert.NotContains(t, tc.Expected, "injected")
	assert.False(t, c.Applicable("time_pref_001", "injected"))
}

func TestGet_DefensiveCopy(t *testing.T) {
	c, err := New(validCase())
	require.NoError(t, err)

	tc, err := c.Get("time_pref_001")
	require.NoError(t, err)
	tc.Conversation[0].Content = "mutated turn"
	tc.Expected["profile"][0] = "mutated item"

	again, err := c.Get("time_pref_001")
	require.NoError(t, err)
	assert.Equal(t, "I drink coffee every morning before work", again.Conversation[0].Content)
	assert.Equal(t, []string{"likes_morning_coffee"}, again.Expected["profile"])
}

func TestLoad_YAML(t *testing.T) {
	doc := `
scenarios:
  - id: time_pref_001
    description: morning preference recall
    conversation:
      - role: user
        content: I drink coffee every morning
      - role: assistant
        content: Noted.
    expected:
      profile:
        - likes_morning_coffee
`
	c, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	checklist, err := c.Expected("time_pref_001", "profile")
	require.NoError(t, err)
	assert.Equal(t, []string{"likes_morning_coffee"}, checklist)
}

func TestLoad_MalformedYAMLRejected(t *testing.T) {
	_, err := Load(strings.NewReader("scenarios: [this is: not: valid"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("scenarios:\n  - id: \"\"\n    conversation: []\n"))
	assert.Error(t, err)
}
