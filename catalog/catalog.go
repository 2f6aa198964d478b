// Package catalog holds the fixed set of test scenarios driven through every
// framework/method pair under evaluation: conversational histories plus, per
// retrieval method, an expected-content checklist. The catalog is validated
// at load time and read-only afterwards; scenario authoring is out of scope.
package catalog

import (
	"fmt"

	"github.com/gokugml/membench/core"
)

// TestCase is one fixed test scenario. Created at catalog load time and
// immutable thereafter.
type TestCase struct {
	// ScenarioID uniquely identifies the scenario within a catalog.
	ScenarioID string `yaml:"id" json:"id"`
	// Description is an optional human readable summary.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Conversation is the ordered history handed to retrieval adapters.
	Conversation core.Conversation `yaml:"conversation" json:"conversation"`
	// Expected maps a method identifier to the checklist of facts/phrases the
	// retrieved text is judged against. A method without an entry is not
	// evaluated for this scenario (never scored as zero).
	Expected map[string][]string `yaml:"expected" json:"expected"`
}

// clone returns a deep copy so callers cannot mutate the catalog's nested
// conversation slices or expected maps through a returned case.
func (tc TestCase) clone() TestCase {
	out := tc
	out.Conversation = make(core.Conversation, len(tc.Conversation))
	copy(out.Conversation, tc.Conversation)
	out.Expected = make(map[string][]string, len(tc.Expected))
	for method, checklist := range tc.Expected {
		items := make([]string, len(checklist))
		copy(items, checklist)
		out.Expected[method] = items
	}
	return out
}

// Catalog is the validated, read-only scenario set for one run.
type Catalog struct {
	cases []TestCase
	index map[string]int
}

// New builds a Catalog from the given test cases, rejecting malformed entries
// with a descriptive ConfigurationError rather than silently skipping them.
func New(cases ...TestCase) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(cases))}
	for i, tc := range cases {
		if tc.ScenarioID == "" {
			return nil, core.NewConfigurationError("scenario at position %d has no id", i)
		}
		if _, dup := c.index[tc.ScenarioID]; dup {
			return nil, core.NewConfigurationError("duplicate scenario id %q", tc.ScenarioID)
		}
		if len(tc.Conversation) == 0 {
			return nil, core.NewConfigurationError("scenario %q has an empty conversation", tc.ScenarioID)
		}
		for j, turn := range tc.Conversation {
			if turn.Role == "" || turn.Content == "" {
				return nil, core.NewConfigurationError("scenario %q turn %d is missing role or content", tc.ScenarioID, j)
			}
		}
		if len(tc.Expected) == 0 {
			return nil, core.NewConfigurationError("scenario %q declares no expected content", tc.ScenarioID)
		}
		for method, checklist := range tc.Expected {
			if method == "" {
				return nil, core.NewConfigurationError("scenario %q has an expected entry with an empty method id", tc.ScenarioID)
			}
			if len(checklist) == 0 {
				return nil, core.NewConfigurationError("scenario %q has an empty checklist for method %q", tc.ScenarioID, method)
			}
			for _, item := range checklist {
				if item == "" {
					return nil, core.NewConfigurationError("scenario %q method %q has a blank checklist item", tc.ScenarioID, method)
				}
			}
		}
		c.index[tc.ScenarioID] = len(c.cases)
		c.cases = append(c.cases, tc.clone())
	}
	return c, nil
}

// Scenarios returns the test cases in catalog order as deep copies.
func (c *Catalog) Scenarios() []TestCase {
	out := make([]TestCase, len(c.cases))
	for i, tc := range c.cases {
		out[i] = tc.clone()
	}
	return out
}

// Get returns a deep copy of the scenario with the given id.
func (c *Catalog) Get(scenarioID string) (TestCase, error) {
	i, ok := c.index[scenarioID]
	if !ok {
		return TestCase{}, fmt.Errorf("scenario %q: %w", scenarioID, core.ErrNotFound)
	}
	return c.cases[i].clone(), nil
}

// Expected returns the checklist for a scenario/method pair. A missing
// scenario or method entry yields core.ErrNotFound.
func (c *Catalog) Expected(scenarioID, methodID string) ([]string, error) {
	tc, err := c.Get(scenarioID)
	if err != nil {
		return nil, err
	}
	checklist, ok := tc.Expected[methodID]
	if !ok {
		return nil, fmt.Errorf("scenario %q has no expected content for method %q: %w", scenarioID, methodID, core.ErrNotFound)
	}
	out := make([]string, len(checklist))
	copy(out, checklist)
	return out, nil
}

// Applicable reports whether the scenario carries an expected-content entry
// for the method, i.e. whether the pair participates in the run.
func (c *Catalog) Applicable(scenarioID, methodID string) bool {
	_, err := c.Expected(scenarioID, methodID)
	return err == nil
}

// Len returns the number of scenarios in the catalog.
func (c *Catalog) Len() int { return len(c.cases) }
