package testutil

import (
	"github.com/gokugml/membench/catalog"
	"github.com/gokugml/membench/core"
)

// CaseBuilder helps construct catalog test cases with fluent chaining.
// Example:
//
//	tc := NewCaseBuilder("s1").User("I like tea").Expect("context", "likes_tea").Build()
type CaseBuilder struct {
	id           string
	conversation core.Conversation
	expected     map[string][]string
}

// NewCaseBuilder creates a builder for a scenario with the given id.
func NewCaseBuilder(id string) *CaseBuilder {
	return &CaseBuilder{id: id, expected: map[string][]string{}}
}

// User appends a user turn (chainable).
func (b *CaseBuilder) User(content string) *CaseBuilder {
	b.conversation = append(b.conversation, core.Turn{Role: "user", Content: content})
	return b
}

// Assistant appends an assistant turn (chainable).
func (b *CaseBuilder) Assistant(content string) *CaseBuilder {
	b.conversation = append(b.conversation, core.Turn{Role: "assistant", Content: content})
	return b
}

// Expect sets the expected-content checklist for a method (chainable).
func (b *CaseBuilder) Expect(method string, items ...string) *CaseBuilder {
	b.expected[method] = items
	return b
}

// Build returns the assembled test case.
func (b *CaseBuilder) Build() catalog.TestCase {
	return catalog.TestCase{
		ScenarioID:   b.id,
		Conversation: b.conversation,
		Expected:     b.expected,
	}
}
