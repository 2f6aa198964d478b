// Package model defines the minimal completion interface the similarity
// judge drives its semantic judgments through, plus a deterministic mock for
// tests. Provider backends live in the openai and anthropic subpackages.
//
// The interface is deliberately smaller than a general chat abstraction: the
// judge issues single-shot, non-streaming completions with a system prompt,
// so that is all a backend has to support.
package model

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Message is a single chat message sent to a completion backend.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Request captures one completion call.
type Request struct {
	System   string    `json:"system,omitempty"` // System prompt, handled per provider convention
	Messages []Message `json:"messages"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the final text emitted by a completion backend.
type Response struct {
	Text  string      `json:"text"`
	Usage *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", ...
}

// Model is the interface judge backends implement.
type Model interface {
	Complete(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples. It
// matches canned responses by substring against the last user message and
// counts completed calls, which lets tests assert that the judge was (or was
// not) invoked.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	fallback  string
	err       error
	calls     int
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
		fallback:  "Score: 5\nRationale: mock fallback judgment",
	}
}

// AddResponse registers a canned completion returned when the last user
// message contains the given substring.
func (m *MockModel) AddResponse(substring, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[substring] = response
}

// SetFallback overrides the response returned when no substring matches.
func (m *MockModel) SetFallback(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = response
}

// SetError makes every subsequent call fail with err.
func (m *MockModel) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the number of Complete invocations so far.
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Complete implements Model.
func (m *MockModel) Complete(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}

	var lastUser string
	for _, msg := range req.Messages {
		if msg.Role == "user" {
			lastUser = msg.Content
		}
	}
	for substring, response := range m.responses {
		if strings.Contains(lastUser, substring) {
			return &Response{Text: response}, nil
		}
	}
	return &Response{Text: m.fallback}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
