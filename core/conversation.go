package core

import "strings"

// Turn is a single message in a scenario's conversation history.
type Turn struct {
	Role    string `json:"role" yaml:"role"`       // "user" or "assistant"
	Content string `json:"content" yaml:"content"` // Plain UTF-8 text
}

// Conversation is the ordered, immutable history handed to retrieval
// adapters. Scenarios define it once at catalog load time; the engine never
// mutates it afterwards.
type Conversation []Turn

// UserTurns returns the user-authored turns in order.
func (c Conversation) UserTurns() []Turn {
	turns := make([]Turn, 0, len(c))
	for _, t := range c {
		if t.Role == "user" {
			turns = append(turns, t)
		}
	}
	return turns
}

// Transcript renders the conversation as "role: content" lines. Adapters for
// frameworks that ingest raw text can use this as their canonical form.
func (c Conversation) Transcript() string {
	var sb strings.Builder
	for i, t := range c {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(t.Role)
		sb.WriteString(": ")
		sb.WriteString(t.Content)
	}
	return sb.String()
}
