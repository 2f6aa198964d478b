// Package memstore is a naive process-local memory framework used as the
// built-in reference candidate in comparative runs. It ingests a conversation
// and answers the three retrieval methods the evaluation exercises: recent
// context, a user profile sketch, and keyword search.
//
// Retrieval quality is intentionally simple (linear scans, substring and
// keyword matching). It exists so runs work end-to-end without external
// memory services, and as a floor for real frameworks to beat.
package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/gokugml/membench/core"
)

// Framework is the identifier the local store registers under.
const Framework = "local"

// Retrieval method identifiers of the local framework.
const (
	// MethodContext returns the most recent turns verbatim. This is the
	// framework's general-purpose (core) method.
	MethodContext = "context"
	// MethodProfile extracts first-person user statements into a profile
	// sketch.
	MethodProfile = "profile"
	// MethodSearch returns user turns ranked by keyword overlap with the
	// latest user message.
	MethodSearch = "search"
)

// defaultContextTurns bounds how much recent history the context method
// returns.
const defaultContextTurns = 6

// defaultSearchLimit bounds how many matching turns the search method
// returns.
const defaultSearchLimit = 3

// Store holds one conversation's ingested turns.
//
// Concurrency: protected by RWMutex so a store could be shared, though the
// adapters build a fresh store per retrieval to keep evaluations independent.
type Store struct {
	mu    sync.RWMutex
	turns core.Conversation
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Ingest appends the conversation's turns in order.
func (s *Store) Ingest(conversation core.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, conversation...)
}

// Context returns the last limit turns as a transcript. A non-positive limit
// falls back to the default window.
func (s *Store) Context(limit int) string {
	if limit <= 0 {
		limit = defaultContextTurns
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	start := len(s.turns) - limit
	if start < 0 {
		start = 0
	}
	return core.Conversation(s.turns[start:]).Transcript()
}

// profileMarkers are lowercase fragments that flag a user turn as a statement
// about the user themself.
var profileMarkers = []string{
	"i like", "i love", "i prefer", "i hate", "i dislike",
	"i am ", "i'm ", "i work", "i live", "i drink", "i eat",
	"i usually", "i always", "i never", "my ",
}

// Profile extracts first-person user statements into a bullet list. Returns
// an empty string when the conversation contains none, which downstream
// scoring treats as "nothing retrieved".
func (s *Store) Profile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var lines []string
	for _, turn := range core.Conversation(s.turns).UserTurns() {
		lower := strings.ToLower(turn.Content)
		for _, marker := range profileMarkers {
			if strings.Contains(lower, marker) {
				lines = append(lines, "- "+turn.Content)
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// Search returns up to limit user turns ranked by keyword overlap with the
// query. Linear scan; ties keep conversation order.
func (s *Store) Search(query string, limit int) string {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	queryWords := keywords(query)
	if len(queryWords) == 0 {
		return ""
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type hit struct {
		content string
		overlap int
	}
	var hits []hit
	for _, turn := range core.Conversation(s.turns).UserTurns() {
		overlap := 0
		turnWords := keywords(turn.Content)
		for word := range queryWords {
			if turnWords[word] {
				overlap++
			}
		}
		if overlap > 0 {
			hits = append(hits, hit{content: turn.Content, overlap: overlap})
		}
	}

	// Stable selection of the best hits without reordering equals.
	var lines []string
	for len(lines) < limit && len(hits) > 0 {
		best := 0
		for i := 1; i < len(hits); i++ {
			if hits[i].overlap > hits[best].overlap {
				best = i
			}
		}
		lines = append(lines, hits[best].content)
		hits = append(hits[:best], hits[best+1:]...)
	}
	return strings.Join(lines, "\n")
}

// stopWords are excluded from keyword matching.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"i": true, "you": true, "it": true, "is": true, "are": true,
	"to": true, "of": true, "in": true, "on": true, "at": true,
	"do": true, "did": true, "what": true, "when": true, "where": true,
	"my": true, "me": true, "was": true, "were": true,
}

func keywords(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	out := make(map[string]bool, len(words))
	for _, w := range words {
		if len(w) > 1 && !stopWords[w] {
			out[w] = true
		}
	}
	return out
}

// Adapter returns the retrieval adapter for one of the local methods. Each
// retrieval ingests the conversation into a fresh store, so no state leaks
// between triples.
func Adapter(method string) (core.MethodAdapter, error) {
	switch method {
	case MethodContext:
		return core.MethodAdapterFunc(func(ctx context.Context, conversation core.Conversation) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			s := New()
			s.Ingest(conversation)
			return s.Context(defaultContextTurns), nil
		}), nil
	case MethodProfile:
		return core.MethodAdapterFunc(func(ctx context.Context, conversation core.Conversation) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			s := New()
			s.Ingest(conversation)
			return s.Profile(), nil
		}), nil
	case MethodSearch:
		return core.MethodAdapterFunc(func(ctx context.Context, conversation core.Conversation) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			s := New()
			s.Ingest(conversation)
			query := ""
			if user := conversation.UserTurns(); len(user) > 0 {
				query = user[len(user)-1].Content
			}
			return s.Search(query, defaultSearchLimit), nil
		}), nil
	default:
		return nil, core.NewConfigurationError("unknown local retrieval method %q", method)
	}
}

// RegisterAll registers the local framework's three methods, designating
// context as its core method.
func RegisterAll(reg *core.Registry) error {
	for _, method := range []string{MethodContext, MethodProfile, MethodSearch} {
		adapter, err := Adapter(method)
		if err != nil {
			return err
		}
		var optFns []func(o *core.RegisterOptions)
		if method == MethodContext {
			optFns = append(optFns, func(o *core.RegisterOptions) { o.Core = true })
		}
		if err := reg.Register(Framework, method, adapter, optFns...); err != nil {
			return err
		}
	}
	return nil
}
