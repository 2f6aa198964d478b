package testutil

import (
	"github.com/gokugml/membench/core"
)

// EvaluationBuilder helps construct evaluation records with fluent chaining
// for tests. Example:
//
//	ev := NewEvaluationBuilder("memobase", "context", "s1").Scored(8).Build()
type EvaluationBuilder struct {
	key       core.Key
	text      string
	retStatus core.CallStatus
	reason    string
	score     *core.ScoreRecord
}

// NewEvaluationBuilder creates a builder for the given triple. The default
// record is a successful retrieval with placeholder text and no judgment.
func NewEvaluationBuilder(framework, method, scenario string) *EvaluationBuilder {
	return &EvaluationBuilder{
		key:       core.Key{Framework: framework, Method: method, Scenario: scenario},
		text:      "retrieved",
		retStatus: core.StatusOK,
	}
}

// Text sets the retrieved text (chainable).
func (b *EvaluationBuilder) Text(text string) *EvaluationBuilder {
	b.text = text
	return b
}

// Scored marks the record as judged with the given valid score (chainable).
func (b *EvaluationBuilder) Scored(score int) *EvaluationBuilder {
	b.score = &core.ScoreRecord{Key: b.key, Score: score, Rationale: "matched", Status: core.StatusOK}
	return b
}

// Rationale sets the judge rationale on a scored record (chainable).
func (b *EvaluationBuilder) Rationale(rationale string) *EvaluationBuilder {
	if b.score != nil {
		b.score.Rationale = rationale
	}
	return b
}

// RetrievalFailed marks the retrieval as failed with the given status; no
// judgment is attached (chainable).
func (b *EvaluationBuilder) RetrievalFailed(status core.CallStatus, reason string) *EvaluationBuilder {
	b.retStatus = status
	b.reason = reason
	b.text = ""
	b.score = nil
	return b
}

// JudgeFailed marks the judgment as failed with the given status (chainable).
func (b *EvaluationBuilder) JudgeFailed(status core.CallStatus, reason string) *EvaluationBuilder {
	b.score = &core.ScoreRecord{Key: b.key, Status: status, Reason: reason}
	return b
}

// Build returns the assembled evaluation record.
func (b *EvaluationBuilder) Build() core.Evaluation {
	ev := core.Evaluation{
		Key: b.key,
		Retrieval: core.RetrievalRecord{
			Key:    b.key,
			Text:   b.text,
			Status: b.retStatus,
			Reason: b.reason,
		},
	}
	if b.score != nil {
		score := *b.score
		ev.Score = &score
	}
	return ev
}
