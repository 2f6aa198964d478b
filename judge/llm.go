// Package judge implements the similarity scorer: an LLM-backed semantic
// judgment of retrieved text against an expected-content checklist on the
// fixed 0-10 scale. The judge is stateless across calls; each judgment
// depends only on its inputs.
package judge

import (
	"context"
	"strings"

	"github.com/gokugml/membench/core"
	"github.com/gokugml/membench/model"
)

// emptyRationale is the deterministic rationale attached to empty-retrieval
// judgments, which never reach the backing model.
const emptyRationale = "retrieved content is empty; scored 0 without judging"

// LLMJudge scores retrieved text against an expected checklist by prompting
// a completion model with the fixed rubric and parsing the integer score out
// of its reply. The full reply is retained as the judgment rationale.
type LLMJudge struct {
	model model.Model
}

var _ core.Judge = (*LLMJudge)(nil)

// NewLLMJudge creates a judge backed by the given completion model.
func NewLLMJudge(m model.Model) *LLMJudge {
	return &LLMJudge{model: m}
}

// Judge implements core.Judge.
//
// Empty retrieved text short-circuits to score 0 without invoking the model:
// the empty case is deterministic and a judging call would be wasted cost.
// Failures of the model call and responses that do not parse to an integer
// in [0,10] return a *core.JudgeError.
func (j *LLMJudge) Judge(ctx context.Context, retrieved string, checklist []string) (core.Judgment, error) {
	if len(checklist) == 0 {
		return core.Judgment{}, &core.JudgeError{Reason: "empty expected-content checklist"}
	}

	if strings.TrimSpace(retrieved) == "" {
		return core.Judgment{Score: 0, Rationale: emptyRationale}, nil
	}

	prompt, err := renderUserPrompt(retrieved, checklist)
	if err != nil {
		return core.Judgment{}, &core.JudgeError{Reason: "prompt rendering failed", Err: err}
	}

	resp, err := j.model.Complete(ctx, model.Request{
		System:   systemPrompt,
		Messages: []model.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return core.Judgment{}, &core.JudgeError{Reason: "judging call failed", Err: err}
	}

	score, err := extractScore(resp.Text)
	if err != nil {
		return core.Judgment{}, &core.JudgeError{Reason: "unparseable judge response", Err: err}
	}

	return core.Judgment{Score: score, Rationale: resp.Text}, nil
}
