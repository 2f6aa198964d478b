package core

import "context"

// ScoreScale is the span of the judging scale. Scores are integers in
// [0, ScoreScale].
const ScoreScale = 10

// Judgment is the strictly typed result of one similarity judgment.
type Judgment struct {
	Score     int    `json:"score"` // Integer in [0, ScoreScale]
	Rationale string `json:"rationale"`
}

// Judge scores retrieved text against an expected-content checklist on the
// fixed 0-10 scale. Implementations must be stateless across calls: no score
// may depend on prior judgments within the same run.
//
// Failures of the judging call itself (service fault, unparseable response)
// return a *JudgeError. An empty or irrelevant retrieval is not an error; it
// yields a low score per the rubric.
type Judge interface {
	Judge(ctx context.Context, retrieved string, checklist []string) (Judgment, error)
}
