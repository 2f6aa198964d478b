package core

import "time"

// CallStatus classifies the outcome of a single retrieval or judge call.
type CallStatus string

const (
	// StatusOK marks a call that completed and produced a usable result.
	StatusOK CallStatus = "ok"
	// StatusError marks a call that failed (transport, auth, service fault,
	// unparseable judge response). Failed calls are counted in failure rates
	// and excluded from score means.
	StatusError CallStatus = "error"
	// StatusTimeout marks a call cancelled by the run-level deadline.
	StatusTimeout CallStatus = "timeout"
)

// Key identifies one evaluation triple. Every retrieval and judge call within
// a run is addressed by exactly one Key; the engine caches results per Key so
// the same triple is never invoked twice.
type Key struct {
	Framework string `json:"framework"`
	Method    string `json:"method"`
	Scenario  string `json:"scenario"`
}

// MethodKey projects the framework/method pair out of the triple.
func (k Key) MethodKey() MethodKey {
	return MethodKey{Framework: k.Framework, Method: k.Method}
}

// MethodKey identifies a retrieval method of a framework.
type MethodKey struct {
	Framework string `json:"framework"`
	Method    string `json:"method"`
}

// RetrievalRecord is the immutable outcome of one adapter call. Re-running a
// triple produces a new record; existing records are never mutated.
type RetrievalRecord struct {
	Key     Key           `json:"key"`
	Text    string        `json:"text,omitempty"` // Retrieved content, possibly empty
	Status  CallStatus    `json:"status"`
	Reason  string        `json:"reason,omitempty"` // Failure description when Status != ok
	Elapsed time.Duration `json:"elapsed"`
}

// ScoreRecord is the immutable outcome of one judge call.
//
// Invariant: Score is meaningful only when Status == StatusOK. Failed records
// carry the sentinel score 0 and must never be averaged into aggregates as a
// low-quality-but-valid result; the aggregator reports them through failure
// counts instead.
type ScoreRecord struct {
	Key       Key        `json:"key"`
	Score     int        `json:"score"` // Integer in [0,10] when Status == ok
	Rationale string     `json:"rationale,omitempty"`
	Status    CallStatus `json:"status"`
	Reason    string     `json:"reason,omitempty"`
}

// Evaluation bundles the retrieval and scoring outcome of one triple. Score
// is nil when the judge was never invoked (retrieval failed or timed out),
// which is distinct from a judge call that failed.
type Evaluation struct {
	Key       Key             `json:"key"`
	Retrieval RetrievalRecord `json:"retrieval"`
	Score     *ScoreRecord    `json:"score,omitempty"`
}

// Scored reports whether the triple produced a valid judged score.
func (e Evaluation) Scored() bool {
	return e.Score != nil && e.Score.Status == StatusOK
}

// Failed reports whether any stage of the triple failed or timed out.
func (e Evaluation) Failed() bool {
	if e.Retrieval.Status != StatusOK {
		return true
	}
	return e.Score != nil && e.Score.Status != StatusOK
}
