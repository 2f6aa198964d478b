package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticAdapter(text string) MethodAdapter {
	return MethodAdapterFunc(func(context.Context, Conversation) (string, error) {
		return text, nil
	})
}

func TestRegistry_RegistrationOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("memobase", "context", staticAdapter("a"), func(o *RegisterOptions) { o.Core = true }))
	require.NoError(t, r.Register("memobase", "profile", staticAdapter("b")))
	require.NoError(t, r.Register("memu", "memory_items", staticAdapter("c"), func(o *RegisterOptions) { o.Core = true }))
	require.NoError(t, r.Register("memu", "clustered", staticAdapter("d")))

	assert.Equal(t, []MethodKey{
		{Framework: "memobase", Method: "context"},
		{Framework: "memobase", Method: "profile"},
		{Framework: "memu", Method: "memory_items"},
		{Framework: "memu", Method: "clustered"},
	}, r.Methods())

	assert.Equal(t, []string{"memobase", "memu"}, r.Frameworks())
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("memu", "memory_items", staticAdapter("a")))

	err := r.Register("memu", "memory_items", staticAdapter("b"))
	assert.ErrorIs(t, err, ErrDuplicateRegistration)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_CoreMethod(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("memobase", "profile", staticAdapter("a")))
	require.NoError(t, r.Register("memobase", "context", staticAdapter("b"), func(o *RegisterOptions) { o.Core = true }))

	key, ok := r.CoreMethod("memobase")
	require.True(t, ok)
	assert.Equal(t, MethodKey{Framework: "memobase", Method: "context"}, key)

	_, ok = r.CoreMethod("unknown")
	assert.False(t, ok)
}

func TestRegistry_Weights(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("memobase", "context", staticAdapter("a"), func(o *RegisterOptions) { o.Weight = 2.0 }))
	require.NoError(t, r.Register("memobase", "profile", staticAdapter("b")))

	weights := r.Weights()
	assert.Equal(t, 2.0, weights[MethodKey{Framework: "memobase", Method: "context"}])
	assert.Equal(t, 1.0, weights[MethodKey{Framework: "memobase", Method: "profile"}])
}

func TestRegistry_AdapterLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("memu", "memory_items", staticAdapter("hello")))

	a, err := r.Adapter(MethodKey{Framework: "memu", Method: "memory_items"})
	require.NoError(t, err)
	text, err := a.Retrieve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	_, err = r.Adapter(MethodKey{Framework: "memu", Method: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEvaluation_ScoredAndFailed(t *testing.T) {
	key := Key{Framework: "memu", Method: "memory_items", Scenario: "s1"}

	ok := Evaluation{
		Key:       key,
		Retrieval: RetrievalRecord{Key: key, Text: "recalled", Status: StatusOK},
		Score:     &ScoreRecord{Key: key, Score: 8, Status: StatusOK},
	}
	assert.True(t, ok.Scored())
	assert.False(t, ok.Failed())

	retrievalTimeout := Evaluation{
		Key:       key,
		Retrieval: RetrievalRecord{Key: key, Status: StatusTimeout, Reason: "run deadline exceeded"},
	}
	assert.False(t, retrievalTimeout.Scored())
	assert.True(t, retrievalTimeout.Failed())
	assert.Nil(t, retrievalTimeout.Score)

	judgeError := Evaluation{
		Key:       key,
		Retrieval: RetrievalRecord{Key: key, Text: "recalled", Status: StatusOK},
		Score:     &ScoreRecord{Key: key, Score: 0, Status: StatusError, Reason: "unparseable response"},
	}
	assert.False(t, judgeError.Scored())
	assert.True(t, judgeError.Failed())
}

func TestRetrievalError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &RetrievalError{Reason: "transport", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "transport")

	jerr := &JudgeError{Reason: "unparseable response"}
	assert.Contains(t, jerr.Error(), "unparseable")
}

func TestCallLimiter(t *testing.T) {
	cl := NewCallLimiter(2)
	assert.NoError(t, cl.Acquire())
	assert.NoError(t, cl.Acquire())
	assert.Error(t, cl.Acquire())
	assert.Equal(t, 3, cl.Count())

	unlimited := NewCallLimiter(0)
	for i := 0; i < 100; i++ {
		assert.NoError(t, unlimited.Acquire())
	}
	assert.Equal(t, -1, unlimited.Remaining())
}

func TestConversation_Transcript(t *testing.T) {
	conv := Conversation{
		{Role: "user", Content: "I drink coffee every morning"},
		{Role: "assistant", Content: "Noted!"},
	}
	assert.Equal(t, "user: I drink coffee every morning\nassistant: Noted!", conv.Transcript())
	assert.Len(t, conv.UserTurns(), 1)
}
