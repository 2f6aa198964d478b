package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockModel_CannedResponse(t *testing.T) {
	m := NewMockModel("judge-mock")

	m.AddResponse("coffee", "Score: 9\nRationale: captures preference accurately")

	resp, err := m.Complete(context.Background(), Request{
		System:   "You are a judge.",
		Messages: []Message{{Role: "user", Content: "Retrieved: user drinks coffee daily"}},
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Score: 9")
	assert.Equal(t, 1, m.Calls())
}

func TestMockModel_Fallback(t *testing.T) {
	m := NewMockModel("judge-mock")
	m.SetFallback("Score: 3\nRationale: low relevance")

	resp, err := m.Complete(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "something unrelated"}},
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Score: 3")
}

func TestMockModel_ErrorInjection(t *testing.T) {
	m := NewMockModel("judge-mock")
	boom := errors.New("service unavailable")
	m.SetError(boom)

	_, err := m.Complete(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.Calls())
}

func TestMockModel_RequiresMessages(t *testing.T) {
	m := NewMockModel("judge-mock")
	_, err := m.Complete(context.Background(), Request{})
	assert.Error(t, err)
}

func TestMockModel_ContextCancelled(t *testing.T) {
	m := NewMockModel("judge-mock")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Complete(ctx, Request{Messages: []Message{{Role: "user", Content: "hi"}}})
	assert.ErrorIs(t, err, context.Canceled)
}
