package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlife/internal/core"
	"smartlife/internal/llm"
)

type scriptedClient struct {
	reply string
	err   error
	calls int
	last  []llm.Message
}

func (c *scriptedClient) Generate(_ context.Context, msgs []llm.Message) (llm.Response, error) {
	c.calls++
	c.last = msgs
	if c.err != nil {
		return llm.Response{}, c.err
	}
	return llm.Response{Content: c.reply, Model: "test-model", TotalTokens: 42}, nil
}

func TestGenerator_All(t *testing.T) {
	client := &scriptedClient{reply: fiveBlocks}
	g := NewGenerator(client, "openai")

	res, err := g.Generate(context.Background(), "  Go concurrency ", core.AllDifficulties)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "Go concurrency", res.Topic)
	assert.Equal(t, core.AllDifficulties, res.Difficulty)
	assert.Len(t, res.Questions, 5)
	assert.Equal(t, 5, res.Parsed)
	assert.Equal(t, "test-model", res.Model)
	assert.Contains(t, client.last[0].Content, "about Go concurrency")
}

func TestGenerator_DefaultsToAll(t *testing.T) {
	g := NewGenerator(&scriptedClient{reply: fiveBlocks}, "")
	res, err := g.Generate(context.Background(), "Go", "")
	require.NoError(t, err)
	assert.Equal(t, core.AllDifficulties, res.Difficulty)
	assert.Len(t, res.Questions, 5)
}

func TestGenerator_FiltersByDifficulty(t *testing.T) {
	g := NewGenerator(&scriptedClient{reply: fiveBlocks}, "openai")

	res, err := g.Generate(context.Background(), "Go", core.Advanced)
	require.NoError(t, err)
	require.Len(t, res.Questions, 2)
	for _, q := range res.Questions {
		assert.Equal(t, core.Advanced, q.Difficulty)
	}
	assert.Equal(t, 5, res.Parsed)
}

func TestGenerator_RejectsBadInputWithoutCallingModel(t *testing.T) {
	tests := []struct {
		name       string
		topic      string
		difficulty core.Difficulty
		msg        string
	}{
		{"empty topic", "", core.AllDifficulties, "Topic cannot be empty"},
		{"blank topic", "   ", core.AllDifficulties, "Topic cannot be empty"},
		{"long topic", strings.Repeat("x", MaxTopicLength+1), core.AllDifficulties, "Topic must be at most 200 characters"},
		{"bad difficulty", "Go", "Expert", "Invalid difficulty level. Must be one of: Beginner, Intermediate, Advanced, All"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &scriptedClient{reply: fiveBlocks}
			_, err := NewGenerator(client, "openai").Generate(context.Background(), tt.topic, tt.difficulty)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrValidation)
			assert.Equal(t, tt.msg, err.Error())
			assert.Zero(t, client.calls)
		})
	}
}

func TestGenerator_UpstreamFailure(t *testing.T) {
	cause := errors.New("connection reset")
	g := NewGenerator(&scriptedClient{err: cause}, "openai")

	_, err := g.Generate(context.Background(), "Go", core.AllDifficulties)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUpstream)
	assert.ErrorIs(t, err, cause)

	var upstream *core.UpstreamServiceError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "openai", upstream.Provider)
	assert.NotEmpty(t, err.Error())
}

func TestGenerator_UnparseableReplyIsEmpty(t *testing.T) {
	g := NewGenerator(&scriptedClient{reply: "Sorry, I can't do that."}, "openai")

	res, err := g.Generate(context.Background(), "Go", core.AllDifficulties)
	require.NoError(t, err)
	assert.NotNil(t, res.Questions)
	assert.Empty(t, res.Questions)
}
