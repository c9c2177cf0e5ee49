// Package interview turns a topic into model-generated interview questions.
package interview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"smartlife/internal/core"
	"smartlife/internal/llm"
)

// MaxTopicLength bounds the topic sent to the model, in characters.
const MaxTopicLength = 200

// Result is what a single generation returns.
type Result struct {
	Topic      string
	Difficulty core.Difficulty
	Questions  []core.InterviewQuestion
	// Parsed is how many questions the reply contained before filtering.
	Parsed  int
	Skipped int
	Model   string
}

type Generator struct {
	client   llm.Client
	provider string
}

// NewGenerator wraps client; provider names it in upstream errors.
func NewGenerator(client llm.Client, provider string) *Generator {
	if provider == "" {
		provider = "llm"
	}
	return &Generator{client: client, provider: provider}
}

// Generate asks the model for questions about topic and keeps those that
// match difficulty. The model is not called when the input is invalid.
func (g *Generator) Generate(ctx context.Context, topic string, difficulty core.Difficulty) (Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Result{}, core.NewValidationError("topic", "Topic cannot be empty")
	}
	if len([]rune(topic)) > MaxTopicLength {
		return Result{}, core.NewValidationError("topic",
			fmt.Sprintf("Topic must be at most %d characters", MaxTopicLength))
	}
	if difficulty == "" {
		difficulty = core.AllDifficulties
	}
	if _, err := core.ParseDifficulty(string(difficulty)); err != nil {
		return Result{}, err
	}

	start := time.Now()
	resp, err := g.client.Generate(ctx, BuildMessages(topic, difficulty))
	if err != nil {
		return Result{}, &core.UpstreamServiceError{Provider: g.provider, Err: err}
	}

	parsed := Parse(resp.Content)
	questions := make([]core.InterviewQuestion, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		if difficulty.Matches(q.Difficulty) {
			questions = append(questions, q)
		}
	}

	if parsed.Skipped > 0 || len(parsed.Questions) < parsed.Expected {
		slog.WarnContext(ctx, "Model reply did not contain the expected questions",
			"topic", topic,
			"expected", parsed.Expected,
			"parsed", len(parsed.Questions),
			"skipped", parsed.Skipped)
	}

	slog.InfoContext(ctx, "Interview questions generated",
		"topic", topic,
		"difficulty", difficulty,
		"returned", len(questions),
		"model", resp.Model,
		"total_tokens", resp.TotalTokens,
		"duration_ms", time.Since(start).Milliseconds())

	return Result{
		Topic:      topic,
		Difficulty: difficulty,
		Questions:  questions,
		Parsed:     len(parsed.Questions),
		Skipped:    parsed.Skipped,
		Model:      resp.Model,
	}, nil
}
