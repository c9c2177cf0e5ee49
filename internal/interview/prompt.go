package interview

import (
	"fmt"

	"smartlife/internal/core"
	"smartlife/internal/llm"
)

// QuestionsPerRequest is how many questions the model is asked for.
const QuestionsPerRequest = 5

// BuildMessages renders the system and user instructions for one request.
func BuildMessages(topic string, difficulty core.Difficulty) []llm.Message {
	levelRule := "Mix the difficulty levels across Beginner, Intermediate and Advanced."
	levelAsk := ""
	if difficulty != core.AllDifficulties {
		levelRule = fmt.Sprintf("Every question must be at the %s level.", difficulty)
		levelAsk = " " + string(difficulty) + "-level"
	}

	system := fmt.Sprintf(`You are an expert technical interviewer. Generate exactly %d interview questions about %s.

For each question, provide:
1. A clear, specific question that tests real understanding
2. A concise but complete answer (2-3 sentences)
3. The difficulty level (Beginner, Intermediate or Advanced)

%s

Use exactly this plain-text layout for each question and separate questions with a line containing only ---:

Question: <the question>
Answer: <the answer>
Difficulty: <Beginner|Intermediate|Advanced>
---

Keep the questions practical and relevant to real-world work with %s.`,
		QuestionsPerRequest, topic, levelRule, topic)

	user := fmt.Sprintf("Generate %d%s interview questions about %s with clear, concise answers.",
		QuestionsPerRequest, levelAsk, topic)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}
}
