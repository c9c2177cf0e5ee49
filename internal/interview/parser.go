package interview

import (
	"encoding/json"
	"regexp"
	"strings"

	"smartlife/internal/core"
)

// ParseResult is the outcome of reading one model reply.
type ParseResult struct {
	Questions []core.InterviewQuestion
	Expected  int
	// Skipped counts blocks that looked like questions but were incomplete.
	Skipped int
}

var (
	codeFence  = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\n(.*?)\n?```\\s*$")
	listMarker = regexp.MustCompile(`^(?:[-*•]\s+|\d+[.)]\s+|#+\s+)`)
	labelLine  = regexp.MustCompile(`(?i)^(question|answer|difficulty(?:\s+level)?|level)\s*(?:\d+\s*)?[:\-–]\s*(.*)$`)
	shortLabel = regexp.MustCompile(`(?i)^(q|a)\s*(?:\d+\s*)?:\s*(.*)$`)
	heading    = regexp.MustCompile(`(?i)^question\s+\d+[.:]?$`)
	separator  = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
)

// Parse extracts questions from a model reply. It understands the
// Question/Answer/Difficulty block layout and, as a fallback, a JSON array.
// Unusable input yields an empty result, never an error.
func Parse(raw string) ParseResult {
	res := ParseResult{Questions: []core.InterviewQuestion{}, Expected: QuestionsPerRequest}

	text := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	if text == "" {
		return res
	}

	if strings.HasPrefix(text, "[") {
		if qs, skipped, ok := parseJSON(text); ok {
			res.Questions, res.Skipped = qs, skipped
			res.cap()
			return res
		}
	}

	res.Questions, res.Skipped = parseBlocks(text)
	res.cap()
	return res
}

func (r *ParseResult) cap() {
	if len(r.Questions) > r.Expected {
		r.Questions = r.Questions[:r.Expected]
	}
}

type jsonQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}

func parseJSON(text string) ([]core.InterviewQuestion, int, bool) {
	var items []jsonQuestion
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, 0, false
	}
	out := make([]core.InterviewQuestion, 0, len(items))
	skipped := 0
	for _, it := range items {
		if q, ok := build(it.Question, it.Answer, it.Difficulty); ok {
			out = append(out, q)
		} else {
			skipped++
		}
	}
	return out, skipped, true
}

type block struct {
	question, answer, difficulty strings.Builder
	current                      *strings.Builder
	touched                      bool
}

func parseBlocks(text string) ([]core.InterviewQuestion, int) {
	var (
		out     = make([]core.InterviewQuestion, 0, QuestionsPerRequest)
		skipped int
		cur     = &block{}
	)

	flush := func() {
		if !cur.touched {
			return
		}
		if q, ok := build(cur.question.String(), cur.answer.String(), cur.difficulty.String()); ok {
			out = append(out, q)
		} else {
			skipped++
		}
		cur = &block{}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if separator.MatchString(line) {
			flush()
			continue
		}

		clean := strings.TrimSpace(listMarker.ReplaceAllString(strings.ReplaceAll(line, "**", ""), ""))
		if heading.MatchString(clean) {
			flush()
			cur.current = &cur.question
			cur.touched = true
			continue
		}

		m := labelLine.FindStringSubmatch(clean)
		if m == nil {
			m = shortLabel.FindStringSubmatch(clean)
		}
		if m == nil {
			// Continuation of the previous field; text before any label is preamble.
			if cur.current != nil {
				cur.current.WriteString(" ")
				cur.current.WriteString(clean)
			}
			continue
		}

		switch strings.ToLower(m[1]) {
		case "question", "q":
			if cur.question.Len() > 0 {
				flush()
			}
			cur.current = &cur.question
		case "answer", "a":
			cur.current = &cur.answer
		default:
			cur.difficulty.Reset()
			cur.difficulty.WriteString(strings.TrimSpace(m[2]))
			cur.touched = true
			// A level is one word; later free text must not extend it.
			cur.current = nil
			continue
		}
		cur.touched = true
		cur.current.Reset()
		cur.current.WriteString(strings.TrimSpace(m[2]))
	}
	flush()

	return out, skipped
}

func build(question, answer, difficulty string) (core.InterviewQuestion, bool) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	level, ok := core.NormalizeDifficulty(difficulty)
	if question == "" || answer == "" || !ok {
		return core.InterviewQuestion{}, false
	}
	return core.InterviewQuestion{Question: question, Answer: answer, Difficulty: level}, true
}
