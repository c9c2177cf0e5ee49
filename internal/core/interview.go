package core

import (
	"fmt"
	"strings"
)

// Difficulty is the level attached to a generated interview question.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
	// AllDifficulties requests questions at every level and disables filtering.
	AllDifficulties Difficulty = "All"
)

// Difficulties lists the accepted path values in display order.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced, AllDifficulties}

// InterviewQuestion is one generated question with its answer.
type InterviewQuestion struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
}

// ParseDifficulty accepts exactly one of the Difficulties values.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if string(d) == s {
			return d, nil
		}
	}
	names := make([]string, len(Difficulties))
	for i, d := range Difficulties {
		names[i] = string(d)
	}
	return "", NewValidationError("difficulty",
		fmt.Sprintf("Invalid difficulty level. Must be one of: %s", strings.Join(names, ", ")))
}

// NormalizeDifficulty maps loosely formatted model output ("beginner", "ADVANCED.")
// onto a concrete level. "All" is not a valid level for a single question.
func NormalizeDifficulty(s string) (Difficulty, bool) {
	s = strings.Trim(strings.TrimSpace(s), ".*_:;,!()[] ")
	for _, d := range []Difficulty{Beginner, Intermediate, Advanced} {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// Matches reports whether a question at level q passes a request for d.
func (d Difficulty) Matches(q Difficulty) bool {
	return d == AllDifficulties || strings.EqualFold(string(d), string(q))
}
