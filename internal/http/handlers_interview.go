package http

import (
	"fmt"
	"net/http"

	"smartlife/internal/core"
	"smartlife/internal/log"
)

// handleGenerateQuestions serves both question routes. The {difficulty}
// path value is empty on the unfiltered route.
func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	topic, err := parseTopic(w, r)
	if err != nil {
		s.writeError(w, r, log.OpGenerate, err)
		return
	}

	difficulty := r.PathValue("difficulty")
	result, err := s.questions.Generate(r.Context(), topic, core.Difficulty(difficulty))
	if err != nil {
		s.writeError(w, r, log.OpGenerate, err)
		return
	}

	msg := fmt.Sprintf("Generated %d interview questions for '%s'", len(result.Questions), result.Topic)
	resp := NewJSONResponse().Topic(result.Topic).Data(result.Questions)
	if difficulty != "" {
		msg = fmt.Sprintf("%s (Difficulty: %s)", msg, result.Difficulty)
		resp.Difficulty(string(result.Difficulty))
	}
	resp.Message(msg).Write(w)
}
