package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"smartlife/internal/log"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

var endpoints = map[string]map[string]string{
	"expenses": {
		"add":     "POST /api/expenses",
		"get_all": "GET /api/expenses",
		"get":     "GET /api/expenses/{id}",
		"delete":  "DELETE /api/expenses/{id}",
	},
	"interview": {
		"generate_questions":               "POST /api/interview/questions",
		"generate_questions_by_difficulty": "POST /api/interview/questions/{difficulty}",
	},
}

// handleRoot is the liveness indicator and endpoint index.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	resp := NewJSONResponse().Message("SmartLife AI Backend is running!")
	resp.envelope.Version = Version
	resp.envelope.Endpoints = endpoints
	resp.Write(w)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	metrics := s.Metrics()
	NewJSONResponse().Body(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
		"requests": map[string]int64{
			"total":         metrics.TotalRequests,
			"server_errors": metrics.ServerErrors,
		},
	}).Write(w)
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]any)
	fail := func(check string, err error) {
		s.logger.WarnContext(ctx, "Readiness check failed", "check", check, log.FieldError, err)
		checks[check] = fmt.Sprintf("failed: %v", err)
	}

	if s.ready == nil {
		checks["database"] = "not_configured"
		writeReadiness(w, checks, false)
		return
	}

	if err := s.ready.Ping(ctx); err != nil {
		fail("database", err)
		writeReadiness(w, checks, false)
		return
	}
	checks["database"] = "ok"

	ok := true
	version, dirty, err := s.ready.SchemaVersion()
	switch {
	case err != nil:
		fail("schema", err)
		ok = false
	case dirty:
		checks["schema"] = fmt.Sprintf("dirty at version %d", version)
		ok = false
	default:
		checks["schema_version"] = version
	}

	count, err := s.ready.CountExpenses(ctx)
	if err != nil {
		fail("expenses", err)
		ok = false
	} else {
		checks["expenses"] = count
	}

	writeReadiness(w, checks, ok)
}

func writeReadiness(w http.ResponseWriter, checks map[string]any, ok bool) {
	status, code := "ready", http.StatusOK
	if !ok {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	NewJSONResponse().Status(code).Body(map[string]any{
		"status": status,
		"checks": checks,
	}).Write(w)
}

var routeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// handleFallback answers requests no route matched: 405 when the path
// exists under another method, 404 otherwise.
func (s *Server) handleFallback(w http.ResponseWriter, r *http.Request) {
	var allowed []string
	for _, m := range routeMethods {
		if m == r.Method {
			continue
		}
		alt := r.Clone(r.Context())
		alt.Method = m
		if _, pattern := s.mux.Handler(alt); pattern != "" && pattern != fallbackPattern {
			allowed = append(allowed, m)
		}
	}

	if len(allowed) > 0 {
		MethodNotAllowedError(strings.Join(allowed, ", ")).Write(w)
		return
	}
	NotFoundError("Endpoint not found").Write(w)
}
