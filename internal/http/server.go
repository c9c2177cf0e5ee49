package http

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"smartlife/internal/log"
	"smartlife/internal/middleware/security"
	"smartlife/internal/middleware/trace"
)

const fallbackPattern = "/"

// Server timeouts. Writes allow for model latency on the interview routes.
const (
	ReadTimeout       = 10 * time.Second
	ReadHeaderTimeout = 5 * time.Second
	WriteTimeout      = 60 * time.Second
	IdleTimeout       = 60 * time.Second
)

type Server struct {
	http.Server
	mux       *http.ServeMux
	expenses  ExpenseService
	questions QuestionGenerator
	ready     ReadinessChecker
	logger    *log.Logger
	tracer    *trace.Middleware
	startedAt time.Time
}

// NewServer builds the API server. ready may be nil, in which case /readyz
// reports not_ready.
func NewServer(addr string, expenses ExpenseService, questions QuestionGenerator, ready ReadinessChecker, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		mux:       http.NewServeMux(),
		expenses:  expenses,
		questions: questions,
		ready:     ready,
		logger:    logger,
		startedAt: time.Now(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /readyz", s.handleReady)

	s.mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	s.mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	s.mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	s.mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	s.mux.HandleFunc("POST /api/interview/questions", s.handleGenerateQuestions)
	s.mux.HandleFunc("POST /api/interview/questions/{difficulty}", s.handleGenerateQuestions)

	s.mux.HandleFunc(fallbackPattern, s.handleFallback)

	ipDetector := security.NewDetector()
	s.tracer = trace.NewMiddleware(logger, ipDetector.ExtractClientIP)
	cors := security.NewCORSMiddleware(security.DefaultCORSConfig())
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	var handler http.Handler = s.mux
	handler = headers.Middleware(handler)
	handler = cors.Middleware(handler)
	handler = s.tracer.Middleware(handler)
	handler = s.recoverMiddleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       ReadTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	return s
}

// recoverMiddleware turns a handler panic into a 500 envelope.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.logger.ErrorContext(r.Context(), "Handler panic recovered",
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path,
				log.FieldRequestID, w.Header().Get(trace.HeaderRequestID),
				"panic", rec,
				"stack", string(debug.Stack()))
			InternalServerError("Internal server error").Write(w)
		}()
		next.ServeHTTP(w, r)
	})
}

// Metrics returns the request counters collected by the tracing middleware.
func (s *Server) Metrics() trace.Metrics {
	return s.tracer.GetMetrics()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
	return s.Server.Shutdown(ctx)
}
