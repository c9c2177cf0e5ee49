package http

import (
	"errors"
	"net/http"

	"smartlife/internal/core"
	"smartlife/internal/log"
)

// writeError maps a domain error onto the error envelope. Storage and
// unknown failures are logged in full but answered with a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	logger := log.FromContext(ctx)
	structured := log.NewStructuredLogger(logger)

	var (
		validationErr *core.ValidationError
		notFoundErr   *core.NotFoundError
		upstreamErr   *core.UpstreamServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		logger.DebugContext(ctx, "Request rejected",
			log.FieldOperation, op, log.FieldErrorType, log.ErrorTypeValidation,
			"field", validationErr.Field, log.FieldError, validationErr.Msg)
		BadRequestError(validationErr.Msg).Write(w)

	case errors.As(err, &notFoundErr):
		logger.DebugContext(ctx, "Resource not found",
			log.FieldOperation, op, log.FieldErrorType, log.ErrorTypeNotFound, log.FieldError, err)
		NotFoundError(notFoundErr.Error()).Write(w)

	case errors.As(err, &upstreamErr):
		structured.LogError(ctx, "Upstream service failed", err, log.ErrorTypeUpstream, op, nil)
		InternalServerError(upstreamErr.Error()).Write(w)

	case errors.Is(err, core.ErrStorage):
		structured.LogError(ctx, "Storage operation failed", err, log.ErrorTypeDatabase, op, nil)
		InternalServerError("Internal server error").Write(w)

	default:
		structured.LogError(ctx, "Unexpected error", err, log.ErrorTypeInternal, op, nil)
		InternalServerError("Internal server error").Write(w)
	}
}
