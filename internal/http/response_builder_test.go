package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONResponseBuilder_Success(t *testing.T) {
	rr := httptest.NewRecorder()
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("X-Test", "1").
		Message("done").
		Data([]int{}).
		Write(rr)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "1", rr.Header().Get("X-Test"))
	assert.JSONEq(t, `{"status":"success","message":"done","data":[]}`, rr.Body.String())
}

func TestJSONResponseBuilder_OmitsEmptyFields(t *testing.T) {
	rr := httptest.NewRecorder()
	NewJSONResponse().Message("ok").Write(rr)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"status": "success", "message": "ok"}, body)
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		builder *JSONResponseBuilder
		code    int
		message string
	}{
		{"bad request", BadRequestError("bad"), http.StatusBadRequest, "bad"},
		{"not found", NotFoundError("missing"), http.StatusNotFound, "missing"},
		{"internal", InternalServerError("oops"), http.StatusInternalServerError, "oops"},
		{"method", MethodNotAllowedError("GET"), http.StatusMethodNotAllowed, "Method not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.builder.Write(rr)

			assert.Equal(t, tt.code, rr.Code)
			var body Envelope
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, StatusError, body.Status)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestBodyOverridesEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	NewJSONResponse().Message("ignored").Body(map[string]string{"status": "ok"}).Write(rr)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
