package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"smartlife/internal/core"
)

// MaxBodyBytes limits request bodies.
const MaxBodyBytes = 1 << 20

const (
	msgNoJSON      = "No JSON data provided"
	msgInvalidJSON = "Invalid JSON body"
	msgTooLarge    = "Request body too large"
	msgTopicNeeded = "Topic is required"
	msgInvalidID   = "Invalid expense ID"
)

// jsonObject is a decoded request body with values kept raw until a
// handler asks for them.
type jsonObject map[string]json.RawMessage

// decodeJSONObject reads the request body as a JSON object. A missing body,
// null or {} is reported as "no data".
func decodeJSONObject(w http.ResponseWriter, r *http.Request) (jsonObject, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, core.NewValidationError("body", msgTooLarge)
		}
		return nil, core.NewValidationError("body", msgInvalidJSON)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, core.NewValidationError("body", msgNoJSON)
	}

	var obj jsonObject
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, core.NewValidationError("body", msgInvalidJSON)
	}
	if len(obj) == 0 {
		return nil, core.NewValidationError("body", msgNoJSON)
	}
	return obj, nil
}

// Has reports whether key was present in the body, even as null.
func (o jsonObject) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Get returns the value for key rendered as a string. Numbers keep their
// literal text so amounts reach decimal parsing unrounded.
func (o jsonObject) Get(key string) string {
	raw, ok := o[key]
	if !ok {
		return ""
	}
	return sanitizeInput(stringValue(raw))
}

func stringValue(raw json.RawMessage) string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return string(raw)
	}
}

// sanitizeInput drops control characters other than tab and newlines.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// parseExpenseInput extracts the create-expense fields from a JSON body.
func parseExpenseInput(w http.ResponseWriter, r *http.Request) (core.ExpenseInput, error) {
	obj, err := decodeJSONObject(w, r)
	if err != nil {
		return core.ExpenseInput{}, err
	}
	return core.ExpenseInput{
		Amount:   strings.TrimSpace(obj.Get("amount")),
		Category: obj.Get("category"),
		Note:     obj.Get("note"),
		Date:     strings.TrimSpace(obj.Get("date")),
	}, nil
}

// parseTopic extracts the topic from a JSON body. Emptiness is checked by
// the generator.
func parseTopic(w http.ResponseWriter, r *http.Request) (string, error) {
	obj, err := decodeJSONObject(w, r)
	if err != nil {
		return "", err
	}
	if !obj.Has("topic") {
		return "", core.NewValidationError("topic", msgTopicNeeded)
	}
	return obj.Get("topic"), nil
}

// parseExpenseID reads the {id} path value as a positive integer.
func parseExpenseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, core.NewValidationError("id", msgInvalidID)
	}
	return id, nil
}
