package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by clients created without credentials.
var ErrNotConfigured = errors.New("llm provider is not configured")

// Unavailable answers every call with an error so the rest of the API can
// run without model credentials.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Generate(context.Context, []Message) (Response, error) {
	if u.Reason == "" {
		return Response{}, ErrNotConfigured
	}
	return Response{}, errors.Join(ErrNotConfigured, errors.New(u.Reason))
}
