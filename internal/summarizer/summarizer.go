// Package summarizer invokes an external summarization model. The model is
// chosen per call from two endpoints: a default one for English and a
// multilingual one for every other language.
package summarizer

import (
	"context"
	"errors"

	"smartsummary/internal/model"
)

// Endpoint is the model variant a request is routed to.
type Endpoint string

const (
	EndpointDefault      Endpoint = "default"
	EndpointMultilingual Endpoint = "multilingual"
)

// ErrEmptyResult is returned when the model answers without any summary text.
var ErrEmptyResult = errors.New("model returned no summary")

// SelectEndpoint routes French and Hindi to the multilingual endpoint and
// everything else to the default one.
func SelectEndpoint(l model.Language) Endpoint {
	switch l {
	case model.LanguageFrench, model.LanguageHindi:
		return EndpointMultilingual
	default:
		return EndpointDefault
	}
}

// Request is one summarization call. Sampling is always disabled.
type Request struct {
	Text      string
	Language  model.Language
	Endpoint  Endpoint
	MaxLength int
	MinLength int
}

// Result is the first summary returned by the model.
type Result struct {
	Text  string
	Model string
}

// Client produces a summary for a request.
type Client interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	Summarize(ctx context.Context, req Request) (Result, error)
}

// Models maps each endpoint to a backend-specific model name.
type Models struct {
	Default      string
	Multilingual string
}

// For returns the model name serving e.
func (m Models) For(e Endpoint) string {
	if e == EndpointMultilingual {
		return m.Multilingual
	}
	return m.Default
}
