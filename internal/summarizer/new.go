package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"smartsummary/internal/config"
)

// New builds the backend selected by cfg.Summarizer.Backend. The returned
// close function releases backend connections and is never nil.
func New(ctx context.Context, cfg *config.AppConfig) (Client, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Summarizer.Backend) {
	case "huggingface":
		httpClient := &http.Client{
			Timeout:   cfg.Summarizer.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
		return NewHuggingFace(cfg.HuggingFace, httpClient), noop, nil
	case "openai":
		return NewOpenAI(cfg.OpenAI), noop, nil
	case "gemini":
		g, err := NewGemini(ctx, cfg.Gemini)
		if err != nil {
			return nil, noop, err
		}
		return g, noop, nil
	case "vertex":
		v, err := NewVertex(ctx, cfg.Vertex)
		if err != nil {
			return nil, noop, err
		}
		return v, v.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported summarizer backend %q", cfg.Summarizer.Backend)
	}
}
