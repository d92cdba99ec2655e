package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"smartsummary/internal/failure"
	"smartsummary/internal/model"
	"smartsummary/internal/summarizer"
)

// SummaryService runs one summarization cycle per request.
type SummaryService interface {
	// Summarize validates the request, routes it to an endpoint and makes exactly one model call.
	// Errors are *failure.Error values carrying a user-facing message.
	Summarize(ctx context.Context, req model.SummaryRequest) (*model.Summary, error)
}

type summaryService struct {
	client  summarizer.Client
	timeout time.Duration
	log     *slog.Logger
}

// NewSummaryService constructs a SummaryService. A non-positive timeout leaves
// the call bounded only by ctx.
func NewSummaryService(client summarizer.Client, timeout time.Duration, log *slog.Logger) SummaryService {
	return &summaryService{client: client, timeout: timeout, log: log}
}

func (s *summaryService) Summarize(ctx context.Context, req model.SummaryRequest) (*model.Summary, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, failure.ErrEmptyInput
	}
	if err := req.Settings.Validate(); err != nil {
		return nil, failure.InvalidSettings(err)
	}

	endpoint := summarizer.SelectEndpoint(req.Settings.Language)
	log := s.log.With(
		"session_id", req.SessionID,
		"backend", s.client.Name(),
		"endpoint", endpoint,
		"language", req.Settings.Language,
		"input_chars", len([]rune(req.Text)),
	)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := s.client.Summarize(ctx, summarizer.Request{
		Text:      req.Text,
		Language:  req.Settings.Language,
		Endpoint:  endpoint,
		MaxLength: req.Settings.MaxLength,
		MinLength: req.Settings.MinLength,
	})
	elapsed := time.Since(start)
	if err == nil && strings.TrimSpace(res.Text) == "" {
		err = summarizer.ErrEmptyResult
	}
	if err != nil {
		log.ErrorContext(ctx, "summarization failed", "error", err, "duration_ms", elapsed.Milliseconds())
		return nil, failure.Model(err)
	}

	log.InfoContext(ctx, "summarization succeeded",
		"model", res.Model,
		"summary_chars", len([]rune(res.Text)),
		"duration_ms", elapsed.Milliseconds(),
	)
	return &model.Summary{
		Text:     res.Text,
		Language: req.Settings.Language,
		Endpoint: string(endpoint),
		Model:    res.Model,
		Backend:  s.client.Name(),
		Duration: elapsed,
	}, nil
}
