package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"smartsummary/internal/config"
)

// OpenAI calls OpenAI's Responses API to produce summaries.
type OpenAI struct {
	client openai.Client
	models Models
}

// NewOpenAI builds a new summarizer instance. Extra options are appended
// after the key and base URL taken from cfg.
func NewOpenAI(cfg config.OpenAIConfig, opts ...option.RequestOption) *OpenAI {
	base := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{
		client: openai.NewClient(append(base, opts...)...),
		models: Models{
			Default:      cfg.DefaultModel,
			Multilingual: cfg.MultilingualModel,
		},
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Summarize(ctx context.Context, req Request) (Result, error) {
	modelName := o.models.For(req.Endpoint)

	resp, err := o.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:        modelName,
		Temperature:  openai.Float(0),
		Instructions: openai.String(instruction(req)),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(req.Text),
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("do request: %w", err)
	}

	summary := strings.TrimSpace(resp.OutputText())
	if summary == "" {
		return Result{}, fmt.Errorf("%w (status = %s)", ErrEmptyResult, resp.Status)
	}
	return Result{Text: summary, Model: modelName}, nil
}
