package summarizer

import (
	"context"
	"fmt"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"

	"smartsummary/internal/config"
)

// Vertex calls Gemini models hosted on Vertex AI.
type Vertex struct {
	client *vertexgenai.Client
	models Models
}

func NewVertex(ctx context.Context, cfg config.VertexConfig) (*Vertex, error) {
	if cfg.ProjectID == "" || cfg.Region == "" {
		return nil, fmt.Errorf("NewVertex: projectID and region cannot be empty")
	}
	client, err := vertexgenai.NewClient(ctx, cfg.ProjectID, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}
	return &Vertex{
		client: client,
		models: Models{
			Default:      cfg.DefaultModel,
			Multilingual: cfg.MultilingualModel,
		},
	}, nil
}

func (v *Vertex) Name() string { return "vertex" }

func (v *Vertex) Summarize(ctx context.Context, req Request) (Result, error) {
	modelName := v.models.For(req.Endpoint)

	m := v.client.GenerativeModel(modelName)
	m.SetTemperature(0)
	m.SystemInstruction = &vertexgenai.Content{
		Parts: []vertexgenai.Part{vertexgenai.Text(instruction(req))},
	}

	resp, err := m.GenerateContent(ctx, vertexgenai.Text(req.Text))
	if err != nil {
		return Result{}, fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Result{}, ErrEmptyResult
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(vertexgenai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Result{}, ErrEmptyResult
	}
	return Result{Text: text, Model: modelName}, nil
}

func (v *Vertex) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}
