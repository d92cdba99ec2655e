package summarizer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"smartsummary/internal/config"
)

// Gemini calls the Gemini API through the genai SDK.
type Gemini struct {
	client *genai.Client
	models Models
}

func NewGemini(ctx context.Context, cfg config.GeminiConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &Gemini{
		client: client,
		models: Models{
			Default:      cfg.DefaultModel,
			Multilingual: cfg.MultilingualModel,
		},
	}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Summarize(ctx context.Context, req Request) (Result, error) {
	modelName := g.models.For(req.Endpoint)

	result, err := g.client.Models.GenerateContent(ctx, modelName, genai.Text(req.Text), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction(req), genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
	})
	if err != nil {
		return Result{}, fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return Result{}, ErrEmptyResult
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Result{}, ErrEmptyResult
	}
	return Result{Text: text, Model: modelName}, nil
}
