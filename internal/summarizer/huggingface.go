package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"smartsummary/internal/config"
)

// HuggingFace calls the Hugging Face inference API summarization task.
type HuggingFace struct {
	httpClient *http.Client
	baseURL    string
	token      string
	models     Models
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

type hfError struct {
	Error string `json:"error"`
}

// NewHuggingFace builds a client. httpClient should carry the call timeout.
func NewHuggingFace(cfg config.HuggingFaceConfig, httpClient *http.Client) *HuggingFace {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HuggingFace{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		models: Models{
			Default:      cfg.DefaultModel,
			Multilingual: cfg.MultilingualModel,
		},
	}
}

func (h *HuggingFace) Name() string { return "huggingface" }

func (h *HuggingFace) Summarize(ctx context.Context, req Request) (Result, error) {
	modelName := h.models.For(req.Endpoint)

	body, err := json.Marshal(hfRequest{
		Inputs: req.Text,
		Parameters: hfParameters{
			MaxLength: req.MaxLength,
			MinLength: req.MinLength,
			DoSample:  false,
		},
		Options: hfOptions{WaitForModel: true},
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/"+modelName, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if h.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp hfError
		if json.Unmarshal(respBody, &errorResp) == nil && errorResp.Error != "" {
			return Result{}, fmt.Errorf("inference API error (%d): %s", resp.StatusCode, errorResp.Error)
		}
		return Result{}, fmt.Errorf("inference API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var summaries []hfSummary
	if err := json.Unmarshal(respBody, &summaries); err != nil {
		return Result{}, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(summaries) == 0 || strings.TrimSpace(summaries[0].SummaryText) == "" {
		return Result{}, ErrEmptyResult
	}

	return Result{Text: summaries[0].SummaryText, Model: modelName}, nil
}
