package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartsummary/internal/config"
	"smartsummary/internal/model"
)

func newHFServer(t *testing.T, handler http.HandlerFunc) *HuggingFace {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewHuggingFace(config.HuggingFaceConfig{
		BaseURL:           srv.URL + "/models/",
		Token:             "hf_test",
		DefaultModel:      "sshleifer/distilbart-cnn-12-6",
		MultilingualModel: "csebuetnlp/mT5_multilingual_XLSum",
	}, srv.Client())
}

func TestHuggingFace_Summarize(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody hfRequest

	hf := newHFServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"summary_text":"Foxes jump over dogs."},{"summary_text":"ignored"}]`))
	})

	req := Request{
		Text:      "The quick brown fox jumps over the lazy dog repeatedly.",
		Language:  model.LanguageFrench,
		Endpoint:  SelectEndpoint(model.LanguageFrench),
		MaxLength: 150,
		MinLength: 50,
	}
	res, err := hf.Summarize(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Foxes jump over dogs.", res.Text)
	assert.Equal(t, "csebuetnlp/mT5_multilingual_XLSum", res.Model)
	assert.Equal(t, "/models/csebuetnlp/mT5_multilingual_XLSum", gotPath)
	assert.Equal(t, "Bearer hf_test", gotAuth)
	assert.Equal(t, req.Text, gotBody.Inputs)
	assert.Equal(t, 150, gotBody.Parameters.MaxLength)
	assert.Equal(t, 50, gotBody.Parameters.MinLength)
	assert.False(t, gotBody.Parameters.DoSample)
	assert.True(t, gotBody.Options.WaitForModel)
}

func TestHuggingFace_DefaultEndpoint(t *testing.T) {
	var gotPath string
	hf := newHFServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[{"summary_text":"ok"}]`))
	})

	res, err := hf.Summarize(context.Background(), Request{Text: "t", Endpoint: EndpointDefault})
	require.NoError(t, err)
	assert.Equal(t, "/models/sshleifer/distilbart-cnn-12-6", gotPath)
	assert.Equal(t, "sshleifer/distilbart-cnn-12-6", res.Model)
}

func TestHuggingFace_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
		isEmpty bool
	}{
		{name: "api error payload", status: http.StatusServiceUnavailable, body: `{"error":"Model is currently loading"}`, wantErr: "Model is currently loading"},
		{name: "raw error body", status: http.StatusBadGateway, body: `upstream timeout`, wantErr: "(502): upstream timeout"},
		{name: "malformed json", status: http.StatusOK, body: `{"summary_text":`, wantErr: "unmarshaling response"},
		{name: "empty list", status: http.StatusOK, body: `[]`, isEmpty: true},
		{name: "blank summary", status: http.StatusOK, body: `[{"summary_text":"  "}]`, isEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hf := newHFServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := hf.Summarize(context.Background(), Request{Text: "t"})
			require.Error(t, err)
			if tt.isEmpty {
				assert.ErrorIs(t, err, ErrEmptyResult)
			} else {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
