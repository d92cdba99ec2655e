package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartsummary/internal/export"
	"smartsummary/internal/failure"
	"smartsummary/internal/http/middleware"
	"smartsummary/internal/model"
	"smartsummary/internal/service"
	serviceMocks "smartsummary/internal/service/mocks"
	"smartsummary/internal/storage"
	"smartsummary/internal/ui"
)

const testSession = "7d4f1f0e-1f6c-4f7a-9a34-3a1f4a3f7c10"

// newTestApp returns an app whose requests all belong to testSession.
func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.SessionLocalKey, testSession)
		return c.Next()
	})
	return app
}

func decodeError(t *testing.T, r io.Reader) errorPayload {
	t.Helper()
	var res errorPayload
	require.NoError(t, json.NewDecoder(r).Decode(&res))
	return res
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return req
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp.Body).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetSettings(t *testing.T) {
	app := fiber.New()
	app.Get("/api/settings", GetSettings())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var opts model.SettingsOptions
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&opts))
	assert.Equal(t, model.Languages, opts.Languages)
	assert.Equal(t, 150, opts.Defaults.MaxLength)
	assert.Equal(t, 50, opts.Defaults.MinLength)
	assert.Equal(t, 500, opts.MaxLength.Max)
	assert.Equal(t, 10, opts.MinLength.Min)
}

func TestIndex(t *testing.T) {
	page, err := ui.NewPage()
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", Index(page))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Smart Article Summarizer")
}

func TestCreateSummary(t *testing.T) {
	newApp := func(svc service.SummaryService) *fiber.App {
		app := newTestApp()
		app.Post("/api/summaries", CreateSummary(svc))
		return app
	}

	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSummaryService)
		want := model.SummaryRequest{
			SessionID: testSession,
			Text:      "Le renard brun saute par-dessus le chien paresseux.",
			Settings:  model.Settings{Language: model.LanguageFrench, MaxLength: 100, MinLength: 20},
		}
		mockSvc.On("Summarize", mock.Anything, want).Return(&model.Summary{
			Text:     "Un renard saute.",
			Language: model.LanguageFrench,
			Endpoint: "multilingual",
			Model:    "csebuetnlp/mT5_multilingual_XLSum",
			Backend:  "huggingface",
			Duration: 1500 * time.Millisecond,
		}, nil).Once()

		resp, err := newApp(mockSvc).Test(formRequest("/api/summaries", url.Values{
			"mode":       {"paste"},
			"text":       {want.Text},
			"language":   {"french"},
			"max_length": {"100"},
			"min_length": {"20"},
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body summaryResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, model.StatusSuccess, body.Status)
		assert.Equal(t, model.MessageSuccess, body.Message)
		assert.Equal(t, "Un renard saute.", body.Summary)
		assert.Equal(t, "multilingual", body.Endpoint)
		assert.Equal(t, int64(1500), body.DurationMS)
		assert.Equal(t, model.Formats, body.Exports)
		mockSvc.AssertExpectations(t)
	})

	t.Run("defaults when settings are omitted", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSummaryService)
		mockSvc.On("Summarize", mock.Anything, mock.MatchedBy(func(r model.SummaryRequest) bool {
			return r.Settings == model.DefaultSettings() && r.Text == "some text"
		})).Return(&model.Summary{Text: "text", Language: model.LanguageEnglish}, nil).Once()

		resp, err := newApp(mockSvc).Test(formRequest("/api/summaries", url.Values{"text": {"some text"}}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("upload", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSummaryService)
		mockSvc.On("Summarize", mock.Anything, mock.MatchedBy(func(r model.SummaryRequest) bool {
			return r.Text == "uploaded article body"
		})).Return(&model.Summary{Text: "article"}, nil).Once()

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		writer.WriteField("mode", "upload")
		part, _ := writer.CreateFormFile("file", "article.txt")
		part.Write([]byte("uploaded article body"))
		writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/summaries", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, err := newApp(mockSvc).Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("upload with unsupported extension", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSummaryService)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		writer.WriteField("mode", "upload")
		part, _ := writer.CreateFormFile("file", "article.pdf")
		part.Write([]byte("%PDF-1.4"))
		writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/summaries", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, err := newApp(mockSvc).Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		res := decodeError(t, resp.Body)
		assert.Equal(t, string(failure.KindDecodeFailure), res.Error.Code)
		assert.Equal(t, failure.MessageDecodeFailure, res.Error.Message)
		mockSvc.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
	})

	t.Run("empty input offers no exports", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSummaryService)

		resp, err := newApp(mockSvc).Test(formRequest("/api/summaries", url.Values{"mode": {"paste"}, "text": {"   "}}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		var res errorPayload
		require.NoError(t, json.Unmarshal(raw, &res))
		assert.Equal(t, string(failure.KindEmptyInput), res.Error.Code)
		assert.Equal(t, "Please upload a file or paste some text!", res.Error.Message)
		assert.NotContains(t, string(raw), "exports")
		mockSvc.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
	})

	t.Run("empty input is reported before invalid settings", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSummaryService)

		resp, err := newApp(mockSvc).Test(formRequest("/api/summaries", url.Values{
			"text":       {" \n\t "},
			"language":   {"German"},
			"max_length": {"abc"},
		}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		res := decodeError(t, resp.Body)
		assert.Equal(t, string(failure.KindEmptyInput), res.Error.Code)
		assert.Equal(t, failure.MessageEmptyInput, res.Error.Message)
		mockSvc.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
	})

	t.Run("upload mode without a file is empty input", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSummaryService)

		resp, err := newApp(mockSvc).Test(formRequest("/api/summaries", url.Values{
			"mode":     {"upload"},
			"language": {"Klingon"},
		}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, string(failure.KindEmptyInput), decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
	})

	t.Run("model failure", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSummaryService)
		mockSvc.On("Summarize", mock.Anything, mock.Anything).
			Return(nil, failure.Model(errors.New("upstream 503"))).Once()

		resp, err := newApp(mockSvc).Test(formRequest("/api/summaries", url.Values{"text": {"some text"}}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		res := decodeError(t, resp.Body)
		assert.Equal(t, string(failure.KindModelFailure), res.Error.Code)
		assert.NotContains(t, res.Error.Message, "upstream")
	})

	tests := []struct {
		name   string
		values url.Values
	}{
		{"non-numeric max length", url.Values{"text": {"x"}, "max_length": {"abc"}}},
		{"non-numeric min length", url.Values{"text": {"x"}, "min_length": {"1.5"}}},
		{"unknown language", url.Values{"text": {"x"}, "language": {"German"}}},
		{"unknown mode", url.Values{"text": {"x"}, "mode": {"dictate"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockSummaryService)

			resp, err := newApp(mockSvc).Test(formRequest("/api/summaries", tt.values))
			require.NoError(t, err)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, string(failure.KindInvalidSettings), decodeError(t, resp.Body).Error.Code)
			mockSvc.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateExport(t *testing.T) {
	newApp := func(svc service.ExportService) *fiber.App {
		app := newTestApp()
		app.Post("/api/exports", CreateExport(svc))
		return app
	}

	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockExportService)
		id := uuid.NewString()
		mockSvc.On("Export", mock.Anything, testSession, model.FormatPDF, "A short summary.").Return(&service.ExportFile{
			Export:  &model.Export{ID: id, Format: model.FormatPDF, Filename: "summary.pdf", ContentType: "application/pdf"},
			Content: []byte("%PDF-1.3 test"),
		}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/exports", strings.NewReader(`{"format":"PDF","summary":"A short summary."}`))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, err := newApp(mockSvc).Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, id, resp.Header.Get(ExportIDHeader))
		assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), `filename="summary.pdf"`)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "%PDF-1.3 test", string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("form body", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockExportService)
		mockSvc.On("Export", mock.Anything, testSession, model.FormatDOCX, "text").Return(&service.ExportFile{
			Export:  &model.Export{ID: uuid.NewString(), Filename: "summary.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
			Content: []byte("PK"),
		}, nil).Once()

		resp, err := newApp(mockSvc).Test(formRequest("/api/exports", url.Values{"format": {"docx"}, "summary": {"text"}}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "summary.docx")
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/exports", strings.NewReader(`{"format":`))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, err := newApp(new(serviceMocks.MockExportService)).Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("empty summary", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockExportService)
		mockSvc.On("Export", mock.Anything, testSession, model.FormatPDF, "").
			Return(nil, failure.InvalidSettings(export.ErrEmptySummary)).Once()

		resp, err := newApp(mockSvc).Test(formRequest("/api/exports", url.Values{"format": {"pdf"}}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		res := decodeError(t, resp.Body)
		assert.Equal(t, string(failure.KindInvalidSettings), res.Error.Code)
		assert.Contains(t, res.Error.Message, "nothing to export")
	})

	t.Run("export failure", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockExportService)
		mockSvc.On("Export", mock.Anything, testSession, model.FormatPDF, "text").
			Return(nil, failure.Export(errors.New("bucket unreachable"))).Once()

		resp, err := newApp(mockSvc).Test(formRequest("/api/exports", url.Values{"format": {"pdf"}, "summary": {"text"}}))
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		res := decodeError(t, resp.Body)
		assert.Equal(t, string(failure.KindExportFailure), res.Error.Code)
		assert.Equal(t, failure.MessageExportFailure, res.Error.Message)
	})
}

func TestListExports(t *testing.T) {
	mockSvc := new(serviceMocks.MockExportService)
	app := newTestApp()
	app.Get("/api/exports", ListExports(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.ExportListResult{
			Items: []model.Export{{ID: uuid.NewString(), Format: model.FormatPDF, Filename: "summary.pdf"}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, testSession, 10, 0).Return(expectedRes, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/exports?limit=10&offset=0", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ExportListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/exports?limit=abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("invalid offset", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/exports?offset=-x", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_OFFSET", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, testSession, 10, 0).Return(nil, errors.New("service error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/exports", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDownloadExport(t *testing.T) {
	newApp := func(svc service.ExportService, ttl time.Duration) *fiber.App {
		app := newTestApp()
		app.Get("/api/exports/:id", DownloadExport(svc, ttl))
		return app
	}
	exp := func(id string) *model.Export {
		return &model.Export{ID: id, Format: model.FormatPDF, Filename: "summary.pdf", ContentType: "application/pdf", Size: 8}
	}

	t.Run("presigned redirect", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc := new(serviceMocks.MockExportService)
		mockSvc.On("DownloadURL", mock.Anything, testSession, id, 15*time.Minute).
			Return("https://objects.example.com/exports/x.pdf?sig=1", exp(id), nil).Once()

		resp, err := newApp(mockSvc, 15*time.Minute).Test(httptest.NewRequest(http.MethodGet, "/api/exports/"+id, nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "https://objects.example.com/exports/x.pdf?sig=1", resp.Header.Get(fiber.HeaderLocation))
		mockSvc.AssertExpectations(t)
	})

	t.Run("streams when presign is unsupported", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc := new(serviceMocks.MockExportService)
		mockSvc.On("DownloadURL", mock.Anything, testSession, id, time.Minute).
			Return("", nil, storage.ErrPresignUnsupported).Once()
		mockSvc.On("Open", mock.Anything, testSession, id).
			Return(io.NopCloser(strings.NewReader("%PDF-1.3")), exp(id), nil).Once()

		resp, err := newApp(mockSvc, time.Minute).Test(httptest.NewRequest(http.MethodGet, "/api/exports/"+id, nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "summary.pdf")
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "%PDF-1.3", string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("streams when presign is disabled", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc := new(serviceMocks.MockExportService)
		mockSvc.On("Open", mock.Anything, testSession, id).
			Return(io.NopCloser(strings.NewReader("%PDF-1.3")), exp(id), nil).Once()

		resp, err := newApp(mockSvc, 0).Test(httptest.NewRequest(http.MethodGet, "/api/exports/"+id, nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertNotCalled(t, "DownloadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc := new(serviceMocks.MockExportService)
		mockSvc.On("DownloadURL", mock.Anything, testSession, id, time.Minute).Return("", nil, failure.ErrNotFound).Once()

		resp, err := newApp(mockSvc, time.Minute).Test(httptest.NewRequest(http.MethodGet, "/api/exports/"+id, nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, string(failure.KindNotFound), decodeError(t, resp.Body).Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, err := newApp(new(serviceMocks.MockExportService), time.Minute).
			Test(httptest.NewRequest(http.MethodGet, "/api/exports/invalid-uuid", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp.Body).Error.Code)
	})
}

func TestDeleteExport(t *testing.T) {
	mockSvc := new(serviceMocks.MockExportService)
	app := newTestApp()
	app.Delete("/api/exports/:id", DeleteExport(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Delete", mock.Anything, testSession, id).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/exports/"+id, nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Delete", mock.Anything, testSession, id).Return(failure.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/exports/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, string(failure.KindNotFound), decodeError(t, resp.Body).Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/exports/nope", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Delete", mock.Anything, testSession, id).Return(errors.New("delete error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/exports/"+id, nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(), BodyLimit: 16})
	app.Post("/echo", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/failure", func(c *fiber.Ctx) error { return failure.Model(errors.New("boom")) })

	t.Run("failure kind", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/failure", nil))

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, failure.MessageModelFailure, decodeError(t, resp.Body).Error.Message)
	})

	t.Run("body too large", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 64)))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		assert.Equal(t, "PAYLOAD_TOO_LARGE", decodeError(t, resp.Body).Error.Code)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	// Register all routes
	RegisterRoutes(app, Deps{
		Summaries: new(serviceMocks.MockSummaryService),
		Exports:   new(serviceMocks.MockExportService),
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		// Fiber returns 405 by default if route exists but method doesn't match
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("settings", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/settings", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
