package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"smartsummary/internal/failure"
	"smartsummary/internal/http/middleware"
	"smartsummary/internal/input"
	"smartsummary/internal/model"
	"smartsummary/internal/service"
)

// summaryResponse is the body of a successful summarization.
type summaryResponse struct {
	Status     model.Status   `json:"status"`
	Message    string         `json:"message"`
	Summary    string         `json:"summary"`
	Language   model.Language `json:"language"`
	Endpoint   string         `json:"endpoint"`
	Model      string         `json:"model"`
	Backend    string         `json:"backend"`
	DurationMS int64          `json:"duration_ms"`
	Exports    []model.Format `json:"exports"`
}

// settingsFromForm reads language, max_length and min_length, falling back
// to defaults for missing values.
func settingsFromForm(c *fiber.Ctx) (model.Settings, error) {
	s := model.DefaultSettings()

	if v := c.FormValue("language"); v != "" {
		lang, err := model.ParseLanguage(v)
		if err != nil {
			return s, failure.InvalidSettings(err)
		}
		s.Language = lang
	}

	for _, f := range []struct {
		name  string
		label string
		dst   *int
	}{
		{"max_length", "maximum summary length", &s.MaxLength},
		{"min_length", "minimum summary length", &s.MinLength},
	} {
		v := strings.TrimSpace(c.FormValue(f.name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, failure.InvalidSettings(fmt.Errorf("%s must be a whole number", f.label))
		}
		*f.dst = n
	}
	return s, nil
}

// collectInput resolves the input text from the multipart file or the text field.
func collectInput(c *fiber.Ctx) (string, error) {
	mode, err := input.ParseMode(c.FormValue("mode"))
	if err != nil {
		return "", err
	}

	var file *input.File
	if mode == input.ModeUpload {
		if fh, err := c.FormFile("file"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return "", failure.Decode(err)
			}
			defer f.Close()
			file = &input.File{Name: fh.Filename, Reader: f}
		}
	}
	return input.Collect(mode, file, c.FormValue("text"))
}

// CreateSummary godoc
// @Summary Summarize text
// @Description Summarizes an uploaded .txt file or pasted text with one model call.
// @Tags summaries
// @Accept multipart/form-data
// @Accept x-www-form-urlencoded
// @Produce json
// @Param mode formData string false "upload or paste" Enums(upload, paste)
// @Param file formData file false "UTF-8 .txt file (mode=upload)"
// @Param text formData string false "Pasted text (mode=paste)"
// @Param language formData string false "English, French or Hindi" default(English)
// @Param max_length formData int false "Maximum summary length (50-500)" default(150)
// @Param min_length formData int false "Minimum summary length (10-100)" default(50)
// @Success 200 {object} summaryResponse
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/summaries [post]
func CreateSummary(svc service.SummaryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		text, err := collectInput(c)
		if err != nil {
			return writeFailure(c, err)
		}
		// Missing input is reported before any settings problem.
		if strings.TrimSpace(text) == "" {
			return writeFailure(c, failure.ErrEmptyInput)
		}
		settings, err := settingsFromForm(c)
		if err != nil {
			return writeFailure(c, err)
		}

		sum, err := svc.Summarize(c.UserContext(), model.SummaryRequest{
			SessionID: middleware.SessionID(c),
			Text:      text,
			Settings:  settings,
		})
		if err != nil {
			return writeFailure(c, err)
		}

		return c.JSON(summaryResponse{
			Status:     model.StatusSuccess,
			Message:    model.MessageSuccess,
			Summary:    sum.Text,
			Language:   sum.Language,
			Endpoint:   sum.Endpoint,
			Model:      sum.Model,
			Backend:    sum.Backend,
			DurationMS: sum.Duration.Milliseconds(),
			Exports:    model.Formats,
		})
	}
}
