package handler

import (
	"github.com/gofiber/fiber/v2"

	"smartsummary/internal/model"
	"smartsummary/internal/ui"
)

// Index serves the summarizer page.
func Index(page *ui.Page) fiber.Handler {
	data := ui.NewPageData()
	return func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return page.Render(c, data)
	}
}

// GetSettings godoc
// @Summary Settings options
// @Description Languages, length bounds and defaults of the settings panel.
// @Tags summaries
// @Produce json
// @Success 200 {object} model.SettingsOptions
// @Router /api/settings [get]
func GetSettings() fiber.Handler {
	opts := model.Options()
	return func(c *fiber.Ctx) error {
		return c.JSON(opts)
	}
}
