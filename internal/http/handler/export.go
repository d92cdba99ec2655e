package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smartsummary/internal/http/middleware"
	"smartsummary/internal/model"
	"smartsummary/internal/service"
	"smartsummary/internal/storage"
)

// ExportIDHeader carries the ID of a freshly created export.
const ExportIDHeader = "X-Export-ID"

type exportRequest struct {
	Format  string `json:"format" form:"format"`
	Summary string `json:"summary" form:"summary"`
}

// CreateExport godoc
// @Summary Export a summary
// @Description Renders the summary as PDF or Word and returns it as an attachment.
// @Tags exports
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param body body exportRequest true "Format (pdf or docx) and summary text"
// @Success 200 {file} file
// @Header 200 {string} X-Export-ID "Export ID"
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/exports [post]
func CreateExport(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req exportRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		file, err := svc.Export(c.UserContext(), middleware.SessionID(c),
			model.Format(strings.ToLower(strings.TrimSpace(req.Format))), req.Summary)
		if err != nil {
			return writeFailure(c, err)
		}

		c.Set(ExportIDHeader, file.Export.ID)
		c.Attachment(file.Export.Filename)
		c.Set(fiber.HeaderContentType, file.Export.ContentType)
		return c.Send(file.Content)
	}
}

// ListExports godoc
// @Summary List exports
// @Description Lists the current session's exports, newest first.
// @Tags exports
// @Produce json
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.ExportListResult
// @Failure 400 {object} errorPayload
// @Router /api/exports [get]
func ListExports(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), middleware.SessionID(c), limit, offset)
		if err != nil {
			return writeFailure(c, err)
		}
		return c.JSON(res)
	}
}

// DownloadExport godoc
// @Summary Download an export
// @Description Redirects to a presigned URL when the storage backend supports it, otherwise streams the file.
// @Tags exports
// @Param id path string true "Export ID"
// @Success 200 {file} file
// @Success 302
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/exports/{id} [get]
func DownloadExport(svc service.ExportService, presignTTL time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		session := middleware.SessionID(c)

		if presignTTL > 0 {
			url, _, err := svc.DownloadURL(c.UserContext(), session, id, presignTTL)
			switch {
			case err == nil:
				return c.Redirect(url, fiber.StatusFound)
			case !errors.Is(err, storage.ErrPresignUnsupported):
				return writeFailure(c, err)
			}
		}

		rc, e, err := svc.Open(c.UserContext(), session, id)
		if err != nil {
			return writeFailure(c, err)
		}
		c.Attachment(e.Filename)
		c.Set(fiber.HeaderContentType, e.ContentType)
		return c.SendStream(rc, int(e.Size))
	}
}

// DeleteExport godoc
// @Summary Delete an export
// @Tags exports
// @Param id path string true "Export ID"
// @Success 204
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/exports/{id} [delete]
func DeleteExport(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), middleware.SessionID(c), id); err != nil {
			return writeFailure(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
