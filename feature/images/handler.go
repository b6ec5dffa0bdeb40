package images

import (
	"bytes"
	"errors"
	"net/url"
	"strconv"

	"image-admin/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for image administration.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the image administration routes.
// The catch-all asset route goes last so the fixed paths win.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/admin/images")
	group.Get("/stats", h.HandleStats)
	group.Get("/orphaned", h.HandleOrphaned)
	group.Get("/report", h.HandleReport)
	group.Post("/cleanup", h.HandleCleanup)
	group.Post("/optimize", h.HandleOptimize)
	// Greedy parameter: public ids contain slashes (folder/asset).
	group.Get("/+", h.HandleAssetDetail)
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func fail(c *fiber.Ctx, err error) error {
	status, code := statusForError(err)
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   fiber.Map{"message": err.Error(), "code": code},
	})
}

// statusForError maps service errors onto HTTP status and machine code.
func statusForError(err error) (int, string) {
	var invalid *InvalidRequestError
	switch {
	case errors.As(err, &invalid):
		return fiber.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, ErrAssetNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrHostUnavailable):
		return fiber.StatusBadGateway, "HOST_ERROR"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// HandleStats returns usage and per-category statistics.
// @Summary Image storage statistics
// @Description Storage usage against the configured limit plus per-folder inventory vs. reference counts.
// @Tags images
// @Produce json
// @Success 200 {object} SummaryReport "Statistics"
// @Failure 502 {object} map[string]any "Asset host unavailable"
// @Router /admin/images/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Stats(c.Context())
	if err != nil {
		l.Error("Stats collection failed", zap.Error(err))
		return fail(c, err)
	}
	return ok(c, report)
}

// HandleOrphaned returns one page of orphan candidates.
// @Summary List orphaned images
// @Description One page of remote assets with no database reference. Thread the cursor to continue.
// @Tags images
// @Produce json
// @Param type query string false "Folder to scan (e.g. 'restaurants')"
// @Param limit query int false "Page size, max 500" default(50)
// @Param cursor query string false "Continuation cursor from the previous page"
// @Success 200 {object} OrphanPage "Orphan page"
// @Failure 400 {object} map[string]any "Invalid request"
// @Failure 502 {object} map[string]any "Asset host unavailable"
// @Router /admin/images/orphaned [get]
func (h *Handler) HandleOrphaned(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return fail(c, invalidRequest("limit must be a non-negative integer"))
		}
		limit = parsed
	}

	page, err := h.service.FindOrphans(c.Context(), ScanFilter{
		Folder:   c.Query("type"),
		PageSize: limit,
		Cursor:   c.Query("cursor"),
	})
	if err != nil {
		l.Error("Orphan scan failed", zap.Error(err))
		return fail(c, err)
	}
	return ok(c, page)
}

type cleanupRequest struct {
	PublicIDs       []string `json:"publicIds"`
	ConfirmDeletion bool     `json:"confirmDeletion"`
}

// HandleCleanup deletes verified orphans.
// @Summary Clean up orphaned images
// @Description Re-verifies each id against the database and deletes only assets that are still unreferenced. Requires explicit confirmation.
// @Tags images
// @Accept json
// @Produce json
// @Param request body cleanupRequest true "Public ids and confirmation flag"
// @Success 200 {object} CleanupSummary "Cleanup summary"
// @Failure 400 {object} map[string]any "Missing confirmation or empty id list"
// @Failure 502 {object} map[string]any "Asset host unavailable"
// @Router /admin/images/cleanup [post]
func (h *Handler) HandleCleanup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req cleanupRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, invalidRequest("malformed request body"))
	}

	summary, err := h.service.Cleanup(c.Context(), req.PublicIDs, req.ConfirmDeletion)
	if err != nil {
		l.Error("Cleanup failed", zap.Error(err))
		return fail(c, err)
	}
	return ok(c, summary)
}

type optimizeRequest struct {
	Type  string `json:"type"`
	Limit int    `json:"limit"`
}

// HandleOptimize re-encodes the largest assets in place.
// @Summary Optimize oversized images
// @Description Picks the largest assets above the size threshold and re-encodes them in place, bounded per request.
// @Tags images
// @Accept json
// @Produce json
// @Param request body optimizeRequest true "Folder and per-request limit"
// @Success 200 {object} OptimizeSummary "Optimization summary"
// @Failure 400 {object} map[string]any "Limit out of range"
// @Failure 502 {object} map[string]any "Asset host unavailable"
// @Router /admin/images/optimize [post]
func (h *Handler) HandleOptimize(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req optimizeRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, invalidRequest("malformed request body"))
	}

	summary, err := h.service.Optimize(c.Context(), req.Type, req.Limit)
	if err != nil {
		l.Error("Optimization failed", zap.Error(err))
		return fail(c, err)
	}
	return ok(c, summary)
}

// HandleReport generates an admin report as JSON or CSV.
// @Summary Generate admin report
// @Description Usage, optimization, error or summary report. CSV is available for the optimization report only.
// @Tags images
// @Produce json
// @Produce text/csv
// @Param reportType query string false "usage | optimization | errors | summary" default(summary)
// @Param format query string false "json | csv" default(json)
// @Success 200 {object} map[string]any "Report"
// @Failure 400 {object} map[string]any "Unknown report type or format"
// @Failure 502 {object} map[string]any "Asset host unavailable"
// @Router /admin/images/report [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	kind := ReportKind(c.Query("reportType", string(ReportSummary)))
	format := c.Query("format", "json")
	if format != "json" && format != "csv" {
		return fail(c, invalidRequest("format must be json or csv"))
	}

	report, err := h.service.GenerateReport(c.Context(), kind)
	if err != nil {
		l.Error("Report generation failed", zap.Error(err), zap.String("kind", string(kind)))
		return fail(c, err)
	}

	if format == "csv" {
		var buf bytes.Buffer
		if err := WriteCSV(&buf, report); err != nil {
			return fail(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+string(kind)+`-report.csv"`)
		return c.Send(buf.Bytes())
	}
	return ok(c, report)
}

// HandleAssetDetail returns one asset's metadata and references.
// @Summary Get asset detail
// @Description Metadata for a single asset plus the entity types referencing it. The public id must be URL-escaped.
// @Tags images
// @Produce json
// @Param publicId path string true "Public id, slashes allowed (e.g. 'restaurants/abc123')"
// @Success 200 {object} AssetDetail "Asset detail"
// @Failure 404 {object} map[string]any "Unknown asset"
// @Failure 502 {object} map[string]any "Asset host unavailable"
// @Router /admin/images/{publicId} [get]
func (h *Handler) HandleAssetDetail(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	raw := c.Params("+")
	publicID, err := url.PathUnescape(raw)
	if err != nil {
		publicID = raw
	}
	if publicID == "" {
		return fail(c, invalidRequest("invalid public id"))
	}

	detail, err := h.service.AssetDetail(c.Context(), publicID)
	if err != nil {
		if !errors.Is(err, ErrAssetNotFound) {
			l.Error("Asset detail lookup failed", zap.Error(err), zap.String("public_id", publicID))
		}
		return fail(c, err)
	}
	return ok(c, detail)
}
