package handlers

import (
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// StatisticsHandler serves the statistics report, both as JSON and as the
// rendered dashboard. Both views are produced from the same report so their
// numbers always agree.
type StatisticsHandler struct {
	statisticsService services.StatisticsServiceInterface
	presenter         *services.StatisticsPresenter
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(statisticsService services.StatisticsServiceInterface) *StatisticsHandler {
	return &StatisticsHandler{
		statisticsService: statisticsService,
		presenter:         services.NewStatisticsPresenter(),
	}
}

// GetStatistics returns the statistics report as JSON
// @Summary Get statistics
// @Description Aggregate totals, category breakdowns, monthly trend, weekday distribution and largest transactions over a date range. The range defaults to the last 30 days.
// @Tags Statistics
// @Security BearerAuth
// @Produce json
// @Param from_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.StatisticsResponse
// @Failure 400 {object} errors.ErrorResponse "Invalid date range - STATISTICS_001"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002"
// @Router /api/statistics [get]
func (h *StatisticsHandler) GetStatistics(c echo.Context) error {
	report, err := h.computeReport(c)
	if err != nil {
		return err
	}
	if report == nil {
		// error response already sent
		return nil
	}

	return c.JSON(http.StatusOK, h.presenter.Response(report))
}

// RenderDashboard renders the statistics dashboard as HTML
// @Summary Statistics dashboard
// @Tags Statistics
// @Security BearerAuth
// @Produce html
// @Param from_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {string} string "Rendered dashboard"
// @Router /statistics [get]
func (h *StatisticsHandler) RenderDashboard(c echo.Context) error {
	report, err := h.computeReport(c)
	if err != nil {
		return err
	}
	if report == nil {
		return nil
	}

	return c.Render(http.StatusOK, "statistics.html", h.presenter.TemplateContext(report))
}

// computeReport binds the date range, runs the computation and maps service
// errors. A nil report with nil error means an error response was already
// written.
func (h *StatisticsHandler) computeReport(c echo.Context) (*models.StatisticsReport, error) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return nil, SendError(c, errors.AuthMissingToken)
	}

	var req dto.StatisticsRequest
	if err := c.Bind(&req); err != nil {
		return nil, SendError(c, errors.StatisticsInvalidRange)
	}

	if err := c.Validate(req); err != nil {
		return nil, err
	}

	report, err := h.statisticsService.ComputeStatistics(userID, req.FromDate, req.ToDate)
	if err != nil {
		if err == services.ErrInvalidDateRange {
			return nil, SendError(c, errors.StatisticsInvalidRange)
		}
		return nil, SendSystemError(c, err)
	}

	return report, nil
}
