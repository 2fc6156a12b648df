package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/clinidesk/cashdesk_app/internal/core/ports/services"
	"github.com/clinidesk/cashdesk_app/internal/dto"
	"github.com/clinidesk/cashdesk_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportingHandler handles HTTP requests for reporting and exports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rep portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rep}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(group *gin.RouterGroup, rep portssvc.ReportingSvcFacade) {
	h := newReportingHandler(rep)

	group.GET("/dashboard", h.getDashboard)
	group.GET("/reports/movements/export", h.exportMovements)
}

// getDashboard godoc
// @Summary Get the cash flow dashboard
// @Description Aggregates totals, open sessions and recent movements over a date window.
// @Tags reporting
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Param registerID query string false "Restrict to one register"
// @Param recent query int false "Number of recent movements to include"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Router /dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	dashboard, err := h.reportingService.GetDashboard(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// exportMovements godoc
// @Summary Export movements as a spreadsheet
// @Description Streams an XLSX workbook of the ledger over the requested window.
// @Tags reporting
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "Movement date from (YYYY-MM-DD)"
// @Param to query string false "Movement date to (YYYY-MM-DD)"
// @Param registerID query string false "Restrict to one register"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Router /reports/movements/export [get]
func (h *reportingHandler) exportMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ExportMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	data, err := h.reportingService.ExportMovements(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to export movements", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("movements_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
