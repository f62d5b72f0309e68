package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
	"github.com/cardflow-app/cardflow_backend/internal/middleware"
	"github.com/cardflow-app/cardflow_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for aggregate reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	loc              *time.Location
}

func newReportingHandler(rs portssvc.ReportingSvcFacade, loc *time.Location) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		loc:              loc,
	}
}

// registerReportingRoutes registers routes for aggregate reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, loc *time.Location) {
	h := newReportingHandler(reportingService, loc)

	reports := rg.Group("/reports")
	{
		reports.GET("/cards", h.getCardTotals)
		reports.GET("/payments", h.getPaymentsSummary)
	}
}

// parseRange reads the from/to query params into optional day bounds. A nil
// bound means the range is open on that side.
func (h *reportingHandler) parseRange(params dto.ReportParams) (*time.Time, *time.Time, string, bool) {
	var start, end *time.Time
	if params.From != "" {
		from, err := utils.ParseUserDate(params.From, h.loc)
		if err != nil {
			return nil, nil, "Invalid from date. Use DD/MM/YYYY or YYYY-MM-DD", false
		}
		start = &from
	}
	if params.To != "" {
		to, err := utils.ParseUserDate(params.To, h.loc)
		if err != nil {
			return nil, nil, "Invalid to date. Use DD/MM/YYYY or YYYY-MM-DD", false
		}
		end = &to
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, "from must be before or equal to to", false
	}
	return start, end, "", true
}

// getCardTotals godoc
// @Summary Generate the per-card totals report
// @Description Totals received, withdrawn, commission and remaining balance per card over an optional date range, with an overall row.
// @Tags reports
// @Produce json
// @Param from query string false "Range start (DD/MM/YYYY or YYYY-MM-DD), inclusive"
// @Param to query string false "Range end, inclusive"
// @Success 200 {object} dto.CardTotalsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/cards [get]
func (h *reportingHandler) getCardTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	start, end, msg, ok := h.parseRange(params)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	logger = logger.With(slog.String("from", params.From), slog.String("to", params.To))
	logger.Info("Received request to generate card totals report")

	rows, overall, err := h.reportingService.CardTotals(c.Request.Context(), start, end)
	if err != nil {
		logger.Error("Failed to generate card totals report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate card totals report"})
		return
	}

	logger.Info("Card totals report generated successfully", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.ToCardTotalsResponse(rows, overall, start, end))
}

// getPaymentsSummary godoc
// @Summary Generate the payments summary report
// @Description Aggregates received payments per calendar day and client over an optional date range.
// @Tags reports
// @Produce json
// @Param from query string false "Range start (DD/MM/YYYY or YYYY-MM-DD), inclusive"
// @Param to query string false "Range end, inclusive"
// @Param client_id query string false "Client ID filter"
// @Success 200 {object} dto.PaymentsSummaryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/payments [get]
func (h *reportingHandler) getPaymentsSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	start, end, msg, ok := h.parseRange(params)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var clientID *string
	if params.ClientID != "" {
		clientID = &params.ClientID
	}

	logger = logger.With(slog.String("from", params.From), slog.String("to", params.To))
	logger.Info("Received request to generate payments summary report")

	rows, err := h.reportingService.PaymentsSummary(c.Request.Context(), start, end, clientID)
	if err != nil {
		logger.Error("Failed to generate payments summary report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate payments summary report"})
		return
	}

	logger.Info("Payments summary report generated successfully", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.ToPaymentsSummaryResponse(rows))
}
