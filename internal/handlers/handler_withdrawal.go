package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
	"github.com/cardflow-app/cardflow_backend/internal/middleware"
	"github.com/cardflow-app/cardflow_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type withdrawalHandler struct {
	sheetService      portssvc.SheetSvcFacade
	withdrawalService portssvc.WithdrawalSvcFacade
	loc               *time.Location
}

func newWithdrawalHandler(ss portssvc.SheetSvcFacade, ws portssvc.WithdrawalSvcFacade, loc *time.Location) *withdrawalHandler {
	return &withdrawalHandler{
		sheetService:      ss,
		withdrawalService: ws,
		loc:               loc,
	}
}

// registerWithdrawalRoutes registers the daily withdrawal sheet routes.
func registerWithdrawalRoutes(rg *gin.RouterGroup, sheetService portssvc.SheetSvcFacade, withdrawalService portssvc.WithdrawalSvcFacade, loc *time.Location) {
	h := newWithdrawalHandler(sheetService, withdrawalService, loc)

	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.GET("/sheet", h.getSheet)
		withdrawals.POST("/sheet", h.saveSheetEntry)
	}
}

// getSheet godoc
// @Summary Get the daily withdrawal sheet
// @Description Builds the operator worksheet for a day: one row per active card with money to withdraw, grouped by bank. Defaults to today.
// @Tags withdrawals
// @Produce json
// @Param date query string false "Day (DD/MM/YYYY or YYYY-MM-DD)" default(today)
// @Param bank query string false "Bank filter, exact match preferred over substring"
// @Param q query string false "Substring filter over card label, bank and PIN"
// @Param page query int false "1-based page number" default(1)
// @Param page_size query int false "Rows per page, 0 for all" default(0)
// @Success 200 {object} dto.SheetResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build sheet"
// @Security BearerAuth
// @Router /withdrawals/sheet [get]
func (h *withdrawalHandler) getSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SheetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	day := time.Now().In(h.loc)
	if params.Date != "" {
		parsed, err := utils.ParseUserDate(params.Date, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use DD/MM/YYYY or YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	filter := domain.SheetFilter{
		Bank:     params.Bank,
		Text:     params.Q,
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	sheet, err := h.sheetService.BuildDailySheet(c.Request.Context(), day, filter)
	if err != nil {
		logger.Error("Failed to build daily sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sheet"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSheetResponse(sheet, utils.FormatAmount))
}

// saveSheetEntry godoc
// @Summary Save a withdrawal sheet entry
// @Description Creates or updates the single withdrawal row for a card and date. Marking the row fully withdrawn stores no amount; the card's computed balance drains instead.
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param entry body dto.SaveSheetEntryRequest true "Sheet entry"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Failure 500 {object} map[string]string "Failed to save withdrawal"
// @Security BearerAuth
// @Router /withdrawals/sheet [post]
func (h *withdrawalHandler) saveSheetEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveSheetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for saveSheetEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("card_id", req.CardID), slog.String("date", req.Date))
	withdrawal, err := h.withdrawalService.UpsertForDay(c.Request.Context(), req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		} else {
			logger.Error("Failed to save withdrawal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save withdrawal"})
		}
		return
	}

	logger.Info("Withdrawal saved", slog.String("withdrawal_id", withdrawal.WithdrawalID))
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(withdrawal))
}
