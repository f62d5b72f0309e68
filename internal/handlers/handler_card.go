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

// cardHandler handles HTTP requests related to cards, banks and the per-card
// balance and timeline views.
type cardHandler struct {
	cardService     portssvc.CardSvcFacade
	balanceService  portssvc.BalanceSvcFacade
	timelineService portssvc.TimelineSvcFacade
	loc             *time.Location
}

func newCardHandler(cs portssvc.CardSvcFacade, bs portssvc.BalanceSvcFacade, ts portssvc.TimelineSvcFacade, loc *time.Location) *cardHandler {
	return &cardHandler{
		cardService:     cs,
		balanceService:  bs,
		timelineService: ts,
		loc:             loc,
	}
}

// registerCardRoutes registers routes related to cards and banks.
func registerCardRoutes(rg *gin.RouterGroup, cardService portssvc.CardSvcFacade, balanceService portssvc.BalanceSvcFacade, timelineService portssvc.TimelineSvcFacade, loc *time.Location) {
	h := newCardHandler(cardService, balanceService, timelineService, loc)

	cards := rg.Group("/cards")
	{
		cards.POST("", h.createCard)
		cards.GET("", h.listCards)
		cards.GET("/:card_id", h.getCard)
		cards.PUT("/:card_id", h.updateCard)
		cards.DELETE("/:card_id", h.deleteCard)
		cards.GET("/:card_id/balance", h.getCardBalance)
		cards.GET("/:card_id/timeline", h.getCardTimeline)
	}

	banks := rg.Group("/banks")
	{
		banks.GET("", h.listBanks)
		banks.GET("/colors", h.listBankColors)
		banks.PUT("/colors", h.setBankColor)
	}
}

// createCard godoc
// @Summary Create a new card
// @Description Creates a card. The (name, bank, number) triple must be unique; an optional group name is resolved via get-or-create.
// @Tags cards
// @Accept json
// @Produce json
// @Param card body dto.CreateCardRequest true "Card details"
// @Success 201 {object} dto.CardResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Card with the same identity already exists"
// @Failure 500 {object} map[string]string "Failed to create card"
// @Security BearerAuth
// @Router /cards [post]
func (h *cardHandler) createCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	newCard, err := h.cardService.CreateCard(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A card with the same name, bank and number already exists"})
		} else {
			logger.Error("Failed to create card", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		}
		return
	}

	logger.Info("Card created", slog.String("card_id", newCard.CardID))
	c.JSON(http.StatusCreated, dto.ToCardResponse(newCard))
}

// listCards godoc
// @Summary List cards
// @Description Lists cards ordered by name, optionally filtered by status and bank.
// @Tags cards
// @Produce json
// @Param status query string false "Card status" Enums(ACTIVE, BROKEN, HOLD)
// @Param bank query string false "Exact bank name"
// @Success 200 {array} dto.CardResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list cards"
// @Security BearerAuth
// @Router /cards [get]
func (h *cardHandler) listCards(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCardsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var status *domain.CardStatus
	if params.Status != "" {
		s := domain.CardStatus(params.Status)
		status = &s
	}
	var bank *string
	if params.Bank != "" {
		bank = &params.Bank
	}

	cards, err := h.cardService.ListCards(c.Request.Context(), status, bank)
	if err != nil {
		logger.Error("Failed to list cards", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cards"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCardResponse(cards))
}

// getCard godoc
// @Summary Get a card by ID
// @Tags cards
// @Produce json
// @Param card_id path string true "Card ID"
// @Success 200 {object} dto.CardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Failure 500 {object} map[string]string "Failed to retrieve card"
// @Security BearerAuth
// @Router /cards/{card_id} [get]
func (h *cardHandler) getCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cardID := c.Param("card_id")

	card, err := h.cardService.GetCardByID(c.Request.Context(), cardID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		logger.Error("Failed to retrieve card", slog.String("card_id", cardID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}

// updateCard godoc
// @Summary Update a card
// @Description Updates the provided fields. An empty group name clears the group.
// @Tags cards
// @Accept json
// @Produce json
// @Param card_id path string true "Card ID"
// @Param card body dto.UpdateCardRequest true "Fields to update"
// @Success 200 {object} dto.CardResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Failure 409 {object} map[string]string "Identity conflict"
// @Failure 500 {object} map[string]string "Failed to update card"
// @Security BearerAuth
// @Router /cards/{card_id} [put]
func (h *cardHandler) updateCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cardID := c.Param("card_id")

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), cardID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A card with the same name, bank and number already exists"})
		} else {
			logger.Error("Failed to update card", slog.String("card_id", cardID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}

// deleteCard godoc
// @Summary Delete a card
// @Description Deletes a card together with its withdrawal rows. Refused while the card still has transactions.
// @Tags cards
// @Produce json
// @Param card_id path string true "Card ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Failure 409 {object} map[string]string "Card still has transactions"
// @Failure 500 {object} map[string]string "Failed to delete card"
// @Security BearerAuth
// @Router /cards/{card_id} [delete]
func (h *cardHandler) deleteCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cardID := c.Param("card_id")

	if err := h.cardService.DeleteCard(c.Request.Context(), cardID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Card still has transactions; delete or reassign them first"})
		} else {
			logger.Error("Failed to delete card", slog.String("card_id", cardID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		}
		return
	}

	logger.Info("Card deleted", slog.String("card_id", cardID))
	c.Status(http.StatusNoContent)
}

// getCardBalance godoc
// @Summary Get a card's balance for a day
// @Description Returns the carried, received and should-have amounts for the card on the given day. Defaults to today.
// @Tags cards
// @Produce json
// @Param card_id path string true "Card ID"
// @Param date query string false "Day (DD/MM/YYYY or YYYY-MM-DD)" default(today)
// @Success 200 {object} dto.DayBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /cards/{card_id}/balance [get]
func (h *cardHandler) getCardBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cardID := c.Param("card_id")

	day := time.Now().In(h.loc)
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := utils.ParseUserDate(dateStr, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use DD/MM/YYYY or YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	balance, err := h.balanceService.BalanceOnDay(c.Request.Context(), cardID, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		logger.Error("Failed to compute card balance", slog.String("card_id", cardID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDayBalanceResponse(balance))
}

// getCardTimeline godoc
// @Summary Get a card's event timeline
// @Description Returns the merged stream of receipts and withdrawals, newest first, each with the running balance after it.
// @Tags cards
// @Produce json
// @Param card_id path string true "Card ID"
// @Param from query string false "Range start (DD/MM/YYYY or YYYY-MM-DD), inclusive"
// @Param to query string false "Range end, inclusive"
// @Param kind query string false "Event kind filter" Enums(TRANSACTION, WITHDRAWAL)
// @Param q query string false "Substring filter over client name and note"
// @Success 200 {object} dto.TimelineResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Failure 500 {object} map[string]string "Failed to build timeline"
// @Security BearerAuth
// @Router /cards/{card_id}/timeline [get]
func (h *cardHandler) getCardTimeline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cardID := c.Param("card_id")

	var params dto.TimelineParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var start, end *time.Time
	if params.From != "" {
		from, err := utils.ParseUserDate(params.From, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date. Use DD/MM/YYYY or YYYY-MM-DD"})
			return
		}
		start = &from
	}
	if params.To != "" {
		to, err := utils.ParseUserDate(params.To, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date. Use DD/MM/YYYY or YYYY-MM-DD"})
			return
		}
		end = &to
	}

	filter := domain.TimelineFilter{
		Kind: domain.TimelineEventKind(params.Kind),
		Text: params.Q,
	}

	events, err := h.timelineService.BuildTimeline(c.Request.Context(), cardID, start, end, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		logger.Error("Failed to build card timeline", slog.String("card_id", cardID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build timeline"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTimelineResponse(cardID, events, h.loc))
}

// listBanks godoc
// @Summary List bank names
// @Description Lists the distinct bank names across all cards.
// @Tags banks
// @Produce json
// @Success 200 {object} dto.BankListResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list banks"
// @Security BearerAuth
// @Router /banks [get]
func (h *cardHandler) listBanks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	banks, err := h.cardService.ListBanks(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list banks", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list banks"})
		return
	}

	c.JSON(http.StatusOK, dto.BankListResponse{Banks: banks})
}

// listBankColors godoc
// @Summary List bank colors
// @Tags banks
// @Produce json
// @Success 200 {array} dto.BankColorResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list bank colors"
// @Security BearerAuth
// @Router /banks/colors [get]
func (h *cardHandler) listBankColors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	colors, err := h.cardService.ListBankColors(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list bank colors", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bank colors"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankColorResponse(colors))
}

// setBankColor godoc
// @Summary Assign a bank color
// @Description Sets the display color for a bank name, replacing any previous assignment.
// @Tags banks
// @Accept json
// @Produce json
// @Param color body dto.SetBankColorRequest true "Bank and color"
// @Success 200 {object} dto.BankColorResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to set bank color"
// @Security BearerAuth
// @Router /banks/colors [put]
func (h *cardHandler) setBankColor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetBankColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setBankColor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	color, err := h.cardService.SetBankColor(c.Request.Context(), req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to set bank color", slog.String("bank", req.Bank), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set bank color"})
		return
	}

	logger.Info("Bank color assigned", slog.String("bank", color.Bank), slog.String("color", color.Color))
	c.JSON(http.StatusOK, dto.ToBankColorResponse(color))
}
