package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cardflow-app/cardflow_backend/internal/apperrors"
	portssvc "github.com/cardflow-app/cardflow_backend/internal/core/ports/services"
	"github.com/cardflow-app/cardflow_backend/internal/dto"
	"github.com/cardflow-app/cardflow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type cardGroupHandler struct {
	groupService portssvc.CardGroupSvcFacade
}

func newCardGroupHandler(gs portssvc.CardGroupSvcFacade) *cardGroupHandler {
	return &cardGroupHandler{groupService: gs}
}

// registerCardGroupRoutes registers routes for card groups.
func registerCardGroupRoutes(rg *gin.RouterGroup, groupService portssvc.CardGroupSvcFacade) {
	h := newCardGroupHandler(groupService)

	groups := rg.Group("/card-groups")
	{
		groups.POST("", h.createGroup)
		groups.GET("", h.listGroups)
		groups.PUT("/:group_id", h.renameGroup)
		groups.DELETE("/:group_id", h.deleteGroup)
	}
}

// createGroup godoc
// @Summary Create a card group
// @Description Creates a group by name, or returns the existing group when the name is already taken.
// @Tags card-groups
// @Accept json
// @Produce json
// @Param group body dto.CreateCardGroupRequest true "Group name"
// @Success 201 {object} dto.CardGroupResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create card group"
// @Security BearerAuth
// @Router /card-groups [post]
func (h *cardGroupHandler) createGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCardGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	group, err := h.groupService.GetOrCreateGroup(c.Request.Context(), req.Name, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create card group", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card group"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCardGroupResponse(group))
}

// listGroups godoc
// @Summary List card groups
// @Tags card-groups
// @Produce json
// @Success 200 {array} dto.CardGroupResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list card groups"
// @Security BearerAuth
// @Router /card-groups [get]
func (h *cardGroupHandler) listGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	groups, err := h.groupService.ListGroups(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list card groups", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list card groups"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCardGroupResponse(groups))
}

// renameGroup godoc
// @Summary Rename a card group
// @Tags card-groups
// @Accept json
// @Produce json
// @Param group_id path string true "Group ID"
// @Param group body dto.RenameCardGroupRequest true "New name"
// @Success 200 {object} dto.CardGroupResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 409 {object} map[string]string "Name already in use"
// @Failure 500 {object} map[string]string "Failed to rename card group"
// @Security BearerAuth
// @Router /card-groups/{group_id} [put]
func (h *cardGroupHandler) renameGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	var req dto.RenameCardGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for renameGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	group, err := h.groupService.RenameGroup(c.Request.Context(), groupID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card group not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A card group with this name already exists"})
		} else {
			logger.Error("Failed to rename card group", slog.String("group_id", groupID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename card group"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCardGroupResponse(group))
}

// deleteGroup godoc
// @Summary Delete a card group
// @Description Deletes the group. Refused while cards still belong to it.
// @Tags card-groups
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 409 {object} map[string]string "Group still has cards"
// @Failure 500 {object} map[string]string "Failed to delete card group"
// @Security BearerAuth
// @Router /card-groups/{group_id} [delete]
func (h *cardGroupHandler) deleteGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("group_id")

	if err := h.groupService.DeleteGroup(c.Request.Context(), groupID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card group not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Group still has cards; move them out first"})
		} else {
			logger.Error("Failed to delete card group", slog.String("group_id", groupID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card group"})
		}
		return
	}

	logger.Info("Card group deleted", slog.String("group_id", groupID))
	c.Status(http.StatusNoContent)
}
