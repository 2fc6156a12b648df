package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/clinidesk/cashdesk_app/internal/core/ports/services"
	"github.com/clinidesk/cashdesk_app/internal/dto"
	"github.com/clinidesk/cashdesk_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// movementHandler handles HTTP requests for the movement ledger.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
}

// newMovementHandler creates a new movementHandler.
func newMovementHandler(ms portssvc.MovementSvcFacade) *movementHandler {
	return &movementHandler{movementService: ms}
}

// registerMovementRoutes registers the movement ledger routes.
func registerMovementRoutes(group *gin.RouterGroup, ms portssvc.MovementSvcFacade) {
	h := newMovementHandler(ms)

	movements := group.Group("/movements")
	{
		movements.POST("", h.postMovement)
		movements.GET("", h.listMovements)
		movements.GET("/:movementID", h.getMovement)
		movements.POST("/:movementID/reverse", h.reverseMovement)
	}
}

// postMovement godoc
// @Summary Post a cash movement
// @Description Appends an income or expense to the ledger and moves the register balance atomically.
// @Tags movements
// @Accept json
// @Produce json
// @Param movement body dto.PostMovementRequest true "Movement details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /movements [post]
func (h *movementHandler) postMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.movementService.PostMovement(c.Request.Context(), req, userID)
	if err != nil {
		logger.Warn("Failed to post movement", slog.String("register_id", req.RegisterID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List cash movements
// @Tags movements
// @Produce json
// @Param registerID query string false "Filter by register"
// @Param sessionID query string false "Filter by session"
// @Param movementType query string false "Filter by type (INCOME or EXPENSE)"
// @Param category query string false "Filter by category"
// @Param from query string false "Movement date from (YYYY-MM-DD)"
// @Param to query string false "Movement date to (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} ErrorResponse
// @Router /movements [get]
func (h *movementHandler) listMovements(c *gin.Context) {
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	res, err := h.movementService.ListMovements(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// getMovement godoc
// @Summary Get a cash movement
// @Tags movements
// @Produce json
// @Param movementID path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 404 {object} ErrorResponse
// @Router /movements/{movementID} [get]
func (h *movementHandler) getMovement(c *gin.Context) {
	movement, err := h.movementService.GetMovementByID(c.Request.Context(), c.Param("movementID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// reverseMovement godoc
// @Summary Reverse a cash movement
// @Description Posts the offsetting movement for a ledger entry. Movements are never deleted.
// @Tags movements
// @Accept json
// @Produce json
// @Param movementID path string true "Movement ID"
// @Param reversal body dto.ReverseMovementRequest true "Reason for the reversal"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /movements/{movementID}/reverse [post]
func (h *movementHandler) reverseMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReverseMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reversal, err := h.movementService.ReverseMovement(c.Request.Context(), c.Param("movementID"), req, userID)
	if err != nil {
		logger.Warn("Failed to reverse movement", slog.String("movement_id", c.Param("movementID")), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMovementResponse(reversal))
}
