package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/clinidesk/cashdesk_app/internal/core/ports/services"
	"github.com/clinidesk/cashdesk_app/internal/dto"
	"github.com/clinidesk/cashdesk_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// registerHandler handles HTTP requests for the register catalog.
type registerHandler struct {
	registerService  portssvc.RegisterSvcFacade
	sessionService   portssvc.SessionSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

// newRegisterHandler creates a new registerHandler.
func newRegisterHandler(rs portssvc.RegisterSvcFacade, ss portssvc.SessionSvcFacade, rep portssvc.ReportingSvcFacade) *registerHandler {
	return &registerHandler{
		registerService:  rs,
		sessionService:   ss,
		reportingService: rep,
	}
}

// registerRegisterRoutes registers the register catalog routes.
func registerRegisterRoutes(group *gin.RouterGroup, rs portssvc.RegisterSvcFacade, ss portssvc.SessionSvcFacade, rep portssvc.ReportingSvcFacade) {
	h := newRegisterHandler(rs, ss, rep)

	registers := group.Group("/registers")
	{
		registers.POST("", h.createRegister)
		registers.GET("", h.listRegisters)
		registers.GET("/:registerID", h.getRegister)
		registers.PUT("/:registerID", h.updateRegister)
		registers.DELETE("/:registerID", h.deactivateRegister)
		registers.GET("/:registerID/snapshot", h.getRegisterSnapshot)
		registers.GET("/:registerID/session", h.getOpenSession)
	}
}

// createRegister godoc
// @Summary Create a cash register
// @Description Creates a new register with its starting float.
// @Tags registers
// @Accept json
// @Produce json
// @Param register body dto.CreateRegisterRequest true "Register details"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /registers [post]
func (h *registerHandler) createRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	register, err := h.registerService.CreateRegister(c.Request.Context(), req, userID)
	if err != nil {
		logger.Warn("Failed to create register", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegisterResponse(register))
}

// listRegisters godoc
// @Summary List cash registers
// @Description Lists the register catalog, optionally including deactivated registers.
// @Tags registers
// @Produce json
// @Param includeInactive query bool false "Include deactivated registers"
// @Success 200 {array} dto.RegisterResponse
// @Router /registers [get]
func (h *registerHandler) listRegisters(c *gin.Context) {
	var params dto.ListRegistersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	registers, err := h.registerService.ListRegisters(c.Request.Context(), params.IncludeInactive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListRegisterResponse(registers))
}

// getRegister godoc
// @Summary Get a cash register
// @Tags registers
// @Produce json
// @Param registerID path string true "Register ID"
// @Success 200 {object} dto.RegisterResponse
// @Failure 404 {object} ErrorResponse
// @Router /registers/{registerID} [get]
func (h *registerHandler) getRegister(c *gin.Context) {
	register, err := h.registerService.GetRegisterByID(c.Request.Context(), c.Param("registerID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRegisterResponse(register))
}

// updateRegister godoc
// @Summary Update a cash register
// @Description Updates descriptive register details. The balance cannot be changed.
// @Tags registers
// @Accept json
// @Produce json
// @Param registerID path string true "Register ID"
// @Param register body dto.UpdateRegisterRequest true "Fields to update"
// @Success 200 {object} dto.RegisterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /registers/{registerID} [put]
func (h *registerHandler) updateRegister(c *gin.Context) {
	var req dto.UpdateRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	register, err := h.registerService.UpdateRegister(c.Request.Context(), c.Param("registerID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRegisterResponse(register))
}

// deactivateRegister godoc
// @Summary Deactivate a cash register
// @Description Marks a register inactive. Rejected while it has an open session.
// @Tags registers
// @Produce json
// @Param registerID path string true "Register ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /registers/{registerID} [delete]
func (h *registerHandler) deactivateRegister(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.registerService.DeactivateRegister(c.Request.Context(), c.Param("registerID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getRegisterSnapshot godoc
// @Summary Get the live snapshot of a register
// @Description Returns the current balance, today's movement count and whether a session is open.
// @Tags registers
// @Produce json
// @Param registerID path string true "Register ID"
// @Success 200 {object} dto.RegisterSnapshotResponse
// @Failure 404 {object} ErrorResponse
// @Router /registers/{registerID}/snapshot [get]
func (h *registerHandler) getRegisterSnapshot(c *gin.Context) {
	snapshot, err := h.reportingService.GetRegisterSnapshot(c.Request.Context(), c.Param("registerID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// getOpenSession godoc
// @Summary Get the open session of a register
// @Tags registers
// @Produce json
// @Param registerID path string true "Register ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /registers/{registerID}/session [get]
func (h *registerHandler) getOpenSession(c *gin.Context) {
	session, err := h.sessionService.GetOpenSessionByRegister(c.Request.Context(), c.Param("registerID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}
