package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/clinidesk/cashdesk_app/internal/apperrors"
	portssvc "github.com/clinidesk/cashdesk_app/internal/core/ports/services"
	"github.com/clinidesk/cashdesk_app/internal/dto"
	"github.com/clinidesk/cashdesk_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// sessionHandler handles HTTP requests for the cashier session lifecycle.
type sessionHandler struct {
	sessionService   portssvc.SessionSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

// newSessionHandler creates a new sessionHandler.
func newSessionHandler(ss portssvc.SessionSvcFacade, rep portssvc.ReportingSvcFacade) *sessionHandler {
	return &sessionHandler{sessionService: ss, reportingService: rep}
}

// registerSessionRoutes registers the session lifecycle routes.
func registerSessionRoutes(group *gin.RouterGroup, ss portssvc.SessionSvcFacade, rep portssvc.ReportingSvcFacade) {
	h := newSessionHandler(ss, rep)

	sessions := group.Group("/sessions")
	{
		sessions.POST("", h.openSession)
		sessions.GET("", h.listSessions)
		sessions.GET("/:sessionID", h.getSession)
		sessions.POST("/:sessionID/close", h.closeSession)
		sessions.PATCH("/:sessionID/notes", h.annotateSession)
	}
}

// openSession godoc
// @Summary Open a cashier session
// @Description Opens a new session on a register. A register can hold at most one open session.
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body dto.OpenSessionRequest true "Session details"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions [post]
func (h *sessionHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	session, err := h.sessionService.OpenSession(c.Request.Context(), req, userID)
	if err != nil {
		logger.Warn("Failed to open session", slog.String("register_id", req.RegisterID), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// listSessions godoc
// @Summary List cashier sessions
// @Tags sessions
// @Produce json
// @Param registerID query string false "Filter by register"
// @Param status query string false "Filter by status (OPEN or CLOSED)"
// @Param from query string false "Working date from (YYYY-MM-DD)"
// @Param to query string false "Working date to (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListSessionsResponse
// @Failure 400 {object} ErrorResponse
// @Router /sessions [get]
func (h *sessionHandler) listSessions(c *gin.Context) {
	var params dto.ListSessionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	res, err := h.sessionService.ListSessions(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// getSession godoc
// @Summary Get a session with its computed summary
// @Description Returns the session and, when available, its ledger-derived summary.
// @Tags sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionDetailResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{sessionID} [get]
func (h *sessionHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	session, err := h.sessionService.GetSessionByID(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	res := dto.SessionDetailResponse{Session: dto.ToSessionResponse(session)}

	summary, err := h.reportingService.GetSessionSummary(c.Request.Context(), sessionID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		// The session itself loaded; a summary failure degrades the response
		// rather than replacing it.
		logger.Warn("Failed to compute session summary", slog.String("session_id", sessionID), slog.String("error", err.Error()))
	}
	if err == nil {
		res.Summary = summary
	}

	c.JSON(http.StatusOK, res)
}

// closeSession godoc
// @Summary Close a cashier session
// @Description Performs the one-way close, deriving the expected amount and the difference server-side.
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param closing body dto.CloseSessionRequest true "Counted closing amount and optional denominations"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{sessionID}/close [post]
func (h *sessionHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	session, err := h.sessionService.CloseSession(c.Request.Context(), c.Param("sessionID"), req, userID)
	if err != nil {
		logger.Warn("Failed to close session", slog.String("session_id", c.Param("sessionID")), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// annotateSession godoc
// @Summary Annotate a closed session
// @Description Amends the notes of a closed session. Reconciled figures stay immutable.
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param annotation body dto.AnnotateSessionRequest true "Notes to amend"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{sessionID}/notes [patch]
func (h *sessionHandler) annotateSession(c *gin.Context) {
	var req dto.AnnotateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	session, err := h.sessionService.AnnotateSession(c.Request.Context(), c.Param("sessionID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}
