package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"parking-service/internal/auth"
	"parking-service/internal/domain/parking"
	"parking-service/internal/service"
)

type Handler struct {
	vehicles   *service.VehicleService
	sessions   *service.SessionService
	violations *service.ViolationService
	tokens     *auth.TokenManager
	devTokens  bool
	log        zerolog.Logger
}

func NewHandler(
	vehicles *service.VehicleService,
	sessions *service.SessionService,
	violations *service.ViolationService,
	tokens *auth.TokenManager,
	devTokens bool,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		vehicles:   vehicles,
		sessions:   sessions,
		violations: violations,
		tokens:     tokens,
		devTokens:  devTokens,
		log:        log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.GET("/healthz", h.healthz)
	if h.devTokens {
		r.POST("/auth/token", h.issueDevToken)
	}

	api := r.Group("/api/v1")
	api.Use(authMiddleware)
	{
		api.POST("/vehicles", h.registerVehicle)
		api.GET("/vehicles", h.listVehicles)
		api.GET("/vehicles/search", h.searchVehicle)
		api.PATCH("/vehicles/:id/status", h.setVehicleStatus)

		api.POST("/sessions", h.startSession)
		api.POST("/sessions/:id/end", h.endSession)
		api.POST("/sessions/:id/flag", h.flagSession)
		api.GET("/sessions/active", h.listActiveSessions)
		api.GET("/sessions/history", h.parkingHistory)

		api.POST("/violations", h.reportViolation)
		api.GET("/violations", h.listViolations)
		api.POST("/violations/:id/resolve", h.resolveViolation)

		api.GET("/me", h.me)
		api.GET("/me/vehicles", h.myVehicles)
		api.GET("/me/sessions", h.mySessions)
	}
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// issueDevToken exists only when auth.dev_tokens is enabled; production
// tokens come from the external identity provider.
func (h *Handler) issueDevToken(c *gin.Context) {
	var req struct {
		Subject string `json:"subject"`
		Email   string `json:"email"`
		Name    string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	token, expiresAt, err := h.tokens.Issue(req.Subject, req.Email, req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": expiresAt})
}

func (h *Handler) registerVehicle(c *gin.Context) {
	var payload parking.RegisterVehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicles.Register(c.Request.Context(), callerFrom(c), payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(vehicle))
}

func (h *Handler) listVehicles(c *gin.Context) {
	var status *string
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		status = &s
	}

	vehicles, err := h.vehicles.List(c.Request.Context(), callerFrom(c), status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicles))
}

func (h *Handler) searchVehicle(c *gin.Context) {
	plate := strings.TrimSpace(c.Query("plate"))
	if plate == "" {
		c.JSON(http.StatusBadRequest, errorResponse("plate parameter is required"))
		return
	}

	vehicle, err := h.vehicles.FindByPlate(c.Request.Context(), callerFrom(c), plate)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// nil means no match; the dashboard treats that as an empty result,
	// not an error.
	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) setVehicleStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	if err := h.vehicles.SetStatus(c.Request.Context(), callerFrom(c), c.Param("id"), req.Status, req.Notes); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) startSession(c *gin.Context) {
	var payload parking.StartSessionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	session, err := h.sessions.Start(c.Request.Context(), callerFrom(c), payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(session))
}

func (h *Handler) endSession(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
	}

	if err := h.sessions.End(c.Request.Context(), callerFrom(c), c.Param("id"), req.Notes); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) flagSession(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
	}

	if err := h.sessions.Flag(c.Request.Context(), callerFrom(c), c.Param("id"), req.Notes); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listActiveSessions(c *gin.Context) {
	sessions, err := h.sessions.ListActive(c.Request.Context(), callerFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(sessions))
}

func (h *Handler) parkingHistory(c *gin.Context) {
	var plate *string
	if p := strings.TrimSpace(c.Query("plate")); p != "" {
		plate = &p
	}

	sessions, err := h.sessions.History(c.Request.Context(), callerFrom(c), plate)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(sessions))
}

func (h *Handler) reportViolation(c *gin.Context) {
	var payload parking.ReportViolationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	violation, err := h.violations.Report(c.Request.Context(), callerFrom(c), payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(violation))
}

func (h *Handler) listViolations(c *gin.Context) {
	var resolved *bool
	if r := strings.TrimSpace(c.Query("resolved")); r != "" {
		parsed, err := strconv.ParseBool(r)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("resolved must be true or false"))
			return
		}
		resolved = &parsed
	}

	violations, err := h.violations.List(c.Request.Context(), callerFrom(c), resolved)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(violations))
}

func (h *Handler) resolveViolation(c *gin.Context) {
	if err := h.violations.Resolve(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(callerFrom(c)))
}

func (h *Handler) myVehicles(c *gin.Context) {
	vehicles, err := h.vehicles.ListOwnedBy(c.Request.Context(), callerFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicles))
}

func (h *Handler) mySessions(c *gin.Context) {
	sessions, err := h.sessions.HistoryOwnedBy(c.Request.Context(), callerFrom(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(sessions))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, errorResponse("unauthorized"))
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrVehicleNotRegistered):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrDuplicatePlate),
		errors.Is(err, service.ErrSessionAlreadyActive):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrVehicleBlocked):
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
