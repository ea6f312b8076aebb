package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/filedeck/filedeck/internal/domain/session"
	"github.com/filedeck/filedeck/internal/infrastructure/monitoring"
	"github.com/filedeck/filedeck/internal/service"
	"github.com/filedeck/filedeck/internal/shared/types"
)

// Version reported by the root and health endpoints.
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	sessions *session.Manager
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, sessions *session.Manager, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		registry: registry,
		sessions: sessions,
		metrics:  metrics,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "filedeck",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"sessions":         gin.H{"active": len(h.sessions.List())},
		"uptime_seconds":   h.metrics.UptimeSeconds(),
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	categoryStr := c.Query("category")

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	services := h.registry.List(category)
	stats := h.registry.Stats()

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    stats,
	})
}

// DiscoverServices discovers relevant services for a query
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
		Limit int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > 20 {
		limit = 5
	}

	services := h.registry.Discover(req.Query, limit)

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Query,
		"services": services,
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appCtx := &types.Context{SessionID: req.SessionID}
	if req.SessionID != nil {
		sess, ok := h.sessions.Get(*req.SessionID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		appCtx.WorkDir = &sess.WorkDir
	}

	svcName := serviceName(req.ToolID)
	timer := monitoring.NewTimer(h.metrics, svcName, req.ToolID)

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		timer.Stop("error")
		h.metrics.RecordToolError(svcName, req.ToolID, "execution")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Success {
		timer.Stop("success")
	} else {
		timer.Stop("failure")
		h.metrics.RecordToolError(svcName, req.ToolID, "tool")
	}

	c.JSON(http.StatusOK, result)
}

// CreateSession creates a new working-directory session
func (h *Handlers) CreateSession(c *gin.Context) {
	var req types.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := h.sessions.Create(req.WorkDir)
	h.metrics.IncSessionsCreated()
	h.metrics.SetSessionsActive(len(h.sessions.List()))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": sess,
	})
}

// ListSessions lists all active sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions := h.sessions.List()
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// GetSession gets details of a specific session
func (h *Handlers) GetSession(c *gin.Context) {
	sessionID := c.Param("id")

	sess, ok := h.sessions.Get(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, sess)
}

// SetSessionWorkDir updates a session's working directory
func (h *Handlers) SetSessionWorkDir(c *gin.Context) {
	sessionID := c.Param("id")

	var req struct {
		WorkDir string `json:"work_dir" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, ok := h.sessions.SetWorkDir(sessionID, req.WorkDir)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": sess,
	})
}

// DeleteSession deletes a session
func (h *Handlers) DeleteSession(c *gin.Context) {
	sessionID := c.Param("id")

	if !h.sessions.Delete(sessionID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	h.metrics.SetSessionsActive(len(h.sessions.List()))

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": sessionID,
	})
}

// MetricsJSON exposes aggregate metrics for dashboards that do not
// scrape Prometheus
func (h *Handlers) MetricsJSON(c *gin.Context) {
	snap := h.metrics.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"total_requests":       snap.TotalRequests,
		"total_errors":         snap.TotalErrors,
		"active_connections":   snap.ActiveConnections,
		"avg_request_duration": h.metrics.AvgRequestDuration(),
		"uptime_seconds":       h.metrics.UptimeSeconds(),
	})
}

func serviceName(toolID string) string {
	if i := strings.Index(toolID, "."); i > 0 {
		return toolID[:i]
	}
	return toolID
}
