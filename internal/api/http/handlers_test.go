package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/filedeck/filedeck/internal/api/http"
	"github.com/filedeck/filedeck/internal/domain/session"
	"github.com/filedeck/filedeck/internal/infrastructure/monitoring"
	"github.com/filedeck/filedeck/internal/providers/filesystem"
	"github.com/filedeck/filedeck/internal/service"
)

// promauto registers into the default registry, so the collector is
// shared across tests in this package.
var testMetrics = monitoring.NewMetrics()

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	registry := service.NewRegistry()
	require.NoError(t, registry.Register(filesystem.NewProvider(root, nil)))
	sessions := session.NewManager(root)

	handlers := apihttp.NewHandlers(registry, sessions, testMetrics)

	router := gin.New()
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)
	router.POST("/sessions", handlers.CreateSession)
	router.GET("/sessions", handlers.ListSessions)
	router.GET("/sessions/:id", handlers.GetSession)
	router.POST("/sessions/:id/workdir", handlers.SetSessionWorkDir)
	router.DELETE("/sessions/:id", handlers.DeleteSession)
	router.GET("/metrics/json", handlers.MetricsJSON)
	return router, root
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestRootAndHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "filedeck", body["service"])

	w, body = doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestListServices(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/services", nil)
	require.Equal(t, http.StatusOK, w.Code)

	services := body["services"].([]interface{})
	require.Len(t, services, 1)
	svc := services[0].(map[string]interface{})
	assert.Equal(t, "filesystem", svc["id"])
}

func TestListServicesFiltersByCategory(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/services?category=system", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["services"])
}

func TestDiscoverServices(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodPost, "/services/discover",
		map[string]interface{}{"query": "list directory files"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["services"])
}

func TestDiscoverRequiresQuery(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/services/discover", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteService(t *testing.T) {
	router, root := newTestRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))

	w, body := doJSON(t, router, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "filesystem.list",
		"params":  map[string]interface{}{"path": root},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["count"])
}

func TestExecuteUnknownService(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id": "nosuch.tool",
		"params":  map[string]interface{}{},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestExecuteWithUnknownSession(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := doJSON(t, router, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id":    "filesystem.list",
		"params":     map[string]interface{}{"path": "."},
		"session_id": "sess_missing",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	router, root := newTestRouter(t)
	sub := filepath.Join(root, "docs")
	require.NoError(t, os.Mkdir(sub, 0o755))

	// Create with explicit workdir
	w, body := doJSON(t, router, http.MethodPost, "/sessions",
		map[string]interface{}{"work_dir": sub})
	require.Equal(t, http.StatusOK, w.Code)
	sess := body["session"].(map[string]interface{})
	sessID := sess["id"].(string)
	assert.Equal(t, sub, sess["work_dir"])

	// Relative paths resolve against the session workdir
	require.NoError(t, os.WriteFile(filepath.Join(sub, "note.md"), []byte("hi"), 0o644))
	w, body = doJSON(t, router, http.MethodPost, "/services/execute", map[string]interface{}{
		"tool_id":    "filesystem.list",
		"params":     map[string]interface{}{"path": "."},
		"session_id": sessID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["count"])

	// Update workdir
	w, _ = doJSON(t, router, http.MethodPost, "/sessions/"+sessID+"/workdir",
		map[string]interface{}{"work_dir": root})
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, router, http.MethodGet, "/sessions/"+sessID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, root, body["work_dir"])

	// Delete
	w, _ = doJSON(t, router, http.MethodDelete, "/sessions/"+sessID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/sessions/"+sessID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSessionWithoutBody(t *testing.T) {
	router, root := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	sess := body["session"].(map[string]interface{})
	assert.Equal(t, root, sess["work_dir"])
}

func TestMetricsJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/metrics/json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "total_requests")
	assert.Contains(t, body, "uptime_seconds")
}
