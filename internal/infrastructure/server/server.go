package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/filedeck/filedeck/internal/api/http"
	"github.com/filedeck/filedeck/internal/api/middleware"
	"github.com/filedeck/filedeck/internal/api/ws"
	"github.com/filedeck/filedeck/internal/domain/session"
	"github.com/filedeck/filedeck/internal/infrastructure/config"
	"github.com/filedeck/filedeck/internal/infrastructure/logging"
	"github.com/filedeck/filedeck/internal/infrastructure/monitoring"
	"github.com/filedeck/filedeck/internal/infrastructure/tracing"
	"github.com/filedeck/filedeck/internal/providers/clipboard"
	"github.com/filedeck/filedeck/internal/providers/filesystem"
	"github.com/filedeck/filedeck/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router         *gin.Engine
	registry       *service.Registry
	sessionManager *session.Manager
	hub            *ws.Hub
	logger         *logging.Logger
	config         *config.Config
	metrics        *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize logger
	logger := logging.FromConfig(cfg.Logging.Level, cfg.Logging.Development)

	logger.Info("Initializing filedeck server",
		zap.String("port", cfg.Server.Port),
		zap.String("storage_root", cfg.Storage.Root),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	// Request tracing
	tracer := tracing.New("filedeck", logger.Logger)

	// The managed tree must exist before any provider touches it
	if err := os.MkdirAll(cfg.Storage.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}

	// Event hub doubles as the filesystem change notifier
	hub := ws.NewHub(logger, metrics)

	// Register service providers
	serviceRegistry := service.NewRegistry()
	registerProviders(serviceRegistry, cfg.Storage.Root, hub, logger)

	// Initialize session manager
	sessionManager := session.NewManager(cfg.Storage.Root)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.String("scope", cfg.RateLimit.Scope),
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limits := middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}
		if cfg.RateLimit.Scope == config.RateLimitScopeGlobal {
			router.Use(middleware.GlobalRateLimit(limits))
		} else {
			router.Use(middleware.RateLimit(limits))
		}
	}

	// Create handlers
	handlers := apihttp.NewHandlers(serviceRegistry, sessionManager, metrics)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)

	// Session endpoints
	router.POST("/sessions", handlers.CreateSession)
	router.GET("/sessions", handlers.ListSessions)
	router.GET("/sessions/:id", handlers.GetSession)
	router.POST("/sessions/:id/workdir", handlers.SetSessionWorkDir)
	router.DELETE("/sessions/:id", handlers.DeleteSession)

	// WebSocket event stream
	router.GET("/stream", hub.HandleConnection)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/metrics/json", handlers.MetricsJSON)

	logger.Info("Server initialized successfully")

	return &Server{
		router:         router,
		registry:       serviceRegistry,
		sessionManager: sessionManager,
		hub:            hub,
		logger:         logger,
		config:         cfg,
		metrics:        metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	// Sync logger before exit
	s.logger.Sync()

	return nil
}

func registerProviders(registry *service.Registry, root string, notifier filesystem.Notifier, logger *logging.Logger) {
	// Filesystem provider
	fsProvider := filesystem.NewProvider(root, notifier)
	if err := registry.Register(fsProvider); err != nil {
		logger.Warn("Failed to register filesystem provider", zap.Error(err))
	}

	// Clipboard provider
	clipProvider := clipboard.NewProvider(root)
	if err := registry.Register(clipProvider); err != nil {
		logger.Warn("Failed to register clipboard provider", zap.Error(err))
	}
}
