// file: internal/server/server.go
// version: 2.0.0
// guid: 7d8e9f0a-1b2c-3d4e-5f6a-7b8c9d0e1fc7

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkurosawa/honne/internal/ai"
	"github.com/mkurosawa/honne/internal/config"
	"github.com/mkurosawa/honne/internal/matcher"
	"github.com/mkurosawa/honne/internal/metrics"
	"github.com/mkurosawa/honne/internal/server/middleware"
)

const serverVersion = "1.0.0"

// Server hosts the matching engine and the findings client behind an HTTP API.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	engine     *matcher.Engine
	findings   *ai.FindingsClient
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// GetDefaultServerConfig returns default server configuration
func GetDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Host:         "localhost",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new server instance
func NewServer(engine *matcher.Engine, findings *ai.FindingsClient) *Server {
	router := gin.Default()

	// Set up middleware
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.RequestID())
	router.Use(middleware.MaxRequestBodySize(1 << 20))

	// Register metrics (idempotent)
	metrics.Register()

	server := &Server{
		router:   router,
		engine:   engine,
		findings: findings,
	}

	server.setupRoutes()

	return server
}

// Start starts the HTTP server and blocks until an interrupt signal.
func (s *Server) Start(cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint (standard path)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/api/health", s.healthCheck)
	s.router.GET("/api/v1/health", s.healthCheck)

	api := s.router.Group("/api/v1")
	{
		api.POST("/match", s.matchPosting)
		api.POST("/match/legacy", s.matchPostingLegacy)
		api.POST("/analyze", s.analyzePosting)

		api.GET("/match/stats", s.getMatchStats)
		api.GET("/cache/stats", s.getCacheStats)
		api.POST("/cache/clear", s.clearCaches)

		api.GET("/config", s.getConfig)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"timestamp":      time.Now().Unix(),
		"version":        serverVersion,
		"openai_enabled": s.findings != nil && s.findings.IsEnabled(),
		"cache":          s.engine.CacheStats(),
	})
}

func (s *Server) getConfig(c *gin.Context) {
	// API key intentionally omitted
	c.JSON(http.StatusOK, gin.H{
		"matching": config.AppConfig.Matching,
		"openai": gin.H{
			"model":   config.AppConfig.OpenAI.Model,
			"enabled": config.AppConfig.OpenAI.Enabled,
		},
	})
}

// RequestIDFromContext fetches the request ID assigned by the middleware.
func RequestIDFromContext(c *gin.Context) string {
	if v, ok := c.Get(middleware.ContextRequestIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
