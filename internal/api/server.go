// Package api exposes the statistics engine as a JSON API
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"statcalc/adapters/stats/engine"
	"statcalc/domain/core"
	"statcalc/internal"
	"statcalc/ports"
)

const requestIDHeader = "X-Request-ID"

// Config holds API server settings
type Config struct {
	GinMode      string
	MaxBodyBytes int64
}

// Server represents the JSON API server
type Server struct {
	router  *gin.Engine
	engine  *engine.Engine
	catalog ports.CatalogReader
	logger  *internal.Logger
	config  Config
}

// NewServer creates a new API server instance with its routes installed
func NewServer(cfg Config, eng *engine.Engine, catalog ports.CatalogReader, logger *internal.Logger) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:  gin.New(),
		engine:  eng,
		catalog: catalog,
		logger:  logger.With("API"),
		config:  cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestID())
	s.router.Use(s.accessLog())
	if s.config.MaxBodyBytes > 0 {
		s.router.Use(s.limitBody(s.config.MaxBodyBytes))
	}
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/operations", s.handleOperations)
		v1.POST("/check", s.handleCheck)
		v1.GET("/exercises", s.handleExercises)
		v1.GET("/examples", s.handleExamples)
		v1.GET("/examples/:id", s.handleExample)
		v1.POST("/:operation", s.handleOperation)
	}

	s.router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "NotFound", "route not found")
	})
}

// requestID tags every request with an ID, reusing the caller's when supplied
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = core.NewRequestID().String()
		}
		c.Set("requestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("%s %s %d %s (%s)", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start).Round(time.Microsecond), c.GetString("requestID"))
	}
}

// limitBody caps request bodies; oversized bodies fail JSON binding with 413
func (s *Server) limitBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
