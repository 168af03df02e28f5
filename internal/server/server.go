// Package server is the interactive front-end: an upload page, a
// Generate Report endpoint, an on-screen preview, and the workbook download.
package server

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ukaji3/divreport-go/internal/config"
)

//go:embed index.html
var indexHTML []byte

// Server serves the report front-end.
type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	router    *gin.Engine
	downloads *downloadStore
	http      *http.Server
}

// New creates a server. Every report request reloads the reference file.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		router:    gin.New(),
		downloads: newDownloadStore(),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	s.http = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.Index)
	s.router.GET("/healthz", s.Health)

	api := s.router.Group("/api")
	{
		api.POST("/report", s.GenerateFromUpload)
		api.POST("/report/scan", s.GenerateFromDir)
		api.GET("/report/:token/download", s.Download)
	}
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("server listening", zap.String("addr", s.cfg.Server.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
