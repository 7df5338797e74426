// Package server provides the HTTP API behind the terminal: the answer
// service queried for unrecognized commands, the resume document, and the
// contact form backend.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"termfolio/internal/ask"
	"termfolio/internal/resume"
)

// Querier answers a question with sources.
type Querier interface {
	Query(ctx context.Context, q string) (*ask.Response, error)
}

// Config holds server collaborators.
type Config struct {
	Document     *resume.Document
	Querier      Querier
	Store        *Store // nil disables POST /send
	Mailer       Mailer // nil stores messages without relaying them
	ContactEmail string
	Logger       *slog.Logger
}

// Server is the gin application.
type Server struct {
	doc          *resume.Document
	querier      Querier
	store        *Store
	mailer       Mailer
	contactEmail string
	logger       *slog.Logger
	router       *gin.Engine
}

// New builds the router.
func New(cfg Config) (*Server, error) {
	if cfg.Document == nil {
		return nil, fmt.Errorf("document is required")
	}
	if cfg.Querier == nil {
		return nil, fmt.Errorf("querier is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		doc:          cfg.Document,
		querier:      cfg.Querier,
		store:        cfg.Store,
		mailer:       cfg.Mailer,
		contactEmail: cfg.ContactEmail,
		logger:       logger,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), allowCORS())

	r.GET("/health", s.handleHealth)
	r.POST("/api/query", s.handleQuery)
	r.GET("/api/resume", s.handleResume)
	r.GET("/api/resume/download", s.handleResumeDownload)
	r.POST("/send", s.handleSend)

	s.router = r
	return s, nil
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// requestLogger logs one line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		)
	}
}

// allowCORS lets the browser front end call the API from another origin.
func allowCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
