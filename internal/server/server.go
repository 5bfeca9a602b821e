// Package server exposes the comparison orchestrator over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arenalabs/arena/pkg/compare"
	"github.com/arenalabs/arena/pkg/providers"
)

// Server serves the comparison API.
type Server struct {
	addr       string
	router     *gin.Engine
	dispatcher *compare.Dispatcher
	registry   *providers.Registry
}

// Config describes the server dependencies.
type Config struct {
	Addr       string
	Dispatcher *compare.Dispatcher
	Registry   *providers.Registry
}

// New builds the HTTP server and its routes.
func New(cfg Config) (*Server, error) {
	if cfg.Dispatcher == nil || cfg.Registry == nil {
		return nil, errors.New("server requires a dispatcher and a registry")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{
		addr:       cfg.Addr,
		router:     router,
		dispatcher: cfg.Dispatcher,
		registry:   cfg.Registry,
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/compare", s.handleCompare)
	api.GET("/models", s.handleModels)

	return s, nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		c.Next()
		log.Printf("HTTP %s %s status=%d ip=%s dur=%s",
			method, path, c.Writer.Status(), c.ClientIP(), time.Since(start))
	}
}
