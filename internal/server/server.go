// Package server exposes the checklist, session, and validation operations
// as a JSON API.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/checkgate/internal/issues"
	"github.com/zulandar/checkgate/internal/notify"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	DB       *gorm.DB
	Port     int
	Out      io.Writer
	Notifier notify.Notifier  // optional: phase transition announcements
	Reporter *issues.Reporter // optional: file issues for failed validations
}

// Start launches the API server. It blocks until ctx is cancelled, then
// shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("server: db is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	router := NewRouter(opts.DB, opts.Notifier, opts.Reporter)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "API running at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// NewRouter builds the Gin router with all API routes registered. Split out
// from Start so tests can exercise handlers without a listener.
func NewRouter(db *gorm.DB, notifier notify.Notifier, reporter *issues.Reporter) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	h := &handlers{db: db, notifier: notifier, reporter: reporter}
	registerRoutes(router, h)
	return router
}

// handlers carries the shared dependencies for all route handlers.
type handlers struct {
	db       *gorm.DB
	notifier notify.Notifier
	reporter *issues.Reporter
}
