// Package gin serves the caller-facing operations over HTTP with JSON
// bodies.
package gin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/forgeads/forgeads"
	"github.com/gin-gonic/gin"
)

// HTTP server timeouts. Analysis makes several model calls in sequence,
// so writes get a long timeout.
const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 3 * time.Minute
	idleTimeout     = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// Server is the HTTP surface. Products is optional; without it the
// history routes are not registered.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer builds the router for creatives and the optional products
// history.
func NewServer(creatives forgeads.CreativeService, products forgeads.ProductService, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := NewHandler(creatives, products)
	api := router.Group("/api")
	api.POST("/analyze", h.AnalyzeProduct)
	api.POST("/copy", h.GenerateCopy)
	api.POST("/image", h.GenerateImage)
	if products != nil {
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.DELETE("/products/:id", h.DeleteProduct)
	}

	return &Server{router: router, logger: logger}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// LoggerMiddleware logs one record per request with method, path,
// status, duration and any handler errors.
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		attrs := []any{
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.Errors())
			logger.Error("http request", attrs...)
			return
		}
		logger.Info("http request", attrs...)
	}
}
