// Package server is the web-facing half of the blog frontend: it renders
// the public pages and the role-gated dashboards from state fetched off the
// backend API, and keeps the visitor's session in cookies.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/eniola256/Blog/internal/apiclient"
	"github.com/eniola256/Blog/internal/config"
	"github.com/eniola256/Blog/internal/guard"
	"github.com/eniola256/Blog/internal/roles"
)

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	config  *config.Config
	logger  zerolog.Logger
	api     *apiclient.Client
	public  *cache.Cache
	version string
}

// New creates a new server instance
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	server := &Server{
		config: cfg,
		logger: zlog,
		api:    apiclient.New(cfg.API.BaseURL),
		// Short-lived cache for public backend content only; nothing
		// session-derived ever lands in it.
		public:  cache.New(time.Minute, 5*time.Minute),
		version: version,
	}

	if err := server.setupRouter(); err != nil {
		return nil, err
	}

	return server, nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() error {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(s.securityHeadersMiddleware())
	s.router.Use(s.sessionMiddleware())

	if len(s.config.Server.AllowedOrigins) > 0 {
		s.router.Use(cors.New(cors.Config{
			AllowOrigins:     s.config.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if err := s.setupTemplates(); err != nil {
		return err
	}

	// Health check endpoint (no auth required)
	s.router.GET("/healthz", s.healthCheck)

	// Public pages
	s.router.GET("/", s.homePage)
	s.router.GET("/posts/:slug", s.postPage)
	s.router.GET("/categories", s.categoriesPage)
	s.router.GET("/category/:slug", s.categoryPostsPage)
	s.router.GET("/tags", s.tagsPage)
	s.router.GET("/tag/:slug", s.tagPostsPage)
	s.router.POST("/subscribe", s.subscribeSubmit)

	// Sign-in entry point and session mutations
	s.router.GET("/login", s.loginPage)
	s.router.POST("/login", s.loginSubmit)
	s.router.POST("/register", s.registerSubmit)
	s.router.POST("/logout", s.logoutSubmit)

	// Admin dashboard (admin role required)
	admin := s.router.Group("/admin")
	admin.Use(guard.Middleware(roles.RoleAdmin))
	{
		admin.GET("", s.adminOverviewPage)
		admin.GET("/posts", s.adminPostsPage)
		admin.POST("/posts/:id/delete", s.adminDeletePost)
		admin.GET("/categories", s.adminCategoriesPage)
		admin.POST("/categories", s.adminCreateCategory)
		admin.POST("/categories/:id/delete", s.adminDeleteCategory)
		admin.GET("/tags", s.adminTagsPage)
		admin.POST("/tags", s.adminCreateTag)
		admin.POST("/tags/:id/delete", s.adminDeleteTag)
		admin.GET("/subscribers", s.adminSubscribersPage)
		admin.POST("/subscribers/:id/delete", s.adminDeleteSubscriber)
	}

	// Author dashboard (author role required; admins pass too)
	author := s.router.Group("/author")
	author.Use(guard.Middleware(roles.RoleAuthor))
	{
		author.GET("", s.authorOverviewPage)
		author.GET("/posts", s.authorPostsPage)
		author.POST("/posts/:id/delete", s.authorDeletePost)
	}

	return nil
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.version,
	})
}

// Router exposes the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() error {
	addr := ":" + s.config.Server.Port

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("HTTP server shutdown error")
		return err
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}
