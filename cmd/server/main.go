package main

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
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/launchlist/launchlist-go/internal/auth"
	"github.com/launchlist/launchlist-go/internal/config"
	"github.com/launchlist/launchlist-go/internal/database"
	"github.com/launchlist/launchlist-go/internal/email"
	"github.com/launchlist/launchlist-go/internal/handlers"
	"github.com/launchlist/launchlist-go/internal/middleware"
	"github.com/launchlist/launchlist-go/internal/moderation"
	"github.com/launchlist/launchlist-go/internal/telegraph"
)

var Version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.EnsureSchema(context.Background(), pool); err != nil {
		logger.Fatal("failed to apply schema", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	mailer := email.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom, logger)
	telegraphClient := telegraph.NewClient(logger)

	var reviewer moderation.Reviewer
	if cfg.GeminiAPIKey != "" {
		reviewer, err = moderation.NewGeminiReviewer(context.Background(), cfg.GeminiAPIKey, cfg.ModerationModel)
		if err != nil {
			logger.Fatal("failed to create moderation reviewer", zap.Error(err))
		}
	} else {
		logger.Warn("no Gemini API key configured, moderation failure policy applies to every submission")
	}
	moderator := moderation.NewService(reviewer, cfg.OnModerationError, logger)

	// Initialize Gin
	r := gin.Default()
	r.Use(middleware.WithDB(pool))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := database.Health(c.Request.Context(), pool); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
		})
	})

	api := r.Group("/api")
	{
		// Auth
		api.POST("/auth/magic-link", handlers.RequestMagicLink(mailer, cfg.BaseURL, logger))
		api.POST("/auth/verify", handlers.VerifyMagicLink(jwtService))
		api.GET("/me", middleware.RequireAuth(jwtService), handlers.Me)

		// Startups
		api.GET("/startups", handlers.ListStartups)
		api.GET("/startups/:slug", middleware.OptionalAuth(jwtService), handlers.GetStartup)
		api.POST("/startups", middleware.RequireAuth(jwtService), handlers.SubmitStartup(moderator))
		api.GET("/my/startups", middleware.RequireAuth(jwtService), handlers.GetMyStartups)
		api.POST("/startups/:slug/upvote", middleware.RequireAuth(jwtService), handlers.ToggleUpvote)

		// Comments
		api.GET("/startups/:slug/comments", handlers.ListComments)
		api.POST("/startups/:slug/comments", middleware.RequireAuth(jwtService), handlers.CreateComment)
		api.DELETE("/comments/:id", middleware.RequireAuth(jwtService), handlers.DeleteComment)

		// Launch weeks
		api.GET("/launch-weeks", handlers.GetLaunchWeeks)
		api.GET("/launch-weeks/:id/ranking", handlers.GetLaunchWeekRanking)
		api.POST("/launch-weeks/:id/launch", middleware.RequireAuth(jwtService), handlers.LaunchStartup)

		// Directories and launch list
		api.GET("/directories", handlers.ListDirectories)
		api.GET("/directories/:slug", handlers.GetDirectory)
		api.POST("/directories/submit", middleware.OptionalAuth(jwtService), handlers.SubmitDirectory)
		api.GET("/launch-list", middleware.RequireAuth(jwtService), handlers.GetLaunchList)
		api.POST("/launch-list/:id", middleware.RequireAuth(jwtService), handlers.AddToLaunchList)
		api.DELETE("/launch-list/:id", middleware.RequireAuth(jwtService), handlers.RemoveFromLaunchList)
		api.POST("/launch-list/:id/toggle", middleware.RequireAuth(jwtService), handlers.ToggleChecked)

		// Blog
		api.GET("/blog", handlers.ListBlogPosts)
		api.GET("/blog/:slug", handlers.GetBlogPost)

		// Admin
		admin := api.Group("/admin", middleware.RequireAuth(jwtService), middleware.RequireAdmin())
		{
			admin.GET("/startups/pending", handlers.ListPendingStartups)
			admin.POST("/startups/:id/review", handlers.ReviewStartup)
			admin.GET("/directories/submitted", handlers.ListSubmittedDirectories)
			admin.POST("/directories/submitted/:id/review", handlers.ReviewSubmittedDirectory)
			admin.POST("/launch-weeks/seed", handlers.SeedLaunchWeeks)
			admin.POST("/blog/import", handlers.ImportBlogPost(telegraphClient))
		}

		// Webhooks (authenticated by signature, not session)
		api.POST("/webhooks/intake", handlers.IntakeWebhook(moderator, cfg.IntakeWebhookSecret, logger))
		api.POST("/webhooks/paddle", handlers.PaddleWebhook(cfg.PaddleWebhookSecret, logger))
		api.POST("/webhooks/dodo", handlers.DodoWebhook(cfg.DodoWebhookSecret, logger))
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: corsHandler,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
