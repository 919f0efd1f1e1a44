package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jobtrackr/jobtrackr/internal/config"
	"github.com/jobtrackr/jobtrackr/internal/database"
	"github.com/jobtrackr/jobtrackr/internal/handlers"
	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/services"
)

func main() {
	// A .env file is a local-dev convenience, not a requirement.
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}

	llmService, err := services.NewLLMService(cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Error("failed to init llm client", "err", err)
		os.Exit(1)
	}

	userService := services.NewUserService(db, log)
	applicationService := services.NewApplicationService(db)
	ghostService := services.NewGhostService(db, log)
	importService := services.NewImportService(db, log)
	resumeService := services.NewResumeService(db, cfg)

	jwtSecret := []byte(cfg.JWTSecret)
	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour

	authHandler := handlers.NewAuthHandler(userService, jwtSecret, tokenTTL)
	applicationHandler := handlers.NewApplicationHandler(applicationService, llmService)
	ghostHandler := handlers.NewGhostHandler(ghostService, userService)
	importHandler := handlers.NewImportHandler(importService)
	dashboardHandler := handlers.NewDashboardHandler(applicationService)
	resumeHandler := handlers.NewResumeHandler(resumeService, llmService)

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(jwtSecret))
	{
		authed.PUT("/auth/password", authHandler.ChangePassword)
		authed.DELETE("/account", authHandler.DeleteAccount)

		authed.GET("/applications", applicationHandler.List)
		authed.GET("/applications/sources", applicationHandler.Sources)
		authed.POST("/applications", applicationHandler.Create)
		authed.POST("/applications/extract", applicationHandler.Extract)
		authed.POST("/capture", applicationHandler.Capture)
		authed.PUT("/applications/:id", applicationHandler.Update)
		authed.PATCH("/applications/:id/status", applicationHandler.UpdateStatus)
		authed.DELETE("/applications/:id", applicationHandler.Delete)

		authed.GET("/ghost/candidates", ghostHandler.Candidates)
		authed.POST("/ghost/confirm", ghostHandler.Confirm)
		authed.POST("/ghost/undo", ghostHandler.Undo)
		authed.GET("/settings/ghost-threshold", ghostHandler.GetThreshold)
		authed.PUT("/settings/ghost-threshold", ghostHandler.SetThreshold)

		authed.GET("/followups", dashboardHandler.FollowUps)
		authed.GET("/dashboard", dashboardHandler.Dashboard)

		authed.POST("/import", importHandler.Upload)
		authed.GET("/imports", importHandler.Recent)
		authed.DELETE("/imports/:timestamp", importHandler.Undo)

		authed.GET("/resumes", resumeHandler.List)
		authed.POST("/resumes", resumeHandler.Create)
		authed.GET("/resumes/:id/url", resumeHandler.SignedURL)
		authed.DELETE("/resumes/:id", resumeHandler.Delete)
		authed.POST("/resumes/score", resumeHandler.Score)
	}

	log.Info("server starting", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
}
