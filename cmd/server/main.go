package main

import (
	"fmt"
	"os"

	"github.com/healthrec/healthcare-api/internal/api"
	"github.com/healthrec/healthcare-api/internal/config"
	"github.com/healthrec/healthcare-api/internal/database"
	"github.com/healthrec/healthcare-api/internal/database/repository"
	"github.com/healthrec/healthcare-api/internal/database/service"
	"github.com/healthrec/healthcare-api/internal/handler"
	"github.com/healthrec/healthcare-api/internal/logger"
	"github.com/healthrec/healthcare-api/internal/middleware"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting Healthcare Records API...",
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	if err := database.ConnectDatabase(cfg, appLogger); err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	db := database.GetDatabase()

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	mappingRepo := repository.NewMappingRepository(db)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg, appLogger)
	patientService := service.NewPatientService(patientRepo, appLogger)
	doctorService := service.NewDoctorService(doctorRepo, appLogger)
	mappingService := service.NewMappingService(mappingRepo, patientRepo, doctorRepo, appLogger)

	// 6. Initialize Login Rate Limiter
	rateLimiter, err := middleware.NewLoginRateLimiter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op rate limiter", "error", err)
		rateLimiter = middleware.NewNoOpLoginRateLimiter(appLogger)
	}
	defer rateLimiter.Close()

	// 7. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, rateLimiter, appLogger)
	patientHandler := handler.NewPatientHandler(patientService, appLogger)
	doctorHandler := handler.NewDoctorHandler(doctorService, appLogger)
	mappingHandler := handler.NewMappingHandler(mappingService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	// 8. Router
	r := api.SetupRouter(authHandler, patientHandler, doctorHandler, mappingHandler, authMiddleware)

	// 9. Start HTTP Server
	addr := fmt.Sprintf(":%s", cfg.ApiServicePort)
	appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
