package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"digieventos/config"
	_ "digieventos/docs"
	"digieventos/internal/adapters/auth"
	"digieventos/internal/adapters/storage"
	delivery "digieventos/internal/delivery/http"
	"digieventos/internal/delivery/http/controllers"
	"digieventos/internal/delivery/http/middleware"
	"digieventos/internal/repository/postgres"
	"digieventos/internal/services"

	"golang.org/x/crypto/bcrypt"
)

// @title DigiEventos API
// @version 1.0
// @description Event registration service: events, categories, users, and capacity-controlled registrations.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	fileStore, err := storage.NewFileStore(cfg.Storage)
	if err != nil {
		logger.Error("failed to create file store", "err", err)
		os.Exit(1)
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	issuer, verifier := auth.NewJWTManager(cfg.JWTSecret)

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)

	authService := services.NewAuthService(userRepo, hasher, issuer, verifier, cfg.AccessTTL, cfg.RefreshTTL)
	userService := services.NewUserService(userRepo, hasher, fileStore)
	eventService := services.NewEventService(eventRepo, categoryRepo, participantRepo, fileStore)
	categoryService := services.NewCategoryService(categoryRepo)
	registrationService := services.NewRegistrationService(participantRepo)

	mux := delivery.NewRouter(delivery.Controllers{
		Auth:         controllers.NewAuthController(logger, authService),
		User:         controllers.NewUserController(logger, userService),
		Event:        controllers.NewEventController(logger, eventService),
		Category:     controllers.NewCategoryController(logger, categoryService),
		Registration: controllers.NewRegistrationController(logger, registrationService),
	}, verifier, logger)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
