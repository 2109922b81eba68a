package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "bikefleet-backend/internal/api/http"
	"bikefleet-backend/internal/authz"
	"bikefleet-backend/internal/config"
	"bikefleet-backend/internal/identity"
	"bikefleet-backend/internal/logger"
	"bikefleet-backend/internal/repository/postgres"
	"bikefleet-backend/internal/security"
	"bikefleet-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Bikefleet Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Identity providers. Discovery hits the issuer at startup, so a
	// dead provider fails fast here rather than on first login.
	ssoTimeout := time.Duration(cfg.SSO.TimeoutSeconds) * time.Second
	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	staffProvider, err := identity.NewOIDCProvider(bootCtx, "staff", cfg.SSO.Staff, ssoTimeout)
	if err != nil {
		logger.Error("Failed to initialize staff identity provider", "error", err)
		log.Fatalf("Failed to initialize staff identity provider: %v", err)
	}
	pwaProvider, err := identity.NewOIDCProvider(bootCtx, "pwa", cfg.SSO.Pwa, ssoTimeout)
	if err != nil {
		logger.Error("Failed to initialize pwa identity provider", "error", err)
		log.Fatalf("Failed to initialize pwa identity provider: %v", err)
	}

	// Policies share one scope resolver backed by the team store.
	scope := authz.NewScopeResolver(store.TeamRepository)
	bikePolicy := authz.NewBikePolicy(scope)
	rentalPolicy := authz.NewRentalPolicy(scope)
	poiPolicy := authz.NewPoiPolicy(scope)
	teamPolicy := authz.NewTeamPolicy(scope)
	userPolicy := authz.NewUserPolicy()
	depPolicy := authz.NewDeparturePolicy()

	audit := service.NewAuditLog()
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	svcs := httpapi.Services{
		Auth:      service.NewAuthService(store.UserRepository, tokenManager),
		SSO:       service.NewSSOService(staffProvider, pwaProvider, store.UserRepository, store.TeamRepository, tokenManager, emailSvc, audit),
		Booking:   service.NewBookingService(store.RentalRepository, store.PaxProfileRepository, store.UserRepository, tokenManager, emailSvc),
		Team:      service.NewTeamService(store.TeamRepository, store.UserRepository, teamPolicy, audit),
		User:      service.NewUserService(store.UserRepository, userPolicy, emailSvc, audit),
		Bike:      service.NewBikeService(store.BikeRepository, store.RentalRepository, scope, bikePolicy),
		Rental:    service.NewRentalService(store.RentalRepository, store.BikeRepository, store.PaxProfileRepository, scope, rentalPolicy),
		Poi:       service.NewPoiService(store.PoiRepository, poiPolicy, audit),
		Departure: service.NewDepartureService(store.DepartureRepository, depPolicy),
	}

	router := httpapi.NewRouter(svcs, tokenManager, store.UserRepository)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
