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

	httpapi "toolrent-backend/internal/api/http"
	"toolrent-backend/internal/config"
	"toolrent-backend/internal/jobs"
	"toolrent-backend/internal/logger"
	"toolrent-backend/internal/repository/postgres"
	"toolrent-backend/internal/scheduler"
	"toolrent-backend/internal/security"
	"toolrent-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ToolRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	rateSvc := service.NewRateService(store.Rates)
	loanSvc := service.NewLoanService(store, store.Repositories)
	toolSvc := service.NewToolService(store, store.Repositories)
	clientSvc := service.NewClientService(store, store.Repositories)
	kardexSvc := service.NewKardexService(store.Kardex, store.Tools)
	reportSvc := service.NewReportService(store.Repositories)

	// Seed missing rate defaults so pricing lookups never come up empty
	if err := rateSvc.EnsureDefaults(context.Background()); err != nil {
		logger.Error("Failed to seed rate defaults", "error", err)
		log.Fatalf("Failed to seed rate defaults: %v", err)
	}

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(db, rateSvc, clientSvc)
	cronScheduler := scheduler.NewScheduler(jobRunner, cfg.Scheduler)
	cronScheduler.Start()

	// Initialize HTTP API
	resolver := security.NewIdentityResolver(cfg.JWT.Secret)
	router := httpapi.NewRouter(httpapi.Services{
		Loans:   loanSvc,
		Tools:   toolSvc,
		Clients: clientSvc,
		Kardex:  kardexSvc,
		Rates:   rateSvc,
		Reports: reportSvc,
	}, resolver)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down...")
	cronScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
