package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/internal/config"
	"storefront-api/internal/handlers"
	"storefront-api/internal/middleware"
	"storefront-api/internal/services"
	"storefront-api/internal/store"
	"storefront-api/internal/stream"
	"storefront-api/internal/telemetry"

	"github.com/gorilla/mux"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg := config.LoadConfig()

	slog.Info("Starting Storefront API", "version", "1.0.0")

	// Initialize OpenTelemetry metrics
	ctx := context.Background()
	otelTelemetry := &telemetry.Telemetry{}
	otelTelemetry.InitMetrics("storefront-api", &ctx)

	apiTelemetry := telemetry.NewStorefrontTelemetry()
	if err := apiTelemetry.InitializeTelemetry(ctx); err != nil {
		slog.Error("Failed to initialize API telemetry", "error", err)
		return
	}

	// Initialize the document store and backup manager
	documentStore := store.NewStore(cfg.DBFilePath)
	backupManager := store.NewBackupManager(cfg.BackupDir, documentStore)

	doc, created, err := documentStore.Init()
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	if created {
		if _, err := backupManager.Snapshot("initial"); err != nil {
			slog.Error("Failed to create initial backup", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Database ready",
		"path", documentStore.FilePath(),
		"products", len(doc.Products),
		"clients", len(doc.Clients),
		"transactions", len(doc.Transactions),
		"rate", doc.Rate)

	// Initialize the live-update notifier and the storefront service
	notifier := stream.NewNotifier()
	storefrontService := services.NewStorefrontService(documentStore, notifier)

	// Initialize handlers
	productsHandler := handlers.NewProductsHandler(storefrontService)
	clientsHandler := handlers.NewClientsHandler(storefrontService)
	checkoutHandler := handlers.NewCheckoutHandler(storefrontService)
	rateHandler := handlers.NewRateHandler(storefrontService)
	streamHandler := handlers.NewStreamHandler(notifier)
	backupsHandler := handlers.NewBackupsHandler(backupManager)
	healthHandler := handlers.NewHealthHandler()
	slog.Debug("HTTP handlers initialized")

	r := mux.NewRouter()
	r.NotFoundHandler = handlers.NotFoundHandler()
	r.MethodNotAllowedHandler = handlers.MethodNotAllowedHandler()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products", productsHandler.List).Methods("GET")
	api.HandleFunc("/products", productsHandler.Create).Methods("POST")
	api.HandleFunc("/products/{id}", productsHandler.Update).Methods("PUT")
	api.HandleFunc("/products/{id}", productsHandler.Delete).Methods("DELETE")

	api.HandleFunc("/clients", clientsHandler.List).Methods("GET")
	api.HandleFunc("/clients", clientsHandler.Create).Methods("POST")
	api.HandleFunc("/clients/{id}", clientsHandler.Update).Methods("PUT")
	api.HandleFunc("/clients/{id}", clientsHandler.Delete).Methods("DELETE")

	api.HandleFunc("/rate", rateHandler.Get).Methods("GET")
	api.HandleFunc("/rate", rateHandler.Set).Methods("PUT")

	api.HandleFunc("/checkout", checkoutHandler.Checkout).Methods("POST")
	api.HandleFunc("/history", checkoutHandler.History).Methods("GET")

	api.HandleFunc("/stream", streamHandler.Stream).Methods("GET")

	// Backup administration requires the admin API key
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(middleware.AdminAuthMiddleware)
	adminAPI.HandleFunc("/backups", backupsHandler.List).Methods("GET")
	adminAPI.HandleFunc("/backups", backupsHandler.Create).Methods("POST")
	adminAPI.HandleFunc("/backups/restore", backupsHandler.Restore).Methods("POST")

	// Health check endpoint (no auth required)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	// CORS and recovery wrap the router itself so preflight requests and
	// unmatched routes get the same treatment as everything else.
	telemetryMiddleware := telemetry.NewMiddleware(apiTelemetry)
	handler := middleware.CORS(middleware.Recover(telemetryMiddleware.Handler(r)))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		slog.Info("Server ready to accept connections", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	otelTelemetry.Close()
	slog.Info("Telemetry shutdown completed")

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exited")
}
