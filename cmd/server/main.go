package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gdg-garage/event-registration-api/internal/catalog"
	"github.com/gdg-garage/event-registration-api/internal/config"
	"github.com/gdg-garage/event-registration-api/internal/database"
	"github.com/gdg-garage/event-registration-api/internal/handlers"
	"github.com/gdg-garage/event-registration-api/internal/notifier"
	"github.com/gdg-garage/event-registration-api/internal/registration"
	"github.com/gdg-garage/event-registration-api/internal/rowstore"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Load Event Catalog
	cat, err := catalog.Load(cfg.EventCatalogPath, cfg.DefaultEventLimit)
	if err != nil {
		logger.Fatal("Failed to load event catalog", zap.Error(err))
	}

	// Connect Row Store
	store, err := newRowStore(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize row store", zap.Error(err))
	}

	var regNotifier registration.Notifier
	if cfg.NotificationsEnabled() {
		session, err := notifier.NewDiscordSession(cfg.DiscordBotToken)
		if err != nil {
			logger.Warn("Discord notifier not initialized", zap.Error(err))
		} else {
			regNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID)
		}
	}

	service := registration.NewService(cat, store, regNotifier, registration.Options{
		RegistrationsOpen:    cfg.RegistrationsOpen,
		RequireEmail:         cfg.RequireEmail,
		SerializeSubmissions: cfg.SerializeSubmissions,
	}, logger)

	eventsHandler := handlers.NewEventsHandler(cat, service, logger)
	registrationHandler := handlers.NewRegistrationHandler(service, logger)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, logger, cfg.EnableCORS, eventsHandler, registrationHandler)

	// Start Server
	logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("row_store", cfg.RowStore),
		zap.Int("events", len(cat.Events())),
		zap.Bool("registrations_open", cfg.RegistrationsOpen),
	)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.LogDevelopment {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func newRowStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (rowstore.Store, error) {
	switch cfg.RowStore {
	case config.RowStoreSheets:
		svc, err := rowstore.NewServiceAccountSheetsService(ctx, cfg.GoogleServiceAccountEmail, cfg.GooglePrivateKey)
		if err != nil {
			return nil, err
		}
		return rowstore.NewSheetsStore(svc, cfg.SheetsSpreadsheetID, logger), nil
	default:
		db, err := database.Open(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return rowstore.NewDBStore(db, logger), nil
	}
}
