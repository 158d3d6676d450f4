package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/phrazzld/rolodex-api/internal/config"
	"github.com/phrazzld/rolodex-api/internal/platform/logger"
	"github.com/phrazzld/rolodex-api/internal/platform/metrics"
	"github.com/phrazzld/rolodex-api/internal/platform/postgres"
	"github.com/phrazzld/rolodex-api/internal/service"
	"github.com/phrazzld/rolodex-api/internal/service/auth"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// application holds all shared dependencies and is the composition root:
// everything is wired here once at startup and handed to the router.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	registry *prometheus.Registry
	metrics  *metrics.Collector

	userStore    store.UserStore
	contactStore store.ContactStore
	addressStore store.AddressStore

	userService    service.UserService
	contactService service.ContactService
	addressService service.AddressService
}

// newApplication loads configuration and builds the full dependency graph:
// logging, database, stores, and services. Migrations are applied before
// any service touches the database.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			log.Error("Failed to close database after migration failure", "error", closeErr)
		}
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	userStore := postgres.NewPostgresUserStore(db, log)
	contactStore := postgres.NewPostgresContactStore(db, log)
	addressStore := postgres.NewPostgresAddressStore(db, log)

	hasher := auth.NewBcryptHasher()
	tokens := auth.NewUUIDTokenGenerator()

	app := &application{
		config:       cfg,
		logger:       log,
		db:           db,
		registry:     registry,
		metrics:      collector,
		userStore:    userStore,
		contactStore: contactStore,
		addressStore: addressStore,
		userService:  service.NewUserService(userStore, hasher, hasher, tokens, db, log),
		contactService: service.NewContactService(
			contactStore,
			db,
			log,
		),
		addressService: service.NewAddressService(
			contactStore,
			addressStore,
			db,
			log,
		),
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
