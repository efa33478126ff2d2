package environment

import (
	"context"
	"fmt"
	"log/slog"

	"tanbih-bot/internal/config"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type closer func()

type Env struct {
	Config   *config.Config
	Logger   *slog.Logger
	Servers  *Servers
	Clients  *Clients
	Services *Services

	Closers []closer
}

func Setup(ctx context.Context) (*Env, error) {
	// Load .env if present; the file is optional.
	_ = godotenv.Load()

	var cfg config.Config
	err := envconfig.Process(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("env processing: %w", err)
	}

	var e Env

	logger, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}

	if !cfg.Telegram.Configured() {
		logger.Warn("Telegram bot token or chat ID missing: deliveries will fail until configured")
	}
	if cfg.App.ID == "default-app-id" {
		logger.Warn("APP_ID is using its default value, ensure this is intended",
			slog.String("app_id", cfg.App.ID))
	}
	if cfg.App.OwnerUID == "" {
		logger.Warn("APP_OWNER_UID is not set: reminder runs will abort with a configuration alert")
	}

	clients, err := newClients(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("newClients: %w", err)
	}

	services, err := newServices(ctx, clients, &cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("newServices: %w", err)
	}

	servers := newServers(ctx, cfg, logger, clients, services)

	e.Servers = servers
	e.Config = &cfg
	e.Logger = logger
	e.Clients = clients
	e.Services = services
	e.Closers = []closer{
		func() { _ = clients.SQLiteDB.Close() },
	}

	return &e, nil
}
