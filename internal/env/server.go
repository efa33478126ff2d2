package environment

import (
	"context"
	"log/slog"
	"net/http"

	"tanbih-bot/internal/config"
)

type Servers struct {
	HTTP struct {
		API           *http.Server
		Observability *http.Server
	}
}

func newServers(ctx context.Context, cfg config.Config, logger *slog.Logger, clients *Clients, services *Services) *Servers {
	var servers Servers

	servers.HTTP.API = &http.Server{
		Addr:              cfg.API.ADDR(),
		Handler:           services.Router,
		ReadTimeout:       cfg.API.ReadTimeout,
		WriteTimeout:      cfg.API.WriteTimeout,
		IdleTimeout:       cfg.API.IdleTimeout,
		ReadHeaderTimeout: cfg.API.ReadTimeout,
	}

	servers.HTTP.Observability = initObservability(ctx, logger.WithGroup("http"), clients, cfg)

	return &servers
}
