package common

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v10"
	"golang.org/x/time/rate"

	"github.com/omniallc/edgar13f/client"
	"github.com/omniallc/edgar13f/holdings"
)

func NewClients(opts ...client.ClientOption) (holdings.Clients, error) {
	cfg := struct {
		UA string `env:"EDGAR_UA,notEmpty"`
		// Requests per second shared by all EDGAR hosts, 0 means no limit.
		RateLimit int `env:"EDGAR_RATE_LIMIT" envDefault:"0"`
	}{}
	if err := env.Parse(&cfg); err != nil {
		return holdings.Clients{}, fmt.Errorf("parse edgar envs: %w", err)
	}

	if cfg.RateLimit < 0 {
		return holdings.Clients{}, fmt.Errorf(
			"parse edgar envs: negative EDGAR_RATE_LIMIT=%d", cfg.RateLimit)
	} else if cfg.RateLimit > 0 {
		opts = append(opts, client.WithRateLimiter(
			rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)))
	}
	return holdings.NewClients(cfg.UA, opts...), nil
}

func NewFetcher(opts ...client.ClientOption) (*holdings.Fetcher, error) {
	clients, err := NewClients(opts...)
	if err != nil {
		return nil, err
	}
	return holdings.New(clients).WithLogger(slog.Default()), nil
}
