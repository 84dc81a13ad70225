// Package bootstrap wires the document generator from configuration. It is
// shared by the worker manager and the preview tool.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"document-workers/internal/common/config"
	"document-workers/internal/common/database"
	commonhttp "document-workers/internal/common/http"
	"document-workers/internal/common/logger"
	"document-workers/internal/document"
	"document-workers/internal/document/pdf"
	"document-workers/internal/document/view"
	"document-workers/internal/repository"
)

const postgresConnectTimeout = 10 * time.Second

// Components owns the connections behind a Generator.
type Components struct {
	Postgres  *database.PostgresClient
	Redis     *database.RedisClient
	Store     document.ApplicationStore
	Generator *document.Generator
}

// NewComponents connects to Postgres and, when configured, Redis, and builds
// the generator on top of them.
func NewComponents(ctx context.Context, cfg *config.Config, log logger.Logger) (*Components, error) {
	pg, err := database.NewPostgres(ctx, cfg.Database.Postgres, postgresConnectTimeout)
	if err != nil {
		return nil, err
	}
	c := &Components{Postgres: pg}

	var store document.ApplicationStore = repository.NewPostgresStore(pg.DB)

	c.Redis, err = database.NewRedis(ctx, cfg.Database.Redis)
	if err != nil {
		c.Close()
		return nil, err
	}
	if c.Redis != nil {
		store = repository.NewCachedStore(repository.NewPostgresStore(pg.DB), c.Redis.Client, cfg.Cache.TTL(), log)
		log.Info("application cache enabled", map[string]interface{}{
			"address": cfg.Database.Redis.Address,
			"ttl":     cfg.Cache.TTL().String(),
		})
	}
	c.Store = store

	c.Generator, err = NewGenerator(cfg.Document, store, log)
	if err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// NewGenerator builds the generator for store from the document settings.
func NewGenerator(cfg config.DocumentConfig, store document.ApplicationStore, log logger.Logger) (*document.Generator, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, fmt.Errorf("document settings: %w", err)
	}

	paths, err := view.NewPathProvider(cfg.Templates)
	if err != nil {
		return nil, fmt.Errorf("template paths: %w", err)
	}

	fetcher := commonhttp.NewClient(config.GetDuration(cfg.FetchTimeout))
	converter := pdf.NewConverter(
		pdf.WithPageSize(cfg.PDF.PageSize),
		pdf.WithFont(cfg.PDF.FontFamily, cfg.PDF.FontSize),
	)

	return document.NewGenerator(
		store,
		paths,
		view.NewRenderer(fetcher),
		settings,
		converter,
		log,
		document.WithHeaderHTML(cfg.Header),
	)
}

// Ready pings every backing store.
func (c *Components) Ready(ctx context.Context) error {
	if err := c.Postgres.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

func (c *Components) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Postgres != nil {
		_ = c.Postgres.Close()
	}
}
