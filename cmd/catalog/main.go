package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"AvisailYachts/internal/catalog"
	"AvisailYachts/internal/config"
	"AvisailYachts/internal/favorites"
	"AvisailYachts/internal/i18n"
	"AvisailYachts/internal/web"
	"AvisailYachts/pkg/kit"
)

const service = "catalog"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("open database failed", zap.Error(err))
		}
		defer db.Close()
	}

	var loader *catalog.PostgresLoader
	if cfg.CatalogSource == config.SourcePostgres {
		loader = catalog.NewPostgresLoader(db)
	}

	store, err := loadCatalog(ctx, cfg, loader)
	if err != nil {
		log.Fatal("load catalog failed", zap.Error(err), zap.String("source", cfg.CatalogSource))
	}
	log.Info("catalog loaded", zap.String("source", cfg.CatalogSource), zap.Int("yachts", store.Len()))

	bundle, err := loadBundle(cfg)
	if err != nil {
		log.Fatal("load messages failed", zap.Error(err))
	}
	for _, l := range i18n.Locales {
		if missing := bundle.Missing(l); len(missing) > 0 {
			log.Warn("untranslated messages", zap.String("locale", string(l)), zap.Strings("keys", missing))
		}
	}

	var favs favorites.Store = favorites.NewMemStore()
	if db != nil {
		favs = favorites.NewPostgresStore(db)
	}

	deps := web.Deps{
		Catalog:      store,
		Bundle:       bundle,
		Favorites:    favs,
		RelatedLimit: cfg.RelatedLimit,
	}
	if loader != nil {
		deps.CatalogDB = loader
	}

	h := web.NewHandler(
		deps,
		web.HTTPDeps{
			Log:                log,
			Service:            service,
			Registry:           prometheus.NewRegistry(),
			MetricsEnabled:     cfg.MetricsEnabled,
			MetricsToken:       cfg.MetricsToken,
			FavoritesRateLimit: cfg.FavoritesRateLimit,
		},
	)

	if err := kit.RunHTTPServer(ctx, cfg.Addr(), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func loadCatalog(ctx context.Context, cfg config.Config, loader *catalog.PostgresLoader) (*catalog.MemStore, error) {
	switch cfg.CatalogSource {
	case config.SourceFile:
		return catalog.LoadFile(cfg.CatalogPath)
	case config.SourcePostgres:
		return loader.Load(ctx)
	default:
		return catalog.LoadSeed()
	}
}

func loadBundle(cfg config.Config) (*i18n.Bundle, error) {
	if cfg.MessagesDir != "" {
		return i18n.LoadDir(cfg.MessagesDir)
	}
	return i18n.LoadEmbedded()
}
