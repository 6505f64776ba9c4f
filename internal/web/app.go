package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"AvisailYachts/internal/catalog"
	"AvisailYachts/internal/favorites"
	"AvisailYachts/internal/i18n"
	"AvisailYachts/internal/session"
	"AvisailYachts/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// FavoritesRateLimit is mutations per client IP per minute; 0 disables it.
	FavoritesRateLimit int
}

type Deps struct {
	Catalog   catalog.Store
	Bundle    *i18n.Bundle
	Favorites favorites.Store

	// CatalogDB is the database the catalog was loaded from, if any. It is
	// pinged by /readyz alongside the stores.
	CatalogDB Pinger

	RelatedLimit int
}

const readyTimeout = 2 * time.Second

// Pinger is anything /readyz can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type probe struct {
	name string
	p    Pinger
}

type i18nResp struct {
	Locale   i18n.Locale       `json:"locale"`
	Dir      string            `json:"dir"`
	RTL      bool              `json:"rtl"`
	Messages map[string]string `json:"messages"`
}

func NewHandler(deps Deps, httpDeps HTTPDeps) http.Handler {
	log := httpDeps.Log
	if log == nil {
		log = zap.NewNop()
	}

	svc := favorites.NewService(deps.Favorites, deps.Catalog)
	if httpDeps.Registry != nil {
		svc.Metrics = favorites.NewMetrics(httpDeps.Registry)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer(log))
	r.Use(session.Middleware)
	r.Use(kit.Logging(log, sessionFields))
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(log, []probe{
		{name: "catalog", p: deps.Catalog},
		{name: "catalog database", p: deps.CatalogDB},
		{name: "favorites", p: deps.Favorites},
	}))
	r.Get("/i18n", messages(deps.Bundle))

	yachts := &catalog.Server{
		Store:        deps.Catalog,
		Bundle:       deps.Bundle,
		Favorites:    svc,
		Log:          log,
		RelatedLimit: deps.RelatedLimit,
	}
	r.Mount("/yachts", yachts.Routes())

	favs := &favorites.Server{
		Service: svc,
		Catalog: deps.Catalog,
		Bundle:  deps.Bundle,
		Log:     log,
	}
	if httpDeps.FavoritesRateLimit > 0 {
		favs.Limit = kit.NewIPRateLimiter(httpDeps.FavoritesRateLimit, time.Minute).Middleware
	}
	r.Mount("/favorites", favs.Routes())

	return r
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, func(r *http.Request) string {
		return string(session.FromRequest(r).Locale)
	}))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func sessionFields(r *http.Request) []zap.Field {
	sess := session.FromRequest(r)
	return []zap.Field{
		zap.String("session_id", sess.ID),
		zap.String("locale", string(sess.Locale)),
	}
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(log *zap.Logger, probes []probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for _, pr := range probes {
			if pr.p == nil {
				continue
			}
			if err := pr.p.Ping(ctx); err != nil {
				log.Warn("readyz failed: "+pr.name, zap.Error(err))
				kit.WriteError(w, r, http.StatusServiceUnavailable, pr.name+" not ready", nil)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
	}
}

func messages(b *i18n.Bundle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := session.FromRequest(r).Locale
		kit.WriteJSON(w, http.StatusOK, i18nResp{
			Locale:   locale,
			Dir:      locale.Dir(),
			RTL:      locale.RTL(),
			Messages: b.Messages(locale, r.URL.Query().Get("prefix")),
		})
	}
}
