package catalog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"AvisailYachts/internal/i18n"
	"AvisailYachts/internal/session"
	"AvisailYachts/pkg/kit"
)

const (
	DefaultRelatedLimit = 3
	MaxRelatedLimit     = 24
)

// FavoriteIDs reports the favorites of a session so views can be marked.
type FavoriteIDs interface {
	IDs(ctx context.Context, sessionID string) ([]string, error)
}

type Server struct {
	Store     Store
	Bundle    *i18n.Bundle
	Favorites FavoriteIDs
	Log       *zap.Logger

	// RelatedLimit applies when ?limit= is absent; 0 means DefaultRelatedLimit.
	RelatedLimit int
}

// Routes serves the catalog relative to its mount point, e.g. /yachts.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)
	r.Get("/featured", s.featured)
	r.Get("/{id}", s.get)
	r.Get("/{id}/related", s.related)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.writeViews(w, r, s.Store.All())
}

func (s *Server) featured(w http.ResponseWriter, r *http.Request) {
	s.writeViews(w, r, s.Store.Featured())
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	y, ok := s.Store.Get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	views := s.views(r, []Yacht{y})
	kit.WriteJSON(w, http.StatusOK, views[0])
}

func (s *Server) related(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	limit, err := s.relatedLimit(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad limit", map[string]any{"max": MaxRelatedLimit})
		return
	}

	y, ok := s.Store.Get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	s.writeViews(w, r, s.Store.Related(y, limit))
}

func (s *Server) relatedLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		if s.RelatedLimit > 0 {
			return s.RelatedLimit, nil
		}
		return DefaultRelatedLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > MaxRelatedLimit {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func (s *Server) writeViews(w http.ResponseWriter, r *http.Request, ys []Yacht) {
	kit.WriteJSON(w, http.StatusOK, s.views(r, ys))
}

// views never fails the request: a favorites outage only drops the marks.
func (s *Server) views(r *http.Request, ys []Yacht) []View {
	sess := session.FromRequest(r)

	var favs []string
	if s.Favorites != nil && sess.ID != "" {
		ids, err := s.Favorites.IDs(r.Context(), sess.ID)
		if err != nil {
			if s.Log != nil {
				s.Log.Warn("load favorites failed", zap.Error(err), zap.String("session_id", sess.ID))
			}
		} else {
			favs = ids
		}
	}
	return NewViews(ys, s.Bundle, sess.Locale, favs)
}
