package favorites

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"AvisailYachts/internal/catalog"
	"AvisailYachts/internal/i18n"
	"AvisailYachts/internal/session"
	"AvisailYachts/pkg/kit"
)

type Server struct {
	Service *Service
	Catalog catalog.Store
	Bundle  *i18n.Bundle
	Log     *zap.Logger

	// Limit wraps the mutating routes, typically a per-IP rate limiter.
	Limit func(http.Handler) http.Handler
}

type listResp struct {
	IDs     []string       `json:"ids"`
	Count   int            `json:"count"`
	Summary string         `json:"summary"`
	Yachts  []catalog.View `json:"yachts"`
}

type idsResp struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

type toggleResp struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

// Routes serves favorites relative to its mount point, e.g. /favorites.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)

	r.Group(func(mr chi.Router) {
		if s.Limit != nil {
			mr.Use(s.Limit)
		}
		mr.Put("/{id}", s.add)
		mr.Delete("/{id}", s.remove)
		mr.Post("/{id}/toggle", s.toggle)
	})

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	ids, err := s.Service.IDs(r.Context(), sess.ID)
	if err != nil {
		s.serverError(w, r, "load favorites failed", err)
		return
	}

	// Listed in catalog order; ids that left the catalog are not rendered.
	yachts := s.Catalog.ByIDs(ids)
	kit.WriteJSON(w, http.StatusOK, listResp{
		IDs:     ids,
		Count:   len(ids),
		Summary: Summary(s.Bundle, sess.Locale, len(ids)),
		Yachts:  catalog.NewViews(yachts, s.Bundle, sess.Locale, ids),
	})
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	ids, err := s.Service.Add(r.Context(), sess.ID, id)
	if errors.Is(err, ErrUnknownYacht) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if err != nil {
		s.serverError(w, r, "add favorite failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, idsResp{IDs: ids, Count: len(ids)})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	ids, err := s.Service.Remove(r.Context(), sess.ID, chi.URLParam(r, "id"))
	if err != nil {
		s.serverError(w, r, "remove favorite failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, idsResp{IDs: ids, Count: len(ids)})
}

func (s *Server) toggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	on, err := s.Service.Toggle(r.Context(), sess.ID, id)
	if errors.Is(err, ErrUnknownYacht) {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	if err != nil {
		s.serverError(w, r, "toggle favorite failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, toggleResp{ID: id, Favorite: on})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	sess := session.FromRequest(r)
	if sess.ID == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "no session", nil)
		return sess, false
	}
	return sess, true
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if errors.Is(err, ErrConflict) {
		kit.WriteError(w, r, http.StatusConflict, "conflict", nil)
		return
	}
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

// Summary is the localized "n yachts saved" line.
func Summary(b *i18n.Bundle, locale i18n.Locale, n int) string {
	switch n {
	case 0:
		return b.T(locale, "favorites.none", nil)
	case 1:
		return b.T(locale, "favorites.one", map[string]any{"count": n})
	default:
		return b.T(locale, "favorites.many", map[string]any{"count": n})
	}
}
