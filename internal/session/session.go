// Package session carries per-client request state: the session id that keys
// favorites, and the resolved locale.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"AvisailYachts/internal/i18n"
)

const (
	CookieName       = "avisail_session"
	LocaleCookieName = "NEXT_LOCALE"
	LocaleQueryParam = "hl"

	cookieMaxAge = 365 * 24 * time.Hour
)

type Session struct {
	ID     string
	Locale i18n.Locale
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by Middleware.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// FromRequest never fails: without middleware it yields an anonymous session
// in the default locale.
func FromRequest(r *http.Request) Session {
	if s, ok := FromContext(r.Context()); ok {
		return s
	}
	return Session{Locale: i18n.DefaultLocale}
}

// Middleware resolves the session id and locale for every request.
// Locale precedence: ?hl= (remembered in a cookie), the locale cookie,
// Accept-Language, then the default locale.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := Session{
			ID:     sessionID(w, r),
			Locale: resolveLocale(w, r),
		}

		w.Header().Add("Vary", "Accept-Language")
		w.Header().Set("Content-Language", string(s.Locale))

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func resolveLocale(w http.ResponseWriter, r *http.Request) i18n.Locale {
	if q := r.URL.Query().Get(LocaleQueryParam); q != "" {
		if l, ok := i18n.ParseLocale(q); ok {
			http.SetCookie(w, &http.Cookie{
				Name:     LocaleCookieName,
				Value:    string(l),
				Path:     "/",
				MaxAge:   int(cookieMaxAge.Seconds()),
				SameSite: http.SameSiteLaxMode,
			})
			return l
		}
	}
	if c, err := r.Cookie(LocaleCookieName); err == nil {
		if l, ok := i18n.ParseLocale(c.Value); ok {
			return l
		}
	}
	return i18n.Resolve(r.Header.Get("Accept-Language"))
}
