package middleware

import (
	"net/http"

	internalsession "github.com/neokart/neokart-backend/internal/session"
	"github.com/neokart/neokart-backend/pkg/config"
	"github.com/neokart/neokart-backend/pkg/logger"
)

// VisitorSession reads the anonymous session cookie, issuing a fresh
// one when the browser has none. The visitor id keys the Redis-backed
// session bag (theme, coupon, browse history) and is independent of
// login state.
func VisitorSession(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				visitorID = cookie.Value
			}

			if visitorID == "" {
				visitorID = internalsession.NewVisitorID()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    visitorID,
					Path:     "/",
					MaxAge:   int(cfg.TTL.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithVisitorID(r.Context(), visitorID)
			if logg != nil {
				ctx = logg.WithVisitorID(ctx, visitorID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
