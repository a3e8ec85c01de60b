package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/certwatch/certwatch/internal/api/response"
	"github.com/certwatch/certwatch/internal/db"
)

// Bootstrap ensures the schema exists before any API handler runs.
func Bootstrap(b *db.Bootstrapper) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := b.Ensure(r.Context()); err != nil {
				zerolog.Ctx(r.Context()).Error().Err(err).Msg("schema bootstrap failed")
				response.WriteError(w, http.StatusInternalServerError, "database initialization failed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
