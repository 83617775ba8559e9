package user

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"SchoolDesk/internal/lib/api/response"
	"SchoolDesk/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// SessionCore revokes issued bearer tokens.
type SessionCore interface {
	RevokeToken(ctx context.Context, token string) error
}

// Logout invalidates the presented bearer token. The authenticate middleware
// has already resolved it, so a parse failure here cannot happen in practice.
func Logout(log *slog.Logger, sessions SessionCore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.user"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		token := ""
		header := r.Header.Get("Authorization")
		if strings.Contains(header, "Bearer") {
			token = strings.Split(header, " ")[1]
		}
		if token == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Token not found"))
			return
		}

		if err := sessions.RevokeToken(r.Context(), token); err != nil {
			logger.Error("failed to revoke token", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		logger.Debug("token revoked")
		render.NoContent(w, r)
	}
}
