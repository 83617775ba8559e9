package user

import (
	"log/slog"
	"net/http"

	"SchoolDesk/internal/lib/api/cont"
	"SchoolDesk/internal/lib/api/response"
	"SchoolDesk/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func DeleteUser(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.user"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("user_id", id),
		)

		if err := handler.Delete(r.Context(), cont.Principal(r.Context()), id); err != nil {
			logger.Error("failed to delete user", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		logger.Debug("user deleted")
		render.NoContent(w, r)
	}
}
