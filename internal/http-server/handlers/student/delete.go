package student

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

func DeleteStudent(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.student"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("student_id", id),
		)

		if err := handler.Delete(r.Context(), cont.Principal(r.Context()), id); err != nil {
			logger.Error("failed to delete student", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		logger.Debug("student deleted")
		render.NoContent(w, r)
	}
}
