package student

import (
	"log/slog"
	"net/http"

	"SchoolDesk/internal/lib/api/cont"
	"SchoolDesk/internal/lib/api/response"
	"SchoolDesk/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func ListStudents(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.student"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		students, err := handler.List(r.Context(), cont.Principal(r.Context()))
		if err != nil {
			logger.Error("failed to list students", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		logger.Debug("students listed", slog.Int("count", len(students)))
		render.JSON(w, r, response.Ok(students))
	}
}
