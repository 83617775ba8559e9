package classroom

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

func GetClassroom(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.classroom"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("classroom_id", id),
		)

		classroom, err := handler.GetByID(r.Context(), cont.Principal(r.Context()), id)
		if err != nil {
			logger.Error("failed to get classroom", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		render.JSON(w, r, response.Ok(classroom))
	}
}
