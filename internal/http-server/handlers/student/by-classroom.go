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

func ListByClassroom(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		classroomID := chi.URLParam(r, "classroomId")
		logger := log.With(
			sl.Module("http.handlers.student"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("classroom_id", classroomID),
		)

		students, err := handler.GetByClassroom(r.Context(), cont.Principal(r.Context()), classroomID)
		if err != nil {
			logger.Error("failed to list classroom students", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		logger.Debug("classroom students listed", slog.Int("count", len(students)))
		render.JSON(w, r, response.Ok(students))
	}
}
