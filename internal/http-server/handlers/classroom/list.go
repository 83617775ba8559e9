package classroom

import (
	"log/slog"
	"net/http"

	"SchoolDesk/internal/lib/api/cont"
	"SchoolDesk/internal/lib/api/response"
	"SchoolDesk/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func ListClassrooms(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.classroom"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		classrooms, err := handler.List(r.Context(), cont.Principal(r.Context()))
		if err != nil {
			logger.Error("failed to list classrooms", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		logger.Debug("classrooms listed", slog.Int("count", len(classrooms)))
		render.JSON(w, r, response.Ok(classrooms))
	}
}
