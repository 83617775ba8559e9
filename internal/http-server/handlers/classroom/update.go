package classroom

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"SchoolDesk/entity"
	"SchoolDesk/internal/lib/api/cont"
	"SchoolDesk/internal/lib/api/response"
	"SchoolDesk/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func UpdateClassroom(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.classroom"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("classroom_id", id),
		)

		var patch entity.ClassroomPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		classroom, err := handler.Update(r.Context(), cont.Principal(r.Context()), id, patch)
		if err != nil {
			logger.Error("failed to update classroom", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		logger.Debug("classroom updated")
		render.JSON(w, r, response.Ok(classroom))
	}
}
