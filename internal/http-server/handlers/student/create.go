package student

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"SchoolDesk/entity"
	"SchoolDesk/internal/lib/api/cont"
	"SchoolDesk/internal/lib/api/response"
	"SchoolDesk/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func CreateStudent(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.student"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.Student
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		student, err := handler.Create(r.Context(), cont.Principal(r.Context()), &req)
		if err != nil {
			logger.Error("failed to create student", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		logger.Debug("student created", slog.String("id", student.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(student))
	}
}
