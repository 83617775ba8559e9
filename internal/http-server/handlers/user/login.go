package user

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"SchoolDesk/entity"
	"SchoolDesk/internal/lib/api/response"
	"SchoolDesk/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

func Login(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.user"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		user, token, err := handler.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			// Deliberately terse: the response must not reveal whether the
			// email exists.
			logger.Warn("authentication failed", sl.Err(err))
			response.Fail(w, r, err)
			return
		}

		logger.Debug("user authenticated", slog.String("id", user.ID))
		render.JSON(w, r, response.Ok(LoginResponse{User: user, Token: token}))
	}
}
