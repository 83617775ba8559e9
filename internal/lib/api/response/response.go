package response

import (
	"errors"
	"net/http"

	"SchoolDesk/entity"

	"github.com/go-chi/render"
)

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

const (
	statusOK    = "ok"
	statusError = "error"
)

func Ok(data any) Response {
	return Response{
		Status: statusOK,
		Data:   data,
	}
}

func Error(msg string) Response {
	return Response{
		Status: statusError,
		Error:  msg,
	}
}

// Fail renders a typed domain failure with its own status code. The legacy
// system collapsed all of these to 400; the mapping here keeps not-found,
// forbidden and conflict distinguishable for clients.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, statusOf(err))
	render.JSON(w, r, Error(err.Error()))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict), errors.Is(err, entity.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, entity.ErrInvalidReference):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
