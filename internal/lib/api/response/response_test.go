package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"SchoolDesk/entity"
)

func TestFailStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", entity.Validationf("bad input"), http.StatusBadRequest},
		{"invalid credentials", entity.ErrInvalidCredentials, http.StatusUnauthorized},
		{"access denied", fmt.Errorf("%w: nope", entity.ErrAccessDenied), http.StatusForbidden},
		{"not found", entity.ErrNotFound, http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: dependents", entity.ErrConflict), http.StatusConflict},
		{"capacity", fmt.Errorf("%w: full", entity.ErrCapacityExceeded), http.StatusConflict},
		{"invalid reference", entity.InvalidReferencef("school %q", "x"), http.StatusUnprocessableEntity},
		{"storage", entity.StorageErr(fmt.Errorf("connection reset")), http.StatusInternalServerError},
		{"unclassified", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			Fail(rec, req, tt.err)

			if rec.Code != tt.want {
				t.Errorf("Fail(%v) status = %d, want %d", tt.err, rec.Code, tt.want)
			}
		})
	}
}
