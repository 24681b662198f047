package common_test

import (
	"fmt"
	"leetcode_tracker/internal/common"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", common.ErrNotFound, http.StatusNotFound},
		{"wrapped unauthorized", fmt.Errorf("login: %w", common.ErrUnauthorized), http.StatusUnauthorized},
		{"validation", common.ErrValidation, http.StatusBadRequest},
		{"bad request", common.ErrBadRequest, http.StatusBadRequest},
		{"conflict", common.ErrConflict, http.StatusConflict},
		{"pg unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), http.StatusConflict},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, http.StatusInternalServerError},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := common.HTTPStatusFromError(tt.err); got != tt.want {
				t.Errorf("HTTPStatusFromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	common.RespondWithError(rec, http.StatusConflict, "email already registered")

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if body := rec.Body.String(); body != `{"error":"email already registered"}` {
		t.Errorf("body = %s", body)
	}
}
