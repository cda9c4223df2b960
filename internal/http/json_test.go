package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/skadi15/fruitstand/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", apperrors.Validation("bad input"), http.StatusBadRequest, "validation_failed", "bad input"},
		{
			"wrapped not found",
			fmt.Errorf("lookup: %w", apperrors.NotFound("No order found for ID x")),
			http.StatusNotFound, "not_found", "No order found for ID x",
		},
		{"conflict", apperrors.Conflict("duplicate"), http.StatusConflict, "conflict", "duplicate"},
		{"timeout", &apperrors.AppError{Code: apperrors.ErrCodeTimeout, Message: "timed out", Cause: errors.New("slow")}, http.StatusGatewayTimeout, "timeout", "timed out"},
		{"plain", errors.New("disk on fire"), http.StatusInternalServerError, "get_failed", "disk on fire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteAppError(w, tt.err, "get_failed")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		query          string
		wantLim, wantO int
	}{
		{"", 50, 0},
		{"limit=10&offset=20", 10, 20},
		{"limit=0&offset=-1", 1, 0},
		{"limit=9999", 500, 0},
		{"limit=abc", 50, 0},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/orders?"+tt.query, nil)
		lim, off := ParseLimitOffset(r, 50, 500)
		assert.Equal(t, tt.wantLim, lim, tt.query)
		assert.Equal(t, tt.wantO, off, tt.query)
	}
}
