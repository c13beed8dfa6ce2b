package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-reservation/internal/usecase"
	"movie-reservation/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &usecase.ValidationError{Fields: map[string]string{"showtime_id": "required"}}, http.StatusBadRequest},
		{"duplicate seats", usecase.ErrDuplicateSeats, http.StatusBadRequest},
		{"past showtime", usecase.ErrPastShowtime, http.StatusBadRequest},
		{"movie not found", usecase.ErrMovieNotFound, http.StatusNotFound},
		{"showtime not found", usecase.ErrShowtimeNotFound, http.StatusNotFound},
		{"reservation not found", usecase.ErrReservationNotFound, http.StatusNotFound},
		{"not owner", usecase.ErrNotOwner, http.StatusForbidden},
		{"seat conflict", &usecase.SeatConflictError{SeatNumbers: []string{"SEAT-001"}}, http.StatusConflict},
		{"capacity exceeded", usecase.ErrCapacityExceeded, http.StatusConflict},
		{"already cancelled", usecase.ErrAlreadyCancelled, http.StatusConflict},
		{"already completed", usecase.ErrAlreadyCompleted, http.StatusConflict},
		{"showtime started", usecase.ErrShowtimeStarted, http.StatusConflict},
		{"email taken", usecase.ErrEmailTaken, http.StatusConflict},
		{"invalid credentials", usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tc.err, "test operation")
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestHandleServiceErrorSeatConflictBody(t *testing.T) {
	rec := httptest.NewRecorder()
	conflict := &usecase.SeatConflictError{SeatNumbers: []string{"SEAT-001", "SEAT-002"}}
	handleServiceError(rec, zap.NewNop(), conflict, "create reservation")

	var body utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Status)
	assert.Contains(t, body.Message, "SEAT-001")
	assert.Contains(t, body.Message, "SEAT-002")
	require.NotNil(t, body.Errors)
}

func TestHandleServiceErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), errors.New("pq: connection refused"), "create reservation")

	var body utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, body.Message, "connection refused")
}

func TestWrappedErrorsStillMap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := errors.Join(errors.New("context"), usecase.ErrShowtimeNotFound)
	handleServiceError(rec, zap.NewNop(), wrapped, "get showtime")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
