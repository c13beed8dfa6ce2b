package adaptor

import (
	"errors"
	"net/http"

	"movie-reservation/internal/usecase"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors to HTTP responses. Every business
// rejection keeps its specific status and message; only unknown errors
// collapse to a 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError
	var seatConflict *usecase.SeatConflictError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.As(err, &seatConflict):
		log.Warn(operation+" failed - seat conflict",
			zap.Strings("seats", seatConflict.SeatNumbers))
		utils.ResponseConflict(w, seatConflict.Error(), map[string][]string{
			"conflicting_seats": seatConflict.SeatNumbers,
		})

	case errors.Is(err, usecase.ErrMovieNotFound),
		errors.Is(err, usecase.ErrShowtimeNotFound),
		errors.Is(err, usecase.ErrReservationNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrNotOwner):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrDuplicateSeats),
		errors.Is(err, usecase.ErrPastShowtime):
		log.Warn(operation+" failed - rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrCapacityExceeded),
		errors.Is(err, usecase.ErrAlreadyCancelled),
		errors.Is(err, usecase.ErrAlreadyCompleted),
		errors.Is(err, usecase.ErrShowtimeStarted),
		errors.Is(err, usecase.ErrEmailTaken):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials")
		utils.ResponseUnauthorized(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
