package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// Business rejections are sentinel errors so handlers can map each one to a
// precise HTTP status instead of a generic failure.
var (
	ErrMovieNotFound       = errors.New("movie not found")
	ErrShowtimeNotFound    = errors.New("showtime not found")
	ErrReservationNotFound = errors.New("reservation not found")

	// booking rejections
	ErrDuplicateSeats   = errors.New("duplicate seats are not allowed")
	ErrPastShowtime     = errors.New("cannot book seats for a past showtime")
	ErrCapacityExceeded = errors.New("not enough seats available")

	// cancellation rejections
	ErrNotOwner         = errors.New("you can only cancel your own reservations")
	ErrAlreadyCancelled = errors.New("reservation is already cancelled")
	ErrAlreadyCompleted = errors.New("cannot cancel a completed reservation")
	ErrShowtimeStarted  = errors.New("cannot cancel a past showtime reservation")

	// auth rejections
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SeatConflictError reports which requested seats are already held by an
// active reservation.
type SeatConflictError struct {
	SeatNumbers []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.SeatNumbers, ", "))
}

// ValidationError wraps field-level validation failures from request DTOs.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
