package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusUpcoming  ReservationStatus = "upcoming"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	Base
	UserID     uuid.UUID         `db:"user_id"`
	ShowtimeID uuid.UUID         `db:"showtime_id"`
	TotalPrice float64           `db:"total_price"`
	Status     ReservationStatus `db:"status"`
}

// DisplayStatus derives the status to present for the reservation: an
// upcoming reservation whose showtime has already started is shown as
// completed even if the persisted status has not caught up yet.
func (r *Reservation) DisplayStatus(showtimeStart, now time.Time) ReservationStatus {
	if r.Status == ReservationStatusUpcoming && !showtimeStart.After(now) {
		return ReservationStatusCompleted
	}
	return r.Status
}
