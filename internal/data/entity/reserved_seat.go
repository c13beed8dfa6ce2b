package entity

import "github.com/google/uuid"

type ReservedSeat struct {
	BaseSimple
	ShowtimeID    uuid.UUID `db:"showtime_id"`
	ReservationID uuid.UUID `db:"reservation_id"`
	SeatNumber    string    `db:"seat_number"`
}
