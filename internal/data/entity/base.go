package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the identity and audit columns shared by mutable records
// (users, movies, showtimes, reservations).
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewBase allocates an identity stamped at the given instant. IDs are
// assigned in the service layer so they exist before the row is written.
func NewBase(now time.Time) Base {
	return Base{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BaseSimple is Base for append-only records (sessions, reserved seats)
// that are never updated in place.
type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

func NewBaseSimple(now time.Time) BaseSimple {
	return BaseSimple{
		ID:        uuid.New(),
		CreatedAt: now,
	}
}
