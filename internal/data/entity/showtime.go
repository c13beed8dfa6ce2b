package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Showtime struct {
	Base
	MovieID   uuid.UUID `db:"movie_id"`
	StartTime time.Time `db:"start_time"`
	Capacity  int       `db:"capacity"`
	Price     float64   `db:"price"`
}

// HasStarted reports whether the screening has already begun at the given
// instant. Bookings and cancellations are only allowed before the start time.
func (s *Showtime) HasStarted(now time.Time) bool {
	return !s.StartTime.After(now)
}

// SeatLabel returns the canonical label for the n-th seat (1-based),
// e.g. SEAT-001.
func SeatLabel(n int) string {
	return fmt.Sprintf("SEAT-%03d", n)
}

// SeatLabels generates the full label sequence for the showtime's capacity.
func (s *Showtime) SeatLabels() []string {
	labels := make([]string, s.Capacity)
	for i := range labels {
		labels[i] = SeatLabel(i + 1)
	}
	return labels
}
