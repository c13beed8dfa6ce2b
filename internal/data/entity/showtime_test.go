package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeatLabel(t *testing.T) {
	assert.Equal(t, "SEAT-001", SeatLabel(1))
	assert.Equal(t, "SEAT-042", SeatLabel(42))
	assert.Equal(t, "SEAT-100", SeatLabel(100))
	// no truncation past three digits
	assert.Equal(t, "SEAT-1000", SeatLabel(1000))
}

func TestSeatLabels(t *testing.T) {
	showtime := &Showtime{Capacity: 3}
	assert.Equal(t, []string{"SEAT-001", "SEAT-002", "SEAT-003"}, showtime.SeatLabels())
}

func TestHasStarted(t *testing.T) {
	now := time.Now()
	future := &Showtime{StartTime: now.Add(time.Minute)}
	past := &Showtime{StartTime: now.Add(-time.Minute)}
	exact := &Showtime{StartTime: now}

	assert.False(t, future.HasStarted(now))
	assert.True(t, past.HasStarted(now))
	// the start instant itself already counts as started
	assert.True(t, exact.HasStarted(now))
}
