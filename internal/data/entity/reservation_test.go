package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayStatus(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name     string
		status   ReservationStatus
		start    time.Time
		expected ReservationStatus
	}{
		{"upcoming before start", ReservationStatusUpcoming, now.Add(time.Hour), ReservationStatusUpcoming},
		{"upcoming after start", ReservationStatusUpcoming, now.Add(-time.Hour), ReservationStatusCompleted},
		{"upcoming at start", ReservationStatusUpcoming, now, ReservationStatusCompleted},
		{"cancelled stays cancelled", ReservationStatusCancelled, now.Add(-time.Hour), ReservationStatusCancelled},
		{"completed stays completed", ReservationStatusCompleted, now.Add(time.Hour), ReservationStatusCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &Reservation{Status: tc.status}
			assert.Equal(t, tc.expected, r.DisplayStatus(tc.start, now))
		})
	}
}
