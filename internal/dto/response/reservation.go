package response

import (
	"time"

	"movie-reservation/internal/data/entity"
)

type ReservationResponse struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"user_id"`
	ShowtimeID  string                   `json:"showtime_id"`
	MovieTitle  string                   `json:"movie_title,omitempty"`
	StartTime   time.Time                `json:"start_time"`
	SeatNumbers []string                 `json:"seat_numbers"`
	TotalPrice  float64                  `json:"total_price"`
	Status      entity.ReservationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
}

type SeatResponse struct {
	SeatNumber string `json:"seat_number"`
	Available  bool   `json:"available"`
}

type SeatAvailabilityResponse struct {
	ShowtimeID     string         `json:"showtime_id"`
	MovieID        string         `json:"movie_id"`
	StartTime      time.Time      `json:"start_time"`
	Capacity       int            `json:"capacity"`
	BookedSeats    int            `json:"booked_seats"`
	AvailableSeats int            `json:"available_seats"`
	Price          float64        `json:"price"`
	Seats          []SeatResponse `json:"seats"`
}
