package request

import "time"

type CreateShowtimeRequest struct {
	MovieID   string    `json:"movie_id" validate:"required,uuid4"`
	StartTime time.Time `json:"start_time" validate:"required"`
	Capacity  int       `json:"capacity" validate:"required,gt=0"`
	Price     float64   `json:"price" validate:"gte=0"`
}

type UpdateShowtimeRequest struct {
	StartTime *time.Time `json:"start_time,omitempty"`
	Capacity  *int       `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Price     *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
}
