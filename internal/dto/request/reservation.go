package request

type CreateReservationRequest struct {
	ShowtimeID  string   `json:"showtime_id" validate:"required,uuid4"`
	SeatNumbers []string `json:"seat_numbers" validate:"required,min=1,dive,required"`
}
