package repository

import (
	"movie-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tx           TxManager
	User         UserRepository
	Session      SessionRepository
	Movie        MovieRepository
	Showtime     ShowtimeRepository
	Reservation  ReservationRepository
	ReservedSeat ReservedSeatRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:           NewTxManager(db, log),
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Movie:        NewMovieRepository(db, log),
		Showtime:     NewShowtimeRepository(db, log),
		Reservation:  NewReservationRepository(db, log),
		ReservedSeat: NewReservedSeatRepository(db, log),
	}
}
