package usecase

import (
	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Movie       MovieService
	Showtime    ShowtimeService
	Reservation ReservationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo, config, log),
		User:        NewUserService(repo.User, log),
		Movie:       NewMovieService(repo, log),
		Showtime:    NewShowtimeService(repo, log),
		Reservation: NewReservationService(repo, log),
	}
}
