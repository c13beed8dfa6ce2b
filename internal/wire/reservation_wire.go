package wire

import (
	"movie-reservation/internal/adaptor"
	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/middleware"
	"movie-reservation/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/showtimes/{id}/seats - Seat availability map (public)
	r.Get("/api/showtimes/{id}/seats", reservationHandler.GetSeatAvailability)

	// ==================== PROTECTED ROUTES (require auth) ====================
	// Group routes that require authentication
	r.Group(func(r chi.Router) {
		// Booking endpoints get a tighter per-IP budget than the rest
		// of the API, applied before the session lookup
		r.Use(httprate.LimitByIP(10, time.Minute))
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/reservations - Book seats for a showtime
		r.Post("/api/reservations", reservationHandler.CreateReservation)

		// DELETE /api/reservations/{id} - Cancel own upcoming reservation
		r.Delete("/api/reservations/{id}", reservationHandler.CancelReservation)

		// GET /api/user/reservations - View own reservation history
		r.Get("/api/user/reservations", reservationHandler.GetUserReservations)
	})
}
