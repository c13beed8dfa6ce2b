package wire

import (
	"movie-reservation/internal/adaptor"
	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/middleware"
	"movie-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShowtime(
	r chi.Router,
	showtimeHandler *adaptor.ShowtimeHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/showtimes/{id} - Showtime details (public)
	r.Get("/api/showtimes/{id}", showtimeHandler.GetShowtimeByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/showtimes", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/", showtimeHandler.CreateShowtime)       // POST /api/admin/showtimes
		r.Put("/{id}", showtimeHandler.UpdateShowtime)    // PUT /api/admin/showtimes/{id}
		r.Delete("/{id}", showtimeHandler.DeleteShowtime) // DELETE /api/admin/showtimes/{id}
	})
}
