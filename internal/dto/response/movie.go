package response

import (
	"time"

	"movie-reservation/internal/data/entity"
)

type MovieResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description *string            `json:"description,omitempty"`
	PosterURL   *string            `json:"poster_url,omitempty"`
	Genre       string             `json:"genre"`
	Showtimes   []ShowtimeResponse `json:"showtimes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type ShowtimeResponse struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	StartTime time.Time `json:"start_time"`
	Capacity  int       `json:"capacity"`
	Price     float64   `json:"price"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		PosterURL:   movie.PosterURL,
		Genre:       movie.Genre,
		CreatedAt:   movie.CreatedAt,
	}
}

func ShowtimeToResponse(showtime *entity.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		ID:        showtime.ID.String(),
		MovieID:   showtime.MovieID.String(),
		StartTime: showtime.StartTime,
		Capacity:  showtime.Capacity,
		Price:     showtime.Price,
	}
}
