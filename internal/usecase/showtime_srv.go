package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/dto/response"
	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error)
	GetShowtimeByID(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, showtimeID string, req *request.UpdateShowtimeRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, showtimeID string) error
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"movie_id": "Must be a valid UUID"}}
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	now := time.Now()
	showtime := &entity.Showtime{
		Base: entity.NewBase(now),
		MovieID:   movieID,
		StartTime: req.StartTime,
		Capacity:  req.Capacity,
		Price:     req.Price,
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		s.log.Error("Failed to create showtime",
			zap.Error(err), zap.String("movie_id", req.MovieID))
		return nil, fmt.Errorf("create showtime: %w", err)
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.Time("start_time", req.StartTime),
		zap.Int("capacity", req.Capacity))

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) GetShowtimeByID(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"showtime_id": "Must be a valid UUID"}}
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, ErrShowtimeNotFound
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, showtimeID string, req *request.UpdateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update showtime validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"showtime_id": "Must be a valid UUID"}}
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, ErrShowtimeNotFound
	}

	if req.StartTime != nil {
		showtime.StartTime = *req.StartTime
	}
	if req.Capacity != nil {
		showtime.Capacity = *req.Capacity
	}
	if req.Price != nil {
		showtime.Price = *req.Price
	}
	showtime.UpdatedAt = time.Now()

	if err := s.repo.Showtime.Update(ctx, showtime); err != nil {
		s.log.Error("Failed to update showtime",
			zap.Error(err), zap.String("showtime_id", showtimeID))
		return nil, fmt.Errorf("update showtime: %w", err)
	}

	s.log.Info("Showtime updated", zap.String("showtime_id", showtimeID))

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, showtimeID string) error {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return &ValidationError{Fields: map[string]string{"showtime_id": "Must be a valid UUID"}}
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return ErrShowtimeNotFound
	}

	if err := s.repo.Showtime.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete showtime",
			zap.Error(err), zap.String("showtime_id", showtimeID))
		return fmt.Errorf("delete showtime: %w", err)
	}

	return nil
}
