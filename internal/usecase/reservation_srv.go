package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/dto/response"
	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	GetSeatAvailability(ctx context.Context, showtimeID string) (*response.SeatAvailabilityResponse, error)
	CreateReservation(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	CancelReservation(ctx context.Context, userID, reservationID string) error
	GetUserReservations(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)

	// RunReconciler persists the derived "completed" status in the
	// background until ctx is cancelled.
	RunReconciler(ctx context.Context, interval time.Duration)
}

type reservationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReservationService(repo *repository.Repository, log *zap.Logger) ReservationService {
	return &reservationService{
		repo: repo,
		log:  log.With(zap.String("service", "reservation")),
	}
}

// ==================== AVAILABILITY ====================

func (s *reservationService) GetSeatAvailability(ctx context.Context, showtimeID string) (*response.SeatAvailabilityResponse, error) {
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

	// One query gives a consistent snapshot of the active holds; bookings
	// commit their seat rows atomically, so a half-written reservation can
	// never show up here.
	bookedSeats, err := s.repo.ReservedSeat.FindActiveSeatNumbers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booked seats: %w", err)
	}

	booked := make(map[string]struct{}, len(bookedSeats))
	for _, seatNumber := range bookedSeats {
		booked[seatNumber] = struct{}{}
	}

	seats := make([]response.SeatResponse, showtime.Capacity)
	for i := range seats {
		seatNumber := entity.SeatLabel(i + 1)
		_, taken := booked[seatNumber]
		seats[i] = response.SeatResponse{
			SeatNumber: seatNumber,
			Available:  !taken,
		}
	}

	return &response.SeatAvailabilityResponse{
		ShowtimeID:     showtime.ID.String(),
		MovieID:        showtime.MovieID.String(),
		StartTime:      showtime.StartTime,
		Capacity:       showtime.Capacity,
		BookedSeats:    len(booked),
		AvailableSeats: showtime.Capacity - len(booked),
		Price:          showtime.Price,
		Seats:          seats,
	}, nil
}

// ==================== BOOKING ====================

func (s *reservationService) CreateReservation(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"user_id": "Must be a valid UUID"}}
	}

	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"showtime_id": "Must be a valid UUID"}}
	}

	// Normalize and deduplicate before touching storage. Asking for the
	// same physical seat twice is a client error, not a conflict.
	seatNumbers, ok := normalizeSeatNumbers(req.SeatNumbers)
	if !ok {
		return nil, ErrDuplicateSeats
	}

	var reservation *entity.Reservation
	var showtime *entity.Showtime

	err = s.repo.Tx.WithTx(ctx, func(txCtx context.Context) error {
		// Lock the showtime row. Competing bookings for the same showtime
		// queue here, so the conflict and capacity checks below always run
		// against the latest committed state.
		showtime, err = s.repo.Showtime.FindByIDForUpdate(txCtx, showtimeID)
		if err != nil {
			return fmt.Errorf("lock showtime: %w", err)
		}
		if showtime == nil {
			return ErrShowtimeNotFound
		}

		if showtime.HasStarted(time.Now()) {
			return ErrPastShowtime
		}

		conflicts, err := s.repo.ReservedSeat.FindActiveConflicts(txCtx, showtimeID, seatNumbers)
		if err != nil {
			return fmt.Errorf("check seat conflicts: %w", err)
		}
		if len(conflicts) > 0 {
			return &SeatConflictError{SeatNumbers: conflicts}
		}

		bookedCount, err := s.repo.ReservedSeat.CountActive(txCtx, showtimeID)
		if err != nil {
			return fmt.Errorf("count active seats: %w", err)
		}
		if bookedCount+len(seatNumbers) > showtime.Capacity {
			return ErrCapacityExceeded
		}

		// Total price is fixed at creation from the showtime's current
		// price; later price edits never touch existing reservations.
		now := time.Now()
		reservation = &entity.Reservation{
			Base: entity.NewBase(now),
			UserID:     userUUID,
			ShowtimeID: showtimeID,
			Status:     entity.ReservationStatusUpcoming,
			TotalPrice: showtime.Price * float64(len(seatNumbers)),
		}

		if err := s.repo.Reservation.Create(txCtx, reservation); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}

		seats := make([]*entity.ReservedSeat, len(seatNumbers))
		for i, seatNumber := range seatNumbers {
			seats[i] = &entity.ReservedSeat{
				BaseSimple: entity.NewBaseSimple(now),
				ShowtimeID:    showtimeID,
				ReservationID: reservation.ID,
				SeatNumber:    seatNumber,
			}
		}

		if err := s.repo.ReservedSeat.CreateBatch(txCtx, seats); err != nil {
			// The unique index on (showtime_id, seat_number) is the
			// backstop for bookings that raced past the lock.
			if repository.IsUniqueViolation(err) {
				return &SeatConflictError{SeatNumbers: seatNumbers}
			}
			return fmt.Errorf("create reserved seats: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", userID),
		zap.String("showtime_id", showtimeID.String()),
		zap.Int("seat_count", len(seatNumbers)),
		zap.Float64("total_price", reservation.TotalPrice),
	)

	return s.buildReservationResponse(ctx, reservation, showtime, seatNumbers), nil
}

// normalizeSeatNumbers trims and uppercases the requested labels. The second
// return value is false when the input named the same seat more than once.
func normalizeSeatNumbers(in []string) ([]string, bool) {
	seen := make(map[string]struct{}, len(in))
	normalized := make([]string, 0, len(in))
	for _, seatNumber := range in {
		seatNumber = strings.ToUpper(strings.TrimSpace(seatNumber))
		if _, dup := seen[seatNumber]; dup {
			return nil, false
		}
		seen[seatNumber] = struct{}{}
		normalized = append(normalized, seatNumber)
	}
	return normalized, true
}

// ==================== CANCELLATION ====================

func (s *reservationService) CancelReservation(ctx context.Context, userID, reservationID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return &ValidationError{Fields: map[string]string{"user_id": "Must be a valid UUID"}}
	}

	id, err := uuid.Parse(reservationID)
	if err != nil {
		return &ValidationError{Fields: map[string]string{"reservation_id": "Must be a valid UUID"}}
	}

	err = s.repo.Tx.WithTx(ctx, func(txCtx context.Context) error {
		reservation, err := s.repo.Reservation.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("lock reservation: %w", err)
		}
		if reservation == nil {
			return ErrReservationNotFound
		}

		if reservation.UserID != userUUID {
			return ErrNotOwner
		}

		switch reservation.Status {
		case entity.ReservationStatusCancelled:
			return ErrAlreadyCancelled
		case entity.ReservationStatusCompleted:
			return ErrAlreadyCompleted
		}

		showtime, err := s.repo.Showtime.FindByID(txCtx, reservation.ShowtimeID)
		if err != nil {
			return fmt.Errorf("get showtime: %w", err)
		}
		if showtime == nil {
			return fmt.Errorf("showtime %s missing for reservation %s", reservation.ShowtimeID.String(), id.String())
		}

		if showtime.HasStarted(time.Now()) {
			return ErrShowtimeStarted
		}

		// Status flip and seat release commit together; no reader can see
		// a cancelled reservation that still holds seats.
		if err := s.repo.Reservation.UpdateStatus(txCtx, id, entity.ReservationStatusCancelled); err != nil {
			return fmt.Errorf("update reservation status: %w", err)
		}
		if err := s.repo.ReservedSeat.DeleteByReservationID(txCtx, id); err != nil {
			return fmt.Errorf("release seats: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservationID),
		zap.String("user_id", userID),
	)

	return nil
}

// ==================== USER RESERVATIONS ====================

func (s *reservationService) GetUserReservations(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"user_id": "Must be a valid UUID"}}
	}

	reservations, err := s.repo.Reservation.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get user reservations: %w", err)
	}

	total, err := s.repo.Reservation.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("count user reservations: %w", err)
	}

	now := time.Now()
	reservationResponses := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		seatNumbers := s.seatNumbersFor(ctx, reservation.ID)

		var movieTitle string
		var startTime time.Time
		status := reservation.Status

		showtime, err := s.repo.Showtime.FindByID(ctx, reservation.ShowtimeID)
		if err == nil && showtime != nil {
			startTime = showtime.StartTime
			// The derived status is authoritative for display even when
			// the persisted one has not been reconciled yet.
			status = reservation.DisplayStatus(showtime.StartTime, now)

			movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
			if err == nil && movie != nil {
				movieTitle = movie.Title
			}
		}

		reservationResponses[i] = response.ReservationResponse{
			ID:          reservation.ID.String(),
			UserID:      reservation.UserID.String(),
			ShowtimeID:  reservation.ShowtimeID.String(),
			MovieTitle:  movieTitle,
			StartTime:   startTime,
			SeatNumbers: seatNumbers,
			TotalPrice:  reservation.TotalPrice,
			Status:      status,
			CreatedAt:   reservation.CreatedAt,
		}
	}

	// Best-effort catch-up of the persisted status. A failure here must
	// never alter or fail the response.
	if _, err := s.repo.Reservation.MarkCompletedDue(ctx, userUUID, now); err != nil {
		s.log.Warn("Failed to persist completed statuses",
			zap.Error(err),
			zap.String("user_id", userID),
		)
	}

	return response.NewPaginatedResponse(reservationResponses, req.Page, req.PerPage, total), nil
}

func (s *reservationService) seatNumbersFor(ctx context.Context, reservationID uuid.UUID) []string {
	seats, err := s.repo.ReservedSeat.FindByReservationID(ctx, reservationID)
	if err != nil {
		s.log.Warn("Failed to load reservation seats",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil
	}

	seatNumbers := make([]string, len(seats))
	for i, seat := range seats {
		seatNumbers[i] = seat.SeatNumber
	}
	return seatNumbers
}

// ==================== RECONCILER ====================

func (s *reservationService) RunReconciler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("Reservation reconciler started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Reservation reconciler stopped")
			return
		case <-ticker.C:
			count, err := s.repo.Reservation.MarkAllCompletedDue(ctx, time.Now())
			if err != nil {
				s.log.Error("Reconciler pass failed", zap.Error(err))
				continue
			}
			if count > 0 {
				s.log.Info("Reservations marked completed", zap.Int64("count", count))
			}
		}
	}
}

// ==================== HELPER METHODS ====================

func (s *reservationService) buildReservationResponse(ctx context.Context, reservation *entity.Reservation, showtime *entity.Showtime, seatNumbers []string) *response.ReservationResponse {
	var movieTitle string
	movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
	if err == nil && movie != nil {
		movieTitle = movie.Title
	}

	return &response.ReservationResponse{
		ID:          reservation.ID.String(),
		UserID:      reservation.UserID.String(),
		ShowtimeID:  reservation.ShowtimeID.String(),
		MovieTitle:  movieTitle,
		StartTime:   showtime.StartTime,
		SeatNumbers: seatNumbers,
		TotalPrice:  reservation.TotalPrice,
		Status:      reservation.Status,
		CreatedAt:   reservation.CreatedAt,
	}
}
