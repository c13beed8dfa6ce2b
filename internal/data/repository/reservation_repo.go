package repository

import (
	"context"
	"fmt"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error

	// FindByIDForUpdate locks the reservation row inside the surrounding
	// transaction so concurrent cancellations of the same reservation
	// serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)

	// MarkCompletedDue persists the completed status for upcoming
	// reservations whose showtime started before the cutoff. Returns the
	// number of rows transitioned.
	MarkCompletedDue(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int64, error)

	// MarkAllCompletedDue is the reconciler variant covering all users.
	MarkAllCompletedDue(ctx context.Context, cutoff time.Time) (int64, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, user_id, showtime_id, status, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := queryer(ctx, r.db).Exec(ctx, query,
		reservation.ID,
		reservation.UserID,
		reservation.ShowtimeID,
		reservation.Status,
		reservation.TotalPrice,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("user_id", reservation.UserID.String()),
			zap.String("showtime_id", reservation.ShowtimeID.String()),
		)
		return fmt.Errorf("create reservation for showtime %s: %w", reservation.ShowtimeID.String(), err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT id, user_id, showtime_id, status, total_price, created_at, updated_at
		FROM reservations
		WHERE id = $1
	`

	return r.scanOne(ctx, query, id)
}

func (r *reservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT id, user_id, showtime_id, status, total_price, created_at, updated_at
		FROM reservations
		WHERE id = $1
		FOR UPDATE
	`

	return r.scanOne(ctx, query, id)
}

func (r *reservationRepository) scanOne(ctx context.Context, query string, id uuid.UUID) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := queryer(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.ShowtimeID,
		&reservation.Status,
		&reservation.TotalPrice,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return &reservation, nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT id, user_id, showtime_id, status, total_price, created_at, updated_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := queryer(ctx, r.db).Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		var reservation entity.Reservation
		err := rows.Scan(
			&reservation.ID,
			&reservation.UserID,
			&reservation.ShowtimeID,
			&reservation.Status,
			&reservation.TotalPrice,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}

	return reservations, nil
}

func (r *reservationRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`

	var count int64
	err := queryer(ctx, r.db).QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reservations by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := queryer(ctx, r.db).Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	return nil
}

func (r *reservationRepository) MarkCompletedDue(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int64, error) {
	query := `
		UPDATE reservations r
		SET status = 'completed', updated_at = NOW()
		FROM showtimes s
		WHERE r.showtime_id = s.id
		  AND r.user_id = $1
		  AND r.status = 'upcoming'
		  AND s.start_time < $2
	`

	result, err := queryer(ctx, r.db).Exec(ctx, query, userID, cutoff)
	if err != nil {
		r.log.Error("Failed to mark user reservations completed",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("mark completed for user %s: %w", userID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *reservationRepository) MarkAllCompletedDue(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE reservations r
		SET status = 'completed', updated_at = NOW()
		FROM showtimes s
		WHERE r.showtime_id = s.id
		  AND r.status = 'upcoming'
		  AND s.start_time < $1
	`

	result, err := queryer(ctx, r.db).Exec(ctx, query, cutoff)
	if err != nil {
		r.log.Error("Failed to mark due reservations completed", zap.Error(err))
		return 0, fmt.Errorf("mark due reservations completed: %w", err)
	}

	return result.RowsAffected(), nil
}
