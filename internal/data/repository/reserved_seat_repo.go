package repository

import (
	"context"
	"fmt"

	"movie-reservation/internal/data/entity"
	"movie-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservedSeatRepository interface {
	// CreateBatch inserts one row per seat in a single statement. The
	// unique index on (showtime_id, seat_number) turns a concurrent
	// duplicate insert into an error detectable via IsUniqueViolation.
	CreateBatch(ctx context.Context, seats []*entity.ReservedSeat) error
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservedSeat, error)
	DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error

	// Active holds are seat rows whose reservation still has status
	// 'upcoming'. All three queries join on that condition.
	FindActiveSeatNumbers(ctx context.Context, showtimeID uuid.UUID) ([]string, error)
	FindActiveConflicts(ctx context.Context, showtimeID uuid.UUID, seatNumbers []string) ([]string, error)
	CountActive(ctx context.Context, showtimeID uuid.UUID) (int, error)
}

type reservedSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservedSeatRepository(db database.PgxIface, log *zap.Logger) ReservedSeatRepository {
	return &reservedSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "reserved_seat")),
	}
}

func (r *reservedSeatRepository) CreateBatch(ctx context.Context, seats []*entity.ReservedSeat) error {
	if len(seats) == 0 {
		return nil
	}

	query := `INSERT INTO reserved_seats (id, showtime_id, reservation_id, seat_number, created_at) VALUES `
	args := make([]any, 0, len(seats)*5)
	for i, seat := range seats {
		if i > 0 {
			query += ", "
		}
		base := i * 5
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
		args = append(args, seat.ID, seat.ShowtimeID, seat.ReservationID, seat.SeatNumber, seat.CreatedAt)
	}

	_, err := queryer(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create reserved seats",
			zap.Error(err),
			zap.String("reservation_id", seats[0].ReservationID.String()),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create %d reserved seats: %w", len(seats), err)
	}

	return nil
}

func (r *reservedSeatRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservedSeat, error) {
	query := `
		SELECT id, showtime_id, reservation_id, seat_number, created_at
		FROM reserved_seats
		WHERE reservation_id = $1
		ORDER BY seat_number
	`

	rows, err := queryer(ctx, r.db).Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find seats by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find seats by reservation ID %s: %w", reservationID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.ReservedSeat
	for rows.Next() {
		var seat entity.ReservedSeat
		err := rows.Scan(
			&seat.ID,
			&seat.ShowtimeID,
			&seat.ReservationID,
			&seat.SeatNumber,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan reserved seat row", zap.Error(err))
			return nil, fmt.Errorf("scan reserved seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reserved seat rows: %w", err)
	}

	return seats, nil
}

func (r *reservedSeatRepository) DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error {
	query := `DELETE FROM reserved_seats WHERE reservation_id = $1`

	_, err := queryer(ctx, r.db).Exec(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to delete seats by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return fmt.Errorf("delete seats for reservation %s: %w", reservationID.String(), err)
	}

	return nil
}

func (r *reservedSeatRepository) FindActiveSeatNumbers(ctx context.Context, showtimeID uuid.UUID) ([]string, error) {
	query := `
		SELECT rs.seat_number
		FROM reserved_seats rs
		JOIN reservations r ON r.id = rs.reservation_id
		WHERE rs.showtime_id = $1
		  AND r.status = 'upcoming'
	`

	return r.querySeatNumbers(ctx, query, showtimeID)
}

func (r *reservedSeatRepository) FindActiveConflicts(ctx context.Context, showtimeID uuid.UUID, seatNumbers []string) ([]string, error) {
	query := `
		SELECT rs.seat_number
		FROM reserved_seats rs
		JOIN reservations r ON r.id = rs.reservation_id
		WHERE rs.showtime_id = $1
		  AND r.status = 'upcoming'
		  AND rs.seat_number = ANY($2)
		ORDER BY rs.seat_number
	`

	return r.querySeatNumbers(ctx, query, showtimeID, seatNumbers)
}

func (r *reservedSeatRepository) querySeatNumbers(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := queryer(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query seat numbers", zap.Error(err))
		return nil, fmt.Errorf("query seat numbers: %w", err)
	}
	defer rows.Close()

	var seatNumbers []string
	for rows.Next() {
		var seatNumber string
		if err := rows.Scan(&seatNumber); err != nil {
			r.log.Error("Failed to scan seat number", zap.Error(err))
			return nil, fmt.Errorf("scan seat number: %w", err)
		}
		seatNumbers = append(seatNumbers, seatNumber)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate seat number rows: %w", err)
	}

	return seatNumbers, nil
}

func (r *reservedSeatRepository) CountActive(ctx context.Context, showtimeID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reserved_seats rs
		JOIN reservations r ON r.id = rs.reservation_id
		WHERE rs.showtime_id = $1
		  AND r.status = 'upcoming'
	`

	var count int
	err := queryer(ctx, r.db).QueryRow(ctx, query, showtimeID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count active seats",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return 0, fmt.Errorf("count active seats for showtime %s: %w", showtimeID.String(), err)
	}

	return count, nil
}
