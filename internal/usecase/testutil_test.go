package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore is an in-memory stand-in for the Postgres schema. Entities are
// stored by value so transaction snapshots are cheap copies.
type memStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]entity.User
	sessions     map[uuid.UUID]entity.Session
	movies       map[uuid.UUID]entity.Movie
	showtimes    map[uuid.UUID]entity.Showtime
	reservations map[uuid.UUID]entity.Reservation
	seats        map[uuid.UUID]entity.ReservedSeat

	// txMu serializes whole transactions the way the showtime row lock
	// does in Postgres.
	txMu sync.Mutex
}

func newTestRepo() (*repository.Repository, *memStore) {
	store := &memStore{
		users:        make(map[uuid.UUID]entity.User),
		sessions:     make(map[uuid.UUID]entity.Session),
		movies:       make(map[uuid.UUID]entity.Movie),
		showtimes:    make(map[uuid.UUID]entity.Showtime),
		reservations: make(map[uuid.UUID]entity.Reservation),
		seats:        make(map[uuid.UUID]entity.ReservedSeat),
	}
	return &repository.Repository{
		Tx:           &memTxManager{store: store},
		User:         &memUserRepo{store: store},
		Session:      &memSessionRepo{store: store},
		Movie:        &memMovieRepo{store: store},
		Showtime:     &memShowtimeRepo{store: store},
		Reservation:  &memReservationRepo{store: store},
		ReservedSeat: &memReservedSeatRepo{store: store},
	}, store
}

func (s *memStore) addMovie(title string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.movies[id] = entity.Movie{
		Base:  entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Title: title,
		Genre: "drama",
	}
	return id
}

func (s *memStore) addShowtime(movieID uuid.UUID, start time.Time, capacity int, price float64) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.showtimes[id] = entity.Showtime{
		Base:      entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		MovieID:   movieID,
		StartTime: start,
		Capacity:  capacity,
		Price:     price,
	}
	return id
}

func (s *memStore) reservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

func (s *memStore) seatCount(showtimeID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, seat := range s.seats {
		if seat.ShowtimeID == showtimeID {
			n++
		}
	}
	return n
}

func (s *memStore) reservationStatus(id uuid.UUID) entity.ReservationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations[id].Status
}

// ==================== transaction manager ====================

type memTxManager struct {
	store *memStore
}

// WithTx serializes transactions and rolls the mutable tables back when fn
// fails, mirroring the atomicity the real manager gets from Postgres.
func (m *memTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	m.store.mu.Lock()
	reservationSnap := make(map[uuid.UUID]entity.Reservation, len(m.store.reservations))
	for k, v := range m.store.reservations {
		reservationSnap[k] = v
	}
	seatSnap := make(map[uuid.UUID]entity.ReservedSeat, len(m.store.seats))
	for k, v := range m.store.seats {
		seatSnap[k] = v
	}
	m.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.store.mu.Lock()
		m.store.reservations = reservationSnap
		m.store.seats = seatSnap
		m.store.mu.Unlock()
		return err
	}
	return nil
}

// ==================== movie repository ====================

type memMovieRepo struct {
	store *memStore
}

func (r *memMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movies[movie.ID] = *movie
	return nil
}

func (r *memMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if movie, ok := r.store.movies[id]; ok {
		m := movie
		return &m, nil
	}
	return nil, nil
}

func (r *memMovieRepo) FindAll(ctx context.Context, genre string, limit, offset int) ([]*entity.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Movie
	for _, movie := range r.store.movies {
		if genre != "" && movie.Genre != genre {
			continue
		}
		m := movie
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memMovieRepo) Count(ctx context.Context, genre string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, movie := range r.store.movies {
		if genre == "" || movie.Genre == genre {
			n++
		}
	}
	return n, nil
}

func (r *memMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movies[movie.ID] = *movie
	return nil
}

func (r *memMovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.movies, id)
	return nil
}

// ==================== showtime repository ====================

type memShowtimeRepo struct {
	store *memStore
}

func (r *memShowtimeRepo) Create(ctx context.Context, showtime *entity.Showtime) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.showtimes[showtime.ID] = *showtime
	return nil
}

func (r *memShowtimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if showtime, ok := r.store.showtimes[id]; ok {
		s := showtime
		return &s, nil
	}
	return nil, nil
}

func (r *memShowtimeRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	return r.FindByID(ctx, id)
}

func (r *memShowtimeRepo) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Showtime, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Showtime
	for _, showtime := range r.store.showtimes {
		if showtime.MovieID == movieID {
			s := showtime
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memShowtimeRepo) Update(ctx context.Context, showtime *entity.Showtime) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.showtimes[showtime.ID] = *showtime
	return nil
}

func (r *memShowtimeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.showtimes, id)
	return nil
}

// ==================== reservation repository ====================

type memReservationRepo struct {
	store *memStore
}

func (r *memReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.reservations[reservation.ID] = *reservation
	return nil
}

func (r *memReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if reservation, ok := r.store.reservations[id]; ok {
		res := reservation
		return &res, nil
	}
	return nil, nil
}

func (r *memReservationRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	return r.FindByID(ctx, id)
}

func (r *memReservationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Reservation
	for _, reservation := range r.store.reservations {
		if reservation.UserID == userID {
			res := reservation
			out = append(out, &res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memReservationRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, reservation := range r.store.reservations {
		if reservation.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	reservation, ok := r.store.reservations[id]
	if !ok {
		return fmt.Errorf("reservation %s not found", id)
	}
	reservation.Status = status
	reservation.UpdatedAt = time.Now()
	r.store.reservations[id] = reservation
	return nil
}

func (r *memReservationRepo) MarkCompletedDue(ctx context.Context, userID uuid.UUID, cutoff time.Time) (int64, error) {
	return r.markCompleted(func(res entity.Reservation) bool { return res.UserID == userID }, cutoff)
}

func (r *memReservationRepo) MarkAllCompletedDue(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.markCompleted(func(entity.Reservation) bool { return true }, cutoff)
}

func (r *memReservationRepo) markCompleted(match func(entity.Reservation) bool, cutoff time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for id, reservation := range r.store.reservations {
		if reservation.Status != entity.ReservationStatusUpcoming || !match(reservation) {
			continue
		}
		showtime, ok := r.store.showtimes[reservation.ShowtimeID]
		if !ok || !showtime.StartTime.Before(cutoff) {
			continue
		}
		reservation.Status = entity.ReservationStatusCompleted
		reservation.UpdatedAt = time.Now()
		r.store.reservations[id] = reservation
		n++
	}
	return n, nil
}

// ==================== reserved seat repository ====================

type memReservedSeatRepo struct {
	store *memStore
}

func (r *memReservedSeatRepo) CreateBatch(ctx context.Context, seats []*entity.ReservedSeat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, seat := range seats {
		for _, existing := range r.store.seats {
			if existing.ShowtimeID == seat.ShowtimeID && existing.SeatNumber == seat.SeatNumber {
				return fmt.Errorf("insert reserved seats: %w", &pgconn.PgError{Code: "23505"})
			}
		}
	}
	for _, seat := range seats {
		r.store.seats[seat.ID] = *seat
	}
	return nil
}

func (r *memReservedSeatRepo) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservedSeat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.ReservedSeat
	for _, seat := range r.store.seats {
		if seat.ReservationID == reservationID {
			s := seat
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out, nil
}

func (r *memReservedSeatRepo) DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, seat := range r.store.seats {
		if seat.ReservationID == reservationID {
			delete(r.store.seats, id)
		}
	}
	return nil
}

func (r *memReservedSeatRepo) FindActiveSeatNumbers(ctx context.Context, showtimeID uuid.UUID) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []string
	for _, seat := range r.store.seats {
		if seat.ShowtimeID == showtimeID && r.reservationActive(seat.ReservationID) {
			out = append(out, seat.SeatNumber)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *memReservedSeatRepo) FindActiveConflicts(ctx context.Context, showtimeID uuid.UUID, seatNumbers []string) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	requested := make(map[string]struct{}, len(seatNumbers))
	for _, seatNumber := range seatNumbers {
		requested[seatNumber] = struct{}{}
	}
	var out []string
	for _, seat := range r.store.seats {
		if seat.ShowtimeID != showtimeID || !r.reservationActive(seat.ReservationID) {
			continue
		}
		if _, ok := requested[seat.SeatNumber]; ok {
			out = append(out, seat.SeatNumber)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *memReservedSeatRepo) CountActive(ctx context.Context, showtimeID uuid.UUID) (int, error) {
	seatNumbers, err := r.FindActiveSeatNumbers(ctx, showtimeID)
	return len(seatNumbers), err
}

// caller must hold store.mu
func (r *memReservedSeatRepo) reservationActive(reservationID uuid.UUID) bool {
	reservation, ok := r.store.reservations[reservationID]
	return ok && reservation.Status == entity.ReservationStatusUpcoming
}

// ==================== user repo ====================

type memUserRepo struct {
	store *memStore
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
		}
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

// ==================== session repo ====================

type memSessionRepo struct {
	store *memStore
}

func (r *memSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sessions[session.ID] = *session
	return nil
}

func (r *memSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for _, session := range r.store.sessions {
		if session.Token.String() == token && session.Valid(now) {
			found := session
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memSessionRepo) Revoke(ctx context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for id, session := range r.store.sessions {
		if session.Token.String() == token && session.RevokedAt == nil {
			session.RevokedAt = &now
			r.store.sessions[id] = session
		}
	}
	return nil
}

func (r *memSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for id, session := range r.store.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
			r.store.sessions[id] = session
		}
	}
	return nil
}
