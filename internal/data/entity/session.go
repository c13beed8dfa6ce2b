package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a bearer login token. The token itself is a random UUID;
// logout sets RevokedAt instead of deleting the row so the login history
// stays auditable.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

// Valid reports whether the session can still authenticate requests at the
// given instant.
func (s *Session) Valid(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}
