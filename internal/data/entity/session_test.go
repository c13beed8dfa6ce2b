package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionValid(t *testing.T) {
	now := time.Now()
	revoked := now.Add(-time.Minute)

	tests := []struct {
		name    string
		session Session
		want    bool
	}{
		{
			name: "live session",
			session: Session{
				BaseSimple: NewBaseSimple(now),
				ExpiresAt:  now.Add(time.Hour),
			},
			want: true,
		},
		{
			name: "expired",
			session: Session{
				BaseSimple: NewBaseSimple(now.Add(-2 * time.Hour)),
				ExpiresAt:  now.Add(-time.Hour),
			},
			want: false,
		},
		{
			name: "revoked",
			session: Session{
				BaseSimple: NewBaseSimple(now),
				ExpiresAt:  now.Add(time.Hour),
				RevokedAt:  &revoked,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.Valid(now))
		})
	}
}

func TestNewBaseAssignsIdentity(t *testing.T) {
	now := time.Now()
	base := NewBase(now)

	assert.NotEqual(t, uuid.Nil, base.ID)
	assert.Equal(t, now, base.CreatedAt)
	assert.Equal(t, now, base.UpdatedAt)
	assert.NotEqual(t, base.ID, NewBase(now).ID)
}
