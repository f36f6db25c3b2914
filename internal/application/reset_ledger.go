package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
	"github.com/oksasatya/gym-backend/pkg/credential"
)

// DefaultResetTokenTTL is how long an issued reset token stays valid.
const DefaultResetTokenTTL = 120 * time.Second

// ResetLedger issues, validates and consumes time-boxed password reset tokens.
// Expired tokens are never swept; they are rejected when presented.
type ResetLedger struct {
	Users    repository.UserRepository
	TTL      time.Duration
	Now      func() time.Time
	NewToken func() (string, error)
}

func NewResetLedger(users repository.UserRepository, ttl time.Duration) *ResetLedger {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &ResetLedger{
		Users:    users,
		TTL:      ttl,
		Now:      func() time.Time { return time.Now().UTC() },
		NewToken: func() (string, error) { return credential.GenerateSecret(credential.TokenLength) },
	}
}

// Issue stores a fresh token and expiry on the account with email, replacing any earlier token.
func (l *ResetLedger) Issue(ctx context.Context, email string) (string, time.Time, error) {
	token, err := l.NewToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate reset token: %w", err)
	}
	expiry := l.Now().Add(l.TTL)

	ok, err := l.Users.SetResetToken(ctx, email, token, expiry)
	if err != nil {
		return "", time.Time{}, storageErr("set reset token", err)
	}
	if !ok {
		return "", time.Time{}, ErrNotFound
	}
	return token, expiry, nil
}

// Validate returns the account holding (email, token) if the token is still live.
func (l *ResetLedger) Validate(ctx context.Context, email, token string) (*entity.User, error) {
	u, err := l.Users.GetByResetToken(ctx, email, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, storageErr("get by reset token", err)
	}
	if u.TokenExpired(l.Now()) {
		return nil, ErrTokenExpired
	}
	return u, nil
}

// Consume applies newHash and clears the token in one conditional write. A token that was
// already used, replaced or expired in the meantime yields ErrInvalidToken.
func (l *ResetLedger) Consume(ctx context.Context, email, token, newHash string) error {
	ok, err := l.Users.ConsumeResetToken(ctx, email, token, newHash, l.Now())
	if err != nil {
		return storageErr("consume reset token", err)
	}
	if !ok {
		return ErrInvalidToken
	}
	return nil
}
