package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for user-related database operations.
// Every method that mutates credentials is a single conditional write; the bool result
// reports whether the predicate matched.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByPassword(ctx context.Context, password string) ([]*entity.User, error)

	// UpdatePassword swaps the stored password only while it still equals currentHash.
	UpdatePassword(ctx context.Context, id, currentHash, newHash string, at time.Time) (bool, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string, at time.Time) error

	SetResetToken(ctx context.Context, email, token string, expiry time.Time) (bool, error)
	GetByResetToken(ctx context.Context, email, token string) (*entity.User, error)
	// ConsumeResetToken sets newHash and clears the token only while (email, token) match and
	// the token has not expired at at.
	ConsumeResetToken(ctx context.Context, email, token, newHash string, at time.Time) (bool, error)
}
