package entity

import (
	"time"
)

// User is the aggregate root for gym members.
// Password always holds a bcrypt hash. ResetToken and TokenExpiry are set and cleared together.
type User struct {
	ID          string
	Email       string
	Password    string
	Name        string
	Phone       string
	Height      float64
	Weight      float64
	Age         int
	Gender      string
	FitnessGoal string
	AvatarURL   string
	ResetToken  *string
	TokenExpiry *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasResetToken reports whether a reset token is currently issued.
func (u *User) HasResetToken() bool {
	return u.ResetToken != nil && u.TokenExpiry != nil
}

// TokenExpired reports whether the issued reset token is past its expiry at now.
func (u *User) TokenExpired(now time.Time) bool {
	if u.TokenExpiry == nil {
		return true
	}
	return now.After(*u.TokenExpiry)
}
