package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
	"github.com/oksasatya/gym-backend/pkg/credential"
	tpl "github.com/oksasatya/gym-backend/pkg/mailer/templates"
)

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	GenerateAccessToken(userID string) (string, time.Time, error)
}

type AuthService struct {
	Users  repository.UserRepository
	Hasher credential.Hasher
	Ledger *ResetLedger
	Tokens TokenIssuer
	Mailer *Mailer
	Logger *logrus.Logger

	Now              func() time.Time
	GeneratePassword func() (string, error)
}

func NewAuthService(users repository.UserRepository, hasher credential.Hasher, ledger *ResetLedger, tokens TokenIssuer, m *Mailer, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:            users,
		Hasher:           hasher,
		Ledger:           ledger,
		Tokens:           tokens,
		Mailer:           m,
		Logger:           logger,
		Now:              func() time.Time { return time.Now().UTC() },
		GeneratePassword: func() (string, error) { return credential.GeneratePassword(credential.PasswordLength) },
	}
}

// Profile is the registration payload. FitnessGoal is optional.
type Profile struct {
	Name        string
	Email       string
	Phone       string
	Height      float64
	Weight      float64
	Age         int
	Gender      string
	FitnessGoal string
}

type LoginResult struct {
	User        *entity.User
	AccessToken string
	ExpiresAt   time.Time
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register creates an account with a generated password and mails it to the member once.
func (s *AuthService) Register(ctx context.Context, p Profile) (*entity.User, error) {
	p.Email = normalizeEmail(p.Email)
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || p.Email == "" || strings.TrimSpace(p.Phone) == "" || strings.TrimSpace(p.Gender) == "" ||
		p.Height <= 0 || p.Weight <= 0 || p.Age <= 0 {
		return nil, invalid("name, email, phone, height, weight, age and gender are required")
	}

	_, err := s.Users.GetByEmail(ctx, p.Email)
	switch {
	case err == nil:
		return nil, ErrConflict
	case !errors.Is(err, repository.ErrNotFound):
		return nil, storageErr("lookup email", err)
	}

	plain, err := s.GeneratePassword()
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	if !credential.IsStrong(plain) {
		return nil, ErrWeakGeneratedSecret
	}
	hash, err := s.Hasher.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.Now()
	u := &entity.User{
		Email:       p.Email,
		Password:    hash,
		Name:        p.Name,
		Phone:       strings.TrimSpace(p.Phone),
		Height:      p.Height,
		Weight:      p.Weight,
		Age:         p.Age,
		Gender:      strings.TrimSpace(p.Gender),
		FitnessGoal: strings.TrimSpace(p.FitnessGoal),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, storageErr("create user", err)
	}

	s.Mailer.Send(ctx, tpl.Welcome, u.Name, u.Email, tpl.WithPassword(plain))
	return u, nil
}

// Login checks the credentials. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("email and password are required")
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageErr("lookup email", err)
	}
	if !s.Hasher.Verify(password, u.Password) {
		return nil, ErrInvalidCredentials
	}

	res := &LoginResult{User: u}
	if s.Tokens != nil {
		token, exp, err := s.Tokens.GenerateAccessToken(u.ID)
		if err != nil {
			return nil, fmt.Errorf("issue access token: %w", err)
		}
		res.AccessToken, res.ExpiresAt = token, exp
	}
	return res, nil
}

// ChangePassword replaces the password after verifying the old one. The write only lands
// if the stored hash is still the one that was verified.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if strings.TrimSpace(userID) == "" || oldPassword == "" || newPassword == "" {
		return invalid("userId, oldPassword and newPassword are required")
	}
	if !credential.IsStrong(newPassword) {
		return ErrWeakPassword
	}

	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return storageErr("get user", err)
	}
	if !s.Hasher.Verify(oldPassword, u.Password) {
		return ErrInvalidCredentials
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	ok, err := s.Users.UpdatePassword(ctx, u.ID, u.Password, hash, s.Now())
	if err != nil {
		return storageErr("update password", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}
	return nil
}

// ForgotPassword issues a reset token and mails it to the account owner.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return invalid("email is required")
	}
	token, expiry, err := s.Ledger.Issue(ctx, email)
	if err != nil {
		return err
	}
	s.Mailer.Send(ctx, tpl.PasswordReset, "", email,
		tpl.WithToken(token), tpl.WithExpiresIn(s.Ledger.TTL), tpl.WithExpiresAt(expiry))
	return nil
}

// ResetPassword sets a new password for the holder of a live (email, token) pair and
// clears the token. An expired token is left in place.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	if !credential.IsStrong(newPassword) {
		return ErrWeakPassword
	}
	email = normalizeEmail(email)
	if email == "" || token == "" {
		return invalid("email and token are required")
	}

	if _, err := s.Ledger.Validate(ctx, email, token); err != nil {
		return err
	}
	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Ledger.Consume(ctx, email, token, hash)
}
