package application

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrConflict            = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token or email")
	ErrWeakPassword        = errors.New("password is too weak")
	ErrWeakGeneratedSecret = errors.New("generated password is weak")
	ErrTokenExpired        = errors.New("token expired")
	ErrSlotsExhausted      = errors.New("no slots available")
	ErrStorage             = errors.New("storage failure")
	ErrPartialFailure      = errors.New("slot booked but registration not recorded")
	ErrUnavailable         = errors.New("feature not configured")
	ErrGateway             = errors.New("payment gateway error")
)

// storageErr tags a store failure so callers can branch on ErrStorage while keeping the cause.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, msg)
}
