package repository

import (
	"context"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
)

type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	List(ctx context.Context) ([]*entity.Event, error)
	Delete(ctx context.Context, id string) error

	// DecrementSlot takes one seat in a single statement guarded by remaining capacity > 0.
	// It returns false when no seat was taken.
	DecrementSlot(ctx context.Context, id string) (bool, error)
}

type RegistrationRepository interface {
	Append(ctx context.Context, r *entity.Registration) error
	ListByEvent(ctx context.Context, eventID string) ([]*entity.Registration, error)
}
