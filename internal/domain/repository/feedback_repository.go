package repository

import (
	"context"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
)

type FeedbackRepository interface {
	Create(ctx context.Context, f *entity.Feedback) error
	List(ctx context.Context) ([]*entity.Feedback, error)
}

type ContactRepository interface {
	Create(ctx context.Context, m *entity.ContactMessage) error
	List(ctx context.Context) ([]*entity.ContactMessage, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
}
