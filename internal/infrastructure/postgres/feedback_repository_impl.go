package postgres

import (
	"context"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
)

type FeedbackRepository struct {
	db DB
}

func NewFeedbackRepository(db DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *entity.Feedback) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO feedback (rating, comment, submitted_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, f.Rating, f.Comment, f.SubmittedAt)
	return mapErr(row.Scan(&f.ID))
}

func (r *FeedbackRepository) List(ctx context.Context) ([]*entity.Feedback, error) {
	rows, err := r.db.Query(ctx, `SELECT id, rating, comment, submitted_at FROM feedback ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []*entity.Feedback{}
	for rows.Next() {
		f := &entity.Feedback{}
		if err := rows.Scan(&f.ID, &f.Rating, &f.Comment, &f.SubmittedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, f)
	}
	return out, mapErr(rows.Err())
}

type ContactRepository struct {
	db DB
}

func NewContactRepository(db DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, m *entity.ContactMessage) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO contact_messages (name, email, message, submitted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, m.Name, m.Email, m.Message, m.SubmittedAt)
	return mapErr(row.Scan(&m.ID))
}

func (r *ContactRepository) List(ctx context.Context) ([]*entity.ContactMessage, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, message, submitted_at FROM contact_messages ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []*entity.ContactMessage{}
	for rows.Next() {
		m := &entity.ContactMessage{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.SubmittedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, m)
	}
	return out, mapErr(rows.Err())
}

type PaymentRepository struct {
	db DB
}

func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO payments (user_email, amount, currency, status, payment_method, session_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.UserEmail, p.Amount, p.Currency, p.Status, p.PaymentMethod, p.SessionID, p.CreatedAt)
	return mapErr(row.Scan(&p.ID))
}

var (
	_ repository.FeedbackRepository = (*FeedbackRepository)(nil)
	_ repository.ContactRepository  = (*ContactRepository)(nil)
	_ repository.PaymentRepository  = (*PaymentRepository)(nil)
)
