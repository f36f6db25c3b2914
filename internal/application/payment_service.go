package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/internal/domain/entity"
	"github.com/oksasatya/gym-backend/internal/domain/repository"
)

// Premium plan sold through checkout.
const (
	PlanName     = "Premium Annual Plan"
	PlanCurrency = "INR"
	PlanAmount   = 4700 // rupees
	PlanMethod   = "card"
)

type CheckoutRequest struct {
	Email       string
	ProductName string
	Currency    string
	// UnitAmount is in the currency's minor unit (paise).
	UnitAmount int64
}

type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutCreator opens a hosted payment page with the gateway.
type CheckoutCreator interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

type PaymentService struct {
	Checkout CheckoutCreator
	Payments repository.PaymentRepository
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewPaymentService(checkout CheckoutCreator, payments repository.PaymentRepository, logger *logrus.Logger) *PaymentService {
	return &PaymentService{Checkout: checkout, Payments: payments, Logger: logger, Now: func() time.Time { return time.Now().UTC() }}
}

// CreateCheckout opens a checkout session for the plan and records it as pending.
// A failure to record the payment does not fail the checkout.
func (s *PaymentService) CreateCheckout(ctx context.Context, email string) (*CheckoutSession, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, invalid("email is required for payment")
	}
	if s.Checkout == nil {
		return nil, ErrUnavailable
	}

	sess, err := s.Checkout.CreateCheckout(ctx, CheckoutRequest{
		Email:       email,
		ProductName: PlanName,
		Currency:    PlanCurrency,
		UnitAmount:  PlanAmount * 100,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGateway, err)
	}

	p := &entity.Payment{
		UserEmail:     email,
		Amount:        PlanAmount,
		Currency:      PlanCurrency,
		Status:        entity.PaymentStatusPending,
		PaymentMethod: PlanMethod,
		SessionID:     sess.ID,
		CreatedAt:     s.Now(),
	}
	if err := s.Payments.Create(ctx, p); err != nil {
		logEntry(s.Logger).WithError(err).WithFields(logrus.Fields{
			"session_id": sess.ID,
			"user_email": email,
		}).Error("payment record insert failed")
	}
	return sess, nil
}
