package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/oksasatya/gym-backend/internal/application"
)

// sessionCreator is the slice of the Stripe API used here; *session.Client satisfies it.
type sessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeCheckout opens hosted Stripe Checkout sessions for one-off card payments.
type StripeCheckout struct {
	sessions   sessionCreator
	successURL string
	cancelURL  string
}

func NewStripeCheckout(secretKey, successURL, cancelURL string) *StripeCheckout {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeCheckout{sessions: sc.CheckoutSessions, successURL: successURL, cancelURL: cancelURL}
}

func (s *StripeCheckout) CreateCheckout(ctx context.Context, req application.CheckoutRequest) (*application.CheckoutSession, error) {
	if req.Email == "" || req.UnitAmount <= 0 {
		return nil, errors.New("stripe: email and amount are required")
	}
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(s.successURL),
		CancelURL:          stripe.String(s.cancelURL),
		CustomerEmail:      stripe.String(req.Email),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(strings.ToLower(req.Currency)),
				UnitAmount: stripe.Int64(req.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(req.ProductName),
				},
			},
		}},
	}
	params.Context = ctx

	sess, err := s.sessions.New(params)
	if err != nil {
		return nil, err
	}
	return &application.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

var _ application.CheckoutCreator = (*StripeCheckout)(nil)
