package entity

import "time"

const PaymentStatusPending = "pending"

// Payment records a checkout session handed to the payment gateway.
// Amount is in whole currency units (4700 for ₹4700).
type Payment struct {
	ID            string
	UserEmail     string
	Amount        int64
	Currency      string
	Status        string
	PaymentMethod string
	SessionID     string
	CreatedAt     time.Time
}
