package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/internal/application"
	"github.com/oksasatya/gym-backend/pkg/response"
)

type PaymentUseCase interface {
	CreateCheckout(ctx context.Context, email string) (*application.CheckoutSession, error)
}

type PaymentHandler struct {
	Svc    PaymentUseCase
	Logger *logrus.Logger
}

func NewPaymentHandler(svc PaymentUseCase, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Logger: logger}
}

type checkoutRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateCheckout POST /api/create-payment-session and /api/stripe-checkout
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sess, err := h.Svc.CreateCheckout(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sessionId": sess.ID, "checkoutUrl": sess.URL}, "checkout session created", nil)
}
