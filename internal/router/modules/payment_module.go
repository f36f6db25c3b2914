package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/gym-backend/internal/interface/http"
	"github.com/oksasatya/gym-backend/internal/interface/middleware"
)

type PaymentModule struct {
	Handler *handlers.PaymentHandler
	RDB     redis.Cmdable
}

func NewPaymentModule(h *handlers.PaymentHandler, rdb redis.Cmdable) *PaymentModule {
	return &PaymentModule{Handler: h, RDB: rdb}
}

func (m *PaymentModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIP(), nil)

	// Both paths open the same checkout session.
	rg.POST("/create-payment-session", rl, m.Handler.CreateCheckout)
	rg.POST("/stripe-checkout", rl, m.Handler.CreateCheckout)
}
