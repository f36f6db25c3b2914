package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/gym-backend/internal/interface/http"
	"github.com/oksasatya/gym-backend/internal/interface/middleware"
)

type FeedbackModule struct {
	Handler *handlers.FeedbackHandler
	RDB     redis.Cmdable
}

func NewFeedbackModule(h *handlers.FeedbackHandler, rdb redis.Cmdable) *FeedbackModule {
	return &FeedbackModule{Handler: h, RDB: rdb}
}

func (m *FeedbackModule) Register(rg *gin.RouterGroup) {
	submitLimiter := middleware.RateLimit(m.RDB, 20, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/feedback", submitLimiter, m.Handler.AddFeedback)
	rg.GET("/feedback", m.Handler.ListFeedback)
	rg.POST("/contact", submitLimiter, m.Handler.SubmitContact)
	rg.GET("/contact", m.Handler.ListContacts)
}
