package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/gym-backend/internal/interface/http"
	"github.com/oksasatya/gym-backend/internal/interface/middleware"
)

// EventModule wires event administration and slot booking.
type EventModule struct {
	Handler *handlers.EventHandler
	RDB     redis.Cmdable
}

func NewEventModule(h *handlers.EventHandler, rdb redis.Cmdable) *EventModule {
	return &EventModule{Handler: h, RDB: rdb}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	bookLimiter := middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	searchLimiter := middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByIP(), nil)

	ev := rg.Group("/events")
	{
		ev.POST("", m.Handler.Create)
		ev.GET("", m.Handler.List)
		ev.GET("/search", searchLimiter, m.Handler.Search)
		ev.DELETE("/:id", m.Handler.Delete)
		ev.GET("/:id/registrations", m.Handler.Registrations)
		ev.POST("/:id/book", bookLimiter, m.Handler.Book)
	}
}
