package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/gym-backend/internal/interface/http"
	"github.com/oksasatya/gym-backend/internal/interface/middleware"
	"github.com/oksasatya/gym-backend/pkg/helpers"
)

// ProfileModule wires member profile routes.
// Public: GET /profile/:id
// Protected: GET /me, POST /me/avatar
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
	RDB     redis.Cmdable
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager, rdb redis.Cmdable) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	rg.GET("/profile/:id", m.Handler.GetProfile)

	auth := rg.Group("/me")
	auth.Use(middleware.JWTAuth(m.JWT))
	auth.Use(middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.Me)
		auth.POST("/avatar", middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByUserID(), nil), m.Handler.UploadAvatar)
	}
}
