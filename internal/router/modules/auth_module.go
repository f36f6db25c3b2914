package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/gym-backend/internal/interface/http"
	"github.com/oksasatya/gym-backend/internal/interface/middleware"
	"github.com/oksasatya/gym-backend/pkg/helpers"
)

// AuthModule serves the credential lifecycle.
// Public: POST /users, POST /login, PUT /change-password/:id, PUT /forgot-password, POST /reset-password
// Protected: POST /logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	RDB     redis.Cmdable
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, rdb redis.Cmdable) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	changeLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	forgotLimiter := middleware.RateLimit(m.RDB, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.PUT("/change-password/:id", changeLimiter, m.Handler.ChangePassword)
	rg.PUT("/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	rg.POST("/reset-password", resetLimiter, m.Handler.ResetPassword)

	rg.POST("/logout", middleware.JWTAuth(m.JWT), m.Handler.Logout)
}
