package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/gym-backend/internal/interface/middleware"
	"github.com/oksasatya/gym-backend/pkg/response"
)

// DebugModule exposes expvar counters (booking outcomes, memstats) to private networks only.
type DebugModule struct {
	RDB redis.Cmdable
}

func NewDebugModule(rdb redis.Cmdable) *DebugModule { return &DebugModule{RDB: rdb} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars", privateOnly(), rl, gin.WrapH(expvar.Handler()))
}

func privateOnly() gin.HandlerFunc {
	allow := middleware.AllowPrivateIP()
	return func(c *gin.Context) {
		if !allow(c) {
			response.Abort(c, http.StatusForbidden, "forbidden", response.ErrorBody{Code: "forbidden"})
			return
		}
		c.Next()
	}
}
