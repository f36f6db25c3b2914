package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the client IP under "real_ip".
// Order: CF-Connecting-IP, left-most X-Forwarded-For, X-Real-IP, then c.ClientIP().
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		first, _, _ := strings.Cut(c.GetHeader("X-Forwarded-For"), ",")
		for _, candidate := range []string{c.GetHeader("CF-Connecting-IP"), first, c.GetHeader("X-Real-IP")} {
			if ip := net.ParseIP(strings.TrimSpace(candidate)); ip != nil {
				c.Set("real_ip", ip.String())
				c.Next()
				return
			}
		}
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}
