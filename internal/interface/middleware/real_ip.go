package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP sets the client IP under "real_ip". Proxy headers are only honoured
// when trustProxy is set, otherwise any client could pick its own rate-limit key.
// Order: CF-Connecting-IP, left-most X-Forwarded-For, then the peer address.
func RealIP(trustProxy bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ""
		if trustProxy {
			ip = headerIP(c.GetHeader("CF-Connecting-IP"))
			if ip == "" {
				first, _, _ := strings.Cut(c.GetHeader("X-Forwarded-For"), ",")
				ip = headerIP(first)
			}
		}
		if ip == "" {
			ip = c.RemoteIP()
		}
		c.Set("real_ip", ip)
		c.Next()
	}
}

func headerIP(v string) string {
	if parsed := net.ParseIP(strings.TrimSpace(v)); parsed != nil {
		return parsed.String()
	}
	return ""
}
