package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Methods":     "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers":     "Content-Type, Authorization",
	"Access-Control-Allow-Credentials": "true",
	"Access-Control-Max-Age":           "86400",
}

// CORS grants cross-origin access to the origins in allowOrigins ("*" allows
// any) and answers preflight requests. The credentials header is always set
// for allowed origins because the session cookie must ride along.
func CORS(allowOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowValue := resolveOrigin(origin, allowOrigins); allowValue != "" {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", allowValue)
			for k, v := range corsHeaders {
				header.Set(k, v)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// resolveOrigin returns the Allow-Origin value to send, or "" when the origin
// is not in the allow list. With credentials in play the echoed origin is
// preferred over a bare wildcard.
func resolveOrigin(origin string, allowOrigins []string) string {
	for _, allowed := range allowOrigins {
		if allowed != "*" && !strings.EqualFold(allowed, origin) {
			continue
		}
		if origin != "" {
			return origin
		}
		return "*"
	}
	return ""
}
