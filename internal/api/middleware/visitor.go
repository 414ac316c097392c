package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/newsdesk/internal/domain"
)

const visitorKey = "visitor"

// VisitorMiddleware identifies the visitor by client address. gin only
// honors X-Forwarded-For from the engine's trusted proxies.
func VisitorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(visitorKey, domain.NewVisitorID(c.ClientIP()))
		c.Next()
	}
}

// GetVisitor returns the visitor set by VisitorMiddleware, falling back
// to the client address when the middleware did not run
func GetVisitor(c *gin.Context) domain.VisitorID {
	if v, ok := c.Get(visitorKey); ok {
		if visitor, ok := v.(domain.VisitorID); ok {
			return visitor
		}
	}
	return domain.NewVisitorID(c.ClientIP())
}
