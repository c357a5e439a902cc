package middleware

import "github.com/gin-gonic/gin"

// ClientID resolves the identity a request's per-user state is keyed by.
// Authenticated requests use the token subject. Anonymous requests may carry
// a stable X-Client-ID issued by the frontend; otherwise the client IP is
// the best available key.
func ClientID(c *gin.Context) string {
	if v, ok := c.Get("claims"); ok {
		if cm, ok2 := v.(map[string]interface{}); ok2 {
			if sub, ok3 := cm["sub"].(string); ok3 && sub != "" {
				return sub
			}
		}
	}
	if id := c.GetHeader("X-Client-ID"); id != "" {
		return id
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return ip
}
