package middleware

import (
	"net/http"
	"strings"

	"github.com/flowlog/flowlog-backend/internal/common"
	"github.com/gin-gonic/gin"
)

// Identity headers. The WeChat Cloud Run gateway injects X-WX-OPENID on
// every request; the dev header only applies outside production.
const (
	HeaderOpenID    = "X-WX-OPENID"
	HeaderDevOpenID = "X-Dev-Openid"
)

const openidContextKey = "openid"

// RequireOpenID extracts the trusted tenant identifier from the upstream
// identity header and stores it in the request context. Requests without
// one are rejected with the auth error code the client matches on.
func RequireOpenID(devOpenID string, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		openid := strings.TrimSpace(c.GetHeader(HeaderOpenID))

		if openid == "" && !production {
			// Local dev fallback (never honored in production)
			openid = strings.TrimSpace(c.GetHeader(HeaderDevOpenID))
			if openid == "" {
				openid = devOpenID
			}
			if openid == "" {
				openid = "dev-openid"
			}
		}

		if openid == "" {
			common.FailWithCode(c, http.StatusUnauthorized, common.CodeMissingOpenID, "Missing x-wx-openid header")
			c.Abort()
			return
		}

		c.Set(openidContextKey, openid)
		c.Next()
	}
}

// GetOpenID extracts the tenant identifier from context
func GetOpenID(c *gin.Context) string {
	v, exists := c.Get(openidContextKey)
	if !exists {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
