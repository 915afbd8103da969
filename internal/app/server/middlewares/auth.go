package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"kcstudio/storefront/internal/app/pkg/authx"
	"kcstudio/storefront/internal/app/pkg/ginx"
)

const claimsKey = "admin.claims"

// TokenVerifier 令牌校验
type TokenVerifier interface {
	Authenticate(token string) (*authx.Claims, error)
}

// AdminAuth 校验 Authorization: Bearer <token>
func AdminAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			ginx.Unauthorized(c, "authorization token required")
			return
		}

		claims, err := verifier.Authenticate(strings.TrimSpace(token))
		if err != nil {
			ginx.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// AdminClaims 取出当前管理员令牌载荷
func AdminClaims(c *gin.Context) (*authx.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*authx.Claims)
	return claims, ok
}
