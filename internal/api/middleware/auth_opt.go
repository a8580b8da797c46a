package middleware

import (
	"Portfolio/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入身份，失败或缺失按匿名处理
func AuthOptionalMiddleware(tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := tokens.ValidateToken(c.Request.Context(), tokenString)
		if err == nil {
			setIdentity(c, tokenString, claims)
		}
		c.Next()
	}
}
