package middleware

import (
	"Portfolio/internal/pkg/consts"
	"Portfolio/internal/pkg/response"
	"Portfolio/internal/pkg/security"
	"errors"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Abort(c, response.Unauthorized, "Unauthorized")
			return
		}

		claims, err := tokens.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, security.ErrTokenInvalid) || errors.Is(err, security.ErrTokenRevoked) {
				response.Abort(c, response.Unauthorized, "Unauthorized")
				return
			}
			log.ErrorContext(c.Request.Context(), "validate token failed", "err", err)
			response.Abort(c, response.InternalServerError, "Internal server error")
			return
		}

		setIdentity(c, tokenString, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func setIdentity(c *gin.Context, token string, claims *security.UserClaims) {
	c.Set(consts.CtxUserID, claims.UserID)
	c.Set(consts.CtxEmail, claims.Email)
	c.Set(consts.CtxRoles, claims.Roles)
	c.Set(consts.CtxToken, token)
}
