package middleware

import (
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/pkg/redis"
	"Atmosphere/internal/pkg/response"
	"Atmosphere/internal/pkg/security"
	"Atmosphere/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserIDKey = "user_id"
	CtxRolesKey  = "user_roles"
	CtxTokenKey  = "token"
)

// Auth 解析 Bearer Token，登出后的 token 在黑名单里直接拒绝
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, service.UnauthorizedError)
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := security.ValidateToken(token)
		if err != nil {
			response.Error(c, service.UnauthorizedError)
			c.Abort()
			return
		}

		signature, err := security.ExtractSignature(token)
		if err != nil {
			response.Error(c, service.UnauthorizedError)
			c.Abort()
			return
		}
		blacklisted, err := redis.GetValue(c.Request.Context(), consts.AuthBlacklistKey+signature)
		if err == nil && blacklisted != "" {
			response.Error(c, service.UnauthorizedError)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRolesKey, claims.Roles)
		c.Set(CtxTokenKey, token)
		c.Next()
	}
}

// CurrentUserID 取当前登录用户 ID，必须在 Auth 之后使用
func CurrentUserID(c *gin.Context) uint64 {
	id, _ := c.Get(CtxUserIDKey)
	userID, _ := id.(uint64)
	return userID
}
