package middleware

import (
	"Atmosphere/internal/pkg/response"
	"Atmosphere/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckRole 要求当前用户持有指定角色之一
func CheckRole(codes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get(CtxRolesKey)
		roles, _ := v.([]string)

		for _, role := range roles {
			for _, code := range codes {
				if role == code {
					c.Next()
					return
				}
			}
		}

		response.Error(c, service.ErrPermissionDenied)
		c.Abort()
	}
}
