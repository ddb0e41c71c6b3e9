package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"enkai-reserve/internal/core/auth"
	"enkai-reserve/internal/domain"
	resp "enkai-reserve/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

// AuthJWT parses the bearer token and stores the uid plus the already
// validated role on the context. requireRole narrows the group to one role.
func AuthJWT(j *auth.JWTer, requireRole domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeUnauthorized),
				resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		uid, role, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeUnauthorized),
				resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && role != requireRole {
			c.AbortWithStatusJSON(resp.HTTPStatus(resp.CodeForbidden),
				resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(KeyUserID, uid)
		c.Set(KeyRole, role.String())
		c.Next()
	}
}

// RoleFrom returns the validated role stored by AuthJWT.
func RoleFrom(c *gin.Context) domain.Role {
	r, _ := domain.ParseRole(c.GetString(KeyRole))
	return r
}
