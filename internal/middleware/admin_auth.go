package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware 只允许 adminEmails 中的用户访问。
// 必须在 RequireLogin 之后使用。
func AdminAuthMiddleware(adminEmails []string) gin.HandlerFunc {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "user is not resolved", "data": nil})
			return
		}
		if _, ok := admins[strings.ToLower(user.Email)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": "admin access required", "data": nil})
			return
		}
		c.Next()
	}
}
