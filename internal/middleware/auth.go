// Package middleware provides the gin middleware of the HTTP API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/internal/service"
	"seyone-academy-go/pkg/log"
	"seyone-academy-go/pkg/token"
)

const (
	// ClientCookieName carries the signed client token.
	ClientCookieName = "seyone_client"
	// ClientTokenHeader carries the same token for clients without cookies.
	ClientTokenHeader = "X-Client-Token"

	clientIDKey = "clientId"
	userKey     = "user"
)

// ClientIdentity 从签名令牌中解析浏览器的 clientId；
// 令牌缺失或无效时签发新令牌
func ClientIdentity(jwtManager *token.JWTManager, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader(ClientTokenHeader)
		if tokenString == "" {
			tokenString, _ = c.Cookie(ClientCookieName)
		}

		if tokenString != "" {
			claims, err := jwtManager.VerifyToken(tokenString)
			if err == nil {
				c.Set(clientIDKey, claims.ClientID)
				c.Next()
				return
			}
			log.Warnf("ClientIdentity: rejecting client token: %v", err)
		}

		clientID := uuid.NewString()
		newToken, err := jwtManager.GenerateToken(clientID)
		if err != nil {
			log.Error("ClientIdentity: failed to sign client token", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to identify client", "data": nil})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(ClientCookieName, newToken, int(jwtManager.Lifetime().Seconds()), "/", "", secureCookie, true)
		c.Header(ClientTokenHeader, newToken)
		c.Set(clientIDKey, clientID)
		c.Next()
	}
}

// ClientID returns the id set by ClientIdentity.
func ClientID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}

// RequireLogin 要求当前客户端已登录，否则返回 401。
// 必须在 ClientIdentity 之后使用。
func RequireLogin(userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := userService.CurrentUser(c.Request.Context(), ClientID(c))
		if err != nil {
			log.Errorf("RequireLogin: failed to read session marker: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to read session", "data": nil})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "login required", "data": nil})
			return
		}
		c.Set(userKey, *user)
		c.Next()
	}
}

// CurrentUser returns the marker set by RequireLogin.
func CurrentUser(c *gin.Context) (model.SessionMarker, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return model.SessionMarker{}, false
	}
	user, ok := v.(model.SessionMarker)
	return user, ok
}
