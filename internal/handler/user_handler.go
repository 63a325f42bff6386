// Package handler contains the HTTP controllers.
package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"seyone-academy-go/internal/middleware"
	"seyone-academy-go/internal/service"
	"seyone-academy-go/pkg/events"
	"seyone-academy-go/pkg/log"
	"seyone-academy-go/pkg/validate"
)

// UserHandler serves the auth gateway endpoints.
type UserHandler struct {
	userService service.UserService
	bus         *events.Bus
}

func NewUserHandler(userService service.UserService, bus *events.Bus) *UserHandler {
	return &UserHandler{userService: userService, bus: bus}
}

// Register handles signup.
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Register: invalid request payload, error: %v", err)
		badRequest(c, err)
		return
	}

	res, err := h.userService.Register(c.Request.Context(), middleware.ClientID(c), req)
	if err != nil {
		log.Errorf("Register: failed for '%s', error: %v", req.Email, err)
		internalError(c, "registration is temporarily unavailable")
		return
	}
	if !res.Success {
		c.JSON(http.StatusConflict, gin.H{"code": http.StatusConflict, "success": false, "message": res.Message, "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "success": true, "message": res.Message, "data": res.User})
}

// Login handles sign-in.
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Login: invalid request payload, error: %v", err)
		badRequest(c, err)
		return
	}

	res, err := h.userService.Login(c.Request.Context(), middleware.ClientID(c), req)
	if err != nil {
		log.Errorf("Login: failed for '%s', error: %v", req.Email, err)
		internalError(c, "login is temporarily unavailable")
		return
	}
	if !res.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "success": false, "message": res.Message, "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "success": true, "message": res.Message, "data": res.User})
}

// Logout clears the client's session marker. It always succeeds for the caller.
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.userService.Logout(c.Request.Context(), middleware.ClientID(c)); err != nil {
		log.Errorf("Logout: failed to clear session marker: %v", err)
		internalError(c, "logout failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "Logged out", "data": nil})
}

// Me returns the session marker, or null when logged out.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.CurrentUser(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		log.Errorf("Me: failed to read session marker: %v", err)
		internalError(c, "failed to read session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": user})
}

// Events streams this client's auth changes as Server-Sent Events. The
// first event is a snapshot of the current marker.
func (h *UserHandler) Events(c *gin.Context) {
	clientID := middleware.ClientID(c)
	ctx := c.Request.Context()

	ch := make(chan events.Event, 8)
	unsubscribe := h.bus.Subscribe(func(e events.Event) {
		if e.ClientID != clientID {
			return
		}
		select {
		case ch <- e:
		default:
			log.Warnw("dropping auth event for slow subscriber", "clientId", clientID, "kind", e.Kind)
		}
	})
	defer unsubscribe()

	user, err := h.userService.CurrentUser(ctx, clientID)
	if err != nil {
		log.Errorf("Events: failed to read session marker: %v", err)
		internalError(c, "failed to read session")
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("snapshot", gin.H{"clientId": clientID, "user": user})
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case e := <-ch:
			c.SSEvent(string(e.Kind), e)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    http.StatusBadRequest,
		"message": "invalid request payload",
		"data":    validate.Errors(err),
	})
}

func internalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": message, "data": nil})
}
