package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"seyone-academy-go/internal/service"
	"seyone-academy-go/pkg/log"
)

// AdminHandler serves the operator endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers returns every registered user without passwords.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		log.Error("ListUsers: failed to read users", err)
		internalError(c, "failed to list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": users})
}

// ListEnquiries returns archived contact enquiries, ?page= and ?size=.
func (h *AdminHandler) ListEnquiries(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid page", "data": nil})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid size", "data": nil})
		return
	}

	resp, err := h.adminService.ListEnquiries(c.Request.Context(), page, size)
	if errors.Is(err, service.ErrArchiveDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"code": http.StatusServiceUnavailable, "message": err.Error(), "data": nil})
		return
	}
	if err != nil {
		log.Error("ListEnquiries: failed to read archive", err)
		internalError(c, "failed to list enquiries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": resp})
}

// AdvisorSessions reports live chat widget counts per state.
func (h *AdminHandler) AdvisorSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": h.adminService.AdvisorStats()})
}
