package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/internal/service"
	"seyone-academy-go/pkg/log"
)

// ContactHandler serves the contact form.
type ContactHandler struct {
	contactService service.ContactService
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit relays the form once. A failed relay is reported with the
// user-facing retry text; resubmitting is the retry.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req model.Enquiry
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Submit: invalid contact form, error: %v", err)
		badRequest(c, err)
		return
	}

	msg, err := h.contactService.Submit(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "success": true, "message": msg, "data": nil})
	case errors.Is(err, service.ErrInvalidEnquiry):
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "success": false, "message": err.Error(), "data": nil})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"code": http.StatusBadGateway, "success": false, "message": service.MsgEnquiryNotSent, "data": nil})
	}
}

func (h *ContactHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": h.contactService.Info()})
}
