package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seyone-academy-go/internal/service"
)

// ContentHandler serves the static page content.
type ContentHandler struct {
	contentService service.ContentService
}

func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (h *ContentHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": h.contentService.Home()})
}

func (h *ContentHandler) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": h.contentService.About()})
}

func (h *ContentHandler) Navigation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": h.contentService.Navigation()})
}
