package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/internal/service"
)

// CourseHandler serves the courses page.
type CourseHandler struct {
	catalogService service.CatalogService
}

func NewCourseHandler(catalogService service.CatalogService) *CourseHandler {
	return &CourseHandler{catalogService: catalogService}
}

// List filters the catalogue by ?level= and ?q=.
func (h *CourseHandler) List(c *gin.Context) {
	level, ok := model.ParseCourseLevel(c.Query("level"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "unknown course level", "data": nil})
		return
	}
	result := h.catalogService.Search(c.Request.Context(), model.CourseQuery{Level: level, Search: c.Query("q")})
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": result})
}

func (h *CourseHandler) Levels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": h.catalogService.Levels()})
}

// Get looks a course up by id or slug.
func (h *CourseHandler) Get(c *gin.Context) {
	course, ok := h.catalogService.Find(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "course not found", "data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": course})
}
