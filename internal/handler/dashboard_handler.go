package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"seyone-academy-go/internal/middleware"
	"seyone-academy-go/internal/service"
	"seyone-academy-go/pkg/log"
)

// DashboardHandler serves the student dashboard. Every route runs behind RequireLogin.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

type sendInstructorMessageRequest struct {
	InstructorIndex *int   `json:"instructorIndex" binding:"required"`
	Text            string `json:"text" binding:"notblank,max=2000"`
}

type presetAvatarRequest struct {
	URL string `json:"url" binding:"required,url"`
}

func (h *DashboardHandler) View(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	view := h.dashboardService.View(middleware.ClientID(c), user)
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": view})
}

func (h *DashboardHandler) MarkRead(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	if err := h.dashboardService.MarkRead(middleware.ClientID(c), user, c.Param("id")); err != nil {
		dashboardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}

func (h *DashboardHandler) MarkAllRead(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	h.dashboardService.MarkAllRead(middleware.ClientID(c), user)
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}

// SendMessage accepts a message to an instructor. The reply shows up later
// as a notification.
func (h *DashboardHandler) SendMessage(c *gin.Context) {
	var req sendInstructorMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, _ := middleware.CurrentUser(c)
	if err := h.dashboardService.SendMessage(middleware.ClientID(c), user, *req.InstructorIndex, req.Text); err != nil {
		dashboardError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"code": http.StatusAccepted, "message": "message sent", "data": nil})
}

// Ping makes an instructor reply immediately.
func (h *DashboardHandler) Ping(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "instructor index must be a number", "data": nil})
		return
	}
	user, _ := middleware.CurrentUser(c)
	n, err := h.dashboardService.TriggerIncomingMessage(middleware.ClientID(c), user, index)
	if err != nil {
		dashboardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": n})
}

// Calendar returns a month grid. ?year= and ?month= default to October 2023;
// ?offset= shifts by that many months.
func (h *DashboardHandler) Calendar(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(service.DefaultCalendarYear)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid year", "data": nil})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(service.DefaultCalendarMonth))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "month must be 1-12", "data": nil})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid offset", "data": nil})
		return
	}

	y, m := service.ShiftMonth(year, time.Month(month), offset)
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": h.dashboardService.Calendar(y, m)})
}

func (h *DashboardHandler) Certificate(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	cert, err := h.dashboardService.Certificate(c.Request.Context(), middleware.ClientID(c), user, c.Param("courseId"))
	if err != nil {
		dashboardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": cert})
}

// SetPresetAvatar picks one of the preset avatars.
func (h *DashboardHandler) SetPresetAvatar(c *gin.Context) {
	var req presetAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, _ := middleware.CurrentUser(c)
	if err := h.dashboardService.SetPresetAvatar(middleware.ClientID(c), user, req.URL); err != nil {
		dashboardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{"avatarUrl": req.URL}})
}

// UploadAvatar takes a multipart "avatar" image. The type is sniffed from
// the content, not taken from the client.
func (h *DashboardHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "avatar file is required", "data": nil})
		return
	}
	if fileHeader.Size > service.MaxAvatarSize {
		dashboardError(c, service.ErrAvatarTooLarge)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Error("UploadAvatar: failed to open upload", err)
		internalError(c, "failed to read upload")
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		log.Error("UploadAvatar: failed to read upload", err)
		internalError(c, "failed to read upload")
		return
	}
	head = head[:n]
	contentType := http.DetectContentType(head)

	user, _ := middleware.CurrentUser(c)
	url, err := h.dashboardService.UploadAvatar(c.Request.Context(), middleware.ClientID(c), user, contentType,
		io.MultiReader(bytes.NewReader(head), file))
	if err != nil {
		dashboardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{"avatarUrl": url}})
}

func dashboardError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrUnknownAvatarPreset),
		errors.Is(err, service.ErrUnsupportedAvatarType):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAvatarTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrInstructorNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrCourseNotEnrolled):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrSendInProgress),
		errors.Is(err, service.ErrCourseNotCompleted):
		status = http.StatusConflict
	default:
		log.Errorf("dashboard request failed: %v", err)
	}
	c.JSON(status, gin.H{"code": status, "message": err.Error(), "data": nil})
}
