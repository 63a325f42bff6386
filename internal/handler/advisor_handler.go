package handler

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"seyone-academy-go/internal/middleware"
	"seyone-academy-go/internal/model"
	"seyone-academy-go/internal/service"
	"seyone-academy-go/pkg/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// AdvisorHandler serves the chat widget over REST and WebSocket.
type AdvisorHandler struct {
	advisorService service.AdvisorService
}

func NewAdvisorHandler(advisorService service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// wsClientFrame is a frame sent by the widget.
type wsClientFrame struct {
	Type  string `json:"type"` // send or starter
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// wsServerFrame is a frame sent to the widget besides session updates.
type wsServerFrame struct {
	Type    string                    `json:"type"` // session, error or completion
	Error   string                    `json:"error,omitempty"`
	Session *model.AdvisorSessionView `json:"session,omitempty"`
}

// Open mounts a widget.
func (h *AdvisorHandler) Open(c *gin.Context) {
	session := h.advisorService.Open(middleware.ClientID(c))
	c.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "success", "data": session.View()})
}

func (h *AdvisorHandler) Get(c *gin.Context) {
	session, err := h.advisorService.Get(middleware.ClientID(c), c.Param("id"))
	if err != nil {
		advisorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": session.View()})
}

// Send posts a user message and answers once the advisor has replied.
func (h *AdvisorHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	view, err := h.advisorService.Send(middleware.ClientID(c), c.Param("id"), req.Text)
	if err != nil {
		advisorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": view})
}

func (h *AdvisorHandler) SendStarter(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "starter index must be a number", "data": nil})
		return
	}
	view, err := h.advisorService.SendStarter(middleware.ClientID(c), c.Param("id"), index)
	if err != nil {
		advisorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": view})
}

// Close unmounts a widget.
func (h *AdvisorHandler) Close(c *gin.Context) {
	if err := h.advisorService.Close(middleware.ClientID(c), c.Param("id")); err != nil {
		advisorError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}

// Socket attaches a WebSocket to a mounted widget. Session updates are pushed
// as they happen; closing the socket unmounts the widget.
func (h *AdvisorHandler) Socket(c *gin.Context) {
	clientID := middleware.ClientID(c)
	session, err := h.advisorService.Get(clientID, c.Param("id"))
	if err != nil {
		advisorError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket upgrade failed", err)
		return
	}
	defer conn.Close()
	defer func() {
		if err := h.advisorService.Close(clientID, session.ID()); err != nil && !errors.Is(err, service.ErrSessionNotFound) {
			log.Warnf("failed to close advisor session %s: %v", session.ID(), err)
		}
	}()
	log.Infof("advisor WebSocket connected, session: %s", session.ID())

	done := make(chan struct{})
	out := make(chan interface{}, 16)
	var writer sync.WaitGroup
	writer.Add(1)
	go func() {
		defer writer.Done()
		for {
			select {
			case frame := <-out:
				if err := conn.WriteJSON(frame); err != nil {
					log.Warnf("failed to write WebSocket frame: %v", err)
					return
				}
			case <-done:
				return
			}
		}
	}()
	push := func(frame interface{}) {
		select {
		case out <- frame:
		case <-done:
		}
	}

	unwatch := session.Watch(func(u service.SessionUpdate) { push(u) })
	defer unwatch()

	view := session.View()
	push(wsServerFrame{Type: "session", Session: &view})

	for {
		var frame wsClientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnf("failed to read WebSocket frame: %v", err)
			}
			break
		}

		var send func() (model.ChatMessage, error)
		switch frame.Type {
		case "send":
			text := frame.Text
			send = func() (model.ChatMessage, error) { return session.Send(text) }
		case "starter":
			index := frame.Index
			send = func() (model.ChatMessage, error) { return session.SendStarter(index) }
		default:
			push(wsServerFrame{Type: "error", Error: "unknown frame type"})
			continue
		}

		// Replies arrive asynchronously so a send while one is pending is
		// reported as busy instead of queued.
		go func() {
			if _, err := send(); err != nil {
				push(wsServerFrame{Type: "error", Error: err.Error()})
				return
			}
			push(wsServerFrame{Type: "completion"})
		}()
	}

	close(done)
	writer.Wait()
}

func advisorError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrEmptyMessage), errors.Is(err, service.ErrStarterUnavailable):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAdvisorBusy):
		status = http.StatusConflict
	case errors.Is(err, service.ErrSessionClosed):
		status = http.StatusGone
	default:
		log.Errorf("advisor request failed: %v", err)
	}
	c.JSON(status, gin.H{"code": status, "message": err.Error(), "data": nil})
}
