package middleware

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"seyone-academy-go/pkg/log"
)

var passwordField = regexp.MustCompile(`("password"\s*:\s*)"(?:[^"\\]|\\.)*"`)

// redactPasswords masks the values of JSON "password" fields.
func redactPasswords(body string) string {
	return passwordField.ReplaceAllString(body, `$1"***"`)
}

// bodyLogWriter 用于捕获响应体；响应为事件流时停止捕获
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
	skip bool
}

func (w *bodyLogWriter) Write(b []byte) (int, error) {
	if !w.skip && strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream") {
		w.skip = true
		w.body.Reset()
	}
	if !w.skip {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *bodyLogWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// eventStreamPaths never get their bodies captured, whatever the client sends.
var eventStreamPaths = []string{"/api/v1/auth/events"}

// streaming reports whether the request opens a WebSocket or SSE stream,
// whose bodies are not captured.
func streaming(c *gin.Context) bool {
	for _, p := range eventStreamPaths {
		if c.Request.URL.Path == p {
			return true
		}
	}
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket") ||
		strings.Contains(c.GetHeader("Accept"), "text/event-stream")
}

// RequestLogger 记录每个请求及其 JSON 请求体和响应体
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		var requestBody []byte
		captureBody := c.Request.Body != nil &&
			!strings.HasPrefix(c.ContentType(), "multipart/") &&
			!streaming(c)
		if captureBody {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		var blw *bodyLogWriter
		if !streaming(c) {
			blw = &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
			c.Writer = blw
		}

		c.Next()

		responseBody := ""
		if blw != nil && !blw.skip {
			responseBody = blw.body.String()
		}
		log.Infow("HTTP Request Log",
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"requestBody", redactPasswords(string(requestBody)),
			"responseBody", responseBody,
		)
	}
}
