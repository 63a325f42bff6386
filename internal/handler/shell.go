package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// ShellFallback serves the built single-page site from staticDir. Existing
// files are served as-is and any other non-API path gets index.html, since
// routing happens in the browser. With no staticDir every unknown path is 404.
func ShellFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if staticDir == "" || strings.HasPrefix(p, "/api/") ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "not found", "data": nil})
			return
		}

		name := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+p)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
