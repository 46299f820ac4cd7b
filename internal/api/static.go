package api

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iafluence/chatwidget/internal/service"
)

//go:embed static
var staticFS embed.FS

// SetupStaticRoutes serves the widget loader and stylesheet from the binary and
// the WebAssembly bundle from assetsDir.
func SetupStaticRoutes(r *gin.Engine, assetsDir string) {
	r.GET(service.ScriptPath, func(c *gin.Context) {
		serveEmbedded(c, "static/chatbot-widget.js", "application/javascript")
	})
	r.GET(service.StylesheetPath, func(c *gin.Context) {
		serveEmbedded(c, "static/chatbot-widget.css", "text/css; charset=utf-8")
	})

	if assetsDir != "" {
		r.Static("/widgets/wasm", assetsDir)
	}
}

func serveEmbedded(c *gin.Context, name, contentType string) {
	content, err := staticFS.ReadFile(name)
	if err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, contentType, content)
}
