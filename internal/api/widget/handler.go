package widget

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/iafluence/chatwidget/internal/service"
)

// Handler serves the public widget API
type Handler struct {
	widgetService *service.WidgetService
}

// NewHandler creates a new widget handler
func NewHandler(widgetService *service.WidgetService) *Handler {
	return &Handler{widgetService: widgetService}
}

// RegisterRoutes registers widget routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/config/:client_id", h.GetConfig)
	r.GET("/embed/:client_id", h.GetEmbed)
}

// GetConfig returns the base widget configuration for a client
func (h *Handler) GetConfig(c *gin.Context) {
	config, err := h.widgetService.GetWidgetConfig(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, config)
}

// GetEmbed returns the HTML snippet that embeds the widget in a host page
func (h *Handler) GetEmbed(c *gin.Context) {
	snippet, err := h.widgetService.EmbedSnippet(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(snippet))
}

// Preview renders a page showing the widget, opened when ?open=true
func (h *Handler) Preview(c *gin.Context) {
	clientID := c.Query("client_id")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_id is required"})
		return
	}

	page, err := h.widgetService.Preview(c.Request.Context(), clientID, c.Query("open") == "true")
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
