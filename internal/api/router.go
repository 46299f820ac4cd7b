package api

import (
	"github.com/gin-gonic/gin"
	"github.com/iafluence/chatwidget/internal/api/admin"
	"github.com/iafluence/chatwidget/internal/api/middleware"
	"github.com/iafluence/chatwidget/internal/api/widget"
	"github.com/iafluence/chatwidget/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey       string
	AllowOrigins []string
	// AssetsDir holds the compiled WebAssembly bundle and wasm_exec.js.
	AssetsDir string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	adminService *service.AdminService,
	widgetService *service.WidgetService,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.CORS(cfg.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	SetupStaticRoutes(r, cfg.AssetsDir)

	// Widget API (public, keyed by client_id)
	widgetHandler := widget.NewHandler(widgetService)
	widgetGroup := r.Group("/api/widgets")
	widgetHandler.RegisterRoutes(widgetGroup)
	r.GET("/preview", widgetHandler.Preview)

	// Admin API (requires API key)
	adminHandler := admin.NewHandler(adminService)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.Auth(cfg.APIKey))
	adminHandler.RegisterRoutes(adminGroup)

	return r
}
