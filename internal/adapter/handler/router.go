package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/omniscope-hq/meeting-intel/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	webhookHandler *WebhookHandler
	adminHandler   *AdminHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, webhookHandler *WebhookHandler, adminHandler *AdminHandler) *Router {
	return &Router{
		cfg:            cfg,
		webhookHandler: webhookHandler,
		adminHandler:   adminHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	api := e.Group("/api")

	webhooks := api.Group("/webhook")
	webhooks.POST("/ingest", rt.webhookHandler.HandleUniversal)
	webhooks.POST("/fathom", rt.webhookHandler.HandleFathom)
	webhooks.POST("/plaud", rt.webhookHandler.HandlePlaud)
	webhooks.GET("/health", rt.webhookHandler.HandleHealth)

	admin := api.Group("/admin/fathom")
	admin.POST("/import", rt.adminHandler.ImportFathomMeetings)
	admin.POST("/register-webhook", rt.adminHandler.RegisterFathomWebhook)
}
