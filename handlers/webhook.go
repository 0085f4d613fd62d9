package handlers

import (
	"net/http"

	"schedbot/models"
	"schedbot/services/pipeline"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler receives Webex webhook deliveries and hands them to the
// pipeline.
type WebhookHandler struct {
	Pipeline pipeline.PipelineService
	Logger   *zap.Logger
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(svc pipeline.PipelineService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Pipeline: svc, Logger: logger}
}

// HandleWebhook processes one delivery. The response is the standard ack no
// matter what happens internally: Webex only needs receipt confirmation, and
// failure visibility lives in the logs.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	var event models.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		h.Logger.Warn("webhook: unreadable payload", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	h.Logger.Info("webhook: delivery received",
		zap.String("resource", event.Resource),
		zap.String("event", event.Event),
		zap.String("messageId", event.Data.ID),
		zap.String("roomId", event.Data.RoomID))

	h.Pipeline.HandleEvent(c.Request.Context(), event)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
