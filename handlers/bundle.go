// File: schedbot/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Webhook endpoint.
	HandleWebhook gin.HandlerFunc

	// Authorization endpoints.
	GoogleAuthHandler     gin.HandlerFunc
	GoogleCallbackHandler gin.HandlerFunc
	WebexCallbackHandler  gin.HandlerFunc
}
