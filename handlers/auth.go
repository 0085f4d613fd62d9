package handlers

import (
	"errors"
	"net/http"

	"schedbot/services/calendar"
	"schedbot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves the Google Calendar authorization endpoints and the
// Webex OAuth callback.
type AuthHandler struct {
	Authorizer *calendar.Authorizer
	Logger     *zap.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authorizer *calendar.Authorizer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Authorizer: authorizer, Logger: logger}
}

// GoogleAuthHandler issues the consent URL (phase A).
func (h *AuthHandler) GoogleAuthHandler(c *gin.Context) {
	url, err := h.Authorizer.AuthURL(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue authorization URL", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"auth_url": url})
}

// GoogleCallbackHandler completes the code exchange and persists the
// credential bundle (phase B).
func (h *AuthHandler) GoogleCallbackHandler(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" {
		c.String(http.StatusBadRequest, "Error: No authorization code received.")
		return
	}

	if err := h.Authorizer.Exchange(c.Request.Context(), state, code); err != nil {
		if errors.Is(err, calendar.ErrInvalidState) {
			h.Logger.Warn("auth: oauth state rejected", zap.String("state", state))
			c.String(http.StatusBadRequest, "Error: Invalid or expired state.")
			return
		}
		h.Logger.Error("auth: code exchange failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Error: Authorization failed.")
		return
	}

	c.String(http.StatusOK, "Authorization successful! You can close this window.")
}

// WebexCallbackHandler acknowledges the Webex OAuth redirect. The code is
// logged only; the chat side authenticates with a static bearer token, so no
// exchange is performed here.
func (h *AuthHandler) WebexCallbackHandler(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.String(http.StatusBadRequest, "Error: No authorization code received.")
		return
	}
	h.Logger.Info("auth: received Webex OAuth code", zap.String("code", code))
	c.String(http.StatusOK, "OAuth successful! You can close this window.")
}
