// File: services/webex/messages.go
package webex

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type messageResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// FetchMessageText fetches the text of a message by its ID. Any failure
// (transport, non-200, bad body) is logged and yields the empty string.
func (c *Client) FetchMessageText(ctx context.Context, messageID string) string {
	url := c.base + "/messages/" + messageID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("webex: failed to build message request", zap.String("messageId", messageID), zap.Error(err))
		return ""
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("webex: message fetch failed", zap.String("messageId", messageID), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("webex: message fetch returned non-200",
			zap.String("messageId", messageID), zap.Int("status", resp.StatusCode))
		return ""
	}

	var msg messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		c.logger.Warn("webex: failed to decode message response", zap.String("messageId", messageID), zap.Error(err))
		return ""
	}
	return msg.Text
}
