// File: services/webex/meetings.go
package webex

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"schedbot/models"

	"go.uber.org/zap"
)

type meetingRequest struct {
	Title                    string `json:"title"`
	Start                    string `json:"start"`
	End                      string `json:"end"`
	EnabledAutoRecordMeeting bool   `json:"enabledAutoRecordMeeting"`
	AllowAnyUserToBeCoHost   bool   `json:"allowAnyUserToBeCoHost"`
}

type meetingResponse struct {
	ID      string `json:"id"`
	WebLink string `json:"webLink"`
}

// CreateMeeting creates a Webex meeting for the given window. The returned
// record has an empty join link on any failure. Two calls with the same
// arguments create two independent meetings; there is no dedup at this layer.
func (c *Client) CreateMeeting(ctx context.Context, title string, start, end time.Time) models.Meeting {
	record := models.Meeting{Start: start, End: end}

	payload := meetingRequest{
		Title:                    title,
		Start:                    start.Format(time.RFC3339),
		End:                      end.Format(time.RFC3339),
		EnabledAutoRecordMeeting: false,
		AllowAnyUserToBeCoHost:   false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("webex: failed to marshal meeting request", zap.Error(err))
		return record
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/meetings", bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("webex: failed to build meeting request", zap.Error(err))
		return record
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("webex: meeting creation failed", zap.Error(err))
		return record
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("webex: meeting creation returned non-2xx", zap.Int("status", resp.StatusCode))
		return record
	}

	var meeting meetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&meeting); err != nil {
		c.logger.Warn("webex: failed to decode meeting response", zap.Error(err))
		return record
	}

	c.logger.Info("webex: meeting created",
		zap.String("meetingId", meeting.ID), zap.String("joinLink", meeting.WebLink))
	record.JoinLink = meeting.WebLink
	return record
}
