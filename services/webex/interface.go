// File: services/webex/interface.go
package webex

import (
	"context"
	"time"

	"schedbot/models"
)

// MessageFetcher retrieves the plain-text body of a chat message. Failure is
// absorbed: the caller always receives a string, empty on any error.
type MessageFetcher interface {
	FetchMessageText(ctx context.Context, messageID string) string
}

// MeetingProvisioner creates a remote meeting. The returned record carries an
// empty join link when the conferencing API does not return success. No retry.
type MeetingProvisioner interface {
	CreateMeeting(ctx context.Context, title string, start, end time.Time) models.Meeting
}
