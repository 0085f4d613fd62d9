// File: services/calendar/publisher.go
package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"schedbot/models"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// ErrNotAuthorized signals that no credential bundle exists; the publisher
// must not attempt any calendar write without one.
var ErrNotAuthorized = errors.New("no stored calendar credentials")

// fallbackLocation is used when meeting provisioning yielded no join link.
const fallbackLocation = "(no join link)"

// EventPublisher creates a calendar event for a resolved booking intent.
type EventPublisher interface {
	Publish(ctx context.Context, intent models.BookingIntent, joinLink string, start, end time.Time) error
}

// GooglePublisher implements EventPublisher against the Google Calendar API,
// authenticating with the stored credential bundle. Expired access tokens are
// refreshed transparently by the token source.
type GooglePublisher struct {
	Config    *oauth2.Config
	Store     *CredentialStore
	Organizer string
	Timezone  string
	Logger    *zap.Logger
}

// Publish inserts the event on the organizer's primary calendar with
// attendee notifications enabled. The created event's link is logged, not
// returned; callers only need the error for their own logging.
func (p *GooglePublisher) Publish(ctx context.Context, intent models.BookingIntent, joinLink string, start, end time.Time) error {
	tok, err := p.Store.Load()
	if err != nil {
		return ErrNotAuthorized
	}

	svc, err := calendarapi.NewService(ctx, option.WithHTTPClient(p.Config.Client(ctx, tok)))
	if err != nil {
		return fmt.Errorf("create calendar service: %w", err)
	}

	location := joinLink
	if location == "" {
		location = fallbackLocation
	}

	attendees := make([]*calendarapi.EventAttendee, 0, len(intent.Attendees))
	for _, email := range intent.Attendees {
		attendees = append(attendees, &calendarapi.EventAttendee{Email: email})
	}

	event := &calendarapi.Event{
		Summary:  "Meeting with " + strings.Join(intent.Attendees, ", "),
		Location: location,
		Start: &calendarapi.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: p.Timezone,
		},
		End: &calendarapi.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: p.Timezone,
		},
		Attendees: attendees,
		Organizer: &calendarapi.EventOrganizer{Email: p.Organizer},
	}

	created, err := svc.Events.Insert("primary", event).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("insert calendar event: %w", err)
	}

	p.Logger.Info("calendar: event created",
		zap.String("htmlLink", created.HtmlLink),
		zap.Strings("attendees", intent.Attendees))
	return nil
}
