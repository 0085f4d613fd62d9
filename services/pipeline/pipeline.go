// File: services/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"schedbot/models"
	"schedbot/services/calendar"
	"schedbot/services/intelligence"
	"schedbot/services/timeparse"
	"schedbot/services/webex"
	"schedbot/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultPipelineService composes the pipeline stages. A nil Dedup client
// disables redelivery suppression.
type DefaultPipelineService struct {
	Fetcher     webex.MessageFetcher
	Extractor   intelligence.IntentExtractor
	Provisioner webex.MeetingProvisioner
	Publisher   calendar.EventPublisher
	Normalizer  *timeparse.Normalizer
	Dedup       *redis.Client
	Logger      *zap.Logger
}

// HandleEvent runs the full pipeline for one delivery. Each stage hard-depends
// on the previous producing usable input; failures are logged and terminate
// processing for this event without touching earlier side effects.
func (s *DefaultPipelineService) HandleEvent(ctx context.Context, event models.WebhookEvent) {
	if !event.IsNewMessage() {
		s.Logger.Debug("pipeline: event filtered",
			zap.String("resource", event.Resource), zap.String("event", event.Event))
		return
	}
	messageID := event.Data.ID

	if s.seen(ctx, messageID) {
		s.Logger.Info("pipeline: duplicate delivery ignored", zap.String("messageId", messageID))
		return
	}

	// Empty text is a valid result of an absorbed fetch failure; the
	// extractor still runs on it.
	text := s.Fetcher.FetchMessageText(ctx, messageID)
	s.Logger.Info("pipeline: message fetched",
		zap.String("messageId", messageID), zap.Int("textLen", len(text)))

	result := s.Extractor.Extract(ctx, text)
	if !result.OK() {
		s.Logger.Warn("pipeline: extraction failed",
			zap.String("messageId", messageID),
			zap.String("kind", string(result.Err.Kind)),
			zap.String("error", result.Err.Message))
		return
	}

	intent, err := intelligence.ParseIntent(result.Text)
	if err != nil {
		s.Logger.Warn("pipeline: intent parse failed",
			zap.String("messageId", messageID), zap.Error(err))
		return
	}

	start, end, err := s.Normalizer.Window(intent.Date, intent.Time, time.Now())
	if err != nil {
		s.Logger.Warn("pipeline: could not resolve meeting time",
			zap.String("messageId", messageID),
			zap.String("date", intent.Date), zap.String("time", intent.Time),
			zap.Error(err))
		return
	}

	title := "Meeting with " + strings.Join(intent.Attendees, ", ")
	meeting := s.Provisioner.CreateMeeting(ctx, title, start, end)
	if meeting.JoinLink == "" {
		s.Logger.Warn("pipeline: meeting provisioning yielded no join link",
			zap.String("messageId", messageID))
	}

	if err := s.Publisher.Publish(ctx, intent, meeting.JoinLink, start, end); err != nil {
		if errors.Is(err, calendar.ErrNotAuthorized) {
			s.Logger.Warn("pipeline: calendar not authorized, event skipped",
				zap.String("messageId", messageID))
			return
		}
		s.Logger.Warn("pipeline: calendar publish failed",
			zap.String("messageId", messageID), zap.Error(err))
		return
	}

	s.Logger.Info("pipeline: event fully processed",
		zap.String("messageId", messageID),
		zap.Strings("attendees", intent.Attendees),
		zap.Time("start", start))
}

// seen records the message ID in the dedup set and reports whether it was
// already there. Redis trouble fails open: processing continues.
func (s *DefaultPipelineService) seen(ctx context.Context, messageID string) bool {
	if s.Dedup == nil {
		return false
	}
	fresh, err := s.Dedup.SetNX(ctx, utils.SeenKeyPrefix+messageID, 1, utils.SeenTTL).Result()
	if err != nil {
		s.Logger.Warn("pipeline: dedup check failed, proceeding", zap.Error(err))
		return false
	}
	return !fresh
}
