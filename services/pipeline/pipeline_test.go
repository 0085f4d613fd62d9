package pipeline_test

import (
	"context"
	"testing"
	"time"

	"schedbot/models"
	"schedbot/services/calendar"
	"schedbot/services/pipeline"
	"schedbot/services/timeparse"

	"go.uber.org/zap"
)

type fakeFetcher struct {
	text  string
	calls int
}

func (f *fakeFetcher) FetchMessageText(ctx context.Context, messageID string) string {
	f.calls++
	return f.text
}

type fakeExtractor struct {
	result    models.ExtractionResult
	calls     int
	lastInput string
}

func (f *fakeExtractor) Extract(ctx context.Context, text string) models.ExtractionResult {
	f.calls++
	f.lastInput = text
	return f.result
}

type fakeProvisioner struct {
	link  string
	calls int
}

func (f *fakeProvisioner) CreateMeeting(ctx context.Context, title string, start, end time.Time) models.Meeting {
	f.calls++
	return models.Meeting{JoinLink: f.link, Start: start, End: end}
}

type fakePublisher struct {
	err        error
	calls      int
	lastIntent models.BookingIntent
	lastLink   string
}

func (f *fakePublisher) Publish(ctx context.Context, intent models.BookingIntent, joinLink string, start, end time.Time) error {
	f.calls++
	f.lastIntent = intent
	f.lastLink = joinLink
	return f.err
}

func newService(t *testing.T, fetcher *fakeFetcher, extractor *fakeExtractor, provisioner *fakeProvisioner, publisher *fakePublisher) *pipeline.DefaultPipelineService {
	t.Helper()
	n, err := timeparse.NewNormalizer("UTC", 30*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	return &pipeline.DefaultPipelineService{
		Fetcher:     fetcher,
		Extractor:   extractor,
		Provisioner: provisioner,
		Publisher:   publisher,
		Normalizer:  n,
		Logger:      zap.NewNop(),
	}
}

func newMessageEvent(id string) models.WebhookEvent {
	return models.WebhookEvent{
		Resource: "messages",
		Event:    "created",
		Data:     models.WebhookData{ID: id, RoomID: "r1"},
	}
}

func futureIntentJSON() string {
	date := time.Now().UTC().Add(48 * time.Hour).Format("2006-01-02")
	return `{"attendees":["bob@x.com"],"date":"` + date + `","time":"17:00"}`
}

func TestFilteredEventPerformsNoCalls(t *testing.T) {
	cases := []models.WebhookEvent{
		{Resource: "rooms", Event: "created", Data: models.WebhookData{ID: "m1"}},
		{Resource: "messages", Event: "deleted", Data: models.WebhookData{ID: "m1"}},
		{Resource: "messages", Event: "created"},
	}
	for _, event := range cases {
		fetcher := &fakeFetcher{}
		extractor := &fakeExtractor{}
		provisioner := &fakeProvisioner{}
		publisher := &fakePublisher{}
		svc := newService(t, fetcher, extractor, provisioner, publisher)

		svc.HandleEvent(context.Background(), event)

		if fetcher.calls+extractor.calls+provisioner.calls+publisher.calls != 0 {
			t.Errorf("event %+v: expected zero outbound calls", event)
		}
	}
}

func TestHappyPath(t *testing.T) {
	fetcher := &fakeFetcher{text: "Schedule a meeting with bob@x.com tomorrow at 5pm"}
	extractor := &fakeExtractor{result: models.ExtractionResult{Text: futureIntentJSON()}}
	provisioner := &fakeProvisioner{link: "https://example.webex.com/join/m"}
	publisher := &fakePublisher{}
	svc := newService(t, fetcher, extractor, provisioner, publisher)

	svc.HandleEvent(context.Background(), newMessageEvent("m1"))

	if provisioner.calls != 1 {
		t.Errorf("provisioner calls = %d, want 1", provisioner.calls)
	}
	if publisher.calls != 1 {
		t.Errorf("publisher calls = %d, want 1", publisher.calls)
	}
	if len(publisher.lastIntent.Attendees) != 1 || publisher.lastIntent.Attendees[0] != "bob@x.com" {
		t.Errorf("published attendees = %v, want [bob@x.com]", publisher.lastIntent.Attendees)
	}
	if publisher.lastLink != "https://example.webex.com/join/m" {
		t.Errorf("published link = %q", publisher.lastLink)
	}
}

func TestNonJSONOutputShortCircuits(t *testing.T) {
	fetcher := &fakeFetcher{text: "schedule something"}
	extractor := &fakeExtractor{result: models.ExtractionResult{Text: "Sure, I'll schedule that for you!"}}
	provisioner := &fakeProvisioner{}
	publisher := &fakePublisher{}
	svc := newService(t, fetcher, extractor, provisioner, publisher)

	svc.HandleEvent(context.Background(), newMessageEvent("m1"))

	if extractor.calls != 1 {
		t.Errorf("extractor calls = %d, want 1", extractor.calls)
	}
	if provisioner.calls != 0 || publisher.calls != 0 {
		t.Error("provisioner/publisher must not run after a parse failure")
	}
}

func TestExtractionErrorShortCircuits(t *testing.T) {
	extractor := &fakeExtractor{result: models.ExtractionResult{
		Err: &models.ExtractionError{Kind: models.ExtractionErrUpstream, Message: "connection refused"},
	}}
	provisioner := &fakeProvisioner{}
	publisher := &fakePublisher{}
	svc := newService(t, &fakeFetcher{text: "hi"}, extractor, provisioner, publisher)

	svc.HandleEvent(context.Background(), newMessageEvent("m1"))

	if provisioner.calls != 0 || publisher.calls != 0 {
		t.Error("provisioner/publisher must not run after an extraction failure")
	}
}

func TestEmptyMessageStillExtracted(t *testing.T) {
	// Fetch failure is absorbed to "", which still flows to the extractor.
	fetcher := &fakeFetcher{text: ""}
	extractor := &fakeExtractor{result: models.ExtractionResult{Text: "no intent here"}}
	svc := newService(t, fetcher, extractor, &fakeProvisioner{}, &fakePublisher{})

	svc.HandleEvent(context.Background(), newMessageEvent("m1"))

	if extractor.calls != 1 {
		t.Fatalf("extractor calls = %d, want exactly 1", extractor.calls)
	}
	if extractor.lastInput != "" {
		t.Errorf("extractor input = %q, want empty string", extractor.lastInput)
	}
}

func TestMissingCredentialsSkipsPublishOnly(t *testing.T) {
	extractor := &fakeExtractor{result: models.ExtractionResult{Text: futureIntentJSON()}}
	provisioner := &fakeProvisioner{link: "https://example.webex.com/join/m"}
	publisher := &fakePublisher{err: calendar.ErrNotAuthorized}
	svc := newService(t, &fakeFetcher{text: "x"}, extractor, provisioner, publisher)

	svc.HandleEvent(context.Background(), newMessageEvent("m1"))

	if provisioner.calls != 1 {
		t.Errorf("provisioner calls = %d, want 1 (meeting still provisioned)", provisioner.calls)
	}
	if publisher.calls != 1 {
		t.Errorf("publisher calls = %d, want 1 (attempted, refused)", publisher.calls)
	}
}

func TestMissingJoinLinkStillPublished(t *testing.T) {
	extractor := &fakeExtractor{result: models.ExtractionResult{Text: futureIntentJSON()}}
	provisioner := &fakeProvisioner{link: ""}
	publisher := &fakePublisher{}
	svc := newService(t, &fakeFetcher{text: "x"}, extractor, provisioner, publisher)

	svc.HandleEvent(context.Background(), newMessageEvent("m1"))

	if publisher.calls != 1 {
		t.Fatalf("publisher calls = %d, want 1", publisher.calls)
	}
	if publisher.lastLink != "" {
		t.Errorf("published link = %q, want empty string", publisher.lastLink)
	}
}

func TestUnresolvableTimeStopsBeforeProvisioning(t *testing.T) {
	extractor := &fakeExtractor{result: models.ExtractionResult{
		Text: `{"attendees":["bob@x.com"],"date":"whenever","time":"works"}`,
	}}
	provisioner := &fakeProvisioner{}
	publisher := &fakePublisher{}
	svc := newService(t, &fakeFetcher{text: "x"}, extractor, provisioner, publisher)

	svc.HandleEvent(context.Background(), newMessageEvent("m1"))

	if provisioner.calls != 0 || publisher.calls != 0 {
		t.Error("nothing may be provisioned for an unresolvable instant")
	}
}
