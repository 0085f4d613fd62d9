// File: services/calendar/auth.go
package calendar

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"schedbot/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
)

// ErrInvalidState signals an OAuth callback whose state token is unknown,
// expired, or already consumed.
var ErrInvalidState = errors.New("invalid or expired oauth state")

// StateStore holds pending OAuth state tokens. Take consumes: a state can be
// taken successfully at most once.
type StateStore interface {
	Put(ctx context.Context, state string, ttl time.Duration) error
	Take(ctx context.Context, state string) (bool, error)
}

// RedisStateStore implements StateStore on Redis; expiry is handled by key TTL.
type RedisStateStore struct {
	Client *redis.Client
}

func (s *RedisStateStore) Put(ctx context.Context, state string, ttl time.Duration) error {
	return s.Client.Set(ctx, utils.OAuthStatePrefix+state, "1", ttl).Err()
}

func (s *RedisStateStore) Take(ctx context.Context, state string) (bool, error) {
	deleted, err := s.Client.Del(ctx, utils.OAuthStatePrefix+state).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// Authorizer runs the two-phase authorization-code exchange against Google
// and populates the credential store. State tokens are single-use and expire.
type Authorizer struct {
	config *oauth2.Config
	store  *CredentialStore
	states StateStore
	logger *zap.Logger
}

// NewAuthorizer reads the client-secret bundle (provisioned out of band) and
// builds the oauth2 config scoped to calendar event writes.
func NewAuthorizer(credentialsFile, redirectURL string, store *CredentialStore, states StateStore, logger *zap.Logger) (*Authorizer, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read client secret file: %w", err)
	}
	config, err := google.ConfigFromJSON(b, calendarapi.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secret file: %w", err)
	}
	if redirectURL != "" {
		config.RedirectURL = redirectURL
	}
	return &Authorizer{
		config: config,
		store:  store,
		states: states,
		logger: logger,
	}, nil
}

// AuthURL issues the consent URL for phase A. The generated state token is
// stored with a TTL and must come back on the callback.
func (a *Authorizer) AuthURL(ctx context.Context) (string, error) {
	state := uuid.New().String()
	if err := a.states.Put(ctx, state, utils.OAuthStateTTL); err != nil {
		return "", fmt.Errorf("store oauth state: %w", err)
	}
	return a.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Exchange completes phase B: the state is consumed (single use), the code is
// exchanged for a token bundle, and the bundle is persisted.
func (a *Authorizer) Exchange(ctx context.Context, state, code string) error {
	ok, err := a.states.Take(ctx, state)
	if err != nil {
		return fmt.Errorf("check oauth state: %w", err)
	}
	if !ok {
		return ErrInvalidState
	}

	tok, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	if err := a.store.Save(tok); err != nil {
		return fmt.Errorf("persist token bundle: %w", err)
	}
	a.logger.Info("calendar: authorization complete, credentials stored")
	return nil
}

// Config exposes the oauth2 config so the publisher can build token-sourced
// clients that refresh automatically.
func (a *Authorizer) Config() *oauth2.Config {
	return a.config
}
