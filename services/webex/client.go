// File: services/webex/client.go
package webex

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client talks to the Webex REST API with a static bearer token. It backs
// both the message fetcher and the meeting provisioner.
type Client struct {
	base   string
	token  string
	http   *http.Client
	logger *zap.Logger
}

// NewClient builds a Client. The timeout applies to every outbound call;
// a timed-out call is treated like any other non-2xx failure.
func NewClient(base, token string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		base:   base,
		token:  token,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}
