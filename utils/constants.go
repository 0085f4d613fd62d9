// File: utils/constants.go
package utils

import "time"

// SeenKeyPrefix is the prefix for Redis webhook-dedup keys.
const SeenKeyPrefix = "seen:"

// SeenTTL is how long a processed message ID is remembered; Webex
// redeliveries on timeout happen well within this window.
const SeenTTL = 10 * time.Minute

// OAuthStatePrefix is the prefix for Redis OAuth state keys.
const OAuthStatePrefix = "oauthstate:"

// OAuthStateTTL is the time-to-live for a pending OAuth state token.
const OAuthStateTTL = 10 * time.Minute
