package models

import "time"

// Meeting is the ephemeral record of a provisioned conference meeting.
// An empty JoinLink signals provisioning failure.
type Meeting struct {
	JoinLink string    `json:"joinLink,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}
