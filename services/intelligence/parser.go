// File: services/intelligence/parser.go
package intelligence

import (
	"encoding/json"
	"fmt"
	"strings"

	"schedbot/models"
)

// ParseIntent attempts a strict parse of the extractor's raw output into a
// BookingIntent: a JSON object with exactly the three expected fields, each
// present and plausible. Anything else is a parse failure and short-circuits
// the pipeline.
func ParseIntent(raw string) (models.BookingIntent, error) {
	var intent models.BookingIntent

	cleaned := stripCodeFence(strings.TrimSpace(raw))
	if cleaned == "" {
		return intent, fmt.Errorf("empty model output")
	}

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&intent); err != nil {
		return models.BookingIntent{}, fmt.Errorf("invalid intent JSON: %w", err)
	}

	if len(intent.Attendees) == 0 {
		return models.BookingIntent{}, fmt.Errorf("intent missing attendees")
	}
	for _, a := range intent.Attendees {
		if !strings.Contains(a, "@") {
			return models.BookingIntent{}, fmt.Errorf("attendee %q is not an email address", a)
		}
	}
	if strings.TrimSpace(intent.Date) == "" {
		return models.BookingIntent{}, fmt.Errorf("intent missing date")
	}
	if strings.TrimSpace(intent.Time) == "" {
		return models.BookingIntent{}, fmt.Errorf("intent missing time")
	}

	return intent, nil
}

// stripCodeFence removes a ```json ... ``` wrapper; models add one even when
// told not to.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
