// File: services/timeparse/timeparse.go
package timeparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Normalizer resolves the free-form date/time fields of a booking intent into
// a concrete future instant in a fixed IANA time zone.
type Normalizer struct {
	Location *time.Location
	Duration time.Duration

	parser *when.Parser
}

// isoLayouts are tried, in order, against "<date> <time>" before falling back
// to natural-language parsing. The model frequently emits ISO dates with
// either 24h or am/pm clock times.
var isoLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 3:04PM",
	"2006-01-02 3PM",
	"2006-01-02",
}

// NewNormalizer builds a Normalizer for the given IANA zone name and default
// meeting duration.
func NewNormalizer(timezone string, duration time.Duration) (*Normalizer, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &Normalizer{
		Location: loc,
		Duration: duration,
		parser:   w,
	}, nil
}

// Resolve converts the intent's date and time strings into a single instant
// strictly after now. Relative phrasings ("tomorrow", "5pm") are anchored to
// now in the normalizer's zone; a same-day clock time already past rolls to
// the next day. An explicit date in the past is an error.
func (n *Normalizer) Resolve(dateStr, timeStr string, now time.Time) (time.Time, error) {
	now = now.In(n.Location)
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	combined := strings.TrimSpace(dateStr + " " + timeStr)
	if combined == "" {
		return time.Time{}, fmt.Errorf("empty date and time")
	}

	if t, ok := n.parseISO(combined); ok {
		if !t.After(now) {
			return time.Time{}, fmt.Errorf("resolved instant %s is in the past", t.Format(time.RFC3339))
		}
		return t, nil
	}

	r, err := n.parser.Parse(combined, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", combined, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("no date/time recognized in %q", combined)
	}

	t := r.Time.In(n.Location)
	if !t.After(now) && sameDay(t, now) {
		// A same-day clock time already past ("5pm", "today at 5pm")
		// means the next occurrence of that time. An explicit past
		// reference like "yesterday" lands on an earlier day and falls
		// through to the error below.
		t = t.AddDate(0, 0, 1)
	}
	if !t.After(now) {
		return time.Time{}, fmt.Errorf("resolved instant %s is in the past", t.Format(time.RFC3339))
	}
	return t, nil
}

func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// Window resolves the intent to a (start, end) pair using the default duration.
func (n *Normalizer) Window(dateStr, timeStr string, now time.Time) (time.Time, time.Time, error) {
	start, err := n.Resolve(dateStr, timeStr, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.Add(n.Duration), nil
}

func (n *Normalizer) parseISO(s string) (time.Time, bool) {
	upper := strings.ToUpper(s)
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, upper, n.Location); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
