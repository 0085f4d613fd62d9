package models

// BookingIntent is the structured result of interpreting a free-text
// scheduling request.
type BookingIntent struct {
	Attendees []string `json:"attendees"` // Attendee email addresses, order preserved
	Date      string   `json:"date"`      // Natural-language or ISO date, e.g. "tomorrow" or "2026-09-01"
	Time      string   `json:"time"`      // Natural-language or ISO time, e.g. "5pm" or "17:00"
}
