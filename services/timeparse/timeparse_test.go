package timeparse_test

import (
	"testing"
	"time"

	"schedbot/services/timeparse"
)

func newNormalizer(t *testing.T) *timeparse.Normalizer {
	t.Helper()
	n, err := timeparse.NewNormalizer("UTC", 30*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestResolveISO(t *testing.T) {
	n := newNormalizer(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	got, err := n.Resolve("2026-09-01", "17:00", now)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolveISOWithMeridiem(t *testing.T) {
	n := newNormalizer(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	got, err := n.Resolve("2026-09-01", "5pm", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 17 || got.Day() != 1 {
		t.Errorf("Resolve = %v, want Sep 1 17:00", got)
	}
}

func TestResolveNaturalLanguage(t *testing.T) {
	n := newNormalizer(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	got, err := n.Resolve("tomorrow", "at 5pm", now)
	if err != nil {
		t.Fatal(err)
	}
	if !got.After(now) {
		t.Errorf("Resolve = %v, not after now %v", got, now)
	}
	if got.Hour() != 17 {
		t.Errorf("Resolve hour = %d, want 17", got.Hour())
	}
}

func TestResolvePastClockTimeRollsForward(t *testing.T) {
	n := newNormalizer(t)
	// 6pm: "5pm" today is already past.
	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)

	got, err := n.Resolve("today", "at 5pm", now)
	if err != nil {
		t.Fatal(err)
	}
	if !got.After(now) {
		t.Errorf("Resolve = %v, not after now %v", got, now)
	}
}

func TestResolvePastRelativeDateFails(t *testing.T) {
	n := newNormalizer(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// "yesterday" carries its own (past) day; it must not be rolled
	// forward onto some other day.
	if got, err := n.Resolve("yesterday", "at 5pm", now); err == nil {
		t.Fatalf("Resolve = %v, want error for past relative date", got)
	}
}

func TestResolveExplicitPastDateFails(t *testing.T) {
	n := newNormalizer(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	if _, err := n.Resolve("2020-01-01", "17:00", now); err == nil {
		t.Fatal("expected error for explicit past date")
	}
}

func TestResolveUnrecognized(t *testing.T) {
	n := newNormalizer(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	if _, err := n.Resolve("whenever", "works", now); err == nil {
		t.Fatal("expected error for unrecognizable input")
	}
	if _, err := n.Resolve("", "", now); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestWindowAppliesDefaultDuration(t *testing.T) {
	n := newNormalizer(t)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	start, end, err := n.Window("2026-09-01", "17:00", now)
	if err != nil {
		t.Fatal(err)
	}
	if end.Sub(start) != 30*time.Minute {
		t.Errorf("window = %v, want 30m", end.Sub(start))
	}
}
