package admin

import (
	"testing"
	"time"
)

func TestPauseController_RoundTrip(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	p := NewPauseController(time.UTC).WithClock(func() time.Time { return clock })

	if p.IsPaused() {
		t.Fatal("new controller should be active")
	}

	p.Pause(10, "admin1")
	if !p.IsPaused() {
		t.Fatal("not paused after Pause")
	}

	info := p.Info()
	if !info.Paused || info.PausedBy != "admin1" {
		t.Fatalf("Info = %+v", info)
	}
	if want := clock.Add(10 * time.Minute); !info.PauseUntil.Equal(want) {
		t.Fatalf("PauseUntil = %v, want %v", info.PauseUntil, want)
	}

	// 5 minutes in: still paused.
	clock = clock.Add(5 * time.Minute)
	if !p.IsPaused() {
		t.Fatal("pause expired early")
	}

	// Past the deadline: auto-resume on query.
	clock = clock.Add(6 * time.Minute)
	if p.IsPaused() {
		t.Fatal("pause not auto-expired")
	}
	if info := p.Info(); info.Paused || info.PausedBy != "" {
		t.Fatalf("Info after expiry = %+v", info)
	}
}

func TestPauseController_ManualResume(t *testing.T) {
	p := NewPauseController(nil)
	p.Pause(60, "admin1")
	p.Resume("admin2")
	if p.IsPaused() {
		t.Fatal("still paused after Resume")
	}
}

func TestPauseController_RepeatedPauseExtends(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	p := NewPauseController(time.UTC).WithClock(func() time.Time { return clock })

	p.Pause(10, "admin1")
	clock = clock.Add(9 * time.Minute)
	p.Pause(60, "admin1")
	clock = clock.Add(30 * time.Minute)
	if !p.IsPaused() {
		t.Fatal("second pause did not replace the first deadline")
	}
}

func TestPauseController_RemainingMinutes(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	p := NewPauseController(time.UTC).WithClock(func() time.Time { return clock })

	p.Pause(30, "admin1")
	clock = clock.Add(10 * time.Minute)
	if info := p.Info(); info.RemainingMinutes != 20 {
		t.Fatalf("RemainingMinutes = %d, want 20", info.RemainingMinutes)
	}
}
