// Package admin implements the global pause state machine and the admin
// command grammar. The admin allow-list check itself lives in dispatch; this
// package trusts its caller.
package admin

import (
	"log/slog"
	"sync"
	"time"
)

// PauseController is the process-wide pause state: ACTIVE or PAUSED with an
// expiry timestamp. Mutated only by admin commands and by lazy auto-expiry.
// Safe for concurrent use; the read-transition-write sequence in IsPaused is
// one atomic unit under the mutex so concurrent auto-resumes are idempotent.
type PauseController struct {
	mu         sync.Mutex
	paused     bool
	pauseUntil time.Time
	pausedBy   string

	loc *time.Location
	now func() time.Time
}

// PauseInfo is a snapshot of the pause state.
type PauseInfo struct {
	Paused           bool
	PauseUntil       time.Time // zero when not paused
	RemainingMinutes int
	PausedBy         string
}

// NewPauseController creates a controller in the ACTIVE state. Times are
// rendered in loc (nil means UTC).
func NewPauseController(loc *time.Location) *PauseController {
	if loc == nil {
		loc = time.UTC
	}
	return &PauseController{loc: loc, now: time.Now}
}

// WithClock replaces the controller clock. Test use only.
func (p *PauseController) WithClock(now func() time.Time) *PauseController {
	p.now = now
	return p
}

// Pause suspends automated replies for the given duration.
func (p *PauseController) Pause(minutes int, adminID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.paused = true
	p.pauseUntil = p.now().In(p.loc).Add(time.Duration(minutes) * time.Minute)
	p.pausedBy = adminID
	slog.Info("bot paused", "by", adminID, "minutes", minutes, "until", p.pauseUntil)
}

// Resume clears the pause state.
func (p *PauseController) Resume(adminID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.paused = false
	p.pauseUntil = time.Time{}
	p.pausedBy = ""
	slog.Info("bot resumed", "by", adminID)
}

// IsPaused reports whether the bot is paused. This is a query AND a
// transition trigger: an expired pause is cleared here (lazy auto-resume),
// so the call may mutate state. Callers must not assume purity.
func (p *PauseController) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.paused {
		return false
	}
	if !p.pauseUntil.IsZero() && !p.now().Before(p.pauseUntil) {
		p.paused = false
		p.pauseUntil = time.Time{}
		p.pausedBy = ""
		slog.Info("pause duration expired, auto-resuming")
		return false
	}
	return true
}

// Info returns a snapshot, evaluating auto-expiry first.
func (p *PauseController) Info() PauseInfo {
	if !p.IsPaused() {
		return PauseInfo{Paused: false}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	remaining := int(p.pauseUntil.Sub(p.now()).Minutes())
	return PauseInfo{
		Paused:           true,
		PauseUntil:       p.pauseUntil.In(p.loc),
		RemainingMinutes: remaining,
		PausedBy:         p.pausedBy,
	}
}
