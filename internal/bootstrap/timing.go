package bootstrap

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/keymapper/internal/logging"
)

// StartupTimer records how long each daemon startup phase took.
type StartupTimer struct {
	mu     sync.Mutex
	start  time.Time
	last   time.Time
	phases map[string]time.Duration
	order  []string // insertion order for logging
	now    func() time.Time
}

// NewStartupTimer creates a timer starting from now.
func NewStartupTimer() *StartupTimer {
	return newStartupTimer(time.Now)
}

func newStartupTimer(now func() time.Time) *StartupTimer {
	start := now()
	return &StartupTimer{
		start:  start,
		last:   start,
		phases: make(map[string]time.Duration),
		now:    now,
	}
}

// Mark records the time since the previous mark (or start) for phase.
func (t *StartupTimer) Mark(phase string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if _, seen := t.phases[phase]; !seen {
		t.order = append(t.order, phase)
	}
	t.phases[phase] += now.Sub(t.last)
	t.last = now
}

// Total returns the time elapsed since the timer was created.
func (t *StartupTimer) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Sub(t.start)
}

// Log writes every phase at level to the context logger.
func (t *StartupTimer) Log(ctx context.Context, level zerolog.Level) {
	t.mu.Lock()
	defer t.mu.Unlock()

	event := logging.FromContext(ctx).WithLevel(level).Dur("total", t.now().Sub(t.start))
	for _, phase := range t.order {
		event = event.Dur(phase, t.phases[phase])
	}
	event.Msg("startup timing")
}
