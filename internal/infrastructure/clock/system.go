// Package clock provides the time sources used by the engine: the system
// clock for the daemon and a manual clock for tests and replays.
package clock

import (
	"time"

	"github.com/bnema/keymapper/internal/application/port"
)

// System reads wall-clock nanoseconds, the timeline evdev stamps events with.
type System struct{}

var _ port.TimeSource = System{}

// NewSystem returns the system clock.
func NewSystem() System {
	return System{}
}

// NowNanos returns the current time in Unix nanoseconds.
func (System) NowNanos() int64 {
	return time.Now().UnixNano()
}

// ScheduleAt runs fn on its own goroutine once the deadline passes.
func (System) ScheduleAt(deadlineNanos int64, fn func()) port.TimerHandle {
	d := time.Until(time.Unix(0, deadlineNanos))
	if d < 0 {
		d = 0
	}
	return systemTimer{t: time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Cancel() {
	s.t.Stop()
}
