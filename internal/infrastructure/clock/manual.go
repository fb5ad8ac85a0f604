package clock

import (
	"container/heap"
	"sync"

	"github.com/bnema/keymapper/internal/application/port"
)

// Manual is a clock that only moves when told to. Due timers fire
// synchronously inside Advance/AdvanceTo, in deadline order, with the clock
// set to each timer's deadline while it runs.
type Manual struct {
	mu     sync.Mutex
	now    int64
	seq    uint64
	timers timerHeap
}

var _ port.TimeSource = (*Manual)(nil)

// NewManual returns a manual clock starting at start nanoseconds.
func NewManual(start int64) *Manual {
	return &Manual{now: start}
}

// NowNanos returns the current manual time.
func (m *Manual) NowNanos() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// ScheduleAt registers fn to run when the clock reaches deadlineNanos.
func (m *Manual) ScheduleAt(deadlineNanos int64, fn func()) port.TimerHandle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{clock: m, deadline: deadlineNanos, seq: m.seq, fn: fn}
	heap.Push(&m.timers, t)
	return t
}

// Advance moves the clock forward by d nanoseconds.
func (m *Manual) Advance(d int64) {
	m.AdvanceTo(m.NowNanos() + d)
}

// AdvanceTo moves the clock to target, firing every timer due on the way,
// including timers scheduled by the callbacks themselves.
func (m *Manual) AdvanceTo(target int64) {
	for {
		m.mu.Lock()
		if len(m.timers) == 0 || m.timers[0].deadline > target {
			if target > m.now {
				m.now = target
			}
			m.mu.Unlock()
			return
		}
		t := heap.Pop(&m.timers).(*manualTimer)
		t.index = -1
		if t.deadline > m.now {
			m.now = t.deadline
		}
		m.mu.Unlock()

		t.fn()
	}
}

// Pending returns how many timers are still scheduled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

type manualTimer struct {
	clock    *Manual
	deadline int64
	seq      uint64
	fn       func()
	index    int
}

func (t *manualTimer) Cancel() {
	m := t.clock
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.index >= 0 && t.index < len(m.timers) && m.timers[t.index] == t {
		heap.Remove(&m.timers, t.index)
		t.index = -1
	}
}

type timerHeap []*manualTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline != h[j].deadline {
		return h[i].deadline < h[j].deadline
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
