package engine

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/bnema/keymapper/internal/logging"
)

// Dispatcher runs execution jobs. Jobs submitted to the same lane run in
// submission order; different lanes may run concurrently.
type Dispatcher interface {
	Submit(lane string, job func())
	// Retire releases a lane that will not be used again. Jobs already
	// queued on it still run.
	Retire(lane string)
	Close()
}

// SyncDispatcher runs every job inline on the submitting goroutine.
type SyncDispatcher struct{}

// NewSyncDispatcher returns a dispatcher for tests and replay.
func NewSyncDispatcher() *SyncDispatcher {
	return &SyncDispatcher{}
}

// Submit runs job immediately.
func (SyncDispatcher) Submit(_ string, job func()) {
	job()
}

// Retire is a no-op.
func (SyncDispatcher) Retire(string) {}

// Close is a no-op.
func (SyncDispatcher) Close() {}

// DispatcherStats counts jobs across all lanes.
type DispatcherStats struct {
	Submitted uint64
	Executed  uint64
	Dropped   uint64
	Panicked  uint64
	Lanes     int
}

// AsyncDispatcher gives each lane its own goroutine and bounded queue. A job
// submitted to a full lane is dropped.
type AsyncDispatcher struct {
	ctx       context.Context
	queueSize int

	mu     sync.Mutex
	lanes  map[string]chan func()
	closed bool
	wg     sync.WaitGroup

	submitted atomic.Uint64
	executed  atomic.Uint64
	dropped   atomic.Uint64
	panicked  atomic.Uint64
}

// NewAsyncDispatcher creates a dispatcher whose lanes buffer queueSize jobs.
func NewAsyncDispatcher(ctx context.Context, queueSize int) *AsyncDispatcher {
	if queueSize <= 0 {
		queueSize = defaultLaneQueueSize
	}
	return &AsyncDispatcher{
		ctx:       ctx,
		queueSize: queueSize,
		lanes:     make(map[string]chan func()),
	}
}

// Submit queues job on lane, starting the lane on first use.
func (d *AsyncDispatcher) Submit(lane string, job func()) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.dropped.Add(1)
		return
	}
	ch, ok := d.lanes[lane]
	if !ok {
		ch = make(chan func(), d.queueSize)
		d.lanes[lane] = ch
		d.wg.Add(1)
		go d.run(lane, ch)
	}

	select {
	case ch <- job:
		d.submitted.Add(1)
	default:
		d.dropped.Add(1)
		logging.FromContext(d.ctx).Warn().
			Str("lane", lane).
			Int("queue_size", d.queueSize).
			Msg("dispatch lane full, dropping execution")
	}
	d.mu.Unlock()
}

// Retire closes the lane's queue and forgets it. The lane goroutine exits once
// the queued jobs ran; a later Submit on the same name starts a fresh lane.
func (d *AsyncDispatcher) Retire(lane string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if ch, ok := d.lanes[lane]; ok {
		close(ch)
		delete(d.lanes, lane)
	}
}

// Close stops accepting jobs and waits for queued jobs to finish.
func (d *AsyncDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.lanes {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Stats returns a snapshot of the counters.
func (d *AsyncDispatcher) Stats() DispatcherStats {
	d.mu.Lock()
	lanes := len(d.lanes)
	d.mu.Unlock()

	return DispatcherStats{
		Submitted: d.submitted.Load(),
		Executed:  d.executed.Load(),
		Dropped:   d.dropped.Load(),
		Panicked:  d.panicked.Load(),
		Lanes:     lanes,
	}
}

func (d *AsyncDispatcher) run(lane string, ch <-chan func()) {
	defer d.wg.Done()
	for job := range ch {
		d.execute(lane, job)
	}
}

func (d *AsyncDispatcher) execute(lane string, job func()) {
	defer func() {
		if r := recover(); r != nil {
			d.panicked.Add(1)
			logging.FromContext(d.ctx).Error().
				Str("lane", lane).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("dispatch job panicked")
		}
	}()
	job()
	d.executed.Add(1)
}
