package port

// Clock reads monotonic time in nanoseconds on the same timeline as input
// event timestamps.
type Clock interface {
	NowNanos() int64
}

// TimerHandle cancels a scheduled callback. Cancel after the callback fired
// is a no-op.
type TimerHandle interface {
	Cancel()
}

// TimerScheduler runs fn once the clock reaches deadlineNanos. A deadline in
// the past fires as soon as possible. fn runs on a scheduler goroutine.
type TimerScheduler interface {
	ScheduleAt(deadlineNanos int64, fn func()) TimerHandle
}

// TimeSource bundles a clock with its scheduler.
type TimeSource interface {
	Clock
	TimerScheduler
}
