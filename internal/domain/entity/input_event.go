package entity

import "fmt"

// RawEventKind classifies events as delivered by an input source.
type RawEventKind string

const (
	RawKeyDown   RawEventKind = "key_down"
	RawKeyUp     RawEventKind = "key_up"
	RawKeyRepeat RawEventKind = "key_repeat"
	RawMotion    RawEventKind = "motion"
)

// MotionAxis identifies the hat-switch axis of a motion event.
type MotionAxis string

const (
	AxisHatX MotionAxis = "hat_x"
	AxisHatY MotionAxis = "hat_y"
)

// D-pad key codes emitted for hat-switch motion (Linux input-event-codes).
const (
	KeyCodeDpadUp    = 544
	KeyCodeDpadDown  = 545
	KeyCodeDpadLeft  = 546
	KeyCodeDpadRight = 547
)

// RawEvent is an input event before normalization.
// Key events use KeyCode; motion events use Axis and AxisValue (-1, 0, +1).
type RawEvent struct {
	Kind           RawEventKind
	KeyCode        int
	DeviceID       string
	Axis           MotionAxis
	AxisValue      int
	MetaState      int
	TimestampNanos int64
}

// InputEvent is a semantic key transition. Immutable once produced.
type InputEvent struct {
	KeyCode        int
	DeviceID       string
	IsDown         bool
	TimestampNanos int64
	MetaState      int
}

func (e InputEvent) String() string {
	edge := "up"
	if e.IsDown {
		edge = "down"
	}
	return fmt.Sprintf("%d/%s@%s t=%d", e.KeyCode, edge, e.DeviceID, e.TimestampNanos)
}
