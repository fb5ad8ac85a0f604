// Package normalizer turns raw input events into semantic key transitions.
package normalizer

import (
	"slices"

	"github.com/bnema/keymapper/internal/domain/entity"
)

type keyID struct {
	device string
	code   int
}

// Normalizer tracks which keys are down per device. It is not safe for
// concurrent use; the engine calls it from its serialized queue.
type Normalizer struct {
	down map[keyID]struct{}
	// hat holds the D-pad code currently pressed per device and axis.
	hat map[hatID]int
}

type hatID struct {
	device string
	axis   entity.MotionAxis
}

// New returns an empty normalizer.
func New() *Normalizer {
	return &Normalizer{
		down: make(map[keyID]struct{}),
		hat:  make(map[hatID]int),
	}
}

// Normalize converts one raw event into zero or more InputEvents.
// Hardware auto-repeat, a second down for a key already down, and an up for a
// key that is not down produce nothing. Hat motion produces D-pad key edges.
func (n *Normalizer) Normalize(raw entity.RawEvent) []entity.InputEvent {
	switch raw.Kind {
	case entity.RawKeyRepeat:
		return nil
	case entity.RawKeyDown:
		if ev, ok := n.press(raw.DeviceID, raw.KeyCode, raw.MetaState, raw.TimestampNanos); ok {
			return []entity.InputEvent{ev}
		}
		return nil
	case entity.RawKeyUp:
		if ev, ok := n.release(raw.DeviceID, raw.KeyCode, raw.MetaState, raw.TimestampNanos); ok {
			return []entity.InputEvent{ev}
		}
		return nil
	case entity.RawMotion:
		return n.motion(raw)
	default:
		return nil
	}
}

// ReleaseDevice returns an up event for every key still down on a device
// that went away, in key code order, and forgets them.
func (n *Normalizer) ReleaseDevice(deviceID string, ts int64) []entity.InputEvent {
	var codes []int
	for k := range n.down {
		if k.device == deviceID {
			codes = append(codes, k.code)
		}
	}
	slices.Sort(codes)

	out := make([]entity.InputEvent, 0, len(codes))
	for _, code := range codes {
		delete(n.down, keyID{device: deviceID, code: code})
		out = append(out, entity.InputEvent{KeyCode: code, DeviceID: deviceID, TimestampNanos: ts})
	}
	for k := range n.hat {
		if k.device == deviceID {
			delete(n.hat, k)
		}
	}
	return out
}

// IsDown reports whether the key is currently down on the device.
func (n *Normalizer) IsDown(deviceID string, keyCode int) bool {
	_, ok := n.down[keyID{device: deviceID, code: keyCode}]
	return ok
}

func (n *Normalizer) press(device string, code, meta int, ts int64) (entity.InputEvent, bool) {
	id := keyID{device: device, code: code}
	if _, ok := n.down[id]; ok {
		return entity.InputEvent{}, false
	}
	n.down[id] = struct{}{}
	return entity.InputEvent{KeyCode: code, DeviceID: device, IsDown: true, TimestampNanos: ts, MetaState: meta}, true
}

func (n *Normalizer) release(device string, code, meta int, ts int64) (entity.InputEvent, bool) {
	id := keyID{device: device, code: code}
	if _, ok := n.down[id]; !ok {
		return entity.InputEvent{}, false
	}
	delete(n.down, id)
	return entity.InputEvent{KeyCode: code, DeviceID: device, IsDown: false, TimestampNanos: ts, MetaState: meta}, true
}

func (n *Normalizer) motion(raw entity.RawEvent) []entity.InputEvent {
	id := hatID{device: raw.DeviceID, axis: raw.Axis}

	var next int
	switch raw.Axis {
	case entity.AxisHatX:
		next = hatCode(raw.AxisValue, entity.KeyCodeDpadLeft, entity.KeyCodeDpadRight)
	case entity.AxisHatY:
		next = hatCode(raw.AxisValue, entity.KeyCodeDpadUp, entity.KeyCodeDpadDown)
	default:
		return nil
	}

	prev := n.hat[id]
	if prev == next {
		return nil
	}

	var out []entity.InputEvent
	if prev != 0 {
		if ev, ok := n.release(raw.DeviceID, prev, raw.MetaState, raw.TimestampNanos); ok {
			out = append(out, ev)
		}
		delete(n.hat, id)
	}
	if next != 0 {
		if ev, ok := n.press(raw.DeviceID, next, raw.MetaState, raw.TimestampNanos); ok {
			out = append(out, ev)
		}
		n.hat[id] = next
	}
	return out
}

// hatCode maps a hat axis value to the D-pad code for its direction.
func hatCode(value, negative, positive int) int {
	switch {
	case value < 0:
		return negative
	case value > 0:
		return positive
	default:
		return 0
	}
}
