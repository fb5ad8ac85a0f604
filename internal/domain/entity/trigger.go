package entity

import "slices"

// ClickType is how a trigger key must be pressed.
type ClickType string

const (
	ClickShort  ClickType = "short"
	ClickLong   ClickType = "long"
	ClickDouble ClickType = "double"
)

// TriggerMode decides how the keys of a trigger combine.
type TriggerMode string

const (
	// TriggerSingle is exactly one key.
	TriggerSingle TriggerMode = "single"
	// TriggerParallel requires every key held down at the same time, in any order.
	TriggerParallel TriggerMode = "parallel"
	// TriggerSequence requires the keys pressed one after another in listed order.
	TriggerSequence TriggerMode = "sequence"
)

// SequenceInterrupt decides what an unlisted key does to a sequence in progress.
type SequenceInterrupt string

const (
	SequenceInterruptReset  SequenceInterrupt = "reset"
	SequenceInterruptIgnore SequenceInterrupt = "ignore"
)

// TriggerKey is one element of a trigger. An empty DeviceID matches any device.
type TriggerKey struct {
	KeyCode   int
	DeviceID  string
	ClickType ClickType
}

// Matches reports whether an event is a transition of this key.
func (k TriggerKey) Matches(ev InputEvent) bool {
	if k.KeyCode != ev.KeyCode {
		return false
	}
	return k.DeviceID == "" || k.DeviceID == ev.DeviceID
}

// SameKey reports whether two trigger keys address the same physical key.
func (k TriggerKey) SameKey(o TriggerKey) bool {
	return k.KeyCode == o.KeyCode && k.DeviceID == o.DeviceID
}

// Overlaps reports whether one physical press can satisfy both keys: same
// code, and the devices are equal or either key accepts any device.
func (k TriggerKey) Overlaps(o TriggerKey) bool {
	if k.KeyCode != o.KeyCode {
		return false
	}
	return k.DeviceID == "" || o.DeviceID == "" || k.DeviceID == o.DeviceID
}

// Trigger is the configured input pattern of a key map.
// Zero timing fields fall back to the engine defaults.
type Trigger struct {
	Mode                 TriggerMode
	Keys                 []TriggerKey
	LongPressDelayMs     int
	DoublePressTimeoutMs int
	SequenceTimeoutMs    int
	SequenceInterrupt    SequenceInterrupt
}

// ClickType returns the click type shared by the trigger keys.
// Sequences report ClickShort since every element is a short press.
func (t Trigger) ClickType() ClickType {
	if t.Mode == TriggerSequence || len(t.Keys) == 0 {
		return ClickShort
	}
	return t.Keys[0].ClickType
}

// References reports whether the event touches any key of the trigger.
func (t Trigger) References(ev InputEvent) bool {
	for _, k := range t.Keys {
		if k.Matches(ev) {
			return true
		}
	}
	return false
}

// SameKeySet reports whether both triggers use exactly the same physical keys,
// ignoring order and click type.
func (t Trigger) SameKeySet(o Trigger) bool {
	if len(t.Keys) != len(o.Keys) {
		return false
	}
	for _, k := range t.Keys {
		found := false
		for _, ok := range o.Keys {
			if k.SameKey(ok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// OverlapsKeySet reports whether one press of the same keys can satisfy both
// triggers. Device scoping is honored through TriggerKey.Overlaps.
func (t Trigger) OverlapsKeySet(o Trigger) bool {
	if len(t.Keys) != len(o.Keys) {
		return false
	}
	covers := func(a, b []TriggerKey) bool {
		for _, k := range a {
			if !slices.ContainsFunc(b, k.Overlaps) {
				return false
			}
		}
		return true
	}
	return covers(t.Keys, o.Keys) && covers(o.Keys, t.Keys)
}

// Contains reports whether every key of o is also a key of t.
func (t Trigger) Contains(o Trigger) bool {
	for _, ok := range o.Keys {
		found := false
		for _, k := range t.Keys {
			if k.SameKey(ok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
