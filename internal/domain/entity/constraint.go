package entity

import "slices"

// ConstraintKind names a condition over the world state.
type ConstraintKind string

const (
	ConstraintAppInForeground       ConstraintKind = "app_in_foreground"
	ConstraintAppNotInForeground    ConstraintKind = "app_not_in_foreground"
	ConstraintAppPlayingMedia       ConstraintKind = "app_playing_media"
	ConstraintMediaPlaying          ConstraintKind = "media_playing"
	ConstraintMediaNotPlaying       ConstraintKind = "media_not_playing"
	ConstraintOrientation           ConstraintKind = "orientation"
	ConstraintScreenOn              ConstraintKind = "screen_on"
	ConstraintScreenOff             ConstraintKind = "screen_off"
	ConstraintScreenLocked          ConstraintKind = "screen_locked"
	ConstraintScreenUnlocked        ConstraintKind = "screen_unlocked"
	ConstraintWifiConnected         ConstraintKind = "wifi_connected"
	ConstraintWifiDisconnected      ConstraintKind = "wifi_disconnected"
	ConstraintBluetoothConnected    ConstraintKind = "bluetooth_connected"
	ConstraintBluetoothDisconnected ConstraintKind = "bluetooth_disconnected"
	ConstraintCharging              ConstraintKind = "charging"
	ConstraintDischarging           ConstraintKind = "discharging"
	ConstraintInCall                ConstraintKind = "in_call"
	ConstraintNotInCall             ConstraintKind = "not_in_call"
	ConstraintPhoneRinging          ConstraintKind = "phone_ringing"
	ConstraintFlagSet               ConstraintKind = "flag_set"
	ConstraintFlagUnset             ConstraintKind = "flag_unset"
)

// KnownConstraintKinds lists every kind the evaluator understands.
func KnownConstraintKinds() []ConstraintKind {
	return []ConstraintKind{
		ConstraintAppInForeground, ConstraintAppNotInForeground, ConstraintAppPlayingMedia,
		ConstraintMediaPlaying, ConstraintMediaNotPlaying, ConstraintOrientation,
		ConstraintScreenOn, ConstraintScreenOff, ConstraintScreenLocked, ConstraintScreenUnlocked,
		ConstraintWifiConnected, ConstraintWifiDisconnected,
		ConstraintBluetoothConnected, ConstraintBluetoothDisconnected,
		ConstraintCharging, ConstraintDischarging,
		ConstraintInCall, ConstraintNotInCall, ConstraintPhoneRinging,
		ConstraintFlagSet, ConstraintFlagUnset,
	}
}

// RequiresValue reports whether the kind needs a ConstraintRef.Value.
func (k ConstraintKind) RequiresValue() bool {
	switch k {
	case ConstraintAppInForeground, ConstraintAppNotInForeground, ConstraintAppPlayingMedia,
		ConstraintOrientation, ConstraintFlagSet, ConstraintFlagUnset:
		return true
	default:
		return false
	}
}

// IsKnown reports whether the evaluator understands the kind.
func (k ConstraintKind) IsKnown() bool {
	return slices.Contains(KnownConstraintKinds(), k)
}

// ConstraintMode combines the constraints of a key map.
type ConstraintMode string

const (
	ConstraintModeAnd ConstraintMode = "and"
	ConstraintModeOr  ConstraintMode = "or"
)

// ConstraintRef is a named condition. Value is kind specific: an app id,
// an orientation, a bluetooth address (optional) or a flag name.
type ConstraintRef struct {
	Kind  ConstraintKind
	Value string
}

// Orientation of the primary display.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
	Orientation0         Orientation = "0"
	Orientation90        Orientation = "90"
	Orientation180       Orientation = "180"
	Orientation270       Orientation = "270"
)

// WorldState is one consistent snapshot of external state.
type WorldState struct {
	ForegroundApp      string
	Orientation        Orientation
	ScreenOn           bool
	ScreenLocked       bool
	WifiConnected      bool
	BluetoothConnected []string
	Charging           bool
	InCall             bool
	Ringing            bool
	MediaPlayingApps   []string
	Flags              map[string]bool
	CapturedAtNanos    int64
}

// Clone returns a deep copy so the snapshot cannot change under a reader.
func (w WorldState) Clone() WorldState {
	c := w
	c.BluetoothConnected = slices.Clone(w.BluetoothConnected)
	c.MediaPlayingApps = slices.Clone(w.MediaPlayingApps)
	if w.Flags != nil {
		c.Flags = make(map[string]bool, len(w.Flags))
		for k, v := range w.Flags {
			c.Flags[k] = v
		}
	}
	return c
}
