// Package constraint decides whether a key map's constraints hold for one
// world state snapshot.
package constraint

import (
	"slices"
	"strings"

	"github.com/bnema/keymapper/internal/domain/entity"
)

// Evaluate combines refs with mode against one snapshot. An empty list
// holds. Unknown kinds never hold.
func Evaluate(refs []entity.ConstraintRef, mode entity.ConstraintMode, snapshot entity.WorldState) bool {
	if len(refs) == 0 {
		return true
	}

	if mode == entity.ConstraintModeOr {
		for _, ref := range refs {
			if Holds(ref, snapshot) {
				return true
			}
		}
		return false
	}

	for _, ref := range refs {
		if !Holds(ref, snapshot) {
			return false
		}
	}
	return true
}

// Holds evaluates a single constraint.
func Holds(ref entity.ConstraintRef, w entity.WorldState) bool {
	switch ref.Kind {
	case entity.ConstraintAppInForeground:
		return w.ForegroundApp != "" && strings.EqualFold(w.ForegroundApp, ref.Value)
	case entity.ConstraintAppNotInForeground:
		return !strings.EqualFold(w.ForegroundApp, ref.Value)
	case entity.ConstraintAppPlayingMedia:
		return slices.ContainsFunc(w.MediaPlayingApps, func(app string) bool {
			return strings.EqualFold(app, ref.Value)
		})
	case entity.ConstraintMediaPlaying:
		return len(w.MediaPlayingApps) > 0
	case entity.ConstraintMediaNotPlaying:
		return len(w.MediaPlayingApps) == 0
	case entity.ConstraintOrientation:
		return orientationMatches(w.Orientation, entity.Orientation(ref.Value))
	case entity.ConstraintScreenOn:
		return w.ScreenOn
	case entity.ConstraintScreenOff:
		return !w.ScreenOn
	case entity.ConstraintScreenLocked:
		return w.ScreenLocked
	case entity.ConstraintScreenUnlocked:
		return !w.ScreenLocked
	case entity.ConstraintWifiConnected:
		return w.WifiConnected
	case entity.ConstraintWifiDisconnected:
		return !w.WifiConnected
	case entity.ConstraintBluetoothConnected:
		return bluetoothConnected(w.BluetoothConnected, ref.Value)
	case entity.ConstraintBluetoothDisconnected:
		return !bluetoothConnected(w.BluetoothConnected, ref.Value)
	case entity.ConstraintCharging:
		return w.Charging
	case entity.ConstraintDischarging:
		return !w.Charging
	case entity.ConstraintInCall:
		return w.InCall
	case entity.ConstraintNotInCall:
		return !w.InCall
	case entity.ConstraintPhoneRinging:
		return w.Ringing
	case entity.ConstraintFlagSet:
		return w.Flags[ref.Value]
	case entity.ConstraintFlagUnset:
		return !w.Flags[ref.Value]
	default:
		return false
	}
}

// bluetoothConnected matches a device address, or any device when addr is empty.
func bluetoothConnected(devices []string, addr string) bool {
	if addr == "" {
		return len(devices) > 0
	}
	return slices.ContainsFunc(devices, func(d string) bool {
		return strings.EqualFold(d, addr)
	})
}

// orientationMatches accepts the exact rotation or its family
// (portrait = 0/180, landscape = 90/270).
func orientationMatches(current, want entity.Orientation) bool {
	if current == want {
		return true
	}
	switch want {
	case entity.OrientationPortrait:
		return current == entity.Orientation0 || current == entity.Orientation180
	case entity.OrientationLandscape:
		return current == entity.Orientation90 || current == entity.Orientation270
	default:
		return false
	}
}
