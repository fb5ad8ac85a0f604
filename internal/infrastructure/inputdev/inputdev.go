// Package inputdev reads key events from evdev devices and writes them to a
// uinput virtual keyboard.
package inputdev

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnsupportedPlatform is returned on systems without evdev.
var ErrUnsupportedPlatform = errors.New("evdev input is only supported on linux")

// ErrDeviceGone is returned by Source.Run when the device stops delivering events.
var ErrDeviceGone = errors.New("input device gone")

// DeviceInfo describes one evdev node.
type DeviceInfo struct {
	Path string
	Name string
	// Keyboard is set for devices emitting EV_KEY with autorepeat.
	Keyboard bool
	// Keys is set for any device emitting EV_KEY.
	Keys bool
	// Hat is set for devices with a hat switch (d-pad).
	Hat bool
}

// ID is the device id carried in events: the device name, which survives
// reconnects unlike the event node path.
func (d DeviceInfo) ID() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Path
}

// SelectDevices picks the devices to read. Filters match a path or a
// case-insensitive name; no filters selects every keyboard.
func SelectDevices(devices []DeviceInfo, filters []string) ([]DeviceInfo, error) {
	var selected []DeviceInfo
	if len(filters) == 0 {
		for _, d := range devices {
			if d.Keyboard {
				selected = append(selected, d)
			}
		}
		if len(selected) == 0 {
			return nil, errors.New("no keyboard found (check permissions on /dev/input)")
		}
		return selected, nil
	}

	var missing []string
	for _, f := range filters {
		idx := slices.IndexFunc(devices, func(d DeviceInfo) bool {
			return d.Path == f || strings.EqualFold(d.Name, f)
		})
		if idx < 0 {
			missing = append(missing, f)
			continue
		}
		if !slices.ContainsFunc(selected, func(d DeviceInfo) bool { return d.Path == devices[idx].Path }) {
			selected = append(selected, devices[idx])
		}
	}
	if len(missing) > 0 {
		return selected, fmt.Errorf("input devices not found: %s", strings.Join(missing, ", "))
	}
	return selected, nil
}
