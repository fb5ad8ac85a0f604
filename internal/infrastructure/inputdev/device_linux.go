//go:build linux

package inputdev

import (
	"fmt"
	"slices"

	"github.com/holoplot/go-evdev"
)

// ListDevices lists readable evdev nodes. Unreadable nodes are skipped.
func ListDevices() ([]DeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	devices := make([]DeviceInfo, 0, len(paths))
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		devices = append(devices, describe(p.Path, p.Name, dev))
		_ = dev.Close()
	}
	return devices, nil
}

func describe(path, name string, dev *evdev.InputDevice) DeviceInfo {
	if n, err := dev.Name(); err == nil && n != "" {
		name = n
	}
	types := dev.CapableTypes()
	info := DeviceInfo{
		Path: path,
		Name: name,
		Keys: slices.Contains(types, evdev.EV_KEY),
	}
	// Many devices emit EV_KEY; only keyboards autorepeat.
	info.Keyboard = info.Keys && slices.Contains(types, evdev.EV_REP)
	if slices.Contains(types, evdev.EV_ABS) {
		abs := dev.CapableEvents(evdev.EV_ABS)
		info.Hat = slices.Contains(abs, evdev.ABS_HAT0X) || slices.Contains(abs, evdev.ABS_HAT0Y)
	}
	return info
}
