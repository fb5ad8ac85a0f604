//go:build linux

package inputdev

import "github.com/holoplot/go-evdev"

// ResolveKey maps an evdev key name such as KEY_VOLUMEUP to its code.
func ResolveKey(name string) (int, bool) {
	code, ok := evdev.KEYFromString[name]
	return int(code), ok
}

// KeyName returns the evdev name of a key code.
func KeyName(code int) string {
	return evdev.CodeName(evdev.EV_KEY, evdev.EvCode(code))
}
