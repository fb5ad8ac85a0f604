//go:build !linux

package inputdev

import (
	"context"
	"strconv"
	"time"

	"github.com/bnema/keymapper/internal/domain/entity"
)

// ListDevices is unavailable off linux.
func ListDevices() ([]DeviceInfo, error) {
	return nil, ErrUnsupportedPlatform
}

// ResolveKey knows no key names off linux.
func ResolveKey(string) (int, bool) {
	return 0, false
}

// KeyName formats the numeric code.
func KeyName(code int) string {
	return strconv.Itoa(code)
}

// Source is unavailable off linux.
type Source struct{}

// Open is unavailable off linux.
func Open(string, bool) (*Source, error) {
	return nil, ErrUnsupportedPlatform
}

func (*Source) Name() string { return "" }
func (*Source) Info() DeviceInfo { return DeviceInfo{} }
func (*Source) Close() error { return nil }

func (*Source) Run(context.Context, func(entity.RawEvent)) error {
	return ErrUnsupportedPlatform
}

// VirtualKeyboard is unavailable off linux.
type VirtualKeyboard struct{}

// NewVirtualKeyboard is unavailable off linux.
func NewVirtualKeyboard(string, time.Duration) (*VirtualKeyboard, error) {
	return nil, ErrUnsupportedPlatform
}

func (*VirtualKeyboard) EmitKey(context.Context, int, int, entity.KeyEventType) error {
	return ErrUnsupportedPlatform
}

func (*VirtualKeyboard) TypeText(context.Context, string) error {
	return ErrUnsupportedPlatform
}

func (*VirtualKeyboard) Close() error { return nil }
