//go:build linux

package inputdev

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/bnema/keymapper/internal/application/port"
	"github.com/bnema/keymapper/internal/domain/entity"
)

var metaKeys = []struct {
	bit  int
	code evdev.EvCode
}{
	{entity.MetaCtrl, evdev.KEY_LEFTCTRL},
	{entity.MetaShift, evdev.KEY_LEFTSHIFT},
	{entity.MetaAlt, evdev.KEY_LEFTALT},
	{entity.MetaSuper, evdev.KEY_LEFTMETA},
}

// VirtualKeyboard is a uinput keyboard for key and text actions.
type VirtualKeyboard struct {
	dev      *evdev.InputDevice
	keyDelay time.Duration
	mu       sync.Mutex
}

var _ port.KeyEmitter = (*VirtualKeyboard)(nil)

// NewVirtualKeyboard creates a uinput device able to emit every key.
func NewVirtualKeyboard(name string, keyDelay time.Duration) (*VirtualKeyboard, error) {
	keys := make([]evdev.EvCode, 0, len(evdev.KEYToString))
	for code := range evdev.KEYToString {
		keys = append(keys, code)
	}

	dev, err := evdev.CreateDevice(name, evdev.InputID{
		BusType: 0x03,
		Vendor:  0x4b4d,
		Product: 0x0001,
		Version: 1,
	}, map[evdev.EvType][]evdev.EvCode{evdev.EV_KEY: keys})
	if err != nil {
		return nil, fmt.Errorf("creating virtual keyboard (is /dev/uinput writable?): %w", err)
	}
	return &VirtualKeyboard{dev: dev, keyDelay: keyDelay}, nil
}

// EmitKey implements port.KeyEmitter.
func (k *VirtualKeyboard) EmitKey(ctx context.Context, keyCode, metaState int, eventType entity.KeyEventType) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	code := evdev.EvCode(keyCode)
	switch eventType {
	case entity.KeyEventDown:
		return k.press(code, metaState)
	case entity.KeyEventUp:
		return k.release(code, metaState)
	default:
		if err := k.press(code, metaState); err != nil {
			return err
		}
		if err := k.pause(ctx); err != nil {
			return errors.Join(err, k.release(code, metaState))
		}
		return k.release(code, metaState)
	}
}

// TypeText types text as US-layout keystrokes.
func (k *VirtualKeyboard) TypeText(ctx context.Context, text string) error {
	keys, err := textKeys(text)
	if err != nil {
		return err
	}
	for _, key := range keys {
		code, ok := ResolveKey(key.Name)
		if !ok {
			return fmt.Errorf("unknown key %s", key.Name)
		}
		meta := 0
		if key.Shift {
			meta = entity.MetaShift
		}
		if err := k.EmitKey(ctx, code, meta, entity.KeyEventDownUp); err != nil {
			return err
		}
	}
	return nil
}

func (k *VirtualKeyboard) press(code evdev.EvCode, metaState int) error {
	for _, m := range metaKeys {
		if metaState&m.bit != 0 {
			if err := k.write(m.code, keyDown); err != nil {
				return err
			}
		}
	}
	return k.write(code, keyDown)
}

func (k *VirtualKeyboard) release(code evdev.EvCode, metaState int) error {
	err := k.write(code, keyUp)
	for i := len(metaKeys) - 1; i >= 0; i-- {
		if metaState&metaKeys[i].bit != 0 {
			err = errors.Join(err, k.write(metaKeys[i].code, keyUp))
		}
	}
	return err
}

func (k *VirtualKeyboard) pause(ctx context.Context) error {
	if k.keyDelay <= 0 {
		return nil
	}
	t := time.NewTimer(k.keyDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (k *VirtualKeyboard) write(code evdev.EvCode, value int32) error {
	err := k.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value})
	return errors.Join(err, k.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT}))
}

// Close destroys the virtual device.
func (k *VirtualKeyboard) Close() error {
	return k.dev.Close()
}
