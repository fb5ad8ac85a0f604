//go:build linux

package inputdev

import (
	"context"
	"fmt"
	"sync"

	"github.com/holoplot/go-evdev"

	"github.com/bnema/keymapper/internal/application/port"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/logging"
)

const (
	keyUp     = 0
	keyDown   = 1
	keyRepeat = 2
)

var modifierKeys = map[evdev.EvCode]int{
	evdev.KEY_LEFTSHIFT:  entity.MetaShift,
	evdev.KEY_RIGHTSHIFT: entity.MetaShift,
	evdev.KEY_LEFTCTRL:   entity.MetaCtrl,
	evdev.KEY_RIGHTCTRL:  entity.MetaCtrl,
	evdev.KEY_LEFTALT:    entity.MetaAlt,
	evdev.KEY_RIGHTALT:   entity.MetaAlt,
	evdev.KEY_LEFTMETA:   entity.MetaSuper,
	evdev.KEY_RIGHTMETA:  entity.MetaSuper,
}

// Source reads one evdev device.
type Source struct {
	dev  *evdev.InputDevice
	info DeviceInfo
	grab bool

	// held counts pressed keys per modifier bit.
	held map[int]int

	closeOnce sync.Once
	closeErr  error
}

var _ port.InputSource = (*Source)(nil)

// Open opens the device at path. With grab set, Run takes exclusive access.
func Open(path string, grab bool) (*Source, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Source{
		dev:  dev,
		info: describe(path, "", dev),
		grab: grab,
		held: make(map[int]int),
	}, nil
}

// Name returns the device id used in events.
func (s *Source) Name() string {
	return s.info.ID()
}

// Info describes the opened device.
func (s *Source) Info() DeviceInfo {
	return s.info
}

// Run reads events until ctx is cancelled or the device fails.
func (s *Source) Run(ctx context.Context, sink func(entity.RawEvent)) error {
	ctx = logging.WithDevice(ctx, s.Name())
	log := logging.FromContext(ctx)

	if s.grab {
		if err := s.dev.Grab(); err != nil {
			return fmt.Errorf("grabbing %s: %w", s.info.Path, err)
		}
		defer func() { _ = s.dev.Ungrab() }()
	}

	stop := context.AfterFunc(ctx, func() { _ = s.Close() })
	defer stop()

	log.Info().Str("path", s.info.Path).Bool("grab", s.grab).Msg("reading input device")
	for {
		ev, err := s.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: %s: %v", ErrDeviceGone, s.info.Path, err)
		}
		if raw, ok := s.translate(ev); ok {
			sink(raw)
		}
	}
}

// translate turns an evdev event into a raw event. SYN, MSC and other
// axes are dropped.
func (s *Source) translate(ev *evdev.InputEvent) (entity.RawEvent, bool) {
	raw := entity.RawEvent{
		DeviceID:       s.Name(),
		TimestampNanos: int64(ev.Time.Sec)*1e9 + int64(ev.Time.Usec)*1e3,
	}

	switch ev.Type {
	case evdev.EV_KEY:
		raw.KeyCode = int(ev.Code)
		switch ev.Value {
		case keyUp:
			raw.Kind = entity.RawKeyUp
		case keyDown:
			raw.Kind = entity.RawKeyDown
		case keyRepeat:
			raw.Kind = entity.RawKeyRepeat
		default:
			return raw, false
		}
		s.trackModifier(ev.Code, raw.Kind)
	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_HAT0X:
			raw.Axis = entity.AxisHatX
		case evdev.ABS_HAT0Y:
			raw.Axis = entity.AxisHatY
		default:
			return raw, false
		}
		raw.Kind = entity.RawMotion
		raw.AxisValue = sign(ev.Value)
	default:
		return raw, false
	}

	raw.MetaState = s.metaState()
	return raw, true
}

func (s *Source) trackModifier(code evdev.EvCode, kind entity.RawEventKind) {
	bit, ok := modifierKeys[code]
	if !ok {
		return
	}
	switch kind {
	case entity.RawKeyDown:
		s.held[bit]++
	case entity.RawKeyUp:
		if s.held[bit] > 0 {
			s.held[bit]--
		}
	}
}

func (s *Source) metaState() int {
	meta := 0
	for bit, n := range s.held {
		if n > 0 {
			meta |= bit
		}
	}
	return meta
}

func sign(v int32) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// Close releases the device. Safe to call more than once.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.dev.Close()
	})
	return s.closeErr
}
