// Package replay runs recorded or hand-written input scripts through the
// engine on a manual clock, so trigger timing can be checked without devices.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/infrastructure/config"
)

const defaultDevice = "replay"

// ScriptFile is the YAML form of a replay script.
//
//	device: keyboard
//	world:
//	  foreground_app: mpv
//	  flags: {gaming: false}
//	steps:
//	  - {at: 0, down: KEY_VOLUMEUP}
//	  - {at: 80, up: KEY_VOLUMEUP}
//	  - {at: 400, flags: {gaming: true}}
//	until: 2000
type ScriptFile struct {
	Device string     `yaml:"device"`
	World  WorldFile  `yaml:"world"`
	Steps  []StepFile `yaml:"steps"`
	Until  int64      `yaml:"until"`
}

// WorldFile seeds or changes the world state.
type WorldFile struct {
	ForegroundApp *string         `yaml:"foreground_app"`
	ScreenOn      *bool           `yaml:"screen_on"`
	ScreenLocked  *bool           `yaml:"screen_locked"`
	Charging      *bool           `yaml:"charging"`
	Flags         map[string]bool `yaml:"flags"`
}

// StepFile is one point on the timeline. A step may change the world, call
// the engine and send input at the same instant, in that order.
type StepFile struct {
	WorldFile `yaml:",inline"`

	At      int64  `yaml:"at"`
	Device  string `yaml:"device"`
	Down    string `yaml:"down"`
	Up      string `yaml:"up"`
	Repeat  string `yaml:"repeat"`
	HatX    *int   `yaml:"hat_x"`
	HatY    *int   `yaml:"hat_y"`
	Enable  string `yaml:"enable"`
	Disable string `yaml:"disable"`
	Trigger string `yaml:"trigger"`
	Unplug  bool   `yaml:"unplug"`
}

// Step is a resolved timeline entry. Times are in milliseconds.
type Step struct {
	AtMs    int64
	World   func(*entity.WorldState)
	Enable  string
	Disable string
	Trigger string
	Unplug  string
	Events  []entity.RawEvent
}

// Script is a parsed, time-ordered replay script.
type Script struct {
	Seed    func(*entity.WorldState)
	Steps   []Step
	UntilMs int64
}

// LoadScript reads a script file.
func LoadScript(path string, resolve config.KeyResolver) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay script: %w", err)
	}
	defer f.Close()
	return ParseScript(f, resolve)
}

// ParseScript decodes and resolves a script. Step times must not go back.
func ParseScript(r io.Reader, resolve config.KeyResolver) (*Script, error) {
	var file ScriptFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse replay script: %w", err)
	}

	device := file.Device
	if device == "" {
		device = defaultDevice
	}

	script := &Script{Seed: file.World.apply, UntilMs: file.Until}
	var errs []error
	var last int64
	for i, sf := range file.Steps {
		if sf.At < last {
			errs = append(errs, fmt.Errorf("step %d: at %d is before the previous step (%d)", i, sf.At, last))
		}
		last = sf.At

		step, err := sf.resolve(device, resolve)
		if err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i, err))
			continue
		}
		script.Steps = append(script.Steps, step)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if script.UntilMs < last {
		script.UntilMs = last
	}
	return script, nil
}

func (sf StepFile) resolve(device string, resolve config.KeyResolver) (Step, error) {
	if sf.Device != "" {
		device = sf.Device
	}
	step := Step{
		AtMs:    sf.At,
		Enable:  sf.Enable,
		Disable: sf.Disable,
		Trigger: sf.Trigger,
	}
	if sf.WorldFile.changes() {
		step.World = sf.WorldFile.apply
	}
	if sf.Unplug {
		step.Unplug = device
	}

	ts := sf.At * nanosPerMs
	keys := []struct {
		name string
		kind entity.RawEventKind
	}{
		{sf.Down, entity.RawKeyDown},
		{sf.Repeat, entity.RawKeyRepeat},
		{sf.Up, entity.RawKeyUp},
	}
	for _, k := range keys {
		if k.name == "" {
			continue
		}
		code, err := config.ResolveKey(resolve, k.name)
		if err != nil {
			return Step{}, err
		}
		step.Events = append(step.Events, entity.RawEvent{
			Kind:           k.kind,
			KeyCode:        code,
			DeviceID:       device,
			TimestampNanos: ts,
		})
	}
	hats := []struct {
		axis  entity.MotionAxis
		value *int
	}{
		{entity.AxisHatX, sf.HatX},
		{entity.AxisHatY, sf.HatY},
	}
	for _, h := range hats {
		if h.value == nil {
			continue
		}
		if *h.value < -1 || *h.value > 1 {
			return Step{}, fmt.Errorf("%s must be -1, 0 or 1", h.axis)
		}
		step.Events = append(step.Events, entity.RawEvent{
			Kind:           entity.RawMotion,
			DeviceID:       device,
			Axis:           h.axis,
			AxisValue:      *h.value,
			TimestampNanos: ts,
		})
	}
	return step, nil
}

func (w WorldFile) changes() bool {
	return w.ForegroundApp != nil || w.ScreenOn != nil || w.ScreenLocked != nil || w.Charging != nil || len(w.Flags) > 0
}

func (w WorldFile) apply(ws *entity.WorldState) {
	if w.ForegroundApp != nil {
		ws.ForegroundApp = *w.ForegroundApp
	}
	if w.ScreenOn != nil {
		ws.ScreenOn = *w.ScreenOn
	}
	if w.ScreenLocked != nil {
		ws.ScreenLocked = *w.ScreenLocked
	}
	if w.Charging != nil {
		ws.Charging = *w.Charging
	}
	if len(w.Flags) > 0 && ws.Flags == nil {
		ws.Flags = make(map[string]bool, len(w.Flags))
	}
	for k, v := range w.Flags {
		ws.Flags[k] = v
	}
}
