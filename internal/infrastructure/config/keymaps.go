package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bnema/keymapper/internal/application/port"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/logging"
)

// KeyResolver maps a key name such as KEY_VOLUMEUP to its code.
type KeyResolver func(name string) (int, bool)

// actionNamespace derives stable action ids for actions without one.
var actionNamespace = uuid.MustParse("6f1c3f9e-52a4-4b57-9d0e-6b1c1f4f7a10")

// ResolveKey resolves name through resolve and falls back to a decimal code.
func ResolveKey(resolve KeyResolver, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("key is empty")
	}
	if resolve != nil {
		if code, ok := resolve(strings.ToUpper(name)); ok {
			return code, nil
		}
	}
	code, err := strconv.Atoi(name)
	if err != nil {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return code, nil
}

var modifierBits = map[string]int{
	"shift":   entity.MetaShift,
	"ctrl":    entity.MetaCtrl,
	"control": entity.MetaCtrl,
	"alt":     entity.MetaAlt,
	"super":   entity.MetaSuper,
	"meta":    entity.MetaSuper,
}

// ToEntity converts the entry and validates the result. Problems are
// reported as one *entity.ConfigurationError.
func (c KeyMapConfig) ToEntity(resolve KeyResolver) (entity.KeyMap, error) {
	var problems []string

	km := entity.KeyMap{
		ID:             strings.TrimSpace(c.ID),
		Name:           c.Name,
		Enabled:        c.Enabled == nil || *c.Enabled,
		ConstraintMode: entity.ConstraintMode(orDefault(c.ConstraintMode, string(entity.ConstraintModeAnd))),
	}

	km.Trigger = entity.Trigger{
		Mode:                 entity.TriggerMode(orDefault(c.Trigger.Mode, string(entity.TriggerSingle))),
		LongPressDelayMs:     c.Trigger.LongPressDelayMs,
		DoublePressTimeoutMs: c.Trigger.DoublePressTimeoutMs,
		SequenceTimeoutMs:    c.Trigger.SequenceTimeoutMs,
		SequenceInterrupt:    entity.SequenceInterrupt(strings.ToLower(c.Trigger.SequenceInterrupt)),
	}
	for i, k := range c.Trigger.Keys {
		code, err := ResolveKey(resolve, k.Key)
		if err != nil {
			problems = append(problems, fmt.Sprintf("trigger.keys[%d] %v", i, err))
		}
		km.Trigger.Keys = append(km.Trigger.Keys, entity.TriggerKey{
			KeyCode:   code,
			DeviceID:  k.Device,
			ClickType: entity.ClickType(orDefault(k.Click, string(entity.ClickShort))),
		})
	}

	for i, a := range c.Actions {
		action, actionProblems := a.toEntity(km.ID, i, resolve)
		problems = append(problems, actionProblems...)
		km.Actions = append(km.Actions, action)
	}

	for _, cc := range c.Constraints {
		km.Constraints = append(km.Constraints, entity.ConstraintRef{
			Kind:  entity.ConstraintKind(strings.ToLower(cc.Kind)),
			Value: cc.Value,
		})
	}

	if len(problems) > 0 {
		return km, &entity.ConfigurationError{KeyMapID: km.ID, Problems: problems}
	}
	return km, km.Validate()
}

func (a ActionConfig) toEntity(keyMapID string, index int, resolve KeyResolver) (entity.Action, []string) {
	var problems []string
	prefix := fmt.Sprintf("actions[%d]", index)

	action := entity.Action{
		ID:                a.ID,
		Multiplier:        a.Multiplier,
		DelayBeforeNextMs: a.DelayBeforeNextMs,
	}
	if action.ID == "" {
		action.ID = uuid.NewSHA1(actionNamespace, []byte(fmt.Sprintf("%s/%d", keyMapID, index))).String()
	}
	if action.Multiplier == 0 {
		action.Multiplier = 1
	}

	payload := entity.ActionPayload{
		Kind:     entity.ActionKind(strings.ToLower(a.Kind)),
		Text:     a.Text,
		Command:  a.Command,
		Args:     a.Args,
		SystemID: a.System,
	}
	if payload.Kind == "" {
		payload.Kind = inferActionKind(a)
	}
	if payload.Kind == entity.ActionKindKey {
		code, err := ResolveKey(resolve, a.Key)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s %v", prefix, err))
		}
		payload.KeyCode = code
	}
	for _, m := range a.Modifiers {
		bit, ok := modifierBits[strings.ToLower(strings.TrimSpace(m))]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s unknown modifier %q", prefix, m))
			continue
		}
		payload.MetaState |= bit
	}
	action.Payload = payload

	if a.Repeat != nil {
		action.Repeat = &entity.RepeatPolicy{
			RateMs:  a.Repeat.RateMs,
			DelayMs: a.Repeat.DelayMs,
			Stop:    entity.StopCondition(orDefault(a.Repeat.Stop, string(entity.StopTriggerReleased))),
			Limit:   a.Repeat.Limit,
		}
	}
	if a.HoldDown != nil {
		stop := entity.StopTriggerReleased
		if a.HoldDown.DurationMs > 0 {
			stop = entity.StopNone
		}
		action.HoldDown = &entity.HoldDownPolicy{
			DurationMs: a.HoldDown.DurationMs,
			Stop:       entity.StopCondition(orDefault(a.HoldDown.Stop, string(stop))),
		}
	}

	return action, problems
}

func inferActionKind(a ActionConfig) entity.ActionKind {
	switch {
	case a.Key != "":
		return entity.ActionKindKey
	case a.Text != "":
		return entity.ActionKindText
	case a.Command != "":
		return entity.ActionKindCommand
	case a.System != "":
		return entity.ActionKindSystem
	default:
		return ""
	}
}

func orDefault(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}

// ConvertKeyMaps converts every entry. Entries that fail are left out and
// their errors joined.
func ConvertKeyMaps(configs []KeyMapConfig, resolve KeyResolver) ([]entity.KeyMap, error) {
	keyMaps := make([]entity.KeyMap, 0, len(configs))
	var errs []error
	for _, c := range configs {
		km, err := c.ToEntity(resolve)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		keyMaps = append(keyMaps, km)
	}
	return keyMaps, errors.Join(errs...)
}

// ReadKeyMapsFile reads a YAML or TOML file holding a top-level keymaps list.
// Unknown fields are rejected so a misspelled option is not silently ignored.
func ReadKeyMapsFile(path string) ([]KeyMapConfig, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".toml":
	default:
		return nil, fmt.Errorf("unsupported key maps file %s (want .yaml, .yml or .toml)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key maps file: %w", err)
	}
	defer f.Close()

	var file keyMapsFile
	if ext == ".toml" {
		err = toml.NewDecoder(f).DisallowUnknownFields().Decode(&file)
	} else {
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err = dec.Decode(&file); errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse key maps file %s: %w", path, err)
	}
	return file.KeyMaps, nil
}

// KeyMapSource loads key maps from the config file and keymaps_files.
type KeyMapSource struct {
	mgr     *Manager
	resolve KeyResolver
}

// NewKeyMapSource creates a source reading mgr's current configuration.
func NewKeyMapSource(mgr *Manager, resolve KeyResolver) *KeyMapSource {
	return &KeyMapSource{mgr: mgr, resolve: resolve}
}

// LoadKeyMaps returns every valid key map. Rejected entries and unreadable
// files are reported in the joined error alongside the valid key maps.
func (s *KeyMapSource) LoadKeyMaps(ctx context.Context) ([]entity.KeyMap, error) {
	log := logging.FromContext(ctx)
	cfg := s.mgr.Get()

	configs := append([]KeyMapConfig(nil), cfg.KeyMaps...)
	var errs []error
	for _, path := range cfg.KeyMapsFiles {
		entries, err := ReadKeyMapsFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		log.Debug().Str("file", path).Int("count", len(entries)).Msg("loaded key maps file")
		configs = append(configs, entries...)
	}

	keyMaps, err := ConvertKeyMaps(configs, s.resolve)
	if err != nil {
		errs = append(errs, err)
	}
	return keyMaps, errors.Join(errs...)
}

var _ port.KeyMapSource = (*KeyMapSource)(nil)
