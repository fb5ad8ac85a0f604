package entity

import "fmt"

// Validate checks a key map and returns a *ConfigurationError listing every problem.
func (k KeyMap) Validate() error {
	var problems []string

	if k.ID == "" {
		problems = append(problems, "id is required")
	}
	problems = append(problems, validateTrigger(k.Trigger)...)
	problems = append(problems, validateActions(k.Actions)...)
	problems = append(problems, validateConstraints(k.Constraints, k.ConstraintMode)...)

	if len(problems) > 0 {
		return &ConfigurationError{KeyMapID: k.ID, Problems: problems}
	}
	return nil
}

func validateTrigger(t Trigger) []string {
	var problems []string

	if len(t.Keys) == 0 {
		return []string{"trigger.keys cannot be empty"}
	}

	switch t.Mode {
	case TriggerSingle:
		if len(t.Keys) != 1 {
			problems = append(problems, fmt.Sprintf("trigger.mode single needs exactly one key (got: %d)", len(t.Keys)))
		}
	case TriggerParallel:
		if len(t.Keys) < 2 {
			problems = append(problems, "trigger.mode parallel needs at least two keys")
		}
		click := t.Keys[0].ClickType
		for i, key := range t.Keys {
			if key.ClickType != click {
				problems = append(problems, fmt.Sprintf("trigger.keys[%d] click type must match the other parallel keys", i))
			}
		}
		if click == ClickDouble {
			problems = append(problems, "trigger.mode parallel does not support double press")
		}
	case TriggerSequence:
		if len(t.Keys) < 2 {
			problems = append(problems, "trigger.mode sequence needs at least two keys")
		}
		for i, key := range t.Keys {
			if key.ClickType != ClickShort {
				problems = append(problems, fmt.Sprintf("trigger.keys[%d] sequence elements must be short presses", i))
			}
		}
	default:
		problems = append(problems, fmt.Sprintf("trigger.mode must be one of: single, parallel, sequence (got: %s)", t.Mode))
	}

	for i, key := range t.Keys {
		if key.KeyCode <= 0 {
			problems = append(problems, fmt.Sprintf("trigger.keys[%d] key code must be positive", i))
		}
		switch key.ClickType {
		case ClickShort, ClickLong, ClickDouble:
		default:
			problems = append(problems, fmt.Sprintf("trigger.keys[%d] click must be one of: short, long, double (got: %s)", i, key.ClickType))
		}
		if t.Mode == TriggerParallel {
			for j := i + 1; j < len(t.Keys); j++ {
				if key.SameKey(t.Keys[j]) {
					problems = append(problems, fmt.Sprintf("trigger.keys[%d] duplicates trigger.keys[%d]", j, i))
				}
			}
		}
	}

	if t.LongPressDelayMs < 0 {
		problems = append(problems, "trigger.long_press_delay_ms must be non-negative")
	}
	if t.DoublePressTimeoutMs < 0 {
		problems = append(problems, "trigger.double_press_timeout_ms must be non-negative")
	}
	if t.SequenceTimeoutMs < 0 {
		problems = append(problems, "trigger.sequence_timeout_ms must be non-negative")
	}
	switch t.SequenceInterrupt {
	case "", SequenceInterruptReset, SequenceInterruptIgnore:
	default:
		problems = append(problems, fmt.Sprintf("trigger.sequence_interrupt must be one of: reset, ignore (got: %s)", t.SequenceInterrupt))
	}

	return problems
}

func validateActions(actions []Action) []string {
	if len(actions) == 0 {
		return []string{"actions cannot be empty"}
	}

	var problems []string
	seen := make(map[string]int, len(actions))
	for i, a := range actions {
		prefix := fmt.Sprintf("actions[%d]", i)
		if a.ID == "" {
			problems = append(problems, prefix+" id is required")
		} else if first, ok := seen[a.ID]; ok {
			problems = append(problems, fmt.Sprintf("%s id %q duplicates actions[%d]", prefix, a.ID, first))
		} else {
			seen[a.ID] = i
		}
		if !a.Payload.Kind.IsKnown() {
			problems = append(problems, fmt.Sprintf("%s kind must be one of: key, text, command, system (got: %s)", prefix, a.Payload.Kind))
		}
		if a.Multiplier < 1 {
			problems = append(problems, prefix+" multiplier must be at least 1")
		}
		if a.DelayBeforeNextMs < 0 {
			problems = append(problems, prefix+" delay_before_next_ms must be non-negative")
		}
		if a.Repeat != nil && a.HoldDown != nil {
			problems = append(problems, prefix+" repeat and hold_down are mutually exclusive")
		}
		if a.Repeat != nil {
			problems = append(problems, validateRepeat(prefix, *a.Repeat)...)
		}
		if a.HoldDown != nil {
			problems = append(problems, validateHoldDown(prefix, *a.HoldDown)...)
			if a.Multiplier > 1 {
				problems = append(problems, prefix+" multiplier cannot be combined with hold_down")
			}
		}
	}
	return problems
}

func validateRepeat(prefix string, r RepeatPolicy) []string {
	var problems []string
	if r.RateMs <= 0 {
		problems = append(problems, prefix+" repeat.rate_ms must be positive")
	}
	if r.DelayMs < 0 {
		problems = append(problems, prefix+" repeat.delay_ms must be non-negative")
	}
	switch r.Stop {
	case StopTriggerReleased, StopTriggerPressedAgain:
	case StopLimitReached:
		if r.Limit < 1 {
			problems = append(problems, prefix+" repeat.limit must be at least 1")
		}
	default:
		problems = append(problems, fmt.Sprintf("%s repeat.stop must be one of: released, pressed_again, limit (got: %s)", prefix, r.Stop))
	}
	return problems
}

func validateHoldDown(prefix string, h HoldDownPolicy) []string {
	var problems []string
	if h.DurationMs < 0 {
		problems = append(problems, prefix+" hold_down.duration_ms must be non-negative")
	}
	switch h.Stop {
	case StopNone, StopTriggerReleased, StopTriggerPressedAgain:
	default:
		problems = append(problems, fmt.Sprintf("%s hold_down.stop must be one of: none, released, pressed_again (got: %s)", prefix, h.Stop))
	}
	return problems
}

func validateConstraints(refs []ConstraintRef, mode ConstraintMode) []string {
	var problems []string
	switch mode {
	case ConstraintModeAnd, ConstraintModeOr:
	default:
		problems = append(problems, fmt.Sprintf("constraint_mode must be one of: and, or (got: %s)", mode))
	}
	for i, c := range refs {
		if !c.Kind.IsKnown() {
			problems = append(problems, fmt.Sprintf("constraints[%d] unknown kind %q", i, c.Kind))
			continue
		}
		if c.Kind.RequiresValue() && c.Value == "" {
			problems = append(problems, fmt.Sprintf("constraints[%d] %s requires a value", i, c.Kind))
		}
	}
	return problems
}
