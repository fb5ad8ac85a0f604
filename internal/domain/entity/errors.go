package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrKeyMapNotFound is returned for operations on an unknown key map id.
	ErrKeyMapNotFound = errors.New("key map not found")
	// ErrKeyMapDisabled is returned when a disabled key map is triggered.
	ErrKeyMapDisabled = errors.New("key map disabled")
	// ErrEngineClosed is returned once the engine has been closed.
	ErrEngineClosed = errors.New("engine closed")
)

// ConfigurationError rejects a malformed key map at load time.
type ConfigurationError struct {
	KeyMapID string
	Problems []string
}

func (e *ConfigurationError) Error() string {
	id := e.KeyMapID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("key map %s rejected:\n  - %s", id, strings.Join(e.Problems, "\n  - "))
}

// ExecutionError reports one failed executor call.
type ExecutionError struct {
	KeyMapID  string
	ActionID  string
	EventType KeyEventType
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("key map %s action %s (%s): %v", e.KeyMapID, e.ActionID, e.EventType, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
