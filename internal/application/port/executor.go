package port

import (
	"context"

	"github.com/bnema/keymapper/internal/domain/entity"
)

// ActionExecutor performs action payloads on the platform.
// Execute may block; the engine calls it from a dispatch lane, never from
// its own message queue. Implementations must not call back into the engine
// synchronously.
type ActionExecutor interface {
	Execute(ctx context.Context, payload entity.ActionPayload, eventType entity.KeyEventType, metaState int) error
}

// ActionExecutorFunc adapts a function to ActionExecutor.
type ActionExecutorFunc func(ctx context.Context, payload entity.ActionPayload, eventType entity.KeyEventType, metaState int) error

// Execute calls f.
func (f ActionExecutorFunc) Execute(ctx context.Context, payload entity.ActionPayload, eventType entity.KeyEventType, metaState int) error {
	return f(ctx, payload, eventType, metaState)
}

// KeyEmitter writes synthetic key events.
type KeyEmitter interface {
	// EmitKey presses the modifiers in metaState with keyCode for down,
	// releases them for up, and does both for down_up.
	EmitKey(ctx context.Context, keyCode, metaState int, eventType entity.KeyEventType) error
	TypeText(ctx context.Context, text string) error
}
