package port

import (
	"context"

	"github.com/bnema/keymapper/internal/domain/entity"
)

// InputSource produces raw events from one input device until ctx is done.
type InputSource interface {
	// Name identifies the device in logs and RawEvent.DeviceID.
	Name() string
	// Run delivers events to sink and returns when ctx is cancelled or the
	// device goes away.
	Run(ctx context.Context, sink func(entity.RawEvent)) error
	Close() error
}
