package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/keymapper/internal/application/port"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/logging"
)

// LoadKeyMapsUseCase loads the configured key maps into the engine.
type LoadKeyMapsUseCase struct {
	source port.KeyMapSource
	engine port.KeyMapEngine
}

// NewLoadKeyMapsUseCase creates a new LoadKeyMapsUseCase.
func NewLoadKeyMapsUseCase(source port.KeyMapSource, engine port.KeyMapEngine) *LoadKeyMapsUseCase {
	return &LoadKeyMapsUseCase{source: source, engine: engine}
}

// LoadKeyMapsOutput reports what the engine accepted.
type LoadKeyMapsOutput struct {
	// Loaded is the number of key maps now active in the engine.
	Loaded int
	// Rejected lists every key map or file that could not be used.
	Rejected []error
}

// Execute replaces the engine configuration with the valid key maps.
// Rejections are reported in the output, not as an error; the error is
// only set when nothing could be applied.
func (uc *LoadKeyMapsUseCase) Execute(ctx context.Context) (LoadKeyMapsOutput, error) {
	log := logging.FromContext(ctx)
	var out LoadKeyMapsOutput

	keyMaps, err := uc.source.LoadKeyMaps(ctx)
	out.Rejected = append(out.Rejected, flatten(err)...)

	err = uc.engine.SetKeyMaps(keyMaps)
	engineRejected := flatten(err)
	out.Rejected = append(out.Rejected, engineRejected...)

	for _, e := range engineRejected {
		var cfgErr *entity.ConfigurationError
		if !errors.As(e, &cfgErr) {
			return out, fmt.Errorf("failed to apply key maps: %w", err)
		}
	}
	out.Loaded = len(keyMaps) - len(engineRejected)

	for _, e := range out.Rejected {
		log.Warn().Err(e).Msg("key map rejected")
	}
	log.Info().
		Int("loaded", out.Loaded).
		Int("rejected", len(out.Rejected)).
		Msg("key maps loaded")

	return out, nil
}

// flatten splits an errors.Join result into its parts.
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
