// Package control exposes a running keymapper daemon on the session bus so
// the CLI can toggle, trigger and inspect key maps.
package control

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/bnema/keymapper/internal/application/usecase"
	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/engine"
	"github.com/bnema/keymapper/internal/logging"
)

const (
	BusName    = "io.github.bnema.Keymapper"
	ObjectPath = dbus.ObjectPath("/io/github/bnema/Keymapper")
	Interface  = "io.github.bnema.Keymapper1"

	errNotFound = BusName + ".Error.NotFound"
	errDisabled = BusName + ".Error.Disabled"
	errFailed   = BusName + ".Error.Failed"
)

// ErrAlreadyRunning is returned when another daemon owns the bus name.
var ErrAlreadyRunning = errors.New("another keymapper daemon is already running")

// KeyMapState is the wire form of engine.KeyMapStatus.
type KeyMapState struct {
	ID          string
	Name        string
	Enabled     bool
	Trigger     string
	Cursor      int32
	Chain       string
	ActionIndex int32
}

// ReloadResult reports how many key maps a reload applied.
type ReloadResult struct {
	Loaded   int32
	Rejected []string
}

// Handlers are the daemon operations reachable over the bus.
type Handlers struct {
	Toggle  *usecase.ToggleKeyMapUseCase
	Trigger *usecase.TriggerKeyMapUseCase
	Reload  func(ctx context.Context) (usecase.LoadKeyMapsOutput, error)
	Status  func() ([]engine.KeyMapStatus, error)
}

// Service is the exported bus object. Its exported methods are the
// io.github.bnema.Keymapper1 interface.
type Service struct {
	ctx      context.Context
	handlers Handlers
	conn     *dbus.Conn
}

// NewService creates a service whose calls run with ctx's logger.
func NewService(ctx context.Context, handlers Handlers) *Service {
	return &Service{
		ctx:      logging.WithComponent(ctx, "control"),
		handlers: handlers,
	}
}

// Enable enables a key map.
func (s *Service) Enable(id string) *dbus.Error {
	return toDBusError(s.handlers.Toggle.Execute(s.ctx, id, true))
}

// Disable disables a key map and cancels its running actions.
func (s *Service) Disable(id string) *dbus.Error {
	return toDBusError(s.handlers.Toggle.Execute(s.ctx, id, false))
}

// Trigger runs a key map's actions as if its trigger matched.
func (s *Service) Trigger(id string) *dbus.Error {
	return toDBusError(s.handlers.Trigger.Execute(s.ctx, id))
}

// Reload re-reads the key map configuration.
func (s *Service) Reload() (ReloadResult, *dbus.Error) {
	out, err := s.handlers.Reload(s.ctx)
	if err != nil {
		return ReloadResult{}, toDBusError(err)
	}
	res := ReloadResult{Loaded: int32(out.Loaded), Rejected: make([]string, 0, len(out.Rejected))}
	for _, r := range out.Rejected {
		res.Rejected = append(res.Rejected, r.Error())
	}
	return res, nil
}

// Status lists every key map with its trigger and chain phase.
func (s *Service) Status() ([]KeyMapState, *dbus.Error) {
	statuses, err := s.handlers.Status()
	if err != nil {
		return nil, toDBusError(err)
	}
	out := make([]KeyMapState, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, KeyMapState{
			ID:          st.ID,
			Name:        st.Name,
			Enabled:     st.Enabled,
			Trigger:     string(st.Trigger),
			Cursor:      int32(st.Cursor),
			Chain:       string(st.Chain),
			ActionIndex: int32(st.ActionIndex),
		})
	}
	return out, nil
}

// Start claims the bus name and exports the service on the session bus.
func (s *Service) Start() error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("request bus name %s: %w", BusName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		_ = conn.Close()
		return ErrAlreadyRunning
	}

	if err := conn.Export(s, ObjectPath, Interface); err != nil {
		_ = conn.Close()
		return fmt.Errorf("export control object: %w", err)
	}
	node := &introspect.Node{
		Name: string(ObjectPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{Name: Interface, Methods: introspect.Methods(s)},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), ObjectPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		_ = conn.Close()
		return fmt.Errorf("export introspection: %w", err)
	}

	s.conn = conn
	logging.FromContext(s.ctx).Info().Str("bus_name", BusName).Msg("control service started")
	return nil
}

// Run starts the service and keeps it exported until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Close()
}

// Close releases the bus name.
func (s *Service) Close() error {
	if s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil
	_, _ = conn.ReleaseName(BusName)
	return conn.Close()
}

func toDBusError(err error) *dbus.Error {
	if err == nil {
		return nil
	}
	name := errFailed
	switch {
	case errors.Is(err, entity.ErrKeyMapNotFound):
		name = errNotFound
	case errors.Is(err, entity.ErrKeyMapDisabled):
		name = errDisabled
	}
	return dbus.NewError(name, []interface{}{err.Error()})
}
