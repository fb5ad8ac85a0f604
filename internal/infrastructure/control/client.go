package control

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/keymapper/internal/domain/entity"
)

// ErrNotRunning is returned when no daemon owns the bus name.
var ErrNotRunning = errors.New("keymapper daemon is not running")

// Client calls a running daemon.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Dial connects to the session bus. The daemon is looked up per call.
func Dial() (*Client, error) {
	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	if err := conn.Auth(nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("authenticate session bus: %w", err)
	}
	if err := conn.Hello(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("session bus hello: %w", err)
	}
	return &Client{conn: conn, obj: conn.Object(BusName, ObjectPath)}, nil
}

// Enable enables a key map.
func (c *Client) Enable(ctx context.Context, id string) error {
	return c.call(ctx, "Enable", nil, id)
}

// Disable disables a key map.
func (c *Client) Disable(ctx context.Context, id string) error {
	return c.call(ctx, "Disable", nil, id)
}

// Trigger runs a key map's actions.
func (c *Client) Trigger(ctx context.Context, id string) error {
	return c.call(ctx, "Trigger", nil, id)
}

// Reload asks the daemon to re-read its key maps.
func (c *Client) Reload(ctx context.Context) (ReloadResult, error) {
	var res ReloadResult
	err := c.call(ctx, "Reload", &res)
	return res, err
}

// Status lists the daemon's key maps.
func (c *Client) Status(ctx context.Context) ([]KeyMapState, error) {
	var states []KeyMapState
	err := c.call(ctx, "Status", &states)
	return states, err
}

// Close closes the private bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) call(ctx context.Context, method string, out interface{}, args ...interface{}) error {
	call := c.obj.CallWithContext(ctx, Interface+"."+method, 0, args...)
	if call.Err != nil {
		return fromDBusError(call.Err)
	}
	if out == nil {
		return nil
	}
	if err := call.Store(out); err != nil {
		return fmt.Errorf("decode %s reply: %w", method, err)
	}
	return nil
}

func fromDBusError(err error) error {
	var name string
	var body []interface{}
	var ptr *dbus.Error
	var val dbus.Error
	switch {
	case errors.As(err, &ptr):
		name, body = ptr.Name, ptr.Body
	case errors.As(err, &val):
		name, body = val.Name, val.Body
	default:
		return err
	}

	msg := name
	if len(body) > 0 {
		if s, ok := body[0].(string); ok {
			msg = s
		}
	}

	switch name {
	case errNotFound:
		return fmt.Errorf("%w: %s", entity.ErrKeyMapNotFound, msg)
	case errDisabled:
		return fmt.Errorf("%w: %s", entity.ErrKeyMapDisabled, msg)
	case "org.freedesktop.DBus.Error.ServiceUnknown", "org.freedesktop.DBus.Error.NameHasNoOwner":
		return ErrNotRunning
	}
	return errors.New(msg)
}
