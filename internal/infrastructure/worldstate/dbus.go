package worldstate

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/keymapper/internal/domain/entity"
	"github.com/bnema/keymapper/internal/logging"
)

const (
	screenSaverDest  = "org.freedesktop.ScreenSaver"
	screenSaverPath  = "/org/freedesktop/ScreenSaver"
	screenSaverIface = "org.freedesktop.ScreenSaver"

	upowerDest  = "org.freedesktop.UPower"
	upowerPath  = "/org/freedesktop/UPower"
	upowerIface = "org.freedesktop.UPower"

	nmDest  = "org.freedesktop.NetworkManager"
	nmPath  = "/org/freedesktop/NetworkManager"
	nmIface = "org.freedesktop.NetworkManager"

	bluezDest   = "org.bluez"
	bluezDevice = "org.bluez.Device1"

	mprisPrefix = "org.mpris.MediaPlayer2."
	mprisPath   = "/org/mpris/MediaPlayer2"
	mprisPlayer = "org.mpris.MediaPlayer2.Player"

	nmWirelessType = "802-11-wireless"
	// NM_STATE_CONNECTED_SITE and above.
	nmConnectedState = 60
)

// bus is the subset of D-Bus calls the probes need.
type bus interface {
	Property(dest string, path dbus.ObjectPath, prop string) (dbus.Variant, error)
	Call(dest string, path dbus.ObjectPath, method string, out ...interface{}) error
	ListNames() ([]string, error)
}

type connBus struct {
	conn *dbus.Conn
}

func (b connBus) Property(dest string, path dbus.ObjectPath, prop string) (dbus.Variant, error) {
	return b.conn.Object(dest, path).GetProperty(prop)
}

func (b connBus) Call(dest string, path dbus.ObjectPath, method string, out ...interface{}) error {
	return b.conn.Object(dest, path).Call(method, 0).Store(out...)
}

func (b connBus) ListNames() ([]string, error) {
	var names []string
	err := b.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
	return names, err
}

// DBusWatcher polls desktop services into a Store. Services that are not
// running are skipped.
type DBusWatcher struct {
	store    *Store
	interval time.Duration
	session  bus
	system   bus
	conns    []*dbus.Conn
}

// NewDBusWatcher connects to the session and system buses. A bus that is
// unavailable is left out rather than failing.
func NewDBusWatcher(ctx context.Context, store *Store, interval time.Duration) *DBusWatcher {
	log := logging.FromContext(ctx)

	w := &DBusWatcher{store: store, interval: interval}
	if conn, err := dbus.ConnectSessionBus(); err != nil {
		log.Debug().Err(err).Msg("world state: cannot connect to D-Bus session bus")
	} else {
		w.session = connBus{conn: conn}
		w.conns = append(w.conns, conn)
	}
	if conn, err := dbus.ConnectSystemBus(); err != nil {
		log.Debug().Err(err).Msg("world state: cannot connect to D-Bus system bus")
	} else {
		w.system = connBus{conn: conn}
		w.conns = append(w.conns, conn)
	}
	return w
}

// Run polls until ctx is done.
func (w *DBusWatcher) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	if w.session == nil && w.system == nil {
		log.Warn().Msg("world state: no D-Bus connection, constraints see defaults only")
		<-ctx.Done()
		return nil
	}

	w.Poll(ctx)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Poll reads every service once and updates the store.
func (w *DBusWatcher) Poll(ctx context.Context) {
	log := logging.FromContext(ctx)

	var updates []func(*entity.WorldState)
	probes := []struct {
		name  string
		bus   bus
		probe func(bus) (func(*entity.WorldState), error)
	}{
		{"screensaver", w.session, probeScreenSaver},
		{"mpris", w.session, probeMedia},
		{"upower", w.system, probePower},
		{"networkmanager", w.system, probeNetwork},
		{"bluez", w.system, probeBluetooth},
	}
	for _, p := range probes {
		if p.bus == nil {
			continue
		}
		update, err := p.probe(p.bus)
		if err != nil {
			log.Trace().Err(err).Str("service", p.name).Msg("world state: probe failed")
			continue
		}
		updates = append(updates, update)
	}

	w.store.Update(func(s *entity.WorldState) {
		for _, u := range updates {
			u(s)
		}
	})
}

// Close closes the bus connections.
func (w *DBusWatcher) Close() error {
	var firstErr error
	for _, c := range w.conns {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.conns = nil
	return firstErr
}

func probeScreenSaver(b bus) (func(*entity.WorldState), error) {
	var active bool
	if err := b.Call(screenSaverDest, screenSaverPath, screenSaverIface+".GetActive", &active); err != nil {
		return nil, err
	}
	return func(s *entity.WorldState) {
		s.ScreenLocked = active
	}, nil
}

func probePower(b bus) (func(*entity.WorldState), error) {
	v, err := b.Property(upowerDest, upowerPath, upowerIface+".OnBattery")
	if err != nil {
		return nil, err
	}
	onBattery, ok := v.Value().(bool)
	if !ok {
		return nil, fmt.Errorf("OnBattery has type %s", v.Signature())
	}
	return func(s *entity.WorldState) {
		s.Charging = !onBattery
	}, nil
}

func probeNetwork(b bus) (func(*entity.WorldState), error) {
	stateV, err := b.Property(nmDest, nmPath, nmIface+".State")
	if err != nil {
		return nil, err
	}
	typeV, err := b.Property(nmDest, nmPath, nmIface+".PrimaryConnectionType")
	if err != nil {
		return nil, err
	}
	state, _ := stateV.Value().(uint32)
	connType, _ := typeV.Value().(string)
	return func(s *entity.WorldState) {
		s.WifiConnected = state >= nmConnectedState && connType == nmWirelessType
	}, nil
}

func probeBluetooth(b bus) (func(*entity.WorldState), error) {
	var objects map[dbus.ObjectPath]map[string]map[string]dbus.Variant
	if err := b.Call(bluezDest, "/", "org.freedesktop.DBus.ObjectManager.GetManagedObjects", &objects); err != nil {
		return nil, err
	}

	var connected []string
	for path, ifaces := range objects {
		props, ok := ifaces[bluezDevice]
		if !ok {
			continue
		}
		if c, _ := props["Connected"].Value().(bool); !c {
			continue
		}
		name, _ := props["Alias"].Value().(string)
		if name == "" {
			name, _ = props["Name"].Value().(string)
		}
		if name == "" {
			name = string(path)
		}
		connected = append(connected, name)
	}
	slices.Sort(connected)
	return func(s *entity.WorldState) {
		s.BluetoothConnected = connected
	}, nil
}

func probeMedia(b bus) (func(*entity.WorldState), error) {
	names, err := b.ListNames()
	if err != nil {
		return nil, err
	}

	var playing []string
	for _, name := range names {
		if !strings.HasPrefix(name, mprisPrefix) {
			continue
		}
		v, err := b.Property(name, mprisPath, mprisPlayer+".PlaybackStatus")
		if err != nil {
			continue
		}
		if status, _ := v.Value().(string); status == "Playing" {
			playing = append(playing, playerApp(name))
		}
	}
	slices.Sort(playing)
	playing = slices.Compact(playing)
	return func(s *entity.WorldState) {
		s.MediaPlayingApps = playing
	}, nil
}

// playerApp turns org.mpris.MediaPlayer2.firefox.instance_1_42 into firefox.
func playerApp(busName string) string {
	app := strings.TrimPrefix(busName, mprisPrefix)
	if i := strings.Index(app, "."); i >= 0 {
		app = app[:i]
	}
	return app
}
