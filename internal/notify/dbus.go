//go:build linux

package notify

import "github.com/godbus/dbus/v5"

const (
	notifyService = "org.freedesktop.Notifications"
	notifyPath    = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod  = "org.freedesktop.Notifications.Notify"
	closeMethod   = "org.freedesktop.Notifications.CloseNotification"
)

// busNotifier talks to the session notification daemon.
type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. When no bus is reachable it falls
// back to a notifier that drops everything, so callers need no
// platform checks.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return noopNotifier{}, nil //nolint:nilerr // droppable feature, not a startup error
	}
	return &busNotifier{obj: conn.Object(notifyService, notifyPath)}, nil
}

// Notify calls org.freedesktop.Notifications.Notify:
// (app_name, replaces_id, app_icon, summary, body, actions, hints, timeout).
func (b *busNotifier) Notify(n Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant("cadence"),
	}

	var id uint32
	err := b.obj.Call(notifyMethod, 0,
		"Cadence", n.ReplacesID, n.Icon, n.Title, n.Body,
		[]string{}, hints, n.Timeout,
	).Store(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	return b.obj.Call(closeMethod, 0, id).Err
}

// noopNotifier is handed out when no session bus is available.
type noopNotifier struct{}

func (noopNotifier) Notify(Notification) (uint32, error) { return 0, nil }

func (noopNotifier) Close(uint32) error { return nil }
