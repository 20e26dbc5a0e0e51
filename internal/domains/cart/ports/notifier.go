package ports

import "context"

// NotificationKind classifies user-facing messages.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a user-facing message raised by the cart.
type Notification struct {
	Kind        NotificationKind
	Title       string
	Message     string
	ProductID   int64
	ProductName string
}

// Notifier surfaces cart notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NoopNotifier discards notifications.
var NoopNotifier Notifier = noopNotifier{}

type noopNotifier struct{}

func (noopNotifier) Notify(_ context.Context, _ Notification) {}
