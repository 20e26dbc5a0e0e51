package notification

import (
	"context"
	"log/slog"

	"github.com/Apurer/storefront-cart/internal/domains/cart/ports"
)

var _ ports.Notifier = (*Logger)(nil)

// Logger emits cart notifications as structured log records.
type Logger struct {
	logger *slog.Logger
}

func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

func (l *Logger) Notify(ctx context.Context, n ports.Notification) {
	level := slog.LevelInfo
	if n.Kind == ports.NotificationError {
		level = slog.LevelWarn
	}
	l.logger.LogAttrs(ctx, level, n.Title,
		slog.String("notification.kind", string(n.Kind)),
		slog.String("notification.message", n.Message),
		slog.Int64("product.id", n.ProductID),
		slog.String("product.name", n.ProductName),
	)
}
