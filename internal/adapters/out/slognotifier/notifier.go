// Package slognotifier is the notifier used when no message broker is
// configured. It writes each notification as a structured log record.
package slognotifier

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
)

type Notifier struct {
	logger *slog.Logger
}

func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger.With("component", "notifier")}
}

// Send never fails.
func (n *Notifier) Send(ctx context.Context, notification order.Notification) error {
	n.logger.InfoContext(ctx, "Customer notification",
		"order_id", notification.OrderID.String(),
		"kind", string(notification.Kind),
		"recipient", notification.Recipient,
		"subject", notification.Subject,
		"body", notification.Body,
	)
	return nil
}
