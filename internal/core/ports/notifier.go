package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/order"
)

// ErrDispatch wraps every notification delivery failure. It is never fatal
// to the operation that triggered the notification.
var ErrDispatch = errors.New("notification dispatch failed")

// Notifier delivers customer notifications on a best-effort basis.
// Implementations return failures wrapped in ErrDispatch and must not panic.
type Notifier interface {
	Send(ctx context.Context, notification order.Notification) error
}
