package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// NotificationKind tells which lifecycle event a Notification announces.
type NotificationKind string

const (
	NotificationOrderReceived   NotificationKind = "ORDER_RECEIVED"
	NotificationShippingStarted NotificationKind = "SHIPPING_STARTED"
	NotificationDelivered       NotificationKind = "DELIVERED"
)

// Notification is the customer message produced by an order transition.
// Delivery of it is always best-effort.
type Notification struct {
	OrderID   kernel.UUID
	Kind      NotificationKind
	Recipient string
	Subject   string
	Body      string
}

func newNotification(o *Order, kind NotificationKind) Notification {
	n := Notification{
		OrderID:   o.id,
		Kind:      kind,
		Recipient: o.email,
	}

	switch kind {
	case NotificationShippingStarted:
		n.Subject = "Your order has shipped"
		n.Body = fmt.Sprintf("Delivery of order [%s] has started.", o.id)
	case NotificationDelivered:
		n.Subject = "Your order has been delivered"
		n.Body = fmt.Sprintf("Delivery of order [%s] is complete.", o.id)
	case NotificationOrderReceived:
		n.Subject = "We received your order"
		n.Body = fmt.Sprintf("Order [%s] has been placed.", o.id)
	}

	return n
}
