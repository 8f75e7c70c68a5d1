package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderSummary is one row of a customer's order history.
type OrderSummary struct {
	ID             kernel.UUID
	OrderDate      time.Time
	ItemName       string
	Status         order.OrderStatus
	DeliveryStatus order.DeliveryStatus
	TotalPrice     int
}

// OrderLineView is one line of an order detail.
type OrderLineView struct {
	ItemID     kernel.UUID
	ItemName   string
	OrderPrice int
	Count      int
	TotalPrice int
}

// OrderDetail is the full view of a single order.
type OrderDetail struct {
	ID             kernel.UUID
	Email          string
	Address        string
	OrderDate      time.Time
	Status         order.OrderStatus
	DeliveryStatus order.DeliveryStatus
	TotalPrice     int
	Lines          []OrderLineView
}

// OrderListItem is a row of the staff order list. It adds the customer and
// the lines to the summary.
type OrderListItem struct {
	OrderSummary
	Email string
	Lines []OrderLineView
}

func toSummary(o *order.Order) OrderSummary {
	return OrderSummary{
		ID:             o.ID(),
		OrderDate:      o.OrderDate(),
		ItemName:       o.RepresentativeItemName(),
		Status:         o.Status(),
		DeliveryStatus: o.DeliveryStatus(),
		TotalPrice:     o.TotalPrice(),
	}
}

func toSummaries(orders []*order.Order) []OrderSummary {
	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, toSummary(o))
	}
	return summaries
}

func toLineViews(o *order.Order) []OrderLineView {
	lines := o.Lines()
	views := make([]OrderLineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, OrderLineView{
			ItemID:     l.ItemID(),
			ItemName:   l.ItemName(),
			OrderPrice: l.OrderPrice(),
			Count:      l.Count(),
			TotalPrice: l.TotalPrice(),
		})
	}
	return views
}

func toDetail(o *order.Order) OrderDetail {
	return OrderDetail{
		ID:             o.ID(),
		Email:          o.Email(),
		Address:        o.Address().String(),
		OrderDate:      o.OrderDate(),
		Status:         o.Status(),
		DeliveryStatus: o.DeliveryStatus(),
		TotalPrice:     o.TotalPrice(),
		Lines:          toLineViews(o),
	}
}
