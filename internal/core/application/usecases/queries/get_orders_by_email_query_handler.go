package queries

import (
	"context"

	"fulfillment/internal/pkg/errs"
)

// GetOrdersByEmailQueryHandler lists a customer's orders, newest first.
type GetOrdersByEmailQueryHandler struct {
	reader OrderReader
}

func NewGetOrdersByEmailQueryHandler(reader OrderReader) GetOrdersByEmailQueryHandler {
	return GetOrdersByEmailQueryHandler{reader: reader}
}

// Handle fails with errs.ErrObjectNotFound when the customer has no orders.
func (h GetOrdersByEmailQueryHandler) Handle(ctx context.Context, query GetOrdersByEmailQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.GetAllByEmail(ctx, query.Email())
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, errs.NewObjectNotFoundError("email", query.Email())
	}

	return toSummaries(orders), nil
}
