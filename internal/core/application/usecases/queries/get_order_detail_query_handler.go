package queries

import (
	"context"

	"fulfillment/internal/pkg/errs"
)

type GetOrderDetailQueryHandler struct {
	reader OrderReader
}

func NewGetOrderDetailQueryHandler(reader OrderReader) GetOrderDetailQueryHandler {
	return GetOrderDetailQueryHandler{reader: reader}
}

// Handle fails with errs.ErrObjectNotFound for an unknown id.
func (h GetOrderDetailQueryHandler) Handle(ctx context.Context, query GetOrderDetailQuery) (OrderDetail, error) {
	if err := query.Validate(); err != nil {
		return OrderDetail{}, err
	}

	o, found, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return OrderDetail{}, err
	}
	if !found {
		return OrderDetail{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	return toDetail(o), nil
}
