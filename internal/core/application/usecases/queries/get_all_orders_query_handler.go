package queries

import (
	"context"
)

// GetAllOrdersQueryHandler lists every order, newest first. An empty store
// yields an empty slice.
type GetAllOrdersQueryHandler struct {
	reader OrderReader
}

func NewGetAllOrdersQueryHandler(reader OrderReader) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{reader: reader}
}

func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]OrderListItem, 0, len(orders))
	for _, o := range orders {
		items = append(items, OrderListItem{
			OrderSummary: toSummary(o),
			Email:        o.Email(),
			Lines:        toLineViews(o),
		})
	}
	return items, nil
}
