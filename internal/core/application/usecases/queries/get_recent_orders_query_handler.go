package queries

import (
	"context"
)

// GetRecentOrdersQueryHandler returns at most query.Limit() summaries, newest
// first. An empty history is an empty slice, not an error.
type GetRecentOrdersQueryHandler struct {
	reader OrderReader
}

func NewGetRecentOrdersQueryHandler(reader OrderReader) GetRecentOrdersQueryHandler {
	return GetRecentOrdersQueryHandler{reader: reader}
}

func (h GetRecentOrdersQueryHandler) Handle(ctx context.Context, query GetRecentOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.GetRecentByEmail(ctx, query.Email(), query.Limit())
	if err != nil {
		return nil, err
	}

	return toSummaries(orders), nil
}
