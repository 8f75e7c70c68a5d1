package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type AddressRequest struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

type OrderLineRequest struct {
	ItemID     string `json:"itemId"`
	ItemName   string `json:"itemName"`
	OrderPrice int    `json:"orderPrice"`
	Count      int    `json:"count"`
}

type CreateOrderRequest struct {
	Email   string             `json:"email"`
	Address AddressRequest     `json:"address"`
	Lines   []OrderLineRequest `json:"lines"`
}

type CreateOrderResponse struct {
	ID string `json:"id"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type OrderSummaryResponse struct {
	ID             string    `json:"id"`
	OrderDate      time.Time `json:"orderDate"`
	ItemName       string    `json:"itemName"`
	Status         string    `json:"status"`
	DeliveryStatus string    `json:"deliveryStatus"`
	TotalPrice     int       `json:"totalPrice"`
}

type OrderLineResponse struct {
	ItemID     string `json:"itemId"`
	ItemName   string `json:"itemName"`
	OrderPrice int    `json:"orderPrice"`
	Count      int    `json:"count"`
	TotalPrice int    `json:"totalPrice"`
}

type OrderDetailResponse struct {
	ID             string              `json:"id"`
	Email          string              `json:"email"`
	Address        string              `json:"address"`
	OrderDate      time.Time           `json:"orderDate"`
	Status         string              `json:"status"`
	DeliveryStatus string              `json:"deliveryStatus"`
	TotalPrice     int                 `json:"totalPrice"`
	Lines          []OrderLineResponse `json:"lines"`
}

type OrderListItemResponse struct {
	OrderSummaryResponse
	Email string              `json:"email"`
	Lines []OrderLineResponse `json:"lines"`
}

type DeliveryPassFailureResponse struct {
	OrderID string `json:"orderId"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
}

type DeliveryPassResponse struct {
	Candidates         int                           `json:"candidates"`
	Advanced           int                           `json:"advanced"`
	SkippedFrozen      int                           `json:"skippedFrozen"`
	SkippedTerminal    int                           `json:"skippedTerminal"`
	SkippedMalformed   int                           `json:"skippedMalformed"`
	FailedPersistence  int                           `json:"failedPersistence"`
	FailedNotification int                           `json:"failedNotification"`
	Deferred           int                           `json:"deferred"`
	Failures           []DeliveryPassFailureResponse `json:"failures"`
}

func toSummaryResponses(summaries []queries.OrderSummary) []OrderSummaryResponse {
	response := make([]OrderSummaryResponse, len(summaries))
	for i, s := range summaries {
		response[i] = toSummaryResponse(s)
	}
	return response
}

func toSummaryResponse(s queries.OrderSummary) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:             s.ID.String(),
		OrderDate:      s.OrderDate,
		ItemName:       s.ItemName,
		Status:         s.Status.String(),
		DeliveryStatus: s.DeliveryStatus.String(),
		TotalPrice:     s.TotalPrice,
	}
}

func toLineResponses(lines []queries.OrderLineView) []OrderLineResponse {
	response := make([]OrderLineResponse, len(lines))
	for i, l := range lines {
		response[i] = OrderLineResponse{
			ItemID:     l.ItemID.String(),
			ItemName:   l.ItemName,
			OrderPrice: l.OrderPrice,
			Count:      l.Count,
			TotalPrice: l.TotalPrice,
		}
	}
	return response
}

func toDetailResponse(d queries.OrderDetail) OrderDetailResponse {
	return OrderDetailResponse{
		ID:             d.ID.String(),
		Email:          d.Email,
		Address:        d.Address,
		OrderDate:      d.OrderDate,
		Status:         d.Status.String(),
		DeliveryStatus: d.DeliveryStatus.String(),
		TotalPrice:     d.TotalPrice,
		Lines:          toLineResponses(d.Lines),
	}
}

func toListItemResponses(items []queries.OrderListItem) []OrderListItemResponse {
	response := make([]OrderListItemResponse, len(items))
	for i, item := range items {
		response[i] = OrderListItemResponse{
			OrderSummaryResponse: toSummaryResponse(item.OrderSummary),
			Email:                item.Email,
			Lines:                toLineResponses(item.Lines),
		}
	}
	return response
}

func toPassResponse(r commands.DeliveryPassReport) DeliveryPassResponse {
	failures := make([]DeliveryPassFailureResponse, len(r.Failures))
	for i, f := range r.Failures {
		failures[i] = DeliveryPassFailureResponse{
			OrderID: f.OrderID.String(),
			Kind:    string(f.Kind),
			Error:   f.Err.Error(),
		}
	}

	return DeliveryPassResponse{
		Candidates:         r.Candidates,
		Advanced:           r.Advanced,
		SkippedFrozen:      r.SkippedFrozen,
		SkippedTerminal:    r.SkippedTerminal,
		SkippedMalformed:   r.SkippedMalformed,
		FailedPersistence:  r.FailedPersistence,
		FailedNotification: r.FailedNotification,
		Deferred:           r.Deferred,
		Failures:           failures,
	}
}
