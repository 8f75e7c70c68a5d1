package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrdersByEmailQueryIsNotConstructed = errors.New(
	"GetOrdersByEmailQuery must be created via NewGetOrdersByEmailQuery constructor",
)

// GetOrdersByEmailQuery retrieves the whole order history of a customer.
//
// Example:
//
//	query, err := NewGetOrdersByEmailQuery("guest@example.com")
//	summaries, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no orders for this email
//	}
type GetOrdersByEmailQuery struct {
	email string

	guard guard.ConstructorGuard
}

func NewGetOrdersByEmailQuery(email string) (GetOrdersByEmailQuery, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return GetOrdersByEmailQuery{}, errs.NewValueIsRequiredError("email")
	}

	return GetOrdersByEmailQuery{
		email: email,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrdersByEmailQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByEmailQueryIsNotConstructed)
}

func (q GetOrdersByEmailQuery) Email() string {
	return q.email
}
