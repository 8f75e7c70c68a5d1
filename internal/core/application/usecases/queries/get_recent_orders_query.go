package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	// DefaultRecentLimit is used when no limit is given.
	DefaultRecentLimit = 3
	MaxRecentLimit     = 50
)

var ErrGetRecentOrdersQueryIsNotConstructed = errors.New(
	"GetRecentOrdersQuery must be created via NewGetRecentOrdersQuery constructor",
)

// GetRecentOrdersQuery retrieves the latest orders of a customer for
// dashboard widgets.
type GetRecentOrdersQuery struct {
	email string
	limit int

	guard guard.ConstructorGuard
}

// NewGetRecentOrdersQuery builds the query. A zero limit means
// DefaultRecentLimit; anything else must be within 1..MaxRecentLimit.
func NewGetRecentOrdersQuery(email string, limit int) (GetRecentOrdersQuery, error) {
	email = strings.TrimSpace(email)

	var errEmail, errLimit error
	if email == "" {
		errEmail = errs.NewValueIsRequiredError("email")
	}
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	if limit < 1 || limit > MaxRecentLimit {
		errLimit = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxRecentLimit)
	}
	if err := errors.Join(errEmail, errLimit); err != nil {
		return GetRecentOrdersQuery{}, err
	}

	return GetRecentOrdersQuery{
		email: email,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetRecentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentOrdersQueryIsNotConstructed)
}

func (q GetRecentOrdersQuery) Email() string {
	return q.email
}

func (q GetRecentOrdersQuery) Limit() int {
	return q.limit
}
