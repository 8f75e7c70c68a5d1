package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceDeliveriesCommandIsNotConstructed = errors.New(
	"AdvanceDeliveriesCommand must be created via NewAdvanceDeliveriesCommand constructor",
)

// AdvanceDeliveriesCommand triggers one delivery transition pass.
type AdvanceDeliveriesCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

func NewAdvanceDeliveriesCommand() (AdvanceDeliveriesCommand, error) {
	return AdvanceDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveriesCommandIsNotConstructed)
}
