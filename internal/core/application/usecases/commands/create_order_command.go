package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrEmailIsRequired  = errors.New("email is required")
	ErrLinesAreRequired = fmt.Errorf("%w: at least one line is required", order.ErrInvalidOrder)
)

// CreateOrderCommand represents a customer (or guest) checkout.
//
// Example:
//
//	addr, _ := kernel.NewAddress("Seoul", "Teheran-ro 427", "06159")
//	line, _ := order.NewLine(itemID, "Guatemala Antigua 200g", 1000, 2)
//	cmd, err := NewCreateOrderCommand("guest@example.com", addr, []order.Line{line})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	id, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	email   string
	address kernel.Address
	lines   []order.Line

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout input. An empty line set fails
// with ErrLinesAreRequired, which also matches order.ErrInvalidOrder.
func NewCreateOrderCommand(email string, address kernel.Address, lines []order.Line) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setAddress(address),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Email identifies the customer; no account is required.
func (c CreateOrderCommand) Email() string {
	return c.email
}

// Address is the delivery destination.
func (c CreateOrderCommand) Address() kernel.Address {
	return c.address
}

// Lines returns a copy of the ordered lines.
func (c CreateOrderCommand) Lines() []order.Line {
	return slices.Clone(c.lines)
}

func (c *CreateOrderCommand) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailIsRequired
	}

	c.email = email
	return nil
}

func (c *CreateOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setLines(lines []order.Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	c.lines = slices.Clone(lines)
	return nil
}
