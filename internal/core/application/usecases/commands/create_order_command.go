package commands

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNameIsRequired = errors.New("order name is required")
	ErrDistrictIsRequired  = errors.New("district is required")
)

// CreateOrderCommand represents a request to place an order in a district.
// Handling it dispatches the order to a free courier of that district.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("pizza", "center")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoFreeCourier) {
//	    // nobody can take it right now
//	}
//	fmt.Printf("order %s goes to courier %s", result.OrderID, result.CourierID)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	name     string
	district string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates that both the order name and the district are not blank.
func NewCreateOrderCommand(name, district string) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setName(name),
		orderCommand.setDistrict(district),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Name returns the order label.
func (c CreateOrderCommand) Name() string {
	return c.name
}

// District returns the district the order is placed in.
func (c CreateOrderCommand) District() string {
	return c.district
}

func (c *CreateOrderCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrOrderNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateOrderCommand) setDistrict(district string) error {
	if strings.TrimSpace(district) == "" {
		return ErrDistrictIsRequired
	}

	c.district = district
	return nil
}
