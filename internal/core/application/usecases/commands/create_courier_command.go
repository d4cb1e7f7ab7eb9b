package commands

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrNameIsRequired         = errors.New("name is required")
	ErrDistrictNameIsRequired = errors.New("district name is required")
)

// CreateCourierCommand represents a request to register a new courier serving zero or
// more districts. Districts that do not exist yet are created by the handler.
//
// Example:
//
//	cmd, err := NewCreateCourierCommand("John Doe", []string{"north", "center"})
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
//
//	handler := NewCreateCourierCommandHandler(uowFactory)
//	id, err := handler.Handle(ctx, cmd)
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	name      string
	districts []string

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand validates that the name and every district name are not blank.
// An empty district list is accepted; such a courier is never dispatched.
func NewCreateCourierCommand(name string, districts []string) (CreateCourierCommand, error) {
	command := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setName(name),
		command.setDistricts(districts),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateCourierCommandIsNotConstructed if validation fails.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// Name returns the courier name from the command.
func (c CreateCourierCommand) Name() string {
	return c.name
}

// Districts returns the requested district names as given.
func (c CreateCourierCommand) Districts() []string {
	out := make([]string, len(c.districts))
	copy(out, c.districts)
	return out
}

func (c *CreateCourierCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setDistricts(districts []string) error {
	for _, d := range districts {
		if strings.TrimSpace(d) == "" {
			return ErrDistrictNameIsRequired
		}
	}

	c.districts = make([]string, len(districts))
	copy(c.districts, districts)
	return nil
}
