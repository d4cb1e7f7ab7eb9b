package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrRecomputeCourierStatisticsCommandIsNotConstructed = errors.New(
	"RecomputeCourierStatisticsCommand must be created via NewRecomputeCourierStatisticsCommand constructor",
)

// RecomputeCourierStatisticsCommand asks to rebuild every courier's statistics from
// its order history. It is issued on a schedule by the reconciliation job.
type RecomputeCourierStatisticsCommand struct {
	guard guard.ConstructorGuard
}

// NewRecomputeCourierStatisticsCommand creates the parameterless command.
func NewRecomputeCourierStatisticsCommand() RecomputeCourierStatisticsCommand {
	return RecomputeCourierStatisticsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c RecomputeCourierStatisticsCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeCourierStatisticsCommandIsNotConstructed)
}
