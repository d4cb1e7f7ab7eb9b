package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CreateCourierCommandHandler registers a courier and adds it to every district it
// serves, creating the districts on first reference.
//
// Example:
//
//	handler := NewCreateCourierCommandHandler(uowFactory)
//	cmd, _ := NewCreateCourierCommand("Express Courier", []string{"center"})
//
//	id, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("courier registration failed: %w", err)
//	}
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewCreateCourierCommandHandler creates a handler for courier registration.
// Requires a CourierUoWFactory for transactional persistence operations.
func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the courier and its district memberships in one transaction and
// returns the new courier id. The courier starts free with no statistics.
func (h *CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	districtRepo := uow.DistrictRepository()
	courierRepo := uow.CourierRepository()

	districts, err := districtRepo.ResolveOrCreate(ctx, cmd.Districts())
	if err != nil {
		return 0, err
	}

	names := make([]string, 0, len(districts))
	for _, d := range districts {
		names = append(names, d.Name())
	}

	id, err := courierRepo.NextID(ctx)
	if err != nil {
		return 0, err
	}

	courierEntity, err := courier.NewCourier(id, cmd.Name(), names)
	if err != nil {
		return 0, err
	}

	if err = courierRepo.Add(ctx, courierEntity); err != nil {
		return 0, err
	}

	for _, name := range courierEntity.Districts() {
		if err = districtRepo.AddMember(ctx, name, courierEntity.ID()); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return courierEntity.ID(), nil
}
