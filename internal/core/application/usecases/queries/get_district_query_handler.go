package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// GetDistrictQueryHandler reads a district and the free couriers serving it.
type GetDistrictQueryHandler struct {
	readers ReaderFactory
}

// NewGetDistrictQueryHandler creates the handler.
func NewGetDistrictQueryHandler(readers ReaderFactory) GetDistrictQueryHandler {
	return GetDistrictQueryHandler{readers: readers}
}

// Handle returns errs.ErrObjectNotFound for an unknown district.
func (h GetDistrictQueryHandler) Handle(ctx context.Context, query GetDistrictQuery) (GetDistrictQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDistrictQueryResponse{}, err
	}

	reader := h.readers.Create()
	d, err := reader.DistrictRepository().Get(ctx, query.Name())
	if err != nil {
		return GetDistrictQueryResponse{}, err
	}

	free, err := reader.CourierRepository().GetAllFreeInDistrict(ctx, d.Name())
	if err != nil {
		return GetDistrictQueryResponse{}, err
	}

	freeIDs := make([]kernel.ID, 0, len(free))
	for _, c := range free {
		freeIDs = append(freeIDs, c.ID())
	}

	return GetDistrictQueryResponse{
		Name:         d.Name(),
		Couriers:     d.Members(),
		FreeCouriers: freeIDs,
	}, nil
}
