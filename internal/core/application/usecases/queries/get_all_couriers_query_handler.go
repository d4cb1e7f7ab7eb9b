package queries

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// GetAllCouriersQueryHandler lists couriers ordered by id.
//
// An empty directory is reported as errs.ErrEmptyCollection rather than as an empty
// list; clients rely on the resulting "No couriers in DB" answer.
type GetAllCouriersQueryHandler struct {
	readers ReaderFactory
}

// NewGetAllCouriersQueryHandler creates a handler for courier retrieval queries.
func NewGetAllCouriersQueryHandler(readers ReaderFactory) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{readers: readers}
}

// Handle executes the query to retrieve all couriers.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.readers.Create().CourierRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(all) == 0 {
		return nil, errs.NewEmptyCollectionError("couriers")
	}

	couriers := make([]GetAllCouriersQueryResponse, 0, len(all))
	for _, c := range all {
		couriers = append(couriers, GetAllCouriersQueryResponse{ID: c.ID(), Name: c.Name()})
	}

	return couriers, nil
}
