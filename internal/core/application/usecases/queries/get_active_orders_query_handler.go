package queries

import (
	"context"
)

// GetActiveOrdersQueryHandler lists in-progress orders ordered by id.
// Unlike the courier list, an empty result is not an error.
type GetActiveOrdersQueryHandler struct {
	readers ReaderFactory
}

// NewGetActiveOrdersQueryHandler creates the handler.
func NewGetActiveOrdersQueryHandler(readers ReaderFactory) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{readers: readers}
}

// Handle executes the query.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active, err := h.readers.Create().OrderRepository().GetAllInProgress(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0, len(active))
	for _, o := range active {
		orders = append(orders, GetActiveOrdersQueryResponse{
			ID:        o.ID(),
			Name:      o.Name(),
			District:  o.District(),
			CourierID: o.CourierID(),
		})
	}

	return orders, nil
}
