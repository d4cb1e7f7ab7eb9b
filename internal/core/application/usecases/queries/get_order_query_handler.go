package queries

import (
	"context"
)

// GetOrderQueryHandler reads a single order.
type GetOrderQueryHandler struct {
	readers ReaderFactory
}

// NewGetOrderQueryHandler creates the handler.
func NewGetOrderQueryHandler(readers ReaderFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{readers: readers}
}

// Handle returns errs.ErrObjectNotFound for an unknown order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.readers.Create().OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		ID:          o.ID(),
		Name:        o.Name(),
		District:    o.District(),
		CourierID:   o.CourierID(),
		Status:      o.Status(),
		StartedAt:   o.StartedAt(),
		CompletedAt: o.CompletedAt(),
	}, nil
}
