package queries

import (
	"context"
)

// GetCourierQueryHandler joins a courier with the name of its active order.
type GetCourierQueryHandler struct {
	readers ReaderFactory
}

// NewGetCourierQueryHandler creates the handler.
func NewGetCourierQueryHandler(readers ReaderFactory) GetCourierQueryHandler {
	return GetCourierQueryHandler{readers: readers}
}

// Handle returns errs.ErrObjectNotFound for an unknown courier.
func (h GetCourierQueryHandler) Handle(ctx context.Context, query GetCourierQuery) (GetCourierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierQueryResponse{}, err
	}

	reader := h.readers.Create()
	c, err := reader.CourierRepository().Get(ctx, query.CourierID())
	if err != nil {
		return GetCourierQueryResponse{}, err
	}

	response := GetCourierQueryResponse{
		ID:                   c.ID(),
		Name:                 c.Name(),
		Districts:            c.Districts(),
		AvgOrderCompleteTime: c.AvgOrderCompleteTime(),
		AvgDayOrders:         c.AvgDayOrders(),
	}

	if orderID, ok := c.ActiveOrderID(); ok {
		o, err := reader.OrderRepository().Get(ctx, orderID)
		if err != nil {
			return GetCourierQueryResponse{}, err
		}
		response.ActiveOrder = &ActiveOrderResponse{OrderID: o.ID(), OrderName: o.Name()}
	}

	return response, nil
}
