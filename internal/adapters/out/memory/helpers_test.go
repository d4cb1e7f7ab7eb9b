package memory_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

type courierUoWFactory func() commands.CourierUoW

func (f courierUoWFactory) Create() commands.CourierUoW { return f() }

type engine struct {
	store     *memory.Store
	factory   *memory.UnitOfWorkFactory
	register  commands.CreateCourierCommandHandler
	dispatch  commands.CreateOrderCommandHandler
	complete  commands.CompleteOrderCommandHandler
	reconcile commands.RecomputeCourierStatisticsCommandHandler
}

func newEngine() *engine {
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	full := uowFactory(func() commands.UoW { return factory.Create() })
	couriers := courierUoWFactory(func() commands.CourierUoW { return factory.Create() })

	return &engine{
		store:     store,
		factory:   factory,
		register:  commands.NewCreateCourierCommandHandler(couriers),
		dispatch:  commands.NewCreateOrderCommandHandler(full),
		complete:  commands.NewCompleteOrderCommandHandler(full),
		reconcile: commands.NewRecomputeCourierStatisticsCommandHandler(full),
	}
}

func (e *engine) addCourier(t *testing.T, name string, districts ...string) kernel.ID {
	t.Helper()
	cmd, err := commands.NewCreateCourierCommand(name, districts)
	require.NoError(t, err)
	id, err := e.register.Handle(context.Background(), cmd)
	require.NoError(t, err)
	return id
}

func (e *engine) createOrder(ctx context.Context, t *testing.T, name, district string) (commands.CreateOrderResult, error) {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(name, district)
	require.NoError(t, err)
	return e.dispatch.Handle(ctx, cmd)
}

func (e *engine) completeOrder(ctx context.Context, t *testing.T, id kernel.ID) (commands.CompleteOrderResult, error) {
	t.Helper()
	cmd, err := commands.NewCompleteOrderCommand(id)
	require.NoError(t, err)
	return e.complete.Handle(ctx, cmd)
}

func newCourier(t *testing.T, id int64, districts ...string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.MustID(id), "courier", districts)
	require.NoError(t, err)
	return c
}

func newOrder(t *testing.T, id, courierID int64, district string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.MustID(id), "order", district, kernel.MustID(courierID), time.Now().UTC())
	require.NoError(t, err)
	return o
}
