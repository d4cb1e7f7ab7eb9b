package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

type courierUoWFactory func() commands.CourierUoW

func (f courierUoWFactory) Create() commands.CourierUoW { return f() }

// UnitOfWorkIntegrationTestSuite runs the command handlers against PostgreSQL row locks.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	suite.database = pgtest.Start(suite.T())
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.database.Truncate(suite.T())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	_, err := uow.DistrictRepository().ResolveOrCreate(ctx, []string{"north"})
	suite.Require().NoError(err)
	c, err := courier.NewCourier(kernel.MustID(1), "Alice", []string{"north"})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CourierRepository().Add(ctx, c))
	suite.Require().NoError(uow.DistrictRepository().AddMember(ctx, "north", c.ID()))

	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.CourierRepository().Get(ctx, kernel.MustID(1))
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = reader.DistrictRepository().Get(ctx, "north")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDispatch_CreateAndCompleteOrder() {
	ctx := context.Background()
	alice := suite.registerCourier(ctx, "Alice", "North")

	created, err := suite.dispatch(ctx, "Pkg1", "North")
	suite.Require().NoError(err)
	suite.Equal(alice, created.CourierID)

	cmd, err := commands.NewCompleteOrderCommand(created.OrderID)
	suite.Require().NoError(err)
	handler := commands.NewCompleteOrderCommandHandler(suite.uowFactory())
	_, err = handler.Handle(ctx, cmd)
	suite.Require().NoError(err)

	reader := suite.factory.Create()
	o, err := reader.OrderRepository().Get(ctx, created.OrderID)
	suite.Require().NoError(err)
	suite.Equal(order.Completed, o.Status())

	c, err := reader.CourierRepository().Get(ctx, alice)
	suite.Require().NoError(err)
	suite.True(c.IsFree())
	suite.NotNil(c.AvgOrderCompleteTime())
	suite.Equal(1, c.AvgDayOrders())

	_, err = handler.Handle(ctx, cmd)
	suite.ErrorIs(err, order.ErrAlreadyCompleted)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDispatch_ConcurrentRequestsForSingleCourier() {
	ctx := context.Background()
	suite.registerCourier(ctx, "Alice", "North")

	const requests = 10
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for i := range requests {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.dispatch(ctx, fmt.Sprintf("pkg-%d", i), "North")
			if err == nil {
				succeeded.Add(1)
				return
			}
			suite.ErrorIs(err, commands.ErrNoFreeCourier)
		}()
	}
	wg.Wait()

	suite.EqualValues(1, succeeded.Load())

	active, err := suite.factory.Create().OrderRepository().GetAllInProgress(ctx)
	suite.Require().NoError(err)
	suite.Len(active, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDispatch_UnknownDistrict() {
	_, err := suite.dispatch(context.Background(), "Pkg1", "Nowhere")
	suite.ErrorIs(err, commands.ErrNoSuchDistrict)
}

func (suite *UnitOfWorkIntegrationTestSuite) registerCourier(ctx context.Context, name string, districts ...string) kernel.ID {
	cmd, err := commands.NewCreateCourierCommand(name, districts)
	suite.Require().NoError(err)

	handler := commands.NewCreateCourierCommandHandler(courierUoWFactory(func() commands.CourierUoW {
		return suite.factory.Create()
	}))
	id, err := handler.Handle(ctx, cmd)
	suite.Require().NoError(err)
	return id
}

func (suite *UnitOfWorkIntegrationTestSuite) dispatch(ctx context.Context, name, district string) (commands.CreateOrderResult, error) {
	cmd, err := commands.NewCreateOrderCommand(name, district)
	if err != nil {
		return commands.CreateOrderResult{}, err
	}
	handler := commands.NewCreateOrderCommandHandler(suite.uowFactory())
	return handler.Handle(ctx, cmd)
}

func (suite *UnitOfWorkIntegrationTestSuite) uowFactory() commands.UoWFactory {
	return uowFactory(func() commands.UoW { return suite.factory.Create() })
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
