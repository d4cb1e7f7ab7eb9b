package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/district"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustCourier(t *testing.T, id int64, districts ...string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.MustID(id), "courier", districts)
	require.NoError(t, err)
	return c
}

func busyCourier(t *testing.T, id int64, orderID int64, districts ...string) *courier.Courier {
	t.Helper()
	c := mustCourier(t, id, districts...)
	token := kernel.NewClaimToken()
	require.NoError(t, c.Claim(token))
	require.NoError(t, c.BindOrder(token, kernel.MustID(orderID)))
	return c
}

type createOrderFixture struct {
	districtRepo *MockDistrictRepository
	courierRepo  *MockCourierRepository
	orderRepo    *MockOrderRepository
	uow          *MockUoW
	factory      *MockUoWFactory
}

func newCreateOrderFixture() createOrderFixture {
	f := createOrderFixture{
		districtRepo: new(MockDistrictRepository),
		courierRepo:  new(MockCourierRepository),
		orderRepo:    new(MockOrderRepository),
		uow:          new(MockUoW),
		factory:      new(MockUoWFactory),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("DistrictRepository").Return(f.districtRepo).Once()
	f.uow.On("CourierRepository").Return(f.courierRepo).Once()
	f.uow.On("OrderRepository").Return(f.orderRepo).Once()
	return f
}

func (f createOrderFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.districtRepo.AssertExpectations(t)
	f.courierRepo.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("pizza", "center")
	d := mustDistricts(t, "center")[0]
	c3 := mustCourier(t, 3, "center")

	f := newCreateOrderFixture()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.districtRepo.On("GetForUpdate", ctx, "center").Return(d, nil).Once(),
		f.courierRepo.On("GetAllFreeInDistrict", ctx, "center").
			Return([]*courier.Courier{mustCourier(t, 5, "center"), mustCourier(t, 3, "center")}, nil).Once(),
		f.courierRepo.On("GetForUpdate", ctx, kernel.ID(3)).Return(c3, nil).Once(),
		f.orderRepo.On("NextID", ctx).Return(kernel.ID(11), nil).Once(),
		f.orderRepo.On("Add", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.ID() == 11 && o.CourierID() == 3 && o.District() == "center" &&
				o.Name() == "pizza" && o.Status() == order.InProgress
		})).Return(nil).Once(),
		f.courierRepo.On("Update", ctx, c3).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(f.factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.CreateOrderResult{OrderID: 11, CourierID: 3}, result)
	orderID, ok := c3.ActiveOrderID()
	require.True(t, ok)
	assert.Equal(t, kernel.ID(11), orderID)
	f.assertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_SkipsCourierTakenMeanwhile(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("pizza", "center")
	d := mustDistricts(t, "center")[0]
	c2 := mustCourier(t, 2, "center")

	f := newCreateOrderFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.districtRepo.On("GetForUpdate", ctx, "center").Return(d, nil).Once()
	f.courierRepo.On("GetAllFreeInDistrict", ctx, "center").
		Return([]*courier.Courier{mustCourier(t, 1, "center"), mustCourier(t, 2, "center")}, nil).Once()
	// courier 1 was claimed through another district between the snapshot and the lock
	f.courierRepo.On("GetForUpdate", ctx, kernel.ID(1)).Return(busyCourier(t, 1, 99, "center", "north"), nil).Once()
	f.courierRepo.On("GetForUpdate", ctx, kernel.ID(2)).Return(c2, nil).Once()
	f.orderRepo.On("NextID", ctx).Return(kernel.ID(4), nil).Once()
	f.orderRepo.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.courierRepo.On("Update", ctx, c2).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(f.factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, kernel.ID(2), result.CourierID)
	f.assertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NoSuchDistrict(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("pizza", "nowhere")

	f := newCreateOrderFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.districtRepo.On("GetForUpdate", ctx, "nowhere").
		Return(nil, errs.NewObjectNotFoundError("name", "nowhere")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(f.factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoSuchDistrict)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), "nowhere")
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_NoFreeCourier(t *testing.T) {
	tests := []struct {
		name       string
		candidates func(t *testing.T) []*courier.Courier
		locked     func(t *testing.T) *courier.Courier
	}{
		{
			name:       "empty candidate set",
			candidates: func(*testing.T) []*courier.Courier { return []*courier.Courier{} },
		},
		{
			name: "only candidate became busy",
			candidates: func(t *testing.T) []*courier.Courier {
				return []*courier.Courier{mustCourier(t, 1, "center")}
			},
			locked: func(t *testing.T) *courier.Courier { return busyCourier(t, 1, 8, "center") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, _ := commands.NewCreateOrderCommand("pizza", "center")
			d, err := district.NewDistrict("center")
			require.NoError(t, err)

			f := newCreateOrderFixture()
			f.uow.On("Begin", ctx).Return(nil).Once()
			f.districtRepo.On("GetForUpdate", ctx, "center").Return(d, nil).Once()
			f.courierRepo.On("GetAllFreeInDistrict", ctx, "center").Return(tt.candidates(t), nil).Once()
			if tt.locked != nil {
				f.courierRepo.On("GetForUpdate", ctx, kernel.ID(1)).Return(tt.locked(t), nil).Once()
			}
			f.uow.On("Rollback", ctx).Return(nil).Once()

			h := commands.NewCreateOrderCommandHandler(f.factory)
			_, err = h.Handle(ctx, cmd)

			require.ErrorIs(t, err, commands.ErrNoFreeCourier)
			assert.Contains(t, err.Error(), "center")
			f.orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestCreateOrderCommandHandler_Handle_AddErrorRollsBack(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("pizza", "center")
	d := mustDistricts(t, "center")[0]
	c1 := mustCourier(t, 1, "center")
	addErr := errors.New("insert failed")

	f := newCreateOrderFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.districtRepo.On("GetForUpdate", ctx, "center").Return(d, nil).Once()
	f.courierRepo.On("GetAllFreeInDistrict", ctx, "center").Return([]*courier.Courier{c1}, nil).Once()
	f.courierRepo.On("GetForUpdate", ctx, kernel.ID(1)).Return(c1, nil).Once()
	f.orderRepo.On("NextID", ctx).Return(kernel.ID(1), nil).Once()
	f.orderRepo.On("Add", ctx, mock.Anything).Return(addErr).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(f.factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, addErr)
	f.courierRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand("pizza", "center")

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
