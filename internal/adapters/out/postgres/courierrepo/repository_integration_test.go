package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/districtrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// CourierRepositoryIntegrationTestSuite verifies courier persistence against PostgreSQL.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	database           *pgtest.Database
	courierRepository  *courierrepo.GormCourierRepository
	districtRepository *districtrepo.GormDistrictRepository
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
	suite.database = pgtest.Start(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.database.Truncate(suite.T())
	suite.courierRepository = courierrepo.NewGormCourierRepository(suite.database.DB)
	suite.districtRepository = districtrepo.NewGormDistrictRepository(suite.database.DB)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Stop())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestNextID_IsMonotonic() {
	ctx := context.Background()

	first, err := suite.courierRepository.NextID(ctx)
	suite.Require().NoError(err)
	second, err := suite.courierRepository.NextID(ctx)
	suite.Require().NoError(err)

	suite.Greater(second.Int64(), first.Int64())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAndGet_RestoresClaimAndStatistics() {
	ctx := context.Background()

	c := suite.registerCourier(ctx, "south", "north")
	token := kernel.NewClaimToken()
	suite.Require().NoError(c.Claim(token))
	suite.Require().NoError(c.BindOrder(token, kernel.MustID(40)))
	avg := 90 * time.Second
	suite.Require().NoError(c.UpdateStatistics(courier.Statistics{AvgOrderCompleteTime: &avg, AvgDayOrders: 3}))
	suite.Require().NoError(suite.courierRepository.Update(ctx, c))

	got, err := suite.courierRepository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.Equal([]string{"south", "north"}, got.Districts())
	active, ok := got.ActiveOrderID()
	suite.True(ok)
	suite.Equal(kernel.MustID(40), active)
	suite.True(got.ClaimSlot().Token().IsEqual(token))
	suite.Require().NotNil(got.AvgOrderCompleteTime())
	suite.Equal(avg, *got.AvgOrderCompleteTime())
	suite.Equal(3, got.AvgDayOrders())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_ReleaseClearsClaimColumns() {
	ctx := context.Background()

	c := suite.registerCourier(ctx, "north")
	token := kernel.NewClaimToken()
	suite.Require().NoError(c.Claim(token))
	suite.Require().NoError(c.BindOrder(token, kernel.MustID(7)))
	suite.Require().NoError(suite.courierRepository.Update(ctx, c))

	suite.Require().NoError(c.Release(kernel.MustID(7)))
	suite.Require().NoError(suite.courierRepository.Update(ctx, c))

	got, err := suite.courierRepository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.True(got.IsFree())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_UnknownCourier() {
	c, err := courier.NewCourier(kernel.MustID(999), "ghost", []string{"north"})
	suite.Require().NoError(err)

	err = suite.courierRepository.Update(context.Background(), c)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NonExistentCourier_ReturnsNotFoundError() {
	got, err := suite.courierRepository.Get(context.Background(), kernel.MustID(12345))

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAllFreeInDistrict() {
	ctx := context.Background()

	first := suite.registerCourier(ctx, "north")
	busy := suite.registerCourier(ctx, "north", "south")
	suite.registerCourier(ctx, "south")
	last := suite.registerCourier(ctx, "south", "north")

	token := kernel.NewClaimToken()
	suite.Require().NoError(busy.Claim(token))
	suite.Require().NoError(suite.courierRepository.Update(ctx, busy))

	free, err := suite.courierRepository.GetAllFreeInDistrict(ctx, "north")
	suite.Require().NoError(err)
	suite.Require().Len(free, 2)
	suite.Equal(first.ID(), free[0].ID())
	suite.Equal(last.ID(), free[1].ID())

	all, err := suite.courierRepository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 4)
}

func (suite *CourierRepositoryIntegrationTestSuite) registerCourier(ctx context.Context, districts ...string) *courier.Courier {
	_, err := suite.districtRepository.ResolveOrCreate(ctx, districts)
	suite.Require().NoError(err)

	id, err := suite.courierRepository.NextID(ctx)
	suite.Require().NoError(err)

	c, err := courier.NewCourier(id, "courier", districts)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.courierRepository.Add(ctx, c))

	for _, d := range districts {
		suite.Require().NoError(suite.districtRepository.AddMember(ctx, d, id))
	}
	return c
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
