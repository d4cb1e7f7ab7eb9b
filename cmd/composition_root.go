package cmd

import (
	"fmt"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	logger     *zap.Logger
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
}

// NewCompositionRoot selects the storage backend named by the config. For postgres
// it connects and migrates the schema.
func NewCompositionRoot(config Config, logger *zap.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{config: config, logger: logger}

	switch config.StorageDriver {
	case StoragePostgres:
		db, err := postgres.Open(config.DSN())
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			return nil, err
		}
		root.gormDB = db
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	case StorageMemory:
		root.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.StorageDriver)
	}

	logger.Info("storage ready", zap.String("driver", config.StorageDriver))
	return root, nil
}

// Close releases the database connection pool, if any.
func (c *CompositionRoot) Close() error {
	if c.gormDB == nil {
		return nil
	}
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) readers() queries.ReaderFactory {
	return FuncReaderFactory(func() queries.Reader {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateRecomputeCourierStatisticsCommandHandler() commands.RecomputeCourierStatisticsCommandHandler {
	return commands.NewRecomputeCourierStatisticsCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetCourierQueryHandler() queries.GetCourierQueryHandler {
	return queries.NewGetCourierQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetDistrictQueryHandler() queries.GetDistrictQueryHandler {
	return queries.NewGetDistrictQueryHandler(c.readers())
}

// CreateRouter builds the echo instance serving the HTTP API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateCourier:   c.CreateCreateCourierCommandHandler(),
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		CompleteOrder:   c.CreateCompleteOrderCommandHandler(),
		GetAllCouriers:  c.CreateGetAllCouriersQueryHandler(),
		GetCourier:      c.CreateGetCourierQueryHandler(),
		GetOrder:        c.CreateGetOrderQueryHandler(),
		GetActiveOrders: c.CreateGetActiveOrdersQueryHandler(),
		GetDistrict:     c.CreateGetDistrictQueryHandler(),
	}, c.logger)

	return httpin.NewRouter(server, c.logger, c.config.LogLevel)
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateRecomputeCourierStatisticsCommandHandler()
	return jobs.NewJobManager(&handler, c.config.StatsReconcileSchedule, c.logger)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncReaderFactory func() queries.Reader

func (f FuncReaderFactory) Create() queries.Reader {
	return f()
}
