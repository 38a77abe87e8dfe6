package cmd

import (
	"context"
	"time"

	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/elastic"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/branchrepo"
	"freight/internal/adapters/out/rediscache"
	"freight/internal/adapters/out/servicebus"
	"freight/internal/core/application/numbering"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/ports"
	"freight/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. Optional infrastructure
// falls back to postgres or to logging when it is not configured.
type CompositionRoot struct {
	cfg        Config
	logger     *zap.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	branches   ports.BranchDirectory
	generator  *numbering.Generator
	index      ports.BookingIndex
	publisher  ports.EventPublisher

	closers []func(context.Context) error
}

func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
	}

	if err = c.wireBranches(ctx); err != nil {
		return nil, err
	}
	c.generator = numbering.NewGenerator(c.branches, loc, time.Now)

	if err = c.wireIndex(ctx); err != nil {
		return nil, err
	}
	if err = c.wirePublisher(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) wireBranches(ctx context.Context) error {
	var directory ports.BranchDirectory = branchrepo.NewGormBranchRepository(c.gormDB)
	if c.cfg.Redis.Addr == "" {
		c.branches = directory
		return nil
	}

	client, err := rediscache.NewClient(ctx, c.cfg.Redis.Addr, c.cfg.Redis.Password, c.cfg.Redis.DB)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, func(context.Context) error { return client.Close() })
	c.branches = rediscache.NewBranchCache(client, directory, c.cfg.Redis.TTL, c.logger)
	c.logger.Info("branch cache enabled", zap.String("addr", c.cfg.Redis.Addr))
	return nil
}

func (c *CompositionRoot) wireIndex(ctx context.Context) error {
	if c.cfg.Elastic.URL == "" {
		c.index = postgres.NewGormBookingSearch(c.gormDB)
		return nil
	}

	index, err := elastic.NewBookingIndex(c.cfg.Elastic)
	if err != nil {
		return err
	}
	if err = index.EnsureIndex(ctx); err != nil {
		return err
	}
	c.index = index
	c.logger.Info("elasticsearch booking index enabled", zap.String("url", c.cfg.Elastic.URL))
	return nil
}

func (c *CompositionRoot) wirePublisher() error {
	sb := c.cfg.ServiceBus
	if sb.ConnectionString == "" {
		c.publisher = servicebus.NewLogPublisher(c.logger)
		return nil
	}

	publisher, err := servicebus.NewPublisher(sb.ConnectionString, sb.Entity, sb.Source)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, publisher.Close)
	c.publisher = publisher
	c.logger.Info("service bus publisher enabled", zap.String("entity", sb.Entity))
	return nil
}

// Close releases the optional clients in reverse order.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *CompositionRoot) bookingUoWFactory() commands.BookingUoWFactory {
	return FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateBookingCommandHandler() commands.CreateBookingCommandHandler {
	return commands.NewCreateBookingCommandHandler(
		c.bookingUoWFactory(), c.generator, c.cfg.Sequence.MaxRetries, c.logger)
}

func (c *CompositionRoot) CreateCancelBookingCommandHandler() commands.CancelBookingCommandHandler {
	return commands.NewCancelBookingCommandHandler(c.bookingUoWFactory(), c.generator.Now)
}

func (c *CompositionRoot) CreateCreateOGPLCommandHandler() commands.CreateOGPLCommandHandler {
	return commands.NewCreateOGPLCommandHandler(c.uoWFactory(), c.generator, c.cfg.Sequence.MaxRetries, c.logger)
}

func (c *CompositionRoot) CreateAddLRsToOGPLCommandHandler() commands.AddLRsToOGPLCommandHandler {
	return commands.NewAddLRsToOGPLCommandHandler(c.uoWFactory(), c.generator.Now)
}

func (c *CompositionRoot) CreateDepartOGPLCommandHandler() commands.DepartOGPLCommandHandler {
	return commands.NewDepartOGPLCommandHandler(c.uoWFactory(), c.generator.Now)
}

func (c *CompositionRoot) CreateUnloadOGPLCommandHandler() commands.UnloadOGPLCommandHandler {
	return commands.NewUnloadOGPLCommandHandler(c.uoWFactory(), c.generator.Now, c.logger)
}

func (c *CompositionRoot) CreateCancelOGPLCommandHandler() commands.CancelOGPLCommandHandler {
	return commands.NewCancelOGPLCommandHandler(c.uoWFactory(), c.generator.Now)
}

// Number previews read through repositories outside any transaction.
func (c *CompositionRoot) CreateGenerateLRNumberQueryHandler() queries.GenerateLRNumberQueryHandler {
	return queries.NewGenerateLRNumberQueryHandler(c.generator, c.uowFactory.Create().BookingRepository())
}

func (c *CompositionRoot) CreateGenerateOGPLNumberQueryHandler() queries.GenerateOGPLNumberQueryHandler {
	return queries.NewGenerateOGPLNumberQueryHandler(c.generator, c.uowFactory.Create().OGPLRepository())
}

func (c *CompositionRoot) CreateGetBookingQueryHandler() queries.GetBookingQueryHandler {
	return queries.NewGetBookingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListBookingsQueryHandler() queries.ListBookingsQueryHandler {
	return queries.NewListBookingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchBookingsQueryHandler() queries.SearchBookingsQueryHandler {
	return queries.NewSearchBookingsQueryHandler(c.index)
}

func (c *CompositionRoot) CreateGetOGPLQueryHandler() queries.GetOGPLQueryHandler {
	return queries.NewGetOGPLQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateBooking:      c.CreateCreateBookingCommandHandler(),
		CancelBooking:      c.CreateCancelBookingCommandHandler(),
		CreateOGPL:         c.CreateCreateOGPLCommandHandler(),
		AddLRsToOGPL:       c.CreateAddLRsToOGPLCommandHandler(),
		DepartOGPL:         c.CreateDepartOGPLCommandHandler(),
		UnloadOGPL:         c.CreateUnloadOGPLCommandHandler(),
		CancelOGPL:         c.CreateCancelOGPLCommandHandler(),
		GenerateLRNumber:   c.CreateGenerateLRNumberQueryHandler(),
		GenerateOGPLNumber: c.CreateGenerateOGPLNumberQueryHandler(),
		GetBooking:         c.CreateGetBookingQueryHandler(),
		ListBookings:       c.CreateListBookingsQueryHandler(),
		SearchBookings:     c.CreateSearchBookingsQueryHandler(),
		GetOGPL:            c.CreateGetOGPLQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := jobs.NewOutboxRelay(
		postgres.NewGormOutbox(c.gormDB), c.publisher, c.index, c.cfg.Outbox.BatchSize, c.logger)
	return jobs.NewJobManager(jobs.NewOutboxRelayJob(relay, c.cfg.Outbox.Schedule, c.logger))
}

// BranchRepository is used by the branch CLI.
func (c *CompositionRoot) BranchRepository() *branchrepo.GormBranchRepository {
	return branchrepo.NewGormBranchRepository(c.gormDB)
}

// Generator exposes the number generator to the sequence CLI.
func (c *CompositionRoot) Generator() *numbering.Generator {
	return c.generator
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
