package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/bookingrepo"
	"freight/internal/adapters/out/postgres/ogplrepo"
	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

var seededAt = time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)

// ReadModelQueryHandlersTestSuite seeds through the repositories and reads
// back through the raw SQL query handlers.
type ReadModelQueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	bookings  *bookingrepo.GormBookingRepository
	sheets    *ogplrepo.GormOGPLRepository
	org       kernel.UUID
}

func (suite *ReadModelQueryHandlersTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.bookings = bookingrepo.NewGormBookingRepository(db, nopTracker{})
	suite.sheets = ogplrepo.NewGormOGPLRepository(db, nopTracker{})
}

func (suite *ReadModelQueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE unloading_records, loading_records, ogpls, bookings").Error
	suite.Require().NoError(err)
	suite.org = kernel.NewUUID()
}

func (suite *ReadModelQueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ReadModelQueryHandlersTestSuite) TestGetBooking() {
	ctx := context.Background()
	origin := kernel.NewUUID()
	b := suite.seedBooking("MU2501-0001", &origin, seededAt)

	query, err := queries.NewGetBookingQuery(b.ID())
	suite.Require().NoError(err)

	got, err := queries.NewGetBookingQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(b.ID(), got.ID)
	suite.Equal(suite.org, got.OrganizationID)
	suite.Equal("MU2501-0001", got.LRNumber)
	suite.Equal("system", got.LRType)
	suite.Equal("booked", got.Status)
	suite.Equal(origin, *got.OriginBranchID)
	suite.Nil(got.DestinationBranchID)
	suite.Equal("Patil Hardware", got.Receiver)
	suite.Equal(3, got.Quantity)
	suite.InDelta(45.5, got.WeightKg, 0.001)
	suite.InDelta(520.25, got.Total(), 0.001)
	suite.True(seededAt.Equal(got.CreatedAt))
}

func (suite *ReadModelQueryHandlersTestSuite) TestGetBooking_NotFound() {
	query, err := queries.NewGetBookingQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetBookingQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReadModelQueryHandlersTestSuite) TestListBookings() {
	ctx := context.Background()
	first := suite.seedBooking("MU2501-0001", nil, seededAt)
	second := suite.seedBooking("MU2501-0002", nil, seededAt.Add(time.Minute))
	third := suite.seedBooking("MU2501-0003", nil, seededAt.Add(2*time.Minute))
	suite.Require().NoError(second.Load(seededAt.Add(time.Hour)))
	suite.Require().NoError(suite.bookings.Update(ctx, second))

	other, err := booking.NewBooking(kernel.NewUUID(), kernel.NewUUID(), "MU2501-0001", booking.System,
		nil, nil, suite.consignment(), seededAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.bookings.Add(ctx, other))

	handler := queries.NewListBookingsQueryHandler(suite.db)

	suite.Run("newest first", func() {
		query, err := queries.NewListBookingsQuery(suite.org, "", 0, 0)
		suite.Require().NoError(err)

		got, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Require().Len(got, 3)
		suite.Equal(third.ID(), got[0].ID)
		suite.Equal(second.ID(), got[1].ID)
		suite.Equal(first.ID(), got[2].ID)
	})

	suite.Run("status filter", func() {
		query, err := queries.NewListBookingsQuery(suite.org, "in_transit", 0, 0)
		suite.Require().NoError(err)

		got, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Require().Len(got, 1)
		suite.Equal(second.ID(), got[0].ID)
		suite.Equal("in_transit", got[0].Status)
	})

	suite.Run("paging", func() {
		query, err := queries.NewListBookingsQuery(suite.org, "", 2, 2)
		suite.Require().NoError(err)

		got, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.Require().Len(got, 1)
		suite.Equal(first.ID(), got[0].ID)
	})

	suite.Run("empty organization", func() {
		query, err := queries.NewListBookingsQuery(kernel.NewUUID(), "", 0, 0)
		suite.Require().NoError(err)

		got, err := handler.Handle(ctx, query)

		suite.Require().NoError(err)
		suite.NotNil(got)
		suite.Empty(got)
	})
}

func (suite *ReadModelQueryHandlersTestSuite) TestGetOGPL_WithRecords() {
	ctx := context.Background()
	good := suite.seedBooking("MU2501-0001", nil, seededAt)
	missing := suite.seedBooking("MU2501-0002", nil, seededAt)

	sheet, err := ogpl.NewOGPL(kernel.NewUUID(), suite.org, "OGPL-20250115-0001",
		"MH12AB1234", "Ramesh", nil, nil, seededAt)
	suite.Require().NoError(err)
	_, err = sheet.Load([]kernel.UUID{missing.ID(), good.ID()}, seededAt.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(sheet.Depart(seededAt.Add(2 * time.Hour)))

	arrival := seededAt.Add(24 * time.Hour)
	goodCondition, err := ogpl.NewCondition(ogpl.Good, "", "")
	suite.Require().NoError(err)
	missingCondition, err := ogpl.NewCondition(ogpl.Missing, "not on truck", "")
	suite.Require().NoError(err)
	record, err := ogpl.NewUnloadingRecord(kernel.NewUUID(), sheet.ID(), map[kernel.UUID]ogpl.Condition{
		good.ID():    goodCondition,
		missing.ID(): missingCondition,
	}, arrival)
	suite.Require().NoError(err)
	suite.Require().NoError(sheet.Unload(record, arrival))
	suite.Require().NoError(suite.sheets.Add(ctx, sheet))

	query, err := queries.NewGetOGPLQuery(sheet.ID())
	suite.Require().NoError(err)

	got, err := queries.NewGetOGPLQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("OGPL-20250115-0001", got.Number)
	suite.Equal("completed", got.Status)
	suite.Equal("MH12AB1234", got.VehicleNumber)
	suite.Require().Len(got.LoadingRecords, 2)
	suite.Equal(missing.ID(), got.LoadingRecords[0].BookingID)
	suite.Equal("MU2501-0002", got.LoadingRecords[0].LRNumber)
	suite.Equal("booked", got.LoadingRecords[0].BookingStatus)
	suite.Equal(good.ID(), got.LoadingRecords[1].BookingID)

	suite.Require().NotNil(got.Unloading)
	suite.Equal(record.ID(), got.Unloading.ID)
	suite.True(arrival.Equal(got.Unloading.UnloadedAt))
	suite.Require().Len(got.Unloading.Conditions, 2)
	suite.Equal(missing.ID(), got.Unloading.Conditions[0].BookingID)
	suite.Equal("missing", got.Unloading.Conditions[0].Status)
	suite.Equal("not on truck", got.Unloading.Conditions[0].Remarks)
	suite.Equal("good", got.Unloading.Conditions[1].Status)
}

func (suite *ReadModelQueryHandlersTestSuite) TestGetOGPL_Open() {
	ctx := context.Background()
	sheet, err := ogpl.NewOGPL(kernel.NewUUID(), suite.org, "OGPL-20250115-0002",
		"MH12AB1234", "", nil, nil, seededAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.sheets.Add(ctx, sheet))

	query, err := queries.NewGetOGPLQuery(sheet.ID())
	suite.Require().NoError(err)

	got, err := queries.NewGetOGPLQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("created", got.Status)
	suite.NotNil(got.LoadingRecords)
	suite.Empty(got.LoadingRecords)
	suite.Nil(got.Unloading)
}

func (suite *ReadModelQueryHandlersTestSuite) TestGetOGPL_NotFound() {
	query, err := queries.NewGetOGPLQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOGPLQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReadModelQueryHandlersTestSuite) seedBooking(lr string, origin *kernel.UUID, at time.Time) *booking.Booking {
	b, err := booking.NewBooking(kernel.NewUUID(), suite.org, lr, booking.System, origin, nil, suite.consignment(), at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.bookings.Add(context.Background(), b))
	return b
}

func (suite *ReadModelQueryHandlersTestSuite) consignment() booking.Consignment {
	return booking.Consignment{
		Sender:        "Shree Traders",
		Receiver:      "Patil Hardware",
		Article:       "Cartons",
		Quantity:      3,
		WeightKg:      45.5,
		FreightCharge: 500,
		OtherCharges:  20.25,
	}
}

func TestReadModelQueryHandlersTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(ReadModelQueryHandlersTestSuite))
}
