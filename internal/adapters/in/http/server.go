// Package http exposes the booking and loading sheet use cases over REST.
package http

import (
	"context"
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapitypes "github.com/oapi-codegen/runtime/types"
)

type (
	CreateBookingHandler interface {
		Handle(ctx context.Context, cmd commands.CreateBookingCommand) (*booking.Booking, error)
	}
	CancelBookingHandler interface {
		Handle(ctx context.Context, cmd commands.CancelBookingCommand) (*booking.Booking, error)
	}
	CreateOGPLHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOGPLCommand) (*ogpl.OGPL, error)
	}
	AddLRsToOGPLHandler interface {
		Handle(ctx context.Context, cmd commands.AddLRsToOGPLCommand) ([]ogpl.LoadingRecord, error)
	}
	DepartOGPLHandler interface {
		Handle(ctx context.Context, cmd commands.DepartOGPLCommand) (*ogpl.OGPL, error)
	}
	UnloadOGPLHandler interface {
		Handle(ctx context.Context, cmd commands.UnloadOGPLCommand) (commands.UnloadOGPLResult, error)
	}
	CancelOGPLHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOGPLCommand) (*ogpl.OGPL, []*booking.Booking, error)
	}

	GenerateLRNumberHandler interface {
		Handle(ctx context.Context, query queries.GenerateLRNumberQuery) (string, error)
	}
	GenerateOGPLNumberHandler interface {
		Handle(ctx context.Context, query queries.GenerateOGPLNumberQuery) (string, error)
	}
	GetBookingHandler interface {
		Handle(ctx context.Context, query queries.GetBookingQuery) (queries.BookingResponse, error)
	}
	ListBookingsHandler interface {
		Handle(ctx context.Context, query queries.ListBookingsQuery) ([]queries.BookingResponse, error)
	}
	SearchBookingsHandler interface {
		Handle(ctx context.Context, query queries.SearchBookingsQuery) ([]ports.BookingDocument, error)
	}
	GetOGPLHandler interface {
		Handle(ctx context.Context, query queries.GetOGPLQuery) (queries.GetOGPLQueryResponse, error)
	}
)

// Handlers groups the use cases served by the API.
type Handlers struct {
	CreateBooking CreateBookingHandler
	CancelBooking CancelBookingHandler
	CreateOGPL    CreateOGPLHandler
	AddLRsToOGPL  AddLRsToOGPLHandler
	DepartOGPL    DepartOGPLHandler
	UnloadOGPL    UnloadOGPLHandler
	CancelOGPL    CancelOGPLHandler

	GenerateLRNumber   GenerateLRNumberHandler
	GenerateOGPLNumber GenerateOGPLNumberHandler
	GetBooking         GetBookingHandler
	ListBookings       ListBookingsHandler
	SearchBookings     SearchBookingsHandler
	GetOGPL            GetOGPLHandler
}

// Server translates HTTP requests into commands and queries and their
// results into JSON.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// NextLRNumber handles GET /api/v1/sequences/lr. The number is a preview;
// the one stored is assigned when the booking is created.
func (s *Server) NextLRNumber(c echo.Context) error {
	orgID, err := requiredQueryUUID(c, "organization_id")
	if err != nil {
		return err
	}
	branchID, err := optionalQueryUUID(c, "branch_id")
	if err != nil {
		return err
	}

	query, err := queries.NewGenerateLRNumberQuery(orgID, branchID)
	if err != nil {
		return err
	}
	number, err := s.h.GenerateLRNumber.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NumberResponse{Number: number})
}

// NextOGPLNumber handles GET /api/v1/sequences/ogpl.
func (s *Server) NextOGPLNumber(c echo.Context) error {
	orgID, err := requiredQueryUUID(c, "organization_id")
	if err != nil {
		return err
	}

	query, err := queries.NewGenerateOGPLNumberQuery(orgID)
	if err != nil {
		return err
	}
	number, err := s.h.GenerateOGPLNumber.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, NumberResponse{Number: number})
}

// CreateBooking handles POST /api/v1/bookings.
func (s *Server) CreateBooking(c echo.Context) error {
	var body NewBooking
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}

	orgID, err := parseUUID("organization_id", body.OrganizationID)
	if err != nil {
		return err
	}
	origin, err := parseOptionalUUID("origin_branch_id", body.OriginBranchID)
	if err != nil {
		return err
	}
	destination, err := parseOptionalUUID("destination_branch_id", body.DestinationBranchID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateBookingCommand(orgID, origin, destination, body.LRNumber, body.consignment())
	if err != nil {
		return err
	}
	b, err := s.h.CreateBooking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bookingFromAggregate(b))
}

// ListBookings handles GET /api/v1/bookings.
func (s *Server) ListBookings(c echo.Context) error {
	orgID, err := requiredQueryUUID(c, "organization_id")
	if err != nil {
		return err
	}
	var status string
	var limit, offset int
	if err = bindQuery(c, "status", &status); err != nil {
		return err
	}
	if err = bindQuery(c, "limit", &limit); err != nil {
		return err
	}
	if err = bindQuery(c, "offset", &offset); err != nil {
		return err
	}

	query, err := queries.NewListBookingsQuery(orgID, status, limit, offset)
	if err != nil {
		return err
	}
	rows, err := s.h.ListBookings.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]Booking, 0, len(rows))
	for _, r := range rows {
		response = append(response, bookingFromResponse(r))
	}
	return c.JSON(http.StatusOK, response)
}

// SearchBookings handles GET /api/v1/bookings/search.
func (s *Server) SearchBookings(c echo.Context) error {
	orgID, err := requiredQueryUUID(c, "organization_id")
	if err != nil {
		return err
	}
	var text, status string
	var limit int
	if err = bindQuery(c, "q", &text); err != nil {
		return err
	}
	if err = bindQuery(c, "status", &status); err != nil {
		return err
	}
	if err = bindQuery(c, "limit", &limit); err != nil {
		return err
	}

	query, err := queries.NewSearchBookingsQuery(orgID, text, status, limit)
	if err != nil {
		return err
	}
	docs, err := s.h.SearchBookings.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]BookingSummary, 0, len(docs))
	for _, d := range docs {
		response = append(response, bookingFromDocument(d))
	}
	return c.JSON(http.StatusOK, response)
}

// GetBooking handles GET /api/v1/bookings/{id}.
func (s *Server) GetBooking(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetBookingQuery(id)
	if err != nil {
		return err
	}
	b, err := s.h.GetBooking.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingFromResponse(b))
}

// CancelBooking handles POST /api/v1/bookings/{id}/cancel.
func (s *Server) CancelBooking(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelBookingCommand(id)
	if err != nil {
		return err
	}
	b, err := s.h.CancelBooking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingFromAggregate(b))
}

// CreateOGPL handles POST /api/v1/ogpls.
func (s *Server) CreateOGPL(c echo.Context) error {
	var body NewOGPL
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}

	orgID, err := parseUUID("organization_id", body.OrganizationID)
	if err != nil {
		return err
	}
	from, err := parseOptionalUUID("from_branch_id", body.FromBranchID)
	if err != nil {
		return err
	}
	to, err := parseOptionalUUID("to_branch_id", body.ToBranchID)
	if err != nil {
		return err
	}
	bookingIDs, err := parseUUIDs("booking_ids", body.BookingIDs)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOGPLCommand(orgID, body.VehicleNumber, body.DriverName, from, to, bookingIDs)
	if err != nil {
		return err
	}
	sheet, err := s.h.CreateOGPL.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ogplFromAggregate(sheet))
}

// GetOGPL handles GET /api/v1/ogpls/{id}.
func (s *Server) GetOGPL(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOGPLQuery(id)
	if err != nil {
		return err
	}
	sheet, err := s.h.GetOGPL.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ogplFromResponse(sheet))
}

// LoadOGPL handles POST /api/v1/ogpls/{id}/loading and returns the new
// loading records.
func (s *Server) LoadOGPL(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var body LoadBookings
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}
	bookingIDs, err := parseUUIDs("booking_ids", body.BookingIDs)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddLRsToOGPLCommand(id, bookingIDs)
	if err != nil {
		return err
	}
	records, err := s.h.AddLRsToOGPL.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, loadingRecords(records))
}

// DepartOGPL handles POST /api/v1/ogpls/{id}/depart.
func (s *Server) DepartOGPL(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDepartOGPLCommand(id)
	if err != nil {
		return err
	}
	sheet, err := s.h.DepartOGPL.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ogplFromAggregate(sheet))
}

// UnloadOGPL handles POST /api/v1/ogpls/{id}/unloading. Bookings whose
// update failed are reported in the outcomes; the response is still 200
// because the unloading itself was recorded.
func (s *Server) UnloadOGPL(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var body UnloadReport
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}
	bookingIDs, err := parseUUIDs("booking_ids", body.BookingIDs)
	if err != nil {
		return err
	}
	conditions, err := body.conditions()
	if err != nil {
		return err
	}

	cmd, err := commands.NewUnloadOGPLCommand(id, bookingIDs, conditions)
	if err != nil {
		return err
	}
	result, err := s.h.UnloadOGPL.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UnloadResult{
		OGPL:     ogplFromAggregate(result.Sheet),
		Outcomes: outcomes(result),
	})
}

// CancelOGPL handles POST /api/v1/ogpls/{id}/cancel.
func (s *Server) CancelOGPL(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOGPLCommand(id)
	if err != nil {
		return err
	}
	sheet, released, err := s.h.CancelOGPL.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(released))
	for _, b := range released {
		ids = append(ids, b.ID().String())
	}
	return c.JSON(http.StatusOK, CancelOGPLResult{OGPL: ogplFromAggregate(sheet), Released: ids})
}

func bindAndValidate(c echo.Context, body any) error {
	if err := c.Bind(body); err != nil {
		return invalidParam("request body", err)
	}
	return c.Validate(body)
}

// pathUUID binds a path parameter the way generated oapi-codegen servers do.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw openapitypes.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, invalidParam(name, err)
	}
	return parseUUID(name, raw.String())
}

func bindQuery(c echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dest); err != nil {
		return invalidParam(name, err)
	}
	return nil
}

func requiredQueryUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw openapitypes.UUID
	if err := runtime.BindQueryParameter("form", true, true, name, c.QueryParams(), &raw); err != nil {
		return kernel.UUID{}, invalidParam(name, err)
	}
	return parseUUID(name, raw.String())
}

func optionalQueryUUID(c echo.Context, name string) (*kernel.UUID, error) {
	var raw *openapitypes.UUID
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &raw); err != nil {
		return nil, invalidParam(name, err)
	}
	if raw == nil {
		return nil, nil
	}
	id, err := parseUUID(name, raw.String())
	if err != nil {
		return nil, err
	}
	return &id, nil
}
