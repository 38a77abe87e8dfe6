package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCreateBooking struct{ mock.Mock }

func (m *MockCreateBooking) Handle(ctx context.Context, cmd commands.CreateBookingCommand) (*booking.Booking, error) {
	args := m.Called(ctx, cmd)
	b, _ := args.Get(0).(*booking.Booking)
	return b, args.Error(1)
}

type MockCancelBooking struct{ mock.Mock }

func (m *MockCancelBooking) Handle(ctx context.Context, cmd commands.CancelBookingCommand) (*booking.Booking, error) {
	args := m.Called(ctx, cmd)
	b, _ := args.Get(0).(*booking.Booking)
	return b, args.Error(1)
}

type MockUnloadOGPL struct{ mock.Mock }

func (m *MockUnloadOGPL) Handle(ctx context.Context, cmd commands.UnloadOGPLCommand) (commands.UnloadOGPLResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.UnloadOGPLResult), args.Error(1)
}

type MockCancelOGPL struct{ mock.Mock }

func (m *MockCancelOGPL) Handle(ctx context.Context, cmd commands.CancelOGPLCommand) (*ogpl.OGPL, []*booking.Booking, error) {
	args := m.Called(ctx, cmd)
	sheet, _ := args.Get(0).(*ogpl.OGPL)
	released, _ := args.Get(1).([]*booking.Booking)
	return sheet, released, args.Error(2)
}

type MockGenerateLRNumber struct{ mock.Mock }

func (m *MockGenerateLRNumber) Handle(ctx context.Context, query queries.GenerateLRNumberQuery) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

type MockGetBooking struct{ mock.Mock }

func (m *MockGetBooking) Handle(ctx context.Context, query queries.GetBookingQuery) (queries.BookingResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.BookingResponse), args.Error(1)
}

type MockListBookings struct{ mock.Mock }

func (m *MockListBookings) Handle(ctx context.Context, query queries.ListBookingsQuery) ([]queries.BookingResponse, error) {
	args := m.Called(ctx, query)
	rows, _ := args.Get(0).([]queries.BookingResponse)
	return rows, args.Error(1)
}

type MockSearchBookings struct{ mock.Mock }

func (m *MockSearchBookings) Handle(ctx context.Context, query queries.SearchBookingsQuery) ([]ports.BookingDocument, error) {
	args := m.Called(ctx, query)
	docs, _ := args.Get(0).([]ports.BookingDocument)
	return docs, args.Error(1)
}

var (
	testNow = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	orgID   = kernel.NewUUID()
)

func newTestEcho(h Handlers) *echo.Echo {
	e := echo.New()
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = errorHandler(zap.NewNop())
	RegisterHandlers(e, NewServer(h))
	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func testBooking(t *testing.T, lr string, lrType booking.LRType) *booking.Booking {
	t.Helper()
	b, err := booking.NewBooking(kernel.NewUUID(), orgID, lr, lrType, nil, nil, booking.Consignment{
		Sender:        "Acme Traders",
		Receiver:      "Globex",
		Article:       "cartons",
		Quantity:      4,
		WeightKg:      12.5,
		FreightCharge: 400,
		OtherCharges:  50,
	}, testNow)
	require.NoError(t, err)
	return b
}

func testSheet(t *testing.T) *ogpl.OGPL {
	t.Helper()
	sheet, err := ogpl.NewOGPL(kernel.NewUUID(), orgID, "OGPL-20250115-0001", "MH12AB1234", "Ravi", nil, nil, testNow)
	require.NoError(t, err)
	return sheet
}

func TestServer_CreateBooking(t *testing.T) {
	body := `{"organization_id":"` + orgID.String() + `","sender":"Acme Traders","receiver":"Globex",` +
		`"article":"cartons","quantity":4,"weight_kg":12.5,"freight_charge":400,"other_charges":50}`

	t.Run("created", func(t *testing.T) {
		handler := &MockCreateBooking{}
		created := testBooking(t, "MU2501-0001", booking.System)
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateBookingCommand) bool {
			return cmd.OrganizationID().IsEqual(orgID) && !cmd.IsManual() && cmd.Consignment().Quantity == 4
		})).Return(created, nil)

		rec := do(t, newTestEcho(Handlers{CreateBooking: handler}), http.MethodPost, "/api/v1/bookings", body)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		got := decode[Booking](t, rec)
		assert.Equal(t, "MU2501-0001", got.LRNumber)
		assert.Equal(t, "system", got.LRType)
		assert.Equal(t, "booked", got.Status)
		assert.InDelta(t, 450.0, got.Total, 0.001)
		assert.Nil(t, got.OriginBranchID)
		handler.AssertExpectations(t)
	})

	t.Run("manual_number_in_use", func(t *testing.T) {
		handler := &MockCreateBooking{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateBookingCommand) bool {
			return cmd.ManualLRNumber() == "123456"
		})).Return(nil, errs.NewDataAccessError("insert booking", ports.ErrDuplicateIdentifier))
		manual := strings.Replace(body, `"sender"`, `"lr_number":" 123456 ","sender"`, 1)

		rec := do(t, newTestEcho(Handlers{CreateBooking: handler}), http.MethodPost, "/api/v1/bookings", manual)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "number already in use", decode[Error](t, rec).Message)
	})

	t.Run("missing_sender", func(t *testing.T) {
		handler := &MockCreateBooking{}
		invalid := strings.Replace(body, `"sender":"Acme Traders",`, "", 1)

		rec := do(t, newTestEcho(Handlers{CreateBooking: handler}), http.MethodPost, "/api/v1/bookings", invalid)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, strings.HasPrefix(decode[Error](t, rec).Message, "invalid input:"))
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("malformed_json", func(t *testing.T) {
		rec := do(t, newTestEcho(Handlers{CreateBooking: &MockCreateBooking{}}), http.MethodPost, "/api/v1/bookings", `{"sender":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("storage_down", func(t *testing.T) {
		handler := &MockCreateBooking{}
		handler.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewDataAccessError("latest lr number", errors.New("connection refused")))

		rec := do(t, newTestEcho(Handlers{CreateBooking: handler}), http.MethodPost, "/api/v1/bookings", body)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		got := decode[Error](t, rec)
		assert.Equal(t, retryMessage, got.Message)
		assert.NotContains(t, got.Message, "connection refused")
	})
}

func TestServer_NextLRNumber(t *testing.T) {
	t.Run("with_branch", func(t *testing.T) {
		branchID := kernel.NewUUID()
		handler := &MockGenerateLRNumber{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GenerateLRNumberQuery) bool {
			return q.BranchID() != nil && q.BranchID().IsEqual(branchID)
		})).Return("MU2501-0008", nil)

		rec := do(t, newTestEcho(Handlers{GenerateLRNumber: handler}), http.MethodGet,
			"/api/v1/sequences/lr?organization_id="+orgID.String()+"&branch_id="+branchID.String(), "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "MU2501-0008", decode[NumberResponse](t, rec).Number)
	})

	t.Run("without_branch", func(t *testing.T) {
		handler := &MockGenerateLRNumber{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GenerateLRNumberQuery) bool {
			return q.BranchID() == nil
		})).Return("DC2501-0001", nil)

		rec := do(t, newTestEcho(Handlers{GenerateLRNumber: handler}), http.MethodGet,
			"/api/v1/sequences/lr?organization_id="+orgID.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "DC2501-0001", decode[NumberResponse](t, rec).Number)
	})

	t.Run("organization_required", func(t *testing.T) {
		handler := &MockGenerateLRNumber{}

		rec := do(t, newTestEcho(Handlers{GenerateLRNumber: handler}), http.MethodGet, "/api/v1/sequences/lr", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("malformed_branch", func(t *testing.T) {
		rec := do(t, newTestEcho(Handlers{GenerateLRNumber: &MockGenerateLRNumber{}}), http.MethodGet,
			"/api/v1/sequences/lr?organization_id="+orgID.String()+"&branch_id=mumbai", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_GetBooking(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		id := kernel.NewUUID()
		handler := &MockGetBooking{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetBookingQuery) bool {
			return q.BookingID().IsEqual(id)
		})).Return(queries.BookingResponse{
			ID:             id,
			OrganizationID: orgID,
			LRNumber:       "MU2501-0001",
			LRType:         "system",
			Status:         "in_transit",
			FreightCharge:  100,
			OtherCharges:   5,
			CreatedAt:      testNow,
			UpdatedAt:      testNow,
		}, nil)

		rec := do(t, newTestEcho(Handlers{GetBooking: handler}), http.MethodGet, "/api/v1/bookings/"+id.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[Booking](t, rec)
		assert.Equal(t, id.String(), got.ID)
		assert.Equal(t, "in_transit", got.Status)
		assert.InDelta(t, 105.0, got.Total, 0.001)
	})

	t.Run("not_found", func(t *testing.T) {
		id := kernel.NewUUID()
		handler := &MockGetBooking{}
		handler.On("Handle", mock.Anything, mock.Anything).
			Return(queries.BookingResponse{}, errs.NewObjectNotFoundError("booking", id))

		rec := do(t, newTestEcho(Handlers{GetBooking: handler}), http.MethodGet, "/api/v1/bookings/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed_id", func(t *testing.T) {
		handler := &MockGetBooking{}

		rec := do(t, newTestEcho(Handlers{GetBooking: handler}), http.MethodGet, "/api/v1/bookings/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_ListBookings(t *testing.T) {
	t.Run("passes_filters", func(t *testing.T) {
		handler := &MockListBookings{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListBookingsQuery) bool {
			status, ok := q.Status()
			return ok && status == booking.InTransit && q.Limit() == 20 && q.Offset() == 40
		})).Return([]queries.BookingResponse{{ID: kernel.NewUUID(), OrganizationID: orgID, Status: "in_transit"}}, nil)

		rec := do(t, newTestEcho(Handlers{ListBookings: handler}), http.MethodGet,
			"/api/v1/bookings?organization_id="+orgID.String()+"&status=in_transit&limit=20&offset=40", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Len(t, decode[[]Booking](t, rec), 1)
	})

	t.Run("empty_is_an_array", func(t *testing.T) {
		handler := &MockListBookings{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(nil, nil)

		rec := do(t, newTestEcho(Handlers{ListBookings: handler}), http.MethodGet,
			"/api/v1/bookings?organization_id="+orgID.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("unknown_status", func(t *testing.T) {
		rec := do(t, newTestEcho(Handlers{ListBookings: &MockListBookings{}}), http.MethodGet,
			"/api/v1/bookings?organization_id="+orgID.String()+"&status=lost", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non_numeric_limit", func(t *testing.T) {
		rec := do(t, newTestEcho(Handlers{ListBookings: &MockListBookings{}}), http.MethodGet,
			"/api/v1/bookings?organization_id="+orgID.String()+"&limit=ten", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_SearchBookings(t *testing.T) {
	handler := &MockSearchBookings{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.SearchBookingsQuery) bool {
		return q.Text() == "acme"
	})).Return([]ports.BookingDocument{{ID: "b-1", LRNumber: "MU2501-0001", Sender: "Acme Traders"}}, nil)

	rec := do(t, newTestEcho(Handlers{SearchBookings: handler}), http.MethodGet,
		"/api/v1/bookings/search?organization_id="+orgID.String()+"&q=acme", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[[]BookingSummary](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "MU2501-0001", got[0].LRNumber)
}

func TestServer_CancelBooking(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		b := testBooking(t, "MU2501-0002", booking.System)
		require.NoError(t, b.Cancel(testNow.Add(time.Hour)))
		handler := &MockCancelBooking{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CancelBookingCommand) bool {
			return cmd.BookingID().IsEqual(b.ID())
		})).Return(b, nil)

		rec := do(t, newTestEcho(Handlers{CancelBooking: handler}), http.MethodPost,
			"/api/v1/bookings/"+b.ID().String()+"/cancel", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "cancelled", decode[Booking](t, rec).Status)
	})

	t.Run("terminal_status", func(t *testing.T) {
		handler := &MockCancelBooking{}
		handler.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewValueIsInvalidErrorWithCause("status is invalid", errors.New("delivered is terminal")))

		rec := do(t, newTestEcho(Handlers{CancelBooking: handler}), http.MethodPost,
			"/api/v1/bookings/"+kernel.NewUUID().String()+"/cancel", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[Error](t, rec).Message, "delivered is terminal")
	})
}

func TestServer_UnloadOGPL(t *testing.T) {
	sheet := testSheet(t)
	good, lost, broken := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	body := `{"booking_ids":["` + good.String() + `","` + lost.String() + `","` + broken.String() + `"],` +
		`"conditions":{` +
		`"` + good.String() + `":{"status":"good"},` +
		`"` + lost.String() + `":{"status":"missing"},` +
		`"` + broken.String() + `":{"status":"damaged","remarks":"crushed corner"}}}`

	t.Run("reports_outcomes", func(t *testing.T) {
		handler := &MockUnloadOGPL{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UnloadOGPLCommand) bool {
			c, ok := cmd.Conditions()[broken]
			return cmd.OGPLID().IsEqual(sheet.ID()) && len(cmd.BookingIDs()) == 3 &&
				ok && c.Status == ogpl.Damaged && c.Remarks == "crushed corner"
		})).Return(commands.UnloadOGPLResult{
			Sheet: sheet,
			Outcomes: []commands.BookingOutcome{
				{BookingID: good, LRNumber: "MU2501-0001", Result: commands.Delivered},
				{BookingID: lost, LRNumber: "MU2501-0002", Result: commands.NotDelivered},
				{BookingID: broken, LRNumber: "MU2501-0003", Result: commands.Failed,
					Err: errs.NewDataAccessError("update booking", errors.New("deadlock detected"))},
			},
		}, nil)

		rec := do(t, newTestEcho(Handlers{UnloadOGPL: handler}), http.MethodPost,
			"/api/v1/ogpls/"+sheet.ID().String()+"/unloading", body)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decode[UnloadResult](t, rec)
		assert.Equal(t, sheet.Number(), got.OGPL.Number)
		require.Len(t, got.Outcomes, 3)
		assert.Equal(t, "delivered", got.Outcomes[0].Result)
		assert.Equal(t, "not_delivered", got.Outcomes[1].Result)
		assert.Equal(t, "failed", got.Outcomes[2].Result)
		assert.Equal(t, retryMessage, got.Outcomes[2].Error)
	})

	t.Run("damaged_without_remarks", func(t *testing.T) {
		handler := &MockUnloadOGPL{}
		invalid := strings.Replace(body, `,"remarks":"crushed corner"`, "", 1)

		rec := do(t, newTestEcho(Handlers{UnloadOGPL: handler}), http.MethodPost,
			"/api/v1/ogpls/"+sheet.ID().String()+"/unloading", invalid)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("unknown_condition", func(t *testing.T) {
		handler := &MockUnloadOGPL{}
		invalid := strings.Replace(body, `{"status":"good"}`, `{"status":"wet"}`, 1)

		rec := do(t, newTestEcho(Handlers{UnloadOGPL: handler}), http.MethodPost,
			"/api/v1/ogpls/"+sheet.ID().String()+"/unloading", invalid)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_CancelOGPL(t *testing.T) {
	sheet := testSheet(t)
	require.NoError(t, sheet.Cancel(testNow.Add(time.Hour)))
	released := testBooking(t, "MU2501-0004", booking.System)
	handler := &MockCancelOGPL{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(sheet, []*booking.Booking{released}, nil)

	rec := do(t, newTestEcho(Handlers{CancelOGPL: handler}), http.MethodPost,
		"/api/v1/ogpls/"+sheet.ID().String()+"/cancel", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[CancelOGPLResult](t, rec)
	assert.Equal(t, "cancelled", got.OGPL.Status)
	assert.Equal(t, []string{released.ID().String()}, got.Released)
}

func TestNewRouter(t *testing.T) {
	e, err := NewRouter(context.Background(), NewServer(Handlers{}), RouterOptions{})
	require.NoError(t, err)

	t.Run("health", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Healthy", rec.Body.String())
	})

	t.Run("openapi_document", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/openapi.json", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.3", doc["openapi"])
		assert.Contains(t, doc["paths"], "/ogpls/{id}/unloading")
	})

	t.Run("unknown_route", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/couriers", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, http.StatusNotFound, decode[Error](t, rec).Code)
	})
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusOf(errs.NewValueIsRequiredError("remarks")))
	assert.Equal(t, http.StatusNotFound, statusOf(errs.NewObjectNotFoundError("ogpl", "1")))
	assert.Equal(t, http.StatusConflict, statusOf(errs.NewDataAccessError("insert", ports.ErrDuplicateIdentifier)))
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(errs.NewDataAccessError("select", nil)))
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.New("boom")))
}
