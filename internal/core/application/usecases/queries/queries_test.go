package queries_test

import (
	"testing"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLRNumberQuery(t *testing.T) {
	t.Run("without branch", func(t *testing.T) {
		q, err := queries.NewGenerateLRNumberQuery(kernel.NewUUID(), nil)

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.Nil(t, q.BranchID())
	})

	t.Run("missing organization", func(t *testing.T) {
		_, err := queries.NewGenerateLRNumberQuery(kernel.UUID{}, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero branch id", func(t *testing.T) {
		_, err := queries.NewGenerateLRNumberQuery(kernel.NewUUID(), &kernel.UUID{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("not constructed", func(t *testing.T) {
		require.ErrorIs(t, queries.GenerateLRNumberQuery{}.Validate(),
			queries.ErrGenerateLRNumberQueryIsNotConstructed)
	})
}

func TestGenerateOGPLNumberQuery(t *testing.T) {
	q, err := queries.NewGenerateOGPLNumberQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, q.Validate())

	_, err = queries.NewGenerateOGPLNumberQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	require.ErrorIs(t, queries.GenerateOGPLNumberQuery{}.Validate(),
		queries.ErrGenerateOGPLNumberQueryIsNotConstructed)
}

func TestGetQueries_RequireIDs(t *testing.T) {
	_, err := queries.NewGetBookingQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetOGPLQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	require.ErrorIs(t, queries.GetBookingQuery{}.Validate(), queries.ErrGetBookingQueryIsNotConstructed)
	require.ErrorIs(t, queries.GetOGPLQuery{}.Validate(), queries.ErrGetOGPLQueryIsNotConstructed)
}

func TestNewListBookingsQuery(t *testing.T) {
	org := kernel.NewUUID()

	t.Run("defaults", func(t *testing.T) {
		q, err := queries.NewListBookingsQuery(org, "", 0, 0)

		require.NoError(t, err)
		assert.Equal(t, queries.DefaultPageSize, q.Limit())
		_, filtered := q.Status()
		assert.False(t, filtered)
	})

	t.Run("status filter", func(t *testing.T) {
		q, err := queries.NewListBookingsQuery(org, "in_transit", 10, 20)

		require.NoError(t, err)
		status, filtered := q.Status()
		assert.True(t, filtered)
		assert.Equal(t, booking.InTransit, status)
		assert.Equal(t, 20, q.Offset())
	})

	t.Run("collects every problem", func(t *testing.T) {
		_, err := queries.NewListBookingsQuery(kernel.UUID{}, "lost", queries.MaxPageSize+1, -1)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.True(t, errs.IsValidation(err))
	})
}

func TestNewSearchBookingsQuery(t *testing.T) {
	org := kernel.NewUUID()

	t.Run("trims text", func(t *testing.T) {
		q, err := queries.NewSearchBookingsQuery(org, "  patil ", "", 5)

		require.NoError(t, err)
		assert.Equal(t, "patil", q.Text())
		assert.Equal(t, 5, q.Limit())
	})

	t.Run("blank text", func(t *testing.T) {
		_, err := queries.NewSearchBookingsQuery(org, "   ", "", 0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := queries.NewSearchBookingsQuery(org, "patil", "shipped", 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("not constructed", func(t *testing.T) {
		require.ErrorIs(t, queries.SearchBookingsQuery{}.Validate(), queries.ErrSearchBookingsQueryIsNotConstructed)
	})
}
