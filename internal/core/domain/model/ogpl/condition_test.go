package ogpl_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/ogpl"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCondition(t *testing.T) {
	t.Run("damaged requires remarks", func(t *testing.T) {
		for _, remarks := range []string{"", "   ", "\t"} {
			_, err := ogpl.NewCondition(ogpl.Damaged, remarks, "")

			require.ErrorIs(t, err, errs.ErrValueIsRequired)
			assert.Contains(t, err.Error(), "remarks")
		}
	})

	t.Run("damaged with remarks is accepted", func(t *testing.T) {
		c, err := ogpl.NewCondition(ogpl.Damaged, " torn carton ", "https://cdn.example/p/1.jpg")

		require.NoError(t, err)
		assert.Equal(t, "torn carton", c.Remarks)
		assert.True(t, c.Delivers())
	})

	t.Run("good and missing need nothing", func(t *testing.T) {
		good, err := ogpl.NewCondition(ogpl.Good, "", "")
		require.NoError(t, err)
		assert.True(t, good.Delivers())

		missing, err := ogpl.NewCondition(ogpl.Missing, "", "")
		require.NoError(t, err)
		assert.False(t, missing.Delivers())
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := ogpl.NewCondition(ogpl.UnknownCondition, "x", "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("parse", func(t *testing.T) {
		s, err := ogpl.ParseConditionStatus("damaged")
		require.NoError(t, err)
		assert.Equal(t, ogpl.Damaged, s)

		_, err = ogpl.ParseConditionStatus("wet")
		require.Error(t, err)
	})
}

func TestNewUnloadingRecord(t *testing.T) {
	sheetID := kernel.NewUUID()
	b1, b2 := kernel.NewUUID(), kernel.NewUUID()
	at := time.Date(2025, 1, 16, 6, 0, 0, 0, time.UTC)

	t.Run("reports every bad condition", func(t *testing.T) {
		_, err := ogpl.NewUnloadingRecord(kernel.NewUUID(), sheetID, map[kernel.UUID]ogpl.Condition{
			b1: {Status: ogpl.Damaged},
			b2: {Status: ogpl.Damaged, Remarks: " "},
		}, at)

		require.Error(t, err)
		assert.Contains(t, err.Error(), b1.String())
		assert.Contains(t, err.Error(), b2.String())
	})

	t.Run("requires conditions", func(t *testing.T) {
		_, err := ogpl.NewUnloadingRecord(kernel.NewUUID(), sheetID, nil, at)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("copies its input", func(t *testing.T) {
		in := map[kernel.UUID]ogpl.Condition{b1: {Status: ogpl.Good}}
		r, err := ogpl.NewUnloadingRecord(kernel.NewUUID(), sheetID, in, at)
		require.NoError(t, err)

		in[b2] = ogpl.Condition{Status: ogpl.Missing}
		out := r.Conditions()
		out[b1] = ogpl.Condition{Status: ogpl.Missing}

		assert.Len(t, r.BookingIDs(), 1)
		c, ok := r.Condition(b1)
		require.True(t, ok)
		assert.Equal(t, ogpl.Good, c.Status)
		assert.Equal(t, at, r.UnloadedAt())
	})
}
