package fulfillment_test

import (
	"testing"

	"merchflow/internal/core/domain/model/fulfillment"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(t *testing.T) *fulfillment.Record {
	t.Helper()
	r, err := fulfillment.NewRecord(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"12 Harbor Way, Portland OR", "ups",
	)
	require.NoError(t, err)
	return r
}

func TestNewRecord(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		r := newRecord(t)
		assert.Equal(t, fulfillment.StatusPending, r.Status())
	})

	t.Run("missing destination fails", func(t *testing.T) {
		_, err := fulfillment.NewRecord(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "", "ups")
		require.ErrorIs(t, err, fulfillment.ErrDestinationIsRequired)
	})
}

func TestRecordTransitions(t *testing.T) {
	t.Run("full shipping path", func(t *testing.T) {
		r := newRecord(t)
		for _, target := range []fulfillment.Status{
			fulfillment.StatusPackaging, fulfillment.StatusReadyToShip,
			fulfillment.StatusShipped, fulfillment.StatusDelivered,
		} {
			changed, err := r.Transition(target)
			require.NoError(t, err, "to %s", target)
			assert.True(t, changed)
		}
		assert.True(t, r.Status().IsTerminal())
	})

	t.Run("cannot ship before ready", func(t *testing.T) {
		r := newRecord(t)
		_, err := r.Transition(fulfillment.StatusShipped)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("delivered accepts no further transitions", func(t *testing.T) {
		r := newRecord(t)
		for _, target := range []fulfillment.Status{
			fulfillment.StatusPackaging, fulfillment.StatusReadyToShip,
			fulfillment.StatusShipped, fulfillment.StatusDelivered,
		} {
			_, err := r.Transition(target)
			require.NoError(t, err)
		}

		_, err := r.Transition(fulfillment.StatusCancelled)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("tracking number bumps version", func(t *testing.T) {
		r := newRecord(t)
		before := r.Version()
		r.SetTracking("1Z999AA10123456784")
		assert.Equal(t, "1Z999AA10123456784", r.TrackingNumber())
		assert.Equal(t, before+1, r.Version())
	})
}
