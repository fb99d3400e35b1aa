package order_test

import (
	"testing"

	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	valid := []order.Status{
		order.StatusDraft, order.StatusPending, order.StatusConfirmed,
		order.StatusInDesign, order.StatusInProduction, order.StatusPackaging,
		order.StatusShipped, order.StatusDelivered, order.StatusCompleted,
		order.StatusCancelled,
	}
	for _, s := range valid {
		assert.NoError(t, s.Validate(), "status %s", s)
	}

	assert.Error(t, order.Status("").Validate())
	assert.Error(t, order.Status("processing").Validate())
}

func TestStatusTransitionTo(t *testing.T) {
	t.Run("full legal path succeeds step by step", func(t *testing.T) {
		path := []order.Status{
			order.StatusPending, order.StatusConfirmed, order.StatusInDesign,
			order.StatusInProduction, order.StatusPackaging, order.StatusShipped,
			order.StatusDelivered, order.StatusCompleted,
		}

		current := order.StatusDraft
		for _, next := range path {
			transitioned, err := current.TransitionTo(next)
			require.NoError(t, err, "%s -> %s", current, next)
			current = transitioned
		}
		assert.Equal(t, order.StatusCompleted, current)
		assert.True(t, current.IsTerminal())
	})

	t.Run("cancelled is reachable from every non-terminal state", func(t *testing.T) {
		nonTerminal := []order.Status{
			order.StatusDraft, order.StatusPending, order.StatusConfirmed,
			order.StatusInDesign, order.StatusInProduction, order.StatusPackaging,
			order.StatusShipped, order.StatusDelivered,
		}
		for _, s := range nonTerminal {
			transitioned, err := s.TransitionTo(order.StatusCancelled)
			require.NoError(t, err, "from %s", s)
			assert.Equal(t, order.StatusCancelled, transitioned)
		}
	})

	t.Run("terminal states accept nothing", func(t *testing.T) {
		for _, s := range []order.Status{order.StatusCompleted, order.StatusCancelled} {
			for _, target := range []order.Status{order.StatusDraft, order.StatusPending, order.StatusCancelled, order.StatusCompleted} {
				if s == target {
					continue
				}
				_, err := s.TransitionTo(target)
				assert.ErrorIs(t, err, errs.ErrInvalidTransition, "%s -> %s", s, target)
			}
		}
	})

	t.Run("skipping states is rejected", func(t *testing.T) {
		cases := []struct{ from, to order.Status }{
			{order.StatusDraft, order.StatusConfirmed},
			{order.StatusDraft, order.StatusCompleted},
			{order.StatusPending, order.StatusShipped},
			{order.StatusConfirmed, order.StatusDelivered},
		}
		for _, tc := range cases {
			_, err := tc.from.TransitionTo(tc.to)
			require.ErrorIs(t, err, errs.ErrInvalidTransition, "%s -> %s", tc.from, tc.to)

			var invalid *errs.InvalidTransitionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, string(tc.from), invalid.Current)
			assert.Equal(t, string(tc.to), invalid.Requested)
		}
	})

	t.Run("moving backwards is rejected", func(t *testing.T) {
		_, err := order.StatusShipped.TransitionTo(order.StatusPending)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("unknown target is a validation error", func(t *testing.T) {
		_, err := order.StatusDraft.TransitionTo(order.Status("archived"))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, order.StatusCompleted.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())
	assert.False(t, order.StatusDraft.IsTerminal())
	assert.False(t, order.StatusDelivered.IsTerminal())
	assert.False(t, order.Status("bogus").IsTerminal())
}
