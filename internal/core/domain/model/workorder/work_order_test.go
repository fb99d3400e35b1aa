package workorder_test

import (
	"testing"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/workorder"
	"merchflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkOrder(t *testing.T) *workorder.WorkOrder {
	t.Helper()
	w, err := workorder.NewWorkOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		nil, "northside-printing", 100, 450,
	)
	require.NoError(t, err)
	return w
}

func TestNewWorkOrder(t *testing.T) {
	t.Run("computes total cost", func(t *testing.T) {
		w := newWorkOrder(t)
		assert.Equal(t, workorder.StatusCreated, w.Status())
		assert.Equal(t, int64(45000), w.TotalCostCents())
	})

	t.Run("zero target quantity fails", func(t *testing.T) {
		_, err := workorder.NewWorkOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, "northside-printing", 0, 450,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative unit cost fails", func(t *testing.T) {
		_, err := workorder.NewWorkOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, "northside-printing", 10, -1,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing manufacturer fails", func(t *testing.T) {
		_, err := workorder.NewWorkOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, "", 10, 450,
		)
		require.ErrorIs(t, err, workorder.ErrManufacturerIsRequired)
	})
}

func TestWorkOrderTransitions(t *testing.T) {
	t.Run("created to completed via in_progress", func(t *testing.T) {
		w := newWorkOrder(t)

		changed, err := w.Transition(workorder.StatusInProgress)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = w.Transition(workorder.StatusCompleted)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, w.Status().IsTerminal())
	})

	t.Run("cannot complete directly from created", func(t *testing.T) {
		w := newWorkOrder(t)
		_, err := w.Transition(workorder.StatusCompleted)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("cancel from in_progress", func(t *testing.T) {
		w := newWorkOrder(t)
		_, err := w.Transition(workorder.StatusInProgress)
		require.NoError(t, err)

		require.NoError(t, w.Cancel())
		assert.Equal(t, workorder.StatusCancelled, w.Status())
	})

	t.Run("record production rejects negatives", func(t *testing.T) {
		w := newWorkOrder(t)
		require.NoError(t, w.RecordProduction(80))
		assert.Equal(t, 80, w.ActualQuantity())

		assert.ErrorIs(t, w.RecordProduction(-1), errs.ErrValueIsInvalid)
	})
}
