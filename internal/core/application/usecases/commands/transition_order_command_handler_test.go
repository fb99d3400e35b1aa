package commands_test

import (
	"testing"
	"time"

	"merchflow/internal/core/application/usecases/commands"
	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/designjob"
	"merchflow/internal/core/domain/model/fulfillment"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/core/domain/model/workorder"
	"merchflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func draftOrder(t *testing.T, organizationID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), organizationID,
		order.Customer{Name: "Cedar Valley FC"},
		nil, 0, order.PriorityNormal, nil, "",
	)
	require.NoError(t, err)
	return o
}

func restoredOrder(t *testing.T, organizationID kernel.UUID, status order.Status, version int) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), organizationID,
		order.Customer{Name: "Cedar Valley FC"},
		nil, 0, status, order.PriorityNormal, nil, "", version, now, now,
	)
	require.NoError(t, err)
	return o
}

func TestTransitionOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := memberActor()
	aggregate := draftOrder(t, actor.OrganizationID)

	cmd, err := commands.NewTransitionOrderCommand(actor, aggregate.ID(), order.StatusPending, "ready for review")
	require.NoError(t, err)

	uow := NewMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.Orders.On("Get", mock.Anything, actor.OrganizationID, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.Orders.On("Update", mock.Anything, aggregate, 1).Return(nil).Once(),
		uow.Audits.On("Add", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.AnythingOfType("ports.Event")).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, publisher)
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.Equal(t, order.StatusPending, res.Status)
	require.Equal(t, 2, res.Version)

	uow.AssertExpectations(t)
	uow.Orders.AssertExpectations(t)
	uow.Audits.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_SameStateIsNoOp(t *testing.T) {
	ctx := t.Context()
	actor := memberActor()
	aggregate := draftOrder(t, actor.OrganizationID)

	cmd, err := commands.NewTransitionOrderCommand(actor, aggregate.ID(), order.StatusDraft, "")
	require.NoError(t, err)

	uow := NewMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.Orders.On("Get", mock.Anything, actor.OrganizationID, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewTransitionOrderCommandHandler(factory, publisher)
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.False(t, res.Changed)
	require.Equal(t, 1, res.Version)

	// No write, no audit entry, no broadcast for an idempotent request.
	uow.Orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	uow.Audits.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_IllegalJumpRejected(t *testing.T) {
	ctx := t.Context()
	actor := memberActor()
	aggregate := draftOrder(t, actor.OrganizationID)

	cmd, err := commands.NewTransitionOrderCommand(actor, aggregate.ID(), order.StatusShipped, "")
	require.NoError(t, err)

	uow := NewMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.Orders.On("Get", mock.Anything, actor.OrganizationID, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	uow.Audits.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_ConflictSurfaces(t *testing.T) {
	ctx := t.Context()
	actor := memberActor()
	aggregate := draftOrder(t, actor.OrganizationID)

	cmd, err := commands.NewTransitionOrderCommand(actor, aggregate.ID(), order.StatusPending, "")
	require.NoError(t, err)

	uow := NewMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.Orders.On("Get", mock.Anything, actor.OrganizationID, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.Orders.On("Update", mock.Anything, aggregate, 1).
			Return(errs.NewConflictError("order", aggregate.ID().String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewTransitionOrderCommandHandler(factory, publisher)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_CancelCascadesToDependents(t *testing.T) {
	ctx := t.Context()
	actor := memberActor()
	aggregate := restoredOrder(t, actor.OrganizationID, order.StatusInDesign, 3)

	job, err := designjob.NewDesignJob(kernel.NewUUID(), actor.OrganizationID, aggregate.ID(), kernel.NewUUID(), nil)
	require.NoError(t, err)
	wo, err := workorder.NewWorkOrder(kernel.NewUUID(), actor.OrganizationID, aggregate.ID(), nil, "Summit Apparel Co", 50, 900)
	require.NoError(t, err)
	record, err := fulfillment.NewRecord(kernel.NewUUID(), actor.OrganizationID, aggregate.ID(), "12 Harbor Way", "")
	require.NoError(t, err)

	cmd, err := commands.NewTransitionOrderCommand(actor, aggregate.ID(), order.StatusCancelled, "")
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Orders.On("Get", mock.Anything, actor.OrganizationID, aggregate.ID()).Return(aggregate, nil).Once()
	uow.Orders.On("Update", mock.Anything, aggregate, 3).Return(nil).Once()
	uow.DesignJobs.On("GetByOrderID", mock.Anything, actor.OrganizationID, aggregate.ID()).
		Return([]*designjob.DesignJob{job}, nil).Once()
	uow.DesignJobs.On("Update", mock.Anything, job, 1).Return(nil).Once()
	uow.WorkOrders.On("GetByOrderID", mock.Anything, actor.OrganizationID, aggregate.ID()).
		Return([]*workorder.WorkOrder{wo}, nil).Once()
	uow.WorkOrders.On("Update", mock.Anything, wo, 1).Return(nil).Once()
	uow.Fulfillments.On("GetByOrderID", mock.Anything, actor.OrganizationID, aggregate.ID()).
		Return([]*fulfillment.Record{record}, nil).Once()
	uow.Fulfillments.On("Update", mock.Anything, record, 1).Return(nil).Once()

	// One entry for the order plus one per cancelled dependent.
	uow.Audits.On("Add", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil).Times(4)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.AnythingOfType("ports.Event")).Times(4)

	h := commands.NewTransitionOrderCommandHandler(factory, publisher)
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.True(t, res.Changed)

	require.Equal(t, designjob.StatusCancelled, job.Status())
	require.Equal(t, workorder.StatusCancelled, wo.Status())
	require.Equal(t, fulfillment.StatusCancelled, record.Status())

	uow.AssertExpectations(t)
	uow.Audits.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_ForeignOrderLooksNonexistent(t *testing.T) {
	ctx := t.Context()
	actor := memberActor()
	foreignID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(actor, foreignID, order.StatusPending, "")
	require.NoError(t, err)

	uow := NewMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.Orders.On("Get", mock.Anything, actor.OrganizationID, foreignID).
			Return(nil, errs.NewObjectNotFoundError("order", foreignID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionOrderCommandHandler_Handle_ReadonlyDenied(t *testing.T) {
	actor := actorWithRole(access.RoleReadonly)
	cmd, err := commands.NewTransitionOrderCommand(actor, kernel.NewUUID(), order.StatusPending, "")
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	h := commands.NewTransitionOrderCommandHandler(factory, new(MockEventPublisher))
	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrDenied)
	factory.AssertNotCalled(t, "Create")
}
