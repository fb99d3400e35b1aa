package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"merchflow/internal/core/application/usecases/commands"
	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/model/designjob"
	"merchflow/internal/core/domain/model/fulfillment"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/core/domain/model/workorder"
	"merchflow/internal/core/ports"
	"merchflow/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// memStore is a concurrency-safe in-memory order store shared by the fake
// units of work a bulk run creates. Mock expectations don't fit here because
// items complete in nondeterministic order.
type memStore struct {
	mu      sync.Mutex
	orders  map[string]*order.Order
	audits  int
	updates int
}

func newMemStore(orders ...*order.Order) *memStore {
	s := &memStore{orders: make(map[string]*order.Order)}
	for _, o := range orders {
		s.orders[o.ID().String()] = o
	}
	return s
}

type memUoW struct{ store *memStore }

func (u memUoW) Begin(context.Context) error    { return nil }
func (u memUoW) Commit(context.Context) error   { return nil }
func (u memUoW) Rollback(context.Context) error { return nil }

func (u memUoW) OrderRepository() ports.OrderRepository { return memOrderRepo{store: u.store} }
func (u memUoW) DesignJobRepository() ports.DesignJobRepository {
	return emptyDesignJobRepo{}
}
func (u memUoW) WorkOrderRepository() ports.WorkOrderRepository {
	return emptyWorkOrderRepo{}
}
func (u memUoW) FulfillmentRepository() ports.FulfillmentRepository {
	return emptyFulfillmentRepo{}
}
func (u memUoW) AuditRepository() ports.AuditRepository { return memAuditRepo{store: u.store} }

type memUoWFactory struct{ store *memStore }

func (f memUoWFactory) Create() commands.OrderUoW { return memUoW{store: f.store} }

type memOrderRepo struct{ store *memStore }

func (r memOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[o.ID().String()] = o
	return nil
}

func (r memOrderRepo) Update(_ context.Context, o *order.Order, _ int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.updates++
	r.store.orders[o.ID().String()] = o
	return nil
}

func (r memOrderRepo) Get(_ context.Context, _, id kernel.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	o, ok := r.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (r memOrderRepo) GetAll(context.Context, kernel.UUID) ([]*order.Order, error) {
	return nil, nil
}
func (r memOrderRepo) HasDependents(context.Context, kernel.UUID, kernel.UUID) (bool, error) {
	return false, nil
}
func (r memOrderRepo) Delete(context.Context, kernel.UUID, kernel.UUID) error { return nil }

type memAuditRepo struct{ store *memStore }

func (r memAuditRepo) Add(context.Context, *audit.Entry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.audits++
	return nil
}

func (r memAuditRepo) List(context.Context, kernel.UUID, *kernel.UUID, int, int) ([]*audit.Entry, error) {
	return nil, nil
}

type emptyDesignJobRepo struct{}

func (emptyDesignJobRepo) Add(context.Context, *designjob.DesignJob) error         { return nil }
func (emptyDesignJobRepo) Update(context.Context, *designjob.DesignJob, int) error { return nil }
func (emptyDesignJobRepo) Get(context.Context, kernel.UUID, kernel.UUID) (*designjob.DesignJob, error) {
	return nil, errs.NewObjectNotFoundError("design job", "")
}
func (emptyDesignJobRepo) GetByOrderID(context.Context, kernel.UUID, kernel.UUID) ([]*designjob.DesignJob, error) {
	return nil, nil
}

type emptyWorkOrderRepo struct{}

func (emptyWorkOrderRepo) Add(context.Context, *workorder.WorkOrder) error         { return nil }
func (emptyWorkOrderRepo) Update(context.Context, *workorder.WorkOrder, int) error { return nil }
func (emptyWorkOrderRepo) Get(context.Context, kernel.UUID, kernel.UUID) (*workorder.WorkOrder, error) {
	return nil, errs.NewObjectNotFoundError("work order", "")
}
func (emptyWorkOrderRepo) GetByOrderID(context.Context, kernel.UUID, kernel.UUID) ([]*workorder.WorkOrder, error) {
	return nil, nil
}

type emptyFulfillmentRepo struct{}

func (emptyFulfillmentRepo) Add(context.Context, *fulfillment.Record) error         { return nil }
func (emptyFulfillmentRepo) Update(context.Context, *fulfillment.Record, int) error { return nil }
func (emptyFulfillmentRepo) Get(context.Context, kernel.UUID, kernel.UUID) (*fulfillment.Record, error) {
	return nil, errs.NewObjectNotFoundError("fulfillment", "")
}
func (emptyFulfillmentRepo) GetByOrderID(context.Context, kernel.UUID, kernel.UUID) ([]*fulfillment.Record, error) {
	return nil, nil
}

type countingPublisher struct {
	mu     sync.Mutex
	events []ports.Event
}

func (p *countingPublisher) Publish(event ports.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func bulkOrder(t *testing.T, organizationID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), organizationID,
		order.Customer{Name: "Cedar Valley FC"},
		nil, 0, status, order.PriorityNormal, nil, "", 1, now, now,
	)
	require.NoError(t, err)
	return o
}

func TestBulkTransitionOrdersCommandHandler_Handle_MixedBatch(t *testing.T) {
	ctx := t.Context()
	actor := memberActor()

	// Three drafts transition legally, one shipped order cannot go to
	// pending, and one id does not exist at all.
	drafts := []*order.Order{
		bulkOrder(t, actor.OrganizationID, order.StatusDraft),
		bulkOrder(t, actor.OrganizationID, order.StatusDraft),
		bulkOrder(t, actor.OrganizationID, order.StatusDraft),
	}
	shipped := bulkOrder(t, actor.OrganizationID, order.StatusShipped)
	missing := kernel.NewUUID()

	store := newMemStore(append(drafts, shipped)...)
	publisher := &countingPublisher{}

	ids := []kernel.UUID{drafts[0].ID(), shipped.ID(), drafts[1].ID(), missing, drafts[2].ID()}
	cmd, err := commands.NewBulkTransitionOrdersCommand(actor, ids, order.StatusPending)
	require.NoError(t, err)

	h := commands.NewBulkTransitionOrdersCommandHandler(memUoWFactory{store: store}, publisher)
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, res.Results, 5)

	// Results keep request order regardless of completion order.
	for i, id := range ids {
		require.True(t, res.Results[i].OrderID.IsEqual(id))
	}

	require.NoError(t, res.Results[0].Err)
	require.ErrorIs(t, res.Results[1].Err, errs.ErrInvalidTransition)
	require.NoError(t, res.Results[2].Err)
	require.ErrorIs(t, res.Results[3].Err, errs.ErrObjectNotFound)
	require.NoError(t, res.Results[4].Err)
	require.Len(t, res.Accepted(), 3)

	// A rejected sibling never aborts accepted items.
	for _, d := range drafts {
		require.Equal(t, order.StatusPending, d.Status())
	}
	require.Equal(t, order.StatusShipped, shipped.Status())

	// Exactly one audit entry and one event per accepted transition.
	require.Equal(t, 3, store.audits)
	require.Len(t, publisher.events, 3)
}

func TestBulkTransitionOrdersCommandHandler_Handle_BatchTooLarge(t *testing.T) {
	actor := memberActor()

	ids := make([]kernel.UUID, 101)
	for i := range ids {
		ids[i] = kernel.NewUUID()
	}
	cmd, err := commands.NewBulkTransitionOrdersCommand(actor, ids, order.StatusPending)
	require.NoError(t, err)

	store := newMemStore()
	publisher := &countingPublisher{}

	h := commands.NewBulkTransitionOrdersCommandHandler(memUoWFactory{store: store}, publisher)
	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrBatchTooLarge)

	// Rejected before any item was touched.
	require.Zero(t, store.updates)
	require.Empty(t, publisher.events)
}

func TestBulkTransitionOrdersCommandHandler_Handle_DestructiveTargetNeedsDelete(t *testing.T) {
	actor := memberActor() // member lacks the delete capability
	target := bulkOrder(t, actor.OrganizationID, order.StatusDraft)
	store := newMemStore(target)

	cmd, err := commands.NewBulkTransitionOrdersCommand(actor, []kernel.UUID{target.ID()}, order.StatusCancelled)
	require.NoError(t, err)

	h := commands.NewBulkTransitionOrdersCommandHandler(memUoWFactory{store: store}, &countingPublisher{})
	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrDenied)
	require.Equal(t, order.StatusDraft, target.Status())
}

func TestBulkTransitionOrdersCommandHandler_Handle_AdminMayCancelInBulk(t *testing.T) {
	actor := actorWithRole(access.RoleAdmin)
	target := bulkOrder(t, actor.OrganizationID, order.StatusDraft)
	store := newMemStore(target)

	cmd, err := commands.NewBulkTransitionOrdersCommand(actor, []kernel.UUID{target.ID()}, order.StatusCancelled)
	require.NoError(t, err)

	h := commands.NewBulkTransitionOrdersCommandHandler(memUoWFactory{store: store}, &countingPublisher{})
	res, err := h.Handle(t.Context(), cmd)
	require.NoError(t, err)
	require.NoError(t, res.Results[0].Err)
	require.Equal(t, order.StatusCancelled, target.Status())
}
