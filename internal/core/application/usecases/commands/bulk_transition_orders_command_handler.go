package commands

import (
	"context"
	"sync"

	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/core/domain/services"
	"merchflow/internal/core/ports"
	"merchflow/internal/pkg/errs"
)

const (
	// maxBatchSize bounds one bulk request. Larger batches are rejected
	// before any item is processed.
	maxBatchSize = 100

	// bulkWorkers bounds how many items are in flight at once.
	bulkWorkers = 8
)

// BulkItemResult is the outcome for a single order in a bulk request.
// Err is nil for accepted items; Changed is false when the order was
// already in the target state.
type BulkItemResult struct {
	OrderID kernel.UUID
	Changed bool
	Err     error
}

// BulkTransitionResult collects per-item outcomes in request order,
// regardless of the order items finished in.
type BulkTransitionResult struct {
	Results []BulkItemResult
}

// Accepted returns the ids that transitioned or no-opped successfully.
func (r BulkTransitionResult) Accepted() []kernel.UUID {
	var ids []kernel.UUID
	for _, item := range r.Results {
		if item.Err == nil {
			ids = append(ids, item.OrderID)
		}
	}
	return ids
}

// BulkTransitionOrdersCommandHandler fans a batch out over a bounded worker
// pool. Every item runs in its own unit of work with its own guard check,
// audit entry, and broadcast event, so one item's failure never aborts or
// rolls back its siblings.
type BulkTransitionOrdersCommandHandler struct {
	transition  TransitionOrderCommandHandler
	accessGuard services.AccessGuard
}

// NewBulkTransitionOrdersCommandHandler creates a handler for bulk transitions.
func NewBulkTransitionOrdersCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) BulkTransitionOrdersCommandHandler {
	return BulkTransitionOrdersCommandHandler{
		transition:  NewTransitionOrderCommandHandler(uowFactory, publisher),
		accessGuard: services.NewAccessGuard(),
	}
}

// Handle processes the bulk command. The bulk capability is checked once up
// front; a destructive target (cancelled) additionally requires the delete
// capability. Oversized batches fail with BatchTooLargeError before any item
// is touched.
func (h BulkTransitionOrdersCommandHandler) Handle(ctx context.Context, cmd BulkTransitionOrdersCommand) (BulkTransitionResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkTransitionResult{}, err
	}

	actor := cmd.Actor()
	if err := h.accessGuard.Check(actor, access.ActionBulk, actor.OrganizationID); err != nil {
		return BulkTransitionResult{}, err
	}

	if cmd.Target() == order.StatusCancelled {
		if err := h.accessGuard.Check(actor, access.ActionDelete, actor.OrganizationID); err != nil {
			return BulkTransitionResult{}, err
		}
	}

	ids := cmd.OrderIDs()
	if len(ids) > maxBatchSize {
		return BulkTransitionResult{}, errs.NewBatchTooLargeError(len(ids), maxBatchSize)
	}

	results := make([]BulkItemResult, len(ids))
	sem := make(chan struct{}, bulkWorkers)
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id kernel.UUID) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = h.handleItem(ctx, actor, id, cmd)
		}(i, id)
	}

	wg.Wait()
	return BulkTransitionResult{Results: results}, nil
}

func (h BulkTransitionOrdersCommandHandler) handleItem(ctx context.Context, actor access.Context, id kernel.UUID, cmd BulkTransitionOrdersCommand) BulkItemResult {
	itemCmd, err := NewTransitionOrderCommand(actor, id, cmd.Target(), "")
	if err != nil {
		return BulkItemResult{OrderID: id, Err: err}
	}

	res, err := h.transition.Handle(ctx, itemCmd)
	if err != nil {
		return BulkItemResult{OrderID: id, Err: err}
	}

	return BulkItemResult{OrderID: id, Changed: res.Changed}
}
