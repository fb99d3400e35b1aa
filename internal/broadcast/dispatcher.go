// Package broadcast fans committed domain events out to live subscribers.
// The subscription table is indexed by organization first, so publishing an
// event only ever touches the event's own organization bucket and
// cross-tenant delivery is structurally impossible.
//
// Delivery is best-effort and at-most-once: each subscription owns a bounded
// buffered channel, sends never block, and an event is dropped for a
// subscriber whose buffer is full. There is no replay; consumers needing
// history read the audit log.
package broadcast

import (
	"sync"

	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/ports"
)

// ChannelKind selects how narrowly a subscription filters events.
type ChannelKind string

const (
	// ChannelOrganization receives every event of the organization.
	ChannelOrganization ChannelKind = "organization"

	// ChannelUser receives the organization's events caused by one actor.
	ChannelUser ChannelKind = "user"

	// ChannelRecord receives the organization's events about one entity.
	ChannelRecord ChannelKind = "record"
)

// subscriberBuffer is the per-subscription channel capacity. A consumer
// falling further behind than this starts losing events.
const subscriberBuffer = 64

// Subscription is one live listener. Events arrives on C until Close.
type Subscription struct {
	dispatcher     *Dispatcher
	organizationID string
	id             uint64

	kind   ChannelKind
	filter string

	ch chan ports.Event
}

// C returns the receive channel. It is closed by Close.
func (s *Subscription) C() <-chan ports.Event {
	return s.ch
}

// Close removes the subscription and closes its channel.
func (s *Subscription) Close() {
	s.dispatcher.unsubscribe(s)
}

// matches reports whether an event passes the subscription's filter.
// The organization was already matched by bucket lookup.
func (s *Subscription) matches(event ports.Event) bool {
	switch s.kind {
	case ChannelUser:
		return event.ActorID.String() == s.filter
	case ChannelRecord:
		return event.EntityID.String() == s.filter
	default:
		return true
	}
}

// Dispatcher owns the subscription table. It implements ports.EventPublisher.
type Dispatcher struct {
	mu     sync.RWMutex
	nextID uint64

	// byOrg buckets subscriptions by organization id string.
	byOrg map[string]map[uint64]*Subscription
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{byOrg: make(map[string]map[uint64]*Subscription)}
}

// Subscribe registers a listener on the organization's bucket. filter is the
// actor id for ChannelUser, the entity id for ChannelRecord, and ignored for
// ChannelOrganization.
func (d *Dispatcher) Subscribe(organizationID kernel.UUID, kind ChannelKind, filter string) *Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	sub := &Subscription{
		dispatcher:     d,
		organizationID: organizationID.String(),
		id:             d.nextID,
		kind:           kind,
		filter:         filter,
		ch:             make(chan ports.Event, subscriberBuffer),
	}

	bucket, ok := d.byOrg[sub.organizationID]
	if !ok {
		bucket = make(map[uint64]*Subscription)
		d.byOrg[sub.organizationID] = bucket
	}
	bucket[sub.id] = sub

	return sub
}

// Publish delivers the event to the matching subscriptions of its
// organization. It never blocks: a full subscriber buffer drops the event
// for that subscriber only.
func (d *Dispatcher) Publish(event ports.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	bucket, ok := d.byOrg[event.OrganizationID.String()]
	if !ok {
		return
	}

	for _, sub := range bucket {
		if !sub.matches(event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}

// SubscriberCount reports how many subscriptions an organization has.
func (d *Dispatcher) SubscriberCount(organizationID kernel.UUID) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byOrg[organizationID.String()])
}

func (d *Dispatcher) unsubscribe(sub *Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()

	bucket, ok := d.byOrg[sub.organizationID]
	if !ok {
		return
	}
	if _, ok = bucket[sub.id]; !ok {
		return
	}

	delete(bucket, sub.id)
	if len(bucket) == 0 {
		delete(d.byOrg, sub.organizationID)
	}
	close(sub.ch)
}
