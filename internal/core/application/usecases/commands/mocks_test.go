package commands_test

import (
	"context"
	"time"

	"merchflow/internal/core/application/usecases/commands"
	"merchflow/internal/core/domain/model/access"
	"merchflow/internal/core/domain/model/audit"
	"merchflow/internal/core/domain/model/designjob"
	"merchflow/internal/core/domain/model/fulfillment"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/notification"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/core/domain/model/organization"
	"merchflow/internal/core/domain/model/workorder"
	"merchflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expectedVersion int) error {
	args := m.Called(ctx, o, expectedVersion)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, organizationID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAll(ctx context.Context, organizationID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}
func (m *MockOrderRepository) HasDependents(ctx context.Context, organizationID, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, organizationID, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockOrderRepository) Delete(ctx context.Context, organizationID, id kernel.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

type MockDesignJobRepository struct{ mock.Mock }

func (m *MockDesignJobRepository) Add(ctx context.Context, j *designjob.DesignJob) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}
func (m *MockDesignJobRepository) Update(ctx context.Context, j *designjob.DesignJob, expectedVersion int) error {
	args := m.Called(ctx, j, expectedVersion)
	return args.Error(0)
}
func (m *MockDesignJobRepository) Get(ctx context.Context, organizationID, id kernel.UUID) (*designjob.DesignJob, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*designjob.DesignJob), args.Error(1)
}
func (m *MockDesignJobRepository) GetByOrderID(ctx context.Context, organizationID, orderID kernel.UUID) ([]*designjob.DesignJob, error) {
	args := m.Called(ctx, organizationID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*designjob.DesignJob), args.Error(1)
}

type MockWorkOrderRepository struct{ mock.Mock }

func (m *MockWorkOrderRepository) Add(ctx context.Context, w *workorder.WorkOrder) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
func (m *MockWorkOrderRepository) Update(ctx context.Context, w *workorder.WorkOrder, expectedVersion int) error {
	args := m.Called(ctx, w, expectedVersion)
	return args.Error(0)
}
func (m *MockWorkOrderRepository) Get(ctx context.Context, organizationID, id kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}
func (m *MockWorkOrderRepository) GetByOrderID(ctx context.Context, organizationID, orderID kernel.UUID) ([]*workorder.WorkOrder, error) {
	args := m.Called(ctx, organizationID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workorder.WorkOrder), args.Error(1)
}

type MockFulfillmentRepository struct{ mock.Mock }

func (m *MockFulfillmentRepository) Add(ctx context.Context, r *fulfillment.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockFulfillmentRepository) Update(ctx context.Context, r *fulfillment.Record, expectedVersion int) error {
	args := m.Called(ctx, r, expectedVersion)
	return args.Error(0)
}
func (m *MockFulfillmentRepository) Get(ctx context.Context, organizationID, id kernel.UUID) (*fulfillment.Record, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Record), args.Error(1)
}
func (m *MockFulfillmentRepository) GetByOrderID(ctx context.Context, organizationID, orderID kernel.UUID) ([]*fulfillment.Record, error) {
	args := m.Called(ctx, organizationID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fulfillment.Record), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Add(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditRepository) List(ctx context.Context, organizationID kernel.UUID, entityID *kernel.UUID, offset, limit int) ([]*audit.Entry, error) {
	args := m.Called(ctx, organizationID, entityID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

type MockMembershipRepository struct{ mock.Mock }

func (m *MockMembershipRepository) Add(ctx context.Context, ms *organization.Membership) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}
func (m *MockMembershipRepository) Update(ctx context.Context, ms *organization.Membership) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}
func (m *MockMembershipRepository) Get(ctx context.Context, organizationID, userID kernel.UUID) (*organization.Membership, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Membership), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepository) GetForRecipient(ctx context.Context, organizationID, recipientID kernel.UUID) ([]*notification.Notification, error) {
	args := m.Called(ctx, organizationID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}
func (m *MockNotificationRepository) MarkRead(ctx context.Context, organizationID, recipientID, id kernel.UUID) error {
	args := m.Called(ctx, organizationID, recipientID, id)
	return args.Error(0)
}
func (m *MockNotificationRepository) PurgeRead(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies every command unit of work interface. Repository
// accessors are plain fields so loops may call them any number of times.
type MockUoW struct {
	mock.Mock

	Orders        *MockOrderRepository
	DesignJobs    *MockDesignJobRepository
	WorkOrders    *MockWorkOrderRepository
	Fulfillments  *MockFulfillmentRepository
	Audits        *MockAuditRepository
	Memberships   *MockMembershipRepository
	Notifications *MockNotificationRepository
}

func NewMockUoW() *MockUoW {
	return &MockUoW{
		Orders:        new(MockOrderRepository),
		DesignJobs:    new(MockDesignJobRepository),
		WorkOrders:    new(MockWorkOrderRepository),
		Fulfillments:  new(MockFulfillmentRepository),
		Audits:        new(MockAuditRepository),
		Memberships:   new(MockMembershipRepository),
		Notifications: new(MockNotificationRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository             { return m.Orders }
func (m *MockUoW) DesignJobRepository() ports.DesignJobRepository     { return m.DesignJobs }
func (m *MockUoW) WorkOrderRepository() ports.WorkOrderRepository     { return m.WorkOrders }
func (m *MockUoW) FulfillmentRepository() ports.FulfillmentRepository { return m.Fulfillments }
func (m *MockUoW) AuditRepository() ports.AuditRepository             { return m.Audits }
func (m *MockUoW) MembershipRepository() ports.MembershipRepository   { return m.Memberships }
func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	return m.Notifications
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockArtifactUoWFactory struct{ mock.Mock }

func (m *MockArtifactUoWFactory) Create() commands.ArtifactUoW {
	args := m.Called()
	return args.Get(0).(commands.ArtifactUoW)
}

type MockMembershipUoWFactory struct{ mock.Mock }

func (m *MockMembershipUoWFactory) Create() commands.MembershipUoW {
	args := m.Called()
	return args.Get(0).(commands.MembershipUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(event ports.Event) {
	m.Called(event)
}

func memberActor() access.Context {
	actor, _ := access.NewContext(kernel.NewUUID(), kernel.NewUUID(), access.RoleMember, false)
	return actor
}

func actorWithRole(role access.Role) access.Context {
	actor, _ := access.NewContext(kernel.NewUUID(), kernel.NewUUID(), role, false)
	return actor
}
