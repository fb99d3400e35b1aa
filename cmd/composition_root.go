package cmd

import (
	"log/slog"

	httpin "merchflow/internal/adapters/in/http"
	"merchflow/internal/adapters/out/postgres"
	"merchflow/internal/broadcast"
	"merchflow/internal/core/application/usecases/commands"
	"merchflow/internal/core/application/usecases/queries"
	"merchflow/internal/core/ports"
	"merchflow/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. The broadcast
// dispatcher is shared: every command handler publishes into it and the
// SSE endpoint subscribes from it.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher *broadcast.Dispatcher
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph over an open database handle.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: broadcast.NewDispatcher(),
		logger:     logger,
	}
}

// Dispatcher returns the shared broadcast dispatcher.
func (c *CompositionRoot) Dispatcher() *broadcast.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return postgres.NewGormUnitOfWork(c.gormDB)
	})
}

func (c *CompositionRoot) artifactUoWFactory() commands.ArtifactUoWFactory {
	return FuncArtifactUoWFactory(func() commands.ArtifactUoW {
		return postgres.NewGormUnitOfWork(c.gormDB)
	})
}

func (c *CompositionRoot) membershipUoWFactory() commands.MembershipUoWFactory {
	return FuncMembershipUoWFactory(func() commands.MembershipUoW {
		return postgres.NewGormUnitOfWork(c.gormDB)
	})
}

// NotificationRepository returns a repository outside any transaction, for
// the cleanup job.
func (c *CompositionRoot) NotificationRepository() ports.NotificationRepository {
	return c.uowFactory.Create().NotificationRepository()
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.NotificationRepository(), c.logger)
}

// CreateHTTPHandlers builds the full handler set for the HTTP server.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:           commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.dispatcher),
		TransitionOrder:       commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.dispatcher),
		BulkTransitionOrders:  commands.NewBulkTransitionOrdersCommandHandler(c.orderUoWFactory(), c.dispatcher),
		DeleteOrder:           commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.dispatcher),
		CreateDesignJob:       commands.NewCreateDesignJobCommandHandler(c.artifactUoWFactory(), c.dispatcher, c.logger),
		CreateWorkOrder:       commands.NewCreateWorkOrderCommandHandler(c.artifactUoWFactory(), c.dispatcher),
		CreateFulfillment:     commands.NewCreateFulfillmentCommandHandler(c.artifactUoWFactory(), c.dispatcher),
		TransitionDesignJob:   commands.NewTransitionDesignJobCommandHandler(c.artifactUoWFactory(), c.dispatcher),
		TransitionWorkOrder:   commands.NewTransitionWorkOrderCommandHandler(c.artifactUoWFactory(), c.dispatcher),
		TransitionFulfillment: commands.NewTransitionFulfillmentCommandHandler(c.artifactUoWFactory(), c.dispatcher),
		ChangeMemberRole:      commands.NewChangeMemberRoleCommandHandler(c.membershipUoWFactory(), c.dispatcher),
		MarkNotificationRead:  commands.NewMarkNotificationReadCommandHandler(c.artifactUoWFactory()),

		GetOrder:          queries.NewGetOrderQueryHandler(c.gormDB),
		GetOrders:         queries.NewGetOrdersQueryHandler(c.gormDB),
		GetOrderReadiness: queries.NewGetOrderReadinessQueryHandler(c.gormDB),
		GetAuditLog:       queries.NewGetAuditLogQueryHandler(c.gormDB),
		GetNotifications:  queries.NewGetNotificationsQueryHandler(c.gormDB),
	}
}

// FuncOrderUoWFactory adapts a closure to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncArtifactUoWFactory adapts a closure to commands.ArtifactUoWFactory.
type FuncArtifactUoWFactory func() commands.ArtifactUoW

func (f FuncArtifactUoWFactory) Create() commands.ArtifactUoW {
	return f()
}

// FuncMembershipUoWFactory adapts a closure to commands.MembershipUoWFactory.
type FuncMembershipUoWFactory func() commands.MembershipUoW

func (f FuncMembershipUoWFactory) Create() commands.MembershipUoW {
	return f()
}
