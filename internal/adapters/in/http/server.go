// Package http is the inbound HTTP adapter: an echo server exposing the
// order platform API. The tenant context resolver runs as middleware, so
// handlers only ever see an authenticated access.Context.
package http

import (
	"net/http"

	"merchflow/internal/broadcast"
	"merchflow/internal/core/application/usecases/commands"
	"merchflow/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler           commands.CreateOrderCommandHandler
	transitionOrderHandler       commands.TransitionOrderCommandHandler
	bulkTransitionOrdersHandler  commands.BulkTransitionOrdersCommandHandler
	deleteOrderHandler           commands.DeleteOrderCommandHandler
	createDesignJobHandler       commands.CreateDesignJobCommandHandler
	createWorkOrderHandler       commands.CreateWorkOrderCommandHandler
	createFulfillmentHandler     commands.CreateFulfillmentCommandHandler
	transitionDesignJobHandler   commands.TransitionDesignJobCommandHandler
	transitionWorkOrderHandler   commands.TransitionWorkOrderCommandHandler
	transitionFulfillmentHandler commands.TransitionFulfillmentCommandHandler
	changeMemberRoleHandler      commands.ChangeMemberRoleCommandHandler
	markNotificationReadHandler  commands.MarkNotificationReadCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getOrdersHandler         queries.GetOrdersQueryHandler
	getOrderReadinessHandler queries.GetOrderReadinessQueryHandler
	getAuditLogHandler       queries.GetAuditLogQueryHandler
	getNotificationsHandler  queries.GetNotificationsQueryHandler

	dispatcher *broadcast.Dispatcher
	jwtSecret  []byte
}

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	CreateOrder           commands.CreateOrderCommandHandler
	TransitionOrder       commands.TransitionOrderCommandHandler
	BulkTransitionOrders  commands.BulkTransitionOrdersCommandHandler
	DeleteOrder           commands.DeleteOrderCommandHandler
	CreateDesignJob       commands.CreateDesignJobCommandHandler
	CreateWorkOrder       commands.CreateWorkOrderCommandHandler
	CreateFulfillment     commands.CreateFulfillmentCommandHandler
	TransitionDesignJob   commands.TransitionDesignJobCommandHandler
	TransitionWorkOrder   commands.TransitionWorkOrderCommandHandler
	TransitionFulfillment commands.TransitionFulfillmentCommandHandler
	ChangeMemberRole      commands.ChangeMemberRoleCommandHandler
	MarkNotificationRead  commands.MarkNotificationReadCommandHandler

	GetOrder          queries.GetOrderQueryHandler
	GetOrders         queries.GetOrdersQueryHandler
	GetOrderReadiness queries.GetOrderReadinessQueryHandler
	GetAuditLog       queries.GetAuditLogQueryHandler
	GetNotifications  queries.GetNotificationsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers, the broadcast dispatcher for the event stream, and the JWT
// secret for the tenant context resolver.
func NewServer(handlers Handlers, dispatcher *broadcast.Dispatcher, jwtSecret []byte) *Server {
	return &Server{
		createOrderHandler:           handlers.CreateOrder,
		transitionOrderHandler:       handlers.TransitionOrder,
		bulkTransitionOrdersHandler:  handlers.BulkTransitionOrders,
		deleteOrderHandler:           handlers.DeleteOrder,
		createDesignJobHandler:       handlers.CreateDesignJob,
		createWorkOrderHandler:       handlers.CreateWorkOrder,
		createFulfillmentHandler:     handlers.CreateFulfillment,
		transitionDesignJobHandler:   handlers.TransitionDesignJob,
		transitionWorkOrderHandler:   handlers.TransitionWorkOrder,
		transitionFulfillmentHandler: handlers.TransitionFulfillment,
		changeMemberRoleHandler:      handlers.ChangeMemberRole,
		markNotificationReadHandler:  handlers.MarkNotificationRead,
		getOrderHandler:              handlers.GetOrder,
		getOrdersHandler:             handlers.GetOrders,
		getOrderReadinessHandler:     handlers.GetOrderReadiness,
		getAuditLogHandler:           handlers.GetAuditLog,
		getNotificationsHandler:      handlers.GetNotifications,
		dispatcher:                   dispatcher,
		jwtSecret:                    jwtSecret,
	}
}

// Per-second rate limits. The IP limit runs before authentication and
// shields the token parser; the per-user limit runs after it.
const (
	ipRateLimit   = rate.Limit(50)
	userRateLimit = rate.Limit(20)
)

// RegisterRoutes mounts the API on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(ipRateLimit)))

	e.GET("/health", s.Health)

	api := e.Group("/api/v1", AuthMiddleware(s.jwtSecret), perUserRateLimiter())

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/bulk/transition", s.BulkTransitionOrders)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.GET("/orders/:id/readiness", s.GetOrderReadiness)

	api.POST("/orders/:id/design-jobs", s.CreateDesignJob)
	api.POST("/orders/:id/work-orders", s.CreateWorkOrder)
	api.POST("/orders/:id/fulfillments", s.CreateFulfillment)
	api.POST("/design-jobs/:id/transition", s.TransitionDesignJob)
	api.POST("/work-orders/:id/transition", s.TransitionWorkOrder)
	api.POST("/fulfillments/:id/transition", s.TransitionFulfillment)

	api.PUT("/memberships/:userID/role", s.ChangeMemberRole)

	api.GET("/audit", s.GetAuditLog)
	api.GET("/notifications", s.GetNotifications)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)

	api.GET("/stream", s.Stream)
}

// perUserRateLimiter limits authenticated traffic by user id rather than
// source address.
func perUserRateLimiter() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(userRateLimit),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			actor, err := actorFrom(ctx)
			if err != nil {
				return ctx.RealIP(), nil
			}
			return actor.UserID.String(), nil
		},
	})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
