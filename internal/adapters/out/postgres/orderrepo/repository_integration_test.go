package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"merchflow/internal/adapters/out/postgres/designjobrepo"
	"merchflow/internal/adapters/out/postgres/fulfillmentrepo"
	"merchflow/internal/adapters/out/postgres/orderrepo"
	"merchflow/internal/adapters/out/postgres/workorderrepo"
	"merchflow/internal/core/domain/model/designjob"
	"merchflow/internal/core/domain/model/kernel"
	"merchflow/internal/core/domain/model/order"
	"merchflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies persistence behavior against
// a real PostgreSQL instance, in particular tenant scoping and the
// optimistic concurrency check.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&designjobrepo.DesignJobDTO{},
		&workorderrepo.WorkOrderDTO{},
		&fulfillmentrepo.FulfillmentDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, design_jobs, work_orders, fulfillments",
	).Error)

	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(organizationID kernel.UUID) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 25, 1250)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		organizationID,
		order.Customer{Name: "Globex Merch", Email: "buyer@globex.example"},
		[]order.Item{item},
		31250,
		order.PriorityNormal,
		nil,
		"",
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	organizationID := kernel.NewUUID()

	aggregate := suite.createTestOrder(organizationID)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, organizationID, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), loaded.ID())
	suite.Equal(order.StatusDraft, loaded.Status())
	suite.Equal("Globex Merch", loaded.Customer().Name)
	suite.Len(loaded.Items(), 1)
	suite.Equal(1, loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ForeignOrganization_IndistinguishableFromUnknown() {
	ctx := context.Background()
	ownerOrg := kernel.NewUUID()
	otherOrg := kernel.NewUUID()

	aggregate := suite.createTestOrder(ownerOrg)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	_, foreignErr := suite.repository.Get(ctx, otherOrg, aggregate.ID())
	_, unknownErr := suite.repository.Get(ctx, otherOrg, kernel.NewUUID())

	suite.Require().ErrorIs(foreignErr, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(unknownErr, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()
	organizationID := kernel.NewUUID()

	aggregate := suite.createTestOrder(organizationID)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	first, err := suite.repository.Get(ctx, organizationID, aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, organizationID, aggregate.ID())
	suite.Require().NoError(err)

	// First writer wins.
	expected := first.Version()
	changed, err := first.Transition(order.StatusPending)
	suite.Require().NoError(err)
	suite.Require().True(changed)
	suite.Require().NoError(suite.repository.Update(ctx, first, expected))

	// Second writer read the same version and must lose.
	expected = second.Version()
	changed, err = second.Transition(order.StatusCancelled)
	suite.Require().NoError(err)
	suite.Require().True(changed)
	suite.Require().ErrorIs(suite.repository.Update(ctx, second, expected), errs.ErrConflict)

	// Stored state is the first writer's.
	current, err := suite.repository.Get(ctx, organizationID, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusPending, current.Status())
	suite.Equal(2, current.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestHasDependents() {
	ctx := context.Background()
	organizationID := kernel.NewUUID()

	aggregate := suite.createTestOrder(organizationID)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	has, err := suite.repository.HasDependents(ctx, organizationID, aggregate.ID())
	suite.Require().NoError(err)
	suite.False(has)

	job, err := designjob.NewDesignJob(kernel.NewUUID(), organizationID, aggregate.ID(), kernel.NewUUID(), nil)
	suite.Require().NoError(err)
	suite.Require().NoError(designjobrepo.NewGormDesignJobRepository(suite.db).Add(ctx, job))

	has, err = suite.repository.HasDependents(ctx, organizationID, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(has)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_RemovesOrderAndLines() {
	ctx := context.Background()
	organizationID := kernel.NewUUID()

	aggregate := suite.createTestOrder(organizationID)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(suite.repository.Delete(ctx, organizationID, aggregate.ID()))

	_, err := suite.repository.Get(ctx, organizationID, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var lineCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&lineCount).Error)
	suite.Zero(lineCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_ForeignOrganization_NotFound() {
	ctx := context.Background()
	ownerOrg := kernel.NewUUID()

	aggregate := suite.createTestOrder(ownerOrg)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	err := suite.repository.Delete(ctx, kernel.NewUUID(), aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	// The owner still sees it.
	_, err = suite.repository.Get(ctx, ownerOrg, aggregate.ID())
	suite.Require().NoError(err)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
