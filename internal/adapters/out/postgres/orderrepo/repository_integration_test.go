package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	creator, err := order.NewCreator(kernel.NewUUID(), order.RoleAgent)
	suite.Require().NoError(err)

	first, err := order.NewItem("SKU-100", 2, 50, "", 20, 35)
	suite.Require().NoError(err)
	second, err := order.NewItem("SKU-200", 1, 80, kernel.SAR, 30, 0)
	suite.Require().NoError(err)

	total := 180.0
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		"INV-1001",
		kernel.UnitedArabEmirates,
		"Dubai",
		"971",
		[]order.Item{first, second},
		15,
		5,
		&total,
		creator,
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) addOrder(testOrder *order.Order) {
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), testOrder))
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	testOrder := suite.createTestOrder()

	suite.addOrder(testOrder)

	suite.assertOrderCount(1)

	var itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&itemCount).Error)
	suite.Equal(int64(2), itemCount)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrips() {
	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	retrieved, err := suite.repository.Get(context.Background(), testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Equal("INV-1001", retrieved.InvoiceNumber())
	suite.Equal(kernel.UnitedArabEmirates, retrieved.Country())
	suite.Equal("Dubai", retrieved.City())
	suite.Equal("971", retrieved.PhoneCode())
	suite.Equal(order.Pending, retrieved.Status())
	suite.Equal(15.0, retrieved.ShippingFee())
	suite.Equal(5.0, retrieved.Discount())
	suite.Require().NotNil(retrieved.Total())
	suite.Equal(180.0, *retrieved.Total())
	suite.Equal(order.RoleAgent, retrieved.CreatedBy().Role())
	suite.Nil(retrieved.DriverID())

	suite.Require().Len(retrieved.Items(), 2)
	suite.Equal("SKU-100", retrieved.Items()[0].ProductRef())
	suite.Equal(2, retrieved.Items()[0].Quantity())
	suite.Equal("SKU-200", retrieved.Items()[1].ProductRef())
	suite.Equal(kernel.SAR, retrieved.Items()[1].BaseCurrency())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_LifecycleRoundTrip() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	driverID := kernel.NewUUID()
	suite.Require().NoError(testOrder.AssignDriver(driverID, 10, time.Now().UTC().Truncate(time.Microsecond)))
	_, err := testOrder.ChangeStatus(order.InTransit, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InTransit, retrieved.Status())
	suite.NotNil(retrieved.ShippedAt())
	suite.Require().NotNil(retrieved.DriverID())
	suite.True(retrieved.DriverID().IsEqual(driverID))
	suite.Equal(10.0, retrieved.DriverCommission())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReturnWorkflowRoundTrip() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	_, err := testOrder.ChangeStatus(order.Cancelled, now)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.SubmitReturn("customer refused", now))
	verifier := kernel.NewUUID()
	_, err = testOrder.VerifyReturn(verifier, now.Add(time.Hour))
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.ReturnVerified())
	suite.Equal("customer refused", retrieved.ReturnState().Reason())
	suite.Require().NotNil(retrieved.ReturnState().VerifiedBy())
	suite.True(retrieved.ReturnState().VerifiedBy().IsEqual(verifier))

	// The restored aggregate keeps the idempotency guard.
	_, err = retrieved.VerifyReturn(kernel.NewUUID(), time.Now())
	suite.Require().ErrorIs(err, order.ErrReturnAlreadyVerified)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	testOrder := suite.createTestOrder()

	err := suite.repository.Update(context.Background(), testOrder)
	suite.Require().Error(err)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInOpenStatuses_FiltersTerminal() {
	ctx := context.Background()

	open := suite.createTestOrder()
	suite.addOrder(open)

	delivered := suite.createTestOrder()
	_, err := delivered.ChangeStatus(order.Delivered, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	suite.addOrder(delivered)

	cancelled := suite.createTestOrder()
	_, err = cancelled.ChangeStatus(order.Cancelled, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	suite.addOrder(cancelled)

	orders, err := suite.repository.GetAllInOpenStatuses(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(open.ID(), orders[0].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllCreatedBetween_WindowsByCreation() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	after := testOrder.CreatedAt().Add(time.Hour)

	within, err := suite.repository.GetAllCreatedBetween(ctx, time.Time{}, after)
	suite.Require().NoError(err)
	suite.Len(within, 1)

	outside, err := suite.repository.GetAllCreatedBetween(ctx, after, time.Time{})
	suite.Require().NoError(err)
	suite.Empty(outside)

	suite.tracker.AssertExpectations(suite.T())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
