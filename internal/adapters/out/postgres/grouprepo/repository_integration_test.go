package grouprepo_test

import (
	"context"
	"testing"
	"time"

	"ostrov/internal/adapters/out/postgres/grouprepo"
	"ostrov/internal/adapters/out/postgres/orderrepo"
	"ostrov/internal/core/domain/model/group"
	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/core/domain/model/order"
	"ostrov/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker
// interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type GroupRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *grouprepo.GormGroupRepository
	orders     *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *GroupRepositoryIntegrationTestSuite) SetupSuite() {
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
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.StatusChangeDTO{},
		&grouprepo.GroupDTO{}))
}

func (suite *GroupRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_groups CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)
	suite.repository = grouprepo.NewGormGroupRepository(suite.db, suite.tracker)
	suite.orders = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *GroupRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GroupRepositoryIntegrationTestSuite) TestGet_RestoresMembersInJoinOrder() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	testGroup, err := group.NewGroup(kernel.NewUUID(),
		"GRP-20250314-MSK-0001", "msk", "Москва", "truck", now)
	suite.Require().NoError(err)

	// second joins earlier than first, so join order differs from insert order
	first := suite.newWarehouseOrder("SHOP-0301", now.Add(-3*time.Hour))
	second := suite.newWarehouseOrder("SHOP-0302", now.Add(-2*time.Hour))
	suite.joinGroup(second, testGroup, now.Add(-time.Hour))
	suite.joinGroup(first, testGroup, now)

	suite.Require().NoError(suite.orders.Add(ctx, first))
	suite.Require().NoError(suite.orders.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, testGroup))

	retrieved, err := suite.repository.Get(ctx, testGroup.ID())
	suite.Require().NoError(err)

	suite.Equal("GRP-20250314-MSK-0001", retrieved.Number())
	suite.Equal(group.Forming, retrieved.Status())
	suite.Require().Len(retrieved.MemberIDs(), 2)
	suite.Equal(second.ID(), retrieved.MemberIDs()[0])
	suite.Equal(first.ID(), retrieved.MemberIDs()[1])
	suite.Equal(1600, retrieved.TotalWeightGrams())
	suite.Nil(retrieved.Economics())
}

func (suite *GroupRepositoryIntegrationTestSuite) TestGet_NonExistentGroup_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *GroupRepositoryIntegrationTestSuite) TestUpdate_RoundTripsEconomicsAndLifecycle() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	testGroup, err := group.NewGroup(kernel.NewUUID(),
		"GRP-20250314-MSK-0002", "msk", "Москва", "truck", now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, testGroup))

	contract := int64(90000)
	economics, err := group.NewEconomics(150000, &contract, 60000, 40.0)
	suite.Require().NoError(err)
	suite.Require().NoError(testGroup.SetEconomics(economics, now))
	suite.Require().NoError(testGroup.Schedule(now))
	suite.Require().NoError(testGroup.Dispatch(false, "", now.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, testGroup))

	retrieved, err := suite.repository.Get(ctx, testGroup.ID())
	suite.Require().NoError(err)
	suite.Equal(group.Dispatched, retrieved.Status())
	suite.Require().NotNil(retrieved.Economics())
	suite.Equal(int64(150000), retrieved.Economics().PublicCostKopecks())
	suite.Require().NotNil(retrieved.Economics().ContractCostKopecks())
	suite.Equal(int64(90000), *retrieved.Economics().ContractCostKopecks())
	suite.Equal(40.0, retrieved.Economics().SavingsPercent())
	suite.Require().NotNil(retrieved.ScheduledAt())
	suite.Require().NotNil(retrieved.DispatchedAt())
	suite.Equal(now.Add(time.Minute), retrieved.DispatchedAt().UTC())
}

func (suite *GroupRepositoryIntegrationTestSuite) TestUpdate_NonExistentGroup_ReturnsError() {
	now := time.Now().UTC()
	testGroup, err := group.NewGroup(kernel.NewUUID(),
		"GRP-20250314-MSK-0003", "msk", "Москва", "truck", now)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), testGroup)
	suite.Require().Error(err)
}

func (suite *GroupRepositoryIntegrationTestSuite) TestGetFormingByHub_ReturnsOldestOpenGroup() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	older, err := group.NewGroup(kernel.NewUUID(),
		"GRP-20250313-MSK-0001", "msk", "Москва", "truck", now.Add(-24*time.Hour))
	suite.Require().NoError(err)
	newer, err := group.NewGroup(kernel.NewUUID(),
		"GRP-20250314-MSK-0001", "msk", "Москва", "truck", now)
	suite.Require().NoError(err)
	otherHub, err := group.NewGroup(kernel.NewUUID(),
		"GRP-20250314-SPB-0001", "spb", "Санкт-Петербург", "truck", now.Add(-48*time.Hour))
	suite.Require().NoError(err)

	for _, g := range []*group.Group{older, newer, otherHub} {
		suite.Require().NoError(suite.repository.Add(ctx, g))
	}

	forming, err := suite.repository.GetFormingByHub(ctx, "msk")
	suite.Require().NoError(err)
	suite.Require().NotNil(forming)
	suite.Equal(older.ID(), forming.ID())
}

func (suite *GroupRepositoryIntegrationTestSuite) TestGetFormingByHub_NoOpenGroup_ReturnsNil() {
	forming, err := suite.repository.GetFormingByHub(context.Background(), "msk")

	suite.Require().NoError(err)
	suite.Nil(forming)
}

func (suite *GroupRepositoryIntegrationTestSuite) TestCountCreatedOnDay_BoundsTheUTCDay() {
	ctx := context.Background()
	day := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	insideStart, err := group.NewGroup(kernel.NewUUID(),
		"GRP-20250314-MSK-0001", "msk", "Москва", "truck", day.Truncate(24*time.Hour))
	suite.Require().NoError(err)
	insideEnd, err := group.NewGroup(kernel.NewUUID(),
		"GRP-20250314-MSK-0002", "msk", "Москва", "truck",
		day.Truncate(24*time.Hour).Add(24*time.Hour-time.Second))
	suite.Require().NoError(err)
	dayBefore, err := group.NewGroup(kernel.NewUUID(),
		"GRP-20250313-MSK-0001", "msk", "Москва", "truck", day.Add(-24*time.Hour))
	suite.Require().NoError(err)
	otherHub, err := group.NewGroup(kernel.NewUUID(),
		"GRP-20250314-SPB-0001", "spb", "Санкт-Петербург", "truck", day)
	suite.Require().NoError(err)

	for _, g := range []*group.Group{insideStart, insideEnd, dayBefore, otherHub} {
		suite.Require().NoError(suite.repository.Add(ctx, g))
	}

	count, err := suite.repository.CountCreatedOnDay(ctx, "msk", day)
	suite.Require().NoError(err)
	suite.Equal(2, count)
}

func (suite *GroupRepositoryIntegrationTestSuite) TestDelete_RemovesGroupRow() {
	ctx := context.Background()
	now := time.Now().UTC()

	testGroup, err := group.NewGroup(kernel.NewUUID(),
		"GRP-20250314-MSK-0004", "msk", "Москва", "truck", now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, testGroup))

	suite.Require().NoError(suite.repository.Delete(ctx, testGroup.ID()))

	_, err = suite.repository.Get(ctx, testGroup.ID())
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	err = suite.repository.Delete(ctx, testGroup.ID())
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *GroupRepositoryIntegrationTestSuite) newWarehouseOrder(externalID string, receivedAt time.Time) *order.Order {
	code, err := kernel.NewPostalCode("101000")
	suite.Require().NoError(err)
	recipient, err := order.NewRecipient("Иванов Иван", "+79161234567", "ул. Ленина, 1", code)
	suite.Require().NoError(err)
	item, err := order.NewItem("Настольная лампа", 1, 250000, 800)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), externalID, "msk",
		recipient, []order.Item{item}, receivedAt.Add(-2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.TransitionTo(order.AwaitingPickup, "", receivedAt.Add(-time.Hour)))
	suite.Require().NoError(testOrder.TransitionTo(order.ReceivedWarehouse, "", receivedAt))
	return testOrder
}

func (suite *GroupRepositoryIntegrationTestSuite) joinGroup(testOrder *order.Order, testGroup *group.Group, at time.Time) {
	suite.Require().NoError(testOrder.JoinGroup(testGroup.ID(), "", at))
	suite.Require().NoError(testGroup.AddMember(testOrder.ID(), testOrder.TotalWeightGrams(), at))
}

func TestGroupRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(GroupRepositoryIntegrationTestSuite))
}
