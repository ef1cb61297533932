package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "shipping/internal/adapters/out/postgres"
	"shipping/internal/core/domain/model/journal"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the journal unit of work against a
// real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE journal_entries").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.JournalRepository())
	suite.NotNil(uow2.JournalRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsEntries() {
	ctx := context.Background()
	sessionID := kernel.NewUUID()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.JournalRepository().Add(ctx, newEntry(sessionID, journal.StepOrderCreated)))
	suite.Require().NoError(uow.JournalRepository().Add(ctx, newEntry(sessionID, journal.StepShipmentResolved)))
	suite.Require().NoError(uow.Commit(ctx))

	entries, err := suite.factory.Create().JournalRepository().ListBySession(ctx, sessionID)
	suite.Require().NoError(err)
	suite.Len(entries, 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEntries() {
	ctx := context.Background()
	sessionID := kernel.NewUUID()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.JournalRepository().Add(ctx, newEntry(sessionID, journal.StepOrderCreated)))

	inside, err := uow.JournalRepository().ListBySession(ctx, sessionID)
	suite.Require().NoError(err)
	suite.Len(inside, 1, "Entry should be visible inside its transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	after, err := suite.factory.Create().JournalRepository().ListBySession(ctx, sessionID)
	suite.Require().NoError(err)
	suite.Empty(after)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Isolation() {
	ctx := context.Background()
	sessionID := kernel.NewUUID()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.JournalRepository().Add(ctx, newEntry(sessionID, journal.StepOrderCreated)))

	seen, err := uow2.JournalRepository().ListBySession(ctx, sessionID)
	suite.Require().NoError(err)
	suite.Empty(seen, "Uncommitted entries should not leak into other transactions")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	persisted, err := suite.factory.Create().JournalRepository().ListBySession(ctx, sessionID)
	suite.Require().NoError(err)
	suite.Len(persisted, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	sessionID := kernel.NewUUID()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.JournalRepository().Add(ctx, newEntry(sessionID, journal.StepFulfilled)))

	entries, err := suite.factory.Create().JournalRepository().ListBySession(ctx, sessionID)
	suite.Require().NoError(err)
	suite.Len(entries, 1)
}

func newEntry(sessionID kernel.UUID, step journal.Step) journal.Entry {
	return journal.NewEntry(sessionID, step, nil, time.Now())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
