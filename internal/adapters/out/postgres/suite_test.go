package postgres_test

import (
	"context"
	"time"

	postgres_adapter "roundplanner/internal/adapters/out/postgres"
	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// postgresSuite starts one PostgreSQL container per suite and truncates every table
// before each test.
type postgresSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
	tenantID  kernel.UUID
	week      kernel.Week
}

func (suite *postgresSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(postgres_adapter.Models()...))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, time.UTC)
	suite.week = kernel.WeekOf(kernel.NewDate(2026, time.October, 19, time.UTC))
}

func (suite *postgresSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE jobs, clients, workers, rota, week_versions").Error
	suite.Require().NoError(err)
	suite.tenantID = kernel.NewUUID()
}

func (suite *postgresSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *postgresSuite) newJob(day kernel.Date) *job.Job {
	j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), day.At(9, 0), decimal.NewFromInt(50), job.Pending)
	suite.Require().NoError(err)
	return j
}

func (suite *postgresSuite) addJob(day kernel.Date) *job.Job {
	j := suite.newJob(day)
	suite.Require().NoError(suite.factory.Create().JobRepository().Add(context.Background(), suite.tenantID, j))
	return j
}
