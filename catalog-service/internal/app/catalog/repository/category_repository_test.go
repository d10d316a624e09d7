package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type CategoryRepositoryTestSuite struct {
	suite.Suite
	mock  sqlmock.Sqlmock
	repo  CategoryRepository
	sqlDB *sql.DB
}

func TestCategoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(CategoryRepositoryTestSuite))
}

func (s *CategoryRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(s.T(), err)

	s.repo = NewCategoryRepository(db)
}

func (s *CategoryRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func (s *CategoryRepositoryTestSuite) TestGetAll_IncludesDeleted() {
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"ProductCategoryID", "ProductCategoryName", "Active", "Deleted"}).
		AddRow(1, "Hardware", true, false).
		AddRow(2, "Archive", false, true)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ProductCategory" ORDER BY "ProductCategoryID"`)).
		WillReturnRows(rows)

	// Act
	categories, err := s.repo.GetAll(ctx)

	// Assert
	s.NoError(err)
	s.Len(categories, 2)
	s.Equal("Archive", categories[1].Name)
	s.True(categories[1].Deleted)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CategoryRepositoryTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ProductCategory" WHERE "ProductCategoryID" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"ProductCategoryID"}))

	// Act
	category, err := s.repo.GetByID(ctx, 5)

	// Assert
	s.ErrorIs(err, ErrCategoryNotFound)
	s.Nil(category)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *CategoryRepositoryTestSuite) TestCount() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "ProductCategory"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	// Act
	count, err := s.repo.Count(ctx)

	// Assert
	s.NoError(err)
	s.Equal(int64(4), count)

	s.NoError(s.mock.ExpectationsWereMet())
}
