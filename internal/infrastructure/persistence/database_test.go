package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase opens a GORM connection backed by sqlmock
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

func TestDatabase_Ping(t *testing.T) {
	db, _, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	assert.NoError(t, db.Ping())
}

func TestGormConnectionRepository_QueryErrorPropagates(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	queryErr := errors.New("connection reset by peer")
	mock.ExpectQuery(`SELECT (.+) FROM "pos_connections"`).WillReturnError(queryErr)

	repo := NewGormConnectionRepository(db.DB)
	_, err := repo.FindByShop(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, queryErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
