package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go-payroll/internal/shared/database"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	ID   int `gorm:"primaryKey"`
	Name string
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func TestConn_RoutesThroughTx(t *testing.T) {
	db := openSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	ctx := context.Background()

	tx, err := sqlDB.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, database.Conn(ctx, db, tx).Create(&widget{ID: 1, Name: "a"}).Error)
	require.NoError(t, tx.Rollback())

	var count int64
	require.NoError(t, database.Conn(ctx, db, nil).Model(&widget{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestForUpdate_IgnoredBySQLite(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&widget{ID: 7, Name: "locked"}).Error)

	var got widget
	err := database.ForUpdate(database.Conn(ctx, db, nil)).First(&got, "id = ?", 7).Error
	require.NoError(t, err)
	assert.Equal(t, "locked", got.Name)
}

func TestPaginate(t *testing.T) {
	db := openSQLite(t)
	for i := 1; i <= 5; i++ {
		require.NoError(t, db.Create(&widget{ID: i, Name: fmt.Sprintf("w%d", i)}).Error)
	}

	var page []widget
	require.NoError(t, db.Scopes(database.Paginate(2, 2)).Order("id").Find(&page).Error)
	require.Len(t, page, 2)
	assert.Equal(t, 3, page[0].ID)

	var all []widget
	require.NoError(t, db.Scopes(database.Paginate(0, 0)).Find(&all).Error)
	assert.Len(t, all, 5)
}

func TestUniqueViolation(t *testing.T) {
	name, ok := database.UniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_payslips_period"}))
	assert.True(t, ok)
	assert.Equal(t, "uq_payslips_period", name)

	_, ok = database.UniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)

	_, ok = database.UniqueViolation(gorm.ErrDuplicatedKey)
	assert.True(t, ok)

	assert.True(t, database.IsNotFound(fmt.Errorf("x: %w", gorm.ErrRecordNotFound)))
	assert.False(t, database.IsNotFound(errors.New("boom")))
}
