package counter_test

import (
	"context"
	"testing"

	"go-payroll/internal/shared/counter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openCounterDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&counter.Counter{}))
	return db
}

func TestCounterRepository_Next(t *testing.T) {
	repo := counter.NewRepository(openCounterDB(t))
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := repo.Next(ctx, "payment_request")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	other, err := repo.Next(ctx, "salary_revision")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}

func TestCounterRepository_NextRollsBackWithTx(t *testing.T) {
	db := openCounterDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	repo := counter.NewRepository(db)
	ctx := context.Background()

	tx, err := sqlDB.BeginTx(ctx, nil)
	require.NoError(t, err)
	v, err := repo.WithTx(tx).Next(ctx, "payment_request")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	require.NoError(t, tx.Rollback())

	v, err = repo.Next(ctx, "payment_request")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}
