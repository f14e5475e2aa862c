package counter

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/shared/database"

	"gorm.io/gorm"
)

// Counter is one named monotonically increasing sequence.
type Counter struct {
	CounterType string `gorm:"type:varchar(50);primaryKey"`
	LastValue   int64  `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

func (Counter) TableName() string {
	return "sequence_counters"
}

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Next(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// Next increments and returns the sequence in a single upsert statement.
func (r *repository) Next(ctx context.Context, counterType string) (int64, error) {
	var next int64
	err := database.Conn(ctx, r.db, r.tx).Raw(`
		INSERT INTO sequence_counters (counter_type, last_value, updated_at)
		VALUES (?, 1, ?)
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = sequence_counters.last_value + 1, updated_at = excluded.updated_at
		RETURNING last_value
	`, counterType, time.Now().UTC()).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}
