package salaryrevision

import (
	"context"
	"database/sql"
	"strings"

	"go-payroll/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_revision_repo.go -destination=mock/salary_revision_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *SalaryRevision) error
	Update(ctx context.Context, r *SalaryRevision) error
	FindByID(ctx context.Context, id string) (*SalaryRevision, error)
	FindByIDForUpdate(ctx context.Context, id string) (*SalaryRevision, error)
	FindAll(ctx context.Context, filter RevisionFilter) ([]SalaryRevision, int64, error)
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

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return database.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, rev *SalaryRevision) error {
	return r.conn(ctx).Create(rev).Error
}

func (r *repository) Update(ctx context.Context, rev *SalaryRevision) error {
	return r.conn(ctx).Save(rev).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryRevision, error) {
	var rev SalaryRevision
	if err := r.conn(ctx).First(&rev, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*SalaryRevision, error) {
	var rev SalaryRevision
	if err := database.ForUpdate(r.conn(ctx)).First(&rev, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *repository) FindAll(ctx context.Context, filter RevisionFilter) ([]SalaryRevision, int64, error) {
	q := r.conn(ctx).Model(&SalaryRevision{})
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.EmployeeCode != "" {
		q = q.Where("LOWER(employee_code) = ?", strings.ToLower(filter.EmployeeCode))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []SalaryRevision
	err := q.Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Order("requested_at DESC").
		Find(&rows).Error
	return rows, total, err
}
