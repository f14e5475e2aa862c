package payment

import (
	"context"
	"database/sql"
	"strings"

	"go-payroll/internal/shared/database"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatusAggregate is one row of the per-status payment totals.
type StatusAggregate struct {
	Status      string
	Count       int64
	TotalAmount decimal.Decimal
}

//go:generate mockgen -source=payment_repo.go -destination=mock/payment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *PaymentRequest) error
	Update(ctx context.Context, p *PaymentRequest) error
	FindByID(ctx context.Context, id string) (*PaymentRequest, error)
	FindByIDForUpdate(ctx context.Context, id string) (*PaymentRequest, error)
	FindActiveByPayslip(ctx context.Context, payslipID string) (*PaymentRequest, error)
	FindAll(ctx context.Context, filter PaymentFilter) ([]PaymentRequest, int64, error)
	Stats(ctx context.Context, month, year int) ([]StatusAggregate, error)
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

func (r *repository) Create(ctx context.Context, p *PaymentRequest) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) Update(ctx context.Context, p *PaymentRequest) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PaymentRequest, error) {
	var p PaymentRequest
	if err := r.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*PaymentRequest, error) {
	var p PaymentRequest
	if err := database.ForUpdate(r.conn(ctx)).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindActiveByPayslip(ctx context.Context, payslipID string) (*PaymentRequest, error) {
	var p PaymentRequest
	err := database.ForUpdate(r.conn(ctx)).
		Where("payslip_id = ? AND status <> ?", payslipID, string(StatusRejected)).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAll(ctx context.Context, filter PaymentFilter) ([]PaymentRequest, int64, error) {
	q := r.filtered(ctx, filter.Month, filter.Year)
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

	var rows []PaymentRequest
	err := q.Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Order("requested_at DESC, request_number DESC").
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) Stats(ctx context.Context, month, year int) ([]StatusAggregate, error) {
	var rows []StatusAggregate
	err := r.filtered(ctx, month, year).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount").
		Group("status").
		Order("status").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) filtered(ctx context.Context, month, year int) *gorm.DB {
	q := r.conn(ctx).Model(&PaymentRequest{})
	if month > 0 {
		q = q.Where("month = ?", month)
	}
	if year > 0 {
		q = q.Where("year = ?", year)
	}
	return q
}
