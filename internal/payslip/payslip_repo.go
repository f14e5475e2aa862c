package payslip

import (
	"context"
	"database/sql"
	"strings"

	"go-payroll/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payslip) error
	Update(ctx context.Context, p *Payslip) error
	FindByID(ctx context.Context, id string) (*Payslip, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Payslip, error)
	FindByMessageIDForUpdate(ctx context.Context, messageID string) (*Payslip, error)
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	FindAll(ctx context.Context, filter PayslipFilter) ([]Payslip, int64, error)
	FindForPeriod(ctx context.Context, year, monthFrom, monthTo int) ([]Payslip, error)
	CreateEmailLog(ctx context.Context, log *EmailLog) error
	ListEmailLogs(ctx context.Context, payslipID string) ([]EmailLog, error)
	CountEmailLogs(ctx context.Context, payslipID string) (int64, error)
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

func (r *repository) Create(ctx context.Context, p *Payslip) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) Update(ctx context.Context, p *Payslip) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payslip, error) {
	var p Payslip
	if err := r.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Payslip, error) {
	var p Payslip
	if err := database.ForUpdate(r.conn(ctx)).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByMessageIDForUpdate(ctx context.Context, messageID string) (*Payslip, error) {
	var p Payslip
	if err := database.ForUpdate(r.conn(ctx)).First(&p, "email_message_id = ?", messageID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Payslip{}).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAll(ctx context.Context, filter PayslipFilter) ([]Payslip, int64, error) {
	q := r.conn(ctx).Model(&Payslip{})
	if filter.Month > 0 {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.Year > 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if code := strings.TrimSpace(filter.EmployeeCode); code != "" {
		q = q.Where("LOWER(employee_code) = ?", strings.ToLower(code))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Payslip
	err := q.Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Order("year DESC, month DESC, employee_code ASC").
		Find(&rows).Error
	return rows, total, err
}

// FindForPeriod returns every payslip of the year whose month lies in [monthFrom, monthTo].
func (r *repository) FindForPeriod(ctx context.Context, year, monthFrom, monthTo int) ([]Payslip, error) {
	var rows []Payslip
	err := r.conn(ctx).
		Where("year = ? AND month BETWEEN ? AND ?", year, monthFrom, monthTo).
		Order("month ASC, employee_code ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateEmailLog(ctx context.Context, log *EmailLog) error {
	return r.conn(ctx).Create(log).Error
}

func (r *repository) ListEmailLogs(ctx context.Context, payslipID string) ([]EmailLog, error) {
	var logs []EmailLog
	err := r.conn(ctx).
		Where("payslip_id = ?", payslipID).
		Order("sent_at ASC").
		Find(&logs).Error
	return logs, err
}

func (r *repository) CountEmailLogs(ctx context.Context, payslipID string) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&EmailLog{}).Where("payslip_id = ?", payslipID).Count(&count).Error
	return count, err
}
