package attendance

import (
	"context"
	"database/sql"
	"strings"

	"go-payroll/internal/shared/database"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Attendance, error)
	FindByPeriodForUpdate(ctx context.Context, employeeID string, month, year int) (*Attendance, error)
	FindByCodeAndPeriodForUpdate(ctx context.Context, employeeCode string, month, year int) (*Attendance, error)
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	FindAll(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	Stats(ctx context.Context, month, year int) (StatsSummary, []StatusCount, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Save(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	if err := r.conn(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	if err := database.ForUpdate(r.conn(ctx)).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByPeriodForUpdate(ctx context.Context, employeeID string, month, year int) (*Attendance, error) {
	var a Attendance
	err := database.ForUpdate(r.conn(ctx)).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByCodeAndPeriodForUpdate(ctx context.Context, employeeCode string, month, year int) (*Attendance, error) {
	var a Attendance
	err := database.ForUpdate(r.conn(ctx)).
		Where("LOWER(employee_code) = ? AND month = ? AND year = ?", strings.ToLower(strings.TrimSpace(employeeCode)), month, year).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Attendance{}).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAll(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error) {
	q := r.filtered(ctx, filter.Month, filter.Year)

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where("status IN ?", statuses)
	}
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.EmployeeCode != "" {
		q = q.Where("employee_code = ?", filter.EmployeeCode)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Attendance
	err := q.Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Order("year DESC, month DESC, employee_code ASC").
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) Stats(ctx context.Context, month, year int) (StatsSummary, []StatusCount, error) {
	var summary StatsSummary
	err := r.filtered(ctx, month, year).
		Select(`COUNT(*) AS total_employees,
			COALESCE(SUM(present_days), 0) AS total_present_days,
			COALESCE(SUM(absent_days), 0) AS total_absent_days,
			COALESCE(SUM(total_leaves), 0) AS total_leaves,
			COALESCE(AVG(CAST(present_days AS REAL) / NULLIF(total_working_days, 0)), 0) AS average_attendance`).
		Scan(&summary).Error
	if err != nil {
		return StatsSummary{}, nil, err
	}

	var breakdown []StatusCount
	err = r.filtered(ctx, month, year).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&breakdown).Error
	return summary, breakdown, err
}

func (r *repository) filtered(ctx context.Context, month, year int) *gorm.DB {
	q := r.conn(ctx).Model(&Attendance{})
	if month > 0 {
		q = q.Where("month = ?", month)
	}
	if year > 0 {
		q = q.Where("year = ?", year)
	}
	return q
}
