package salaryrevision_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payroll/internal/employee"
	kafka "go-payroll/internal/messaging/kafka"
	"go-payroll/internal/salaryrevision"
	salaryrevisionerrors "go-payroll/internal/salaryrevision/errors"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&salaryrevision.SalaryRevision{}, &employee.Employee{}))
	return db
}

func seedRevision(t *testing.T, repo salaryrevision.Repository, code string, status salaryrevision.Status, requestedAt time.Time) *salaryrevision.SalaryRevision {
	t.Helper()
	r := &salaryrevision.SalaryRevision{
		ID:            uuid.New(),
		EmployeeID:    uuid.New(),
		EmployeeCode:  code,
		EmployeeName:  gofakeit.Name(),
		CurrentSalary: decimal.NewFromInt(40000),
		NewSalary:     decimal.NewFromInt(45000),
		EffectiveDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Reason:        "increment",
		Description:   gofakeit.Sentence(6),
		Status:        string(status),
		RequestedBy:   "hr-1",
		RequestedAt:   requestedAt,
	}
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func TestSalaryRevisionRepository_FindAll(t *testing.T) {
	repo := salaryrevision.NewRepository(openRepoDB(t))
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	older := seedRevision(t, repo, "EMP001", salaryrevision.StatusPending, base)
	newer := seedRevision(t, repo, "EMP001", salaryrevision.StatusRejected, base.Add(time.Hour))
	seedRevision(t, repo, "EMP002", salaryrevision.StatusPending, base.Add(2*time.Hour))

	rows, total, err := repo.FindAll(ctx, salaryrevision.RevisionFilter{EmployeeCode: "emp001", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, older.ID, rows[1].ID)

	_, total, err = repo.FindAll(ctx, salaryrevision.RevisionFilter{Status: salaryrevision.StatusPending, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	rows, total, err = repo.FindAll(ctx, salaryrevision.RevisionFilter{EmployeeID: older.EmployeeID.String(), Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, older.ID, rows[0].ID)

	rows, total, err = repo.FindAll(ctx, salaryrevision.RevisionFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 1)
}

type recordingOutbox struct {
	events []kafka.OutboxEvent
}

func (o *recordingOutbox) WithTx(*sql.Tx) kafka.OutboxRepository { return o }
func (o *recordingOutbox) Create(_ context.Context, ev kafka.OutboxEvent) error {
	o.events = append(o.events, ev)
	return nil
}
func (o *recordingOutbox) ClaimPending(context.Context, int, time.Duration) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (o *recordingOutbox) MarkSent(context.Context, string) error           { return nil }
func (o *recordingOutbox) MarkFailed(context.Context, string, string) error { return nil }

func TestSalaryRevisionChain_EndToEnd(t *testing.T) {
	db := openRepoDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	ctx := context.Background()

	employees := employee.NewRepository(db)
	emp := &employee.Employee{
		ID:           uuid.New(),
		EmployeeCode: "EMP010",
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		IsActive:     true,
		Salary:       decimal.NewFromInt(50000),
		PaidDays:     30,
	}
	emp.Recompute()
	require.NoError(t, employees.Create(ctx, emp))

	outbox := &recordingOutbox{}
	svc := salaryrevision.NewService(sqlDB, salaryrevision.NewRepository(db), employees, outbox)

	created, err := svc.Request(ctx, "hr-1", salaryrevision.CreateRevisionRequest{
		EmployeeID:    emp.ID.String(),
		NewSalary:     60000,
		EffectiveDate: "2025-04-01",
		Reason:        "promotion",
		Description:   "Promoted to lead",
	})
	require.NoError(t, err)

	_, err = svc.MDApprove(ctx, "md-1", created.ID, "")
	assert.ErrorIs(t, err, salaryrevisionerrors.ErrNotFinanceApproved)

	_, err = svc.HRApprove(ctx, "hr-2", created.ID, "")
	require.NoError(t, err)
	_, err = svc.FinanceApprove(ctx, "fin-1", created.ID, "")
	require.NoError(t, err)
	done, err := svc.MDApprove(ctx, "md-1", created.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, salaryrevision.StatusMDApproved, done.Status)

	stored, err := employees.FindByID(ctx, emp.ID.String())
	require.NoError(t, err)
	assert.True(t, stored.Salary.Equal(decimal.NewFromInt(60000)), stored.Salary.String())
	assert.True(t, stored.Basic.Equal(decimal.NewFromInt(24000)), stored.Basic.String())

	require.Len(t, outbox.events, 1)
	assert.Equal(t, kafka.AggregateSalaryRevision, outbox.events[0].AggregateType)

	_, err = svc.Reject(ctx, "md-1", created.ID, "changed mind")
	assert.ErrorIs(t, err, salaryrevisionerrors.ErrAlreadyImplemented)
}
