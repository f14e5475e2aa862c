package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/document"
	"go-payroll/internal/events"
	kafka "go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/payslip"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	findByCodeFn func(ctx context.Context, code string, month, year int) (*attendance.Attendance, error)
	updateFn     func(ctx context.Context, a *attendance.Attendance) error
	findAllFn    func(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error)
}

func (f *fakeAttendanceRepository) WithTx(*sql.Tx) attendance.Repository { return f }
func (f *fakeAttendanceRepository) Create(context.Context, *attendance.Attendance) error {
	return errors.New("not implemented")
}
func (f *fakeAttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}
func (f *fakeAttendanceRepository) FindByID(context.Context, string) (*attendance.Attendance, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAttendanceRepository) FindByIDForUpdate(context.Context, string) (*attendance.Attendance, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAttendanceRepository) FindByPeriodForUpdate(context.Context, string, int, int) (*attendance.Attendance, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAttendanceRepository) FindByCodeAndPeriodForUpdate(ctx context.Context, code string, month, year int) (*attendance.Attendance, error) {
	return f.findByCodeFn(ctx, code, month, year)
}
func (f *fakeAttendanceRepository) ExistsForPeriod(context.Context, string, int, int) (bool, error) {
	return false, nil
}
func (f *fakeAttendanceRepository) FindAll(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return f.findAllFn(ctx, filter)
}
func (f *fakeAttendanceRepository) Stats(context.Context, int, int) (attendance.StatsSummary, []attendance.StatusCount, error) {
	return attendance.StatsSummary{}, nil, nil
}

type fakeOutboxRepository struct {
	created  []kafka.OutboxEvent
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(*sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, event); err != nil {
			return err
		}
	}
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutboxRepository) ClaimPending(context.Context, int, time.Duration) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(context.Context, string) error           { return nil }
func (f *fakeOutboxRepository) MarkFailed(context.Context, string, string) error { return nil }

// fakePayslipRepository only serves the report query.
type fakePayslipRepository struct {
	payslip.Repository
	findForPeriodFn func(ctx context.Context, year, from, to int) ([]payslip.Payslip, error)
}

func (f *fakePayslipRepository) FindForPeriod(ctx context.Context, year, from, to int) ([]payslip.Payslip, error) {
	return f.findForPeriodFn(ctx, year, from, to)
}

type fakeRenderer struct {
	got document.ReportData
	err error
}

func (f *fakeRenderer) RenderReport(_ context.Context, data document.ReportData) ([]byte, error) {
	f.got = data
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3"), nil
}

type fixture struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	repo     *fakeAttendanceRepository
	outbox   *fakeOutboxRepository
	payslips *fakePayslipRepository
	renderer *fakeRenderer
	service  payroll.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		db:       db,
		sqlMock:  mock,
		repo:     &fakeAttendanceRepository{},
		outbox:   &fakeOutboxRepository{},
		payslips: &fakePayslipRepository{},
		renderer: &fakeRenderer{},
	}
	f.service = payroll.NewService(db, f.repo, f.payslips, f.outbox, f.renderer, time.Second)
	return f
}

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func recordAt(stage attendance.Stage) *attendance.Attendance {
	a := &attendance.Attendance{
		ID:               uuid.New(),
		EmployeeID:       uuid.New(),
		EmployeeCode:     "EMP001",
		EmployeeName:     "Anita Rao",
		Month:            3,
		Year:             2025,
		TotalWorkingDays: 30,
		PresentDays:      28,
		Status:           string(stage),
		Salary:           decimal.NewFromInt(50000),
		DeductPF:         true,
		DeductESIC:       true,
	}
	a.EstimateLeaves(2)
	a.Normalize()
	a.Recompute()
	return a
}

func key() payroll.PeriodKeyRequest {
	return payroll.PeriodKeyRequest{EmployeeCode: "EMP001", Month: 3, Year: 2025}
}

func TestPayrollService_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("draft moves to payroll", func(t *testing.T) {
		f := newFixture(t)
		row := recordAt(attendance.StageDraft)
		f.repo.findByCodeFn = func(_ context.Context, code string, month, year int) (*attendance.Attendance, error) {
			assert.Equal(t, "EMP001", code)
			assert.Equal(t, 3, month)
			assert.Equal(t, 2025, year)
			return row, nil
		}
		expectTx(f.sqlMock, true)

		resp, err := f.service.Move(ctx, "hr-1", key())
		require.NoError(t, err)
		assert.Equal(t, attendance.StageSubmitted, resp.Status)
		require.NotNil(t, row.SubmittedBy)
		assert.Equal(t, "hr-1", *row.SubmittedBy)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("already moved is a state guard", func(t *testing.T) {
		f := newFixture(t)
		f.repo.findByCodeFn = func(context.Context, string, int, int) (*attendance.Attendance, error) {
			return recordAt(attendance.StageSubmitted), nil
		}
		f.repo.updateFn = func(context.Context, *attendance.Attendance) error {
			t.Fatal("must not persist")
			return nil
		}
		expectTx(f.sqlMock, false)

		_, err := f.service.Move(ctx, "hr-1", key())
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyInPayroll)
	})

	t.Run("unknown key", func(t *testing.T) {
		f := newFixture(t)
		f.repo.findByCodeFn = func(context.Context, string, int, int) (*attendance.Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}
		expectTx(f.sqlMock, false)

		_, err := f.service.Move(ctx, "hr-1", key())
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
	})

	t.Run("blank employee code", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Move(ctx, "hr-1", payroll.PeriodKeyRequest{EmployeeCode: "  ", Month: 3, Year: 2025})
		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeCodeRequired)
	})
}

func TestPayrollService_Revert(t *testing.T) {
	ctx := context.Background()

	t.Run("clears submission stamps", func(t *testing.T) {
		f := newFixture(t)
		row := recordAt(attendance.StageDraft)
		require.NoError(t, row.MoveToPayroll("hr-1", time.Now()))
		f.repo.findByCodeFn = func(context.Context, string, int, int) (*attendance.Attendance, error) { return row, nil }
		expectTx(f.sqlMock, true)

		resp, err := f.service.Revert(ctx, "hr-1", key())
		require.NoError(t, err)
		assert.Equal(t, attendance.StageDraft, resp.Status)
		assert.Nil(t, row.SubmittedBy)
		assert.Nil(t, row.SubmittedAt)
	})

	t.Run("missing record reads as not submitted", func(t *testing.T) {
		f := newFixture(t)
		f.repo.findByCodeFn = func(context.Context, string, int, int) (*attendance.Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}
		expectTx(f.sqlMock, false)

		_, err := f.service.Revert(ctx, "hr-1", key())
		assert.ErrorIs(t, err, attendanceerrors.ErrSubmittedAttendanceNotFound)
	})

	t.Run("draft cannot be reverted", func(t *testing.T) {
		f := newFixture(t)
		f.repo.findByCodeFn = func(context.Context, string, int, int) (*attendance.Attendance, error) {
			return recordAt(attendance.StageDraft), nil
		}
		expectTx(f.sqlMock, false)

		_, err := f.service.Revert(ctx, "hr-1", key())
		assert.ErrorIs(t, err, attendanceerrors.ErrNotSubmitted)
	})
}

func TestPayrollService_MarkProcessed(t *testing.T) {
	ctx := context.Background()

	t.Run("queues attendance processed event", func(t *testing.T) {
		f := newFixture(t)
		row := recordAt(attendance.StageSubmitted)
		f.repo.findByCodeFn = func(context.Context, string, int, int) (*attendance.Attendance, error) { return row, nil }
		expectTx(f.sqlMock, true)

		resp, err := f.service.MarkProcessed(ctx, "fin-1", key())
		require.NoError(t, err)
		assert.Equal(t, attendance.StageApproved, resp.Status)

		require.Len(t, f.outbox.created, 1)
		ev := f.outbox.created[0]
		assert.Equal(t, kafka.AggregateAttendance, ev.AggregateType)
		assert.Equal(t, events.AttendanceProcessedTopic, ev.Topic)

		var payload events.AttendanceProcessedEvent
		require.NoError(t, json.Unmarshal(ev.Payload, &payload))
		assert.Equal(t, "EMP001", payload.EmployeeCode)
		assert.Equal(t, "fin-1", payload.ProcessedBy)
		assert.Equal(t, row.NetSalary.StringFixed(2), payload.NetSalary)
	})

	t.Run("outbox failure rolls back", func(t *testing.T) {
		f := newFixture(t)
		f.repo.findByCodeFn = func(context.Context, string, int, int) (*attendance.Attendance, error) {
			return recordAt(attendance.StageSubmitted), nil
		}
		f.repo.updateFn = func(context.Context, *attendance.Attendance) error {
			t.Fatal("must not persist")
			return nil
		}
		f.outbox.createFn = func(context.Context, kafka.OutboxEvent) error { return errors.New("outbox down") }
		expectTx(f.sqlMock, false)

		_, err := f.service.MarkProcessed(ctx, "fin-1", key())
		assert.EqualError(t, err, "outbox down")
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("draft is not processable", func(t *testing.T) {
		f := newFixture(t)
		f.repo.findByCodeFn = func(context.Context, string, int, int) (*attendance.Attendance, error) {
			return recordAt(attendance.StageDraft), nil
		}
		expectTx(f.sqlMock, false)

		_, err := f.service.MarkProcessed(ctx, "fin-1", key())
		assert.ErrorIs(t, err, attendanceerrors.ErrNotSubmitted)
		assert.Empty(t, f.outbox.created)
	})
}

func TestPayrollService_RevertProcessed(t *testing.T) {
	ctx := context.Background()

	t.Run("returns to moved", func(t *testing.T) {
		f := newFixture(t)
		row := recordAt(attendance.StageSubmitted)
		require.NoError(t, row.MarkProcessed("fin-1", time.Now()))
		f.repo.findByCodeFn = func(context.Context, string, int, int) (*attendance.Attendance, error) { return row, nil }
		expectTx(f.sqlMock, true)

		resp, err := f.service.RevertProcessed(ctx, "fin-1", key())
		require.NoError(t, err)
		assert.Equal(t, attendance.StageSubmitted, resp.Status)
		assert.Nil(t, row.ApprovedBy)
		assert.Equal(t, attendance.PayrollMoved, row.PayrollStage())
	})

	t.Run("missing record", func(t *testing.T) {
		f := newFixture(t)
		f.repo.findByCodeFn = func(context.Context, string, int, int) (*attendance.Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}
		expectTx(f.sqlMock, false)

		_, err := f.service.RevertProcessed(ctx, "fin-1", key())
		assert.ErrorIs(t, err, payrollerrors.ErrProcessedAttendanceNotFound)
	})
}

func TestPayrollService_Listings(t *testing.T) {
	f := newFixture(t)
	var seen []attendance.Stage
	f.repo.findAllFn = func(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
		require.Len(t, filter.Statuses, 1)
		seen = append(seen, filter.Statuses[0])
		assert.Equal(t, 3, filter.Month)
		return []attendance.Attendance{*recordAt(filter.Statuses[0])}, 1, nil
	}

	moved, total, err := f.service.ListMoved(context.Background(), payroll.ListFilter{Month: 3, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, attendance.PayrollMoved, moved[0].PayrollStage)

	processed, _, err := f.service.ListProcessed(context.Background(), payroll.ListFilter{Month: 3})
	require.NoError(t, err)
	assert.Equal(t, attendance.PayrollProcessed, processed[0].PayrollStage)

	assert.Equal(t, []attendance.Stage{attendance.StageSubmitted, attendance.StageApproved}, seen)
}

func slip(code string, month int, net int64, paid bool) payslip.Payslip {
	return payslip.Payslip{
		ID:           uuid.New(),
		EmployeeCode: code,
		EmployeeName: "Employee " + code,
		Month:        month,
		Year:         2025,
		NetSalary:    decimal.NewFromInt(net),
		IsPaid:       paid,
	}
}

func TestPayrollService_Report(t *testing.T) {
	ctx := context.Background()

	t.Run("quarterly totals", func(t *testing.T) {
		f := newFixture(t)
		f.payslips.findForPeriodFn = func(_ context.Context, year, from, to int) ([]payslip.Payslip, error) {
			assert.Equal(t, 2025, year)
			assert.Equal(t, 4, from)
			assert.Equal(t, 6, to)
			return []payslip.Payslip{
				slip("EMP001", 4, 48200, true),
				slip("EMP002", 5, 18890, false),
				slip("EMP001", 6, 44867, true),
			}, nil
		}

		file, err := f.service.Report(ctx, payroll.ReportRequest{Type: payroll.ReportQuarterly, Month: 5, Year: 2025, IncludeDetails: true})
		require.NoError(t, err)

		assert.Equal(t, "payroll-report-quarterly-2025-05.pdf", file.Name)
		assert.Equal(t, []byte("%PDF-1.3"), file.Content)
		got := f.renderer.got
		assert.Equal(t, "Quarterly Payroll Report", got.Title)
		assert.Equal(t, "Q2 2025", got.Period)
		assert.Equal(t, 3, got.Count)
		assert.True(t, got.Total.Equal(decimal.NewFromInt(111957)))
		assert.True(t, got.Paid.Equal(decimal.NewFromInt(93067)))
		assert.True(t, got.Pending.Equal(decimal.NewFromInt(18890)))
		assert.Len(t, got.Rows, 3)
	})

	t.Run("summary never lists rows", func(t *testing.T) {
		f := newFixture(t)
		f.payslips.findForPeriodFn = func(_ context.Context, _ int, from, to int) ([]payslip.Payslip, error) {
			assert.Equal(t, 1, from)
			assert.Equal(t, 12, to)
			return []payslip.Payslip{slip("EMP001", 1, 1000, false)}, nil
		}

		_, err := f.service.Report(ctx, payroll.ReportRequest{Type: payroll.ReportSummary, Year: 2025, IncludeDetails: true})
		require.NoError(t, err)
		assert.Equal(t, "Payroll Summary Report", f.renderer.got.Title)
		assert.Equal(t, "2025", f.renderer.got.Period)
		assert.Empty(t, f.renderer.got.Rows)
	})

	t.Run("monthly needs a month", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Report(ctx, payroll.ReportRequest{Year: 2025})
		assert.ErrorIs(t, err, payrollerrors.ErrReportMonthRequired)
	})

	t.Run("unknown type", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Report(ctx, payroll.ReportRequest{Type: "weekly", Month: 1, Year: 2025})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidReportType)
	})

	t.Run("renderer failure", func(t *testing.T) {
		f := newFixture(t)
		f.payslips.findForPeriodFn = func(context.Context, int, int, int) ([]payslip.Payslip, error) { return nil, nil }
		f.renderer.err = document.ErrRenderTimeout

		_, err := f.service.Report(ctx, payroll.ReportRequest{Type: payroll.ReportMonthly, Month: 3, Year: 2025})
		assert.ErrorIs(t, err, payrollerrors.ErrReportRenderFailed)
	})
}

func TestReportWindow(t *testing.T) {
	tests := []struct {
		typ      payroll.ReportType
		month    int
		from, to int
	}{
		{payroll.ReportMonthly, 7, 7, 7},
		{payroll.ReportQuarterly, 1, 1, 3},
		{payroll.ReportQuarterly, 3, 1, 3},
		{payroll.ReportQuarterly, 10, 10, 12},
		{payroll.ReportQuarterly, 12, 10, 12},
		{payroll.ReportYearly, 5, 1, 12},
	}
	for _, tt := range tests {
		from, to := payroll.ReportWindow(tt.typ, tt.month)
		assert.Equal(t, tt.from, from, "%s %d", tt.typ, tt.month)
		assert.Equal(t, tt.to, to, "%s %d", tt.typ, tt.month)
	}
}

func TestBuildReport_MonthlyPeriod(t *testing.T) {
	data := payroll.BuildReport(payroll.ReportRequest{Type: payroll.ReportMonthly, Month: 3, Year: 2025}, nil, time.Now())
	assert.Equal(t, "Monthly Payroll Report", data.Title)
	assert.Equal(t, "March 2025", data.Period)
	assert.True(t, data.Pending.IsZero())
}
