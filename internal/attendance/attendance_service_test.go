package attendance_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-payroll/internal/attendance"
	attendanceerrors "go-payroll/internal/attendance/errors"
	attendanceMock "go-payroll/internal/attendance/mock"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	employeeMock "go-payroll/internal/employee/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   attendance.Service
	repo      *attendanceMock.MockRepository
	employees *employeeMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	repo := attendanceMock.NewMockRepository(ctrl)
	employees := employeeMock.NewMockRepository(ctrl)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   attendance.NewService(db, repo, employees),
		repo:      repo,
		employees: employees,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func (d *serviceDeps) expectWithTx() {
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.employees.EXPECT().WithTx(gomock.Any()).Return(d.employees)
}

func activeEmployee(code string, gross int64) *employee.Employee {
	e := &employee.Employee{
		ID:           uuid.New(),
		EmployeeCode: code,
		Name:         "Ravi Kumar",
		IsActive:     true,
		Salary:       decimal.NewFromInt(gross),
		PaidDays:     30,
		DeductPF:     true,
		DeductESIC:   true,
	}
	e.Recompute()
	return e
}

func recordFor(e *employee.Employee, stage attendance.Stage) *attendance.Attendance {
	a := &attendance.Attendance{
		ID:               uuid.New(),
		EmployeeID:       e.ID,
		EmployeeCode:     e.EmployeeCode,
		EmployeeName:     e.Name,
		Month:            3,
		Year:             2025,
		TotalWorkingDays: 30,
		PresentDays:      28,
		Status:           string(stage),
		Salary:           e.Salary,
		DeductPF:         true,
		DeductESIC:       true,
	}
	a.EstimateLeaves(2)
	a.Normalize()
	a.Recompute()
	return a
}

func intPtr(v int) *int { return &v }

func TestAttendanceService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("creates record and updates employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := activeEmployee("EMP001", 50000)

		expectTx(t, deps.sqlMock, true)
		deps.expectWithTx()
		deps.employees.EXPECT().FindByIDForUpdate(ctx, empl.ID.String()).Return(empl, nil)
		deps.repo.EXPECT().FindByPeriodForUpdate(ctx, empl.ID.String(), 3, 2025).Return(nil, gorm.ErrRecordNotFound)
		deps.employees.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			assert.Equal(t, 25, e.PaidDays)
			assert.Equal(t, 5, e.Leaves)
			assert.True(t, decimal.NewFromInt(39867).Equal(e.NetSalary))
			return nil
		})
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *attendance.Attendance) error {
			assert.Equal(t, empl.ID, a.EmployeeID)
			assert.Equal(t, "EMP001", a.EmployeeCode)
			assert.Equal(t, 30, a.TotalWorkingDays)
			assert.Equal(t, 4, a.TotalLeaves)
			assert.Equal(t, 5, a.AbsentDays)
			assert.Equal(t, attendance.StageDraft, a.Stage())
			return nil
		})

		res, err := deps.service.Upsert(ctx, "hr-1", attendance.UpsertAttendanceRequest{
			EmployeeID: empl.ID.String(),
			Month:      3,
			Year:       2025,
			PaidDays:   25,
		})

		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, float64(39867), res.Attendance.NetSalary)
		assert.Equal(t, float64(8333), res.Attendance.DayWiseDeduction)
		assert.Equal(t, float64(39867), res.EmployeeSalary.NetSalary)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("overwrites rejected record with explicit leaves", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := activeEmployee("EMP002", 20000)
		existing := recordFor(empl, attendance.StageRejected)
		reviewer := "md-1"
		existing.ApprovedBy = &reviewer

		expectTx(t, deps.sqlMock, true)
		deps.expectWithTx()
		deps.employees.EXPECT().FindByIDForUpdate(ctx, empl.ID.String()).Return(empl, nil)
		deps.repo.EXPECT().FindByPeriodForUpdate(ctx, empl.ID.String(), 3, 2025).Return(existing, nil)
		deps.employees.EXPECT().Update(ctx, empl).Return(nil)
		deps.repo.EXPECT().Update(ctx, existing).Return(nil)

		salary := 20000.0
		res, err := deps.service.Upsert(ctx, "hr-1", attendance.UpsertAttendanceRequest{
			EmployeeID:   empl.ID.String(),
			Month:        3,
			Year:         2025,
			Salary:       &salary,
			PaidDays:     25,
			CasualLeaves: intPtr(3),
			SickLeaves:   intPtr(1),
		})

		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, attendance.StageDraft, res.Attendance.Status)
		assert.Nil(t, res.Attendance.ApprovedBy)
		assert.Equal(t, 3, res.Attendance.CasualLeaves)
		assert.Equal(t, 0, res.Attendance.EarnedLeaves)
		assert.Equal(t, 4, res.Attendance.TotalLeaves)
		assert.Equal(t, float64(15557), res.Attendance.NetSalary)
	})

	t.Run("record in payroll is not editable", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := activeEmployee("EMP003", 50000)

		expectTx(t, deps.sqlMock, false)
		deps.expectWithTx()
		deps.employees.EXPECT().FindByIDForUpdate(ctx, empl.ID.String()).Return(empl, nil)
		deps.repo.EXPECT().FindByPeriodForUpdate(ctx, empl.ID.String(), 3, 2025).
			Return(recordFor(empl, attendance.StageApproved), nil)

		_, err := deps.service.Upsert(ctx, "hr-1", attendance.UpsertAttendanceRequest{
			EmployeeID: empl.ID.String(),
			Month:      3,
			Year:       2025,
			PaidDays:   30,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotEditable)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("employee not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()

		expectTx(t, deps.sqlMock, false)
		deps.expectWithTx()
		deps.employees.EXPECT().FindByIDForUpdate(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Upsert(ctx, "hr-1", attendance.UpsertAttendanceRequest{
			EmployeeID: id,
			Month:      3,
			Year:       2025,
			PaidDays:   30,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("guards run before the transaction", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Upsert(ctx, "hr-1", attendance.UpsertAttendanceRequest{
			EmployeeID: uuid.NewString(), Month: 3, Year: 2025, PaidDays: 0,
		})
		assert.ErrorIs(t, err, attendanceerrors.ErrPaidDaysRequired)

		_, err = deps.service.Upsert(ctx, "hr-1", attendance.UpsertAttendanceRequest{
			EmployeeID: "nope", Month: 3, Year: 2025, PaidDays: 10,
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)

		_, err = deps.service.Upsert(ctx, "hr-1", attendance.UpsertAttendanceRequest{
			EmployeeID:   uuid.NewString(),
			Month:        3,
			Year:         2025,
			PaidDays:     28,
			CasualLeaves: intPtr(3),
		})
		assert.ErrorIs(t, err, attendanceerrors.ErrLeavesExceedAbsentDays)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAttendanceService_BulkCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing records and reports existing ones", func(t *testing.T) {
		deps := setupServiceTest(t)
		first := activeEmployee("EMP001", 50000)
		second := activeEmployee("EMP002", 20000)
		second.Name = "Meera Iyer"

		deps.employees.EXPECT().FindActive(ctx).Return([]employee.Employee{*first, *second}, nil)
		deps.repo.EXPECT().ExistsForPeriod(ctx, first.ID.String(), 4, 2025).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *attendance.Attendance) error {
			assert.Equal(t, 22, a.PresentDays)
			assert.Equal(t, 22, a.TotalWorkingDays)
			assert.Equal(t, 0, a.AbsentDays)
			assert.Equal(t, attendance.StageDraft, a.Stage())
			return nil
		})
		deps.repo.EXPECT().ExistsForPeriod(ctx, second.ID.String(), 4, 2025).Return(true, nil)

		res, err := deps.service.BulkCreate(ctx, "hr-1", attendance.BulkCreateRequest{
			Month: 4, Year: 2025, TotalWorkingDays: 22,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		assert.Equal(t, 1, res.Skipped)
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, []string{"Attendance record already exists for EMP002 - Meera Iyer"}, res.Errors)
	})

	t.Run("item failure is collected", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := activeEmployee("EMP009", 30000)

		deps.employees.EXPECT().FindActive(ctx).Return([]employee.Employee{*empl}, nil)
		deps.repo.EXPECT().ExistsForPeriod(ctx, empl.ID.String(), 4, 2025).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("disk full"))

		res, err := deps.service.BulkCreate(ctx, "hr-1", attendance.BulkCreateRequest{
			Month: 4, Year: 2025, TotalWorkingDays: 22, DefaultPresentDays: intPtr(20),
		})

		require.NoError(t, err)
		assert.Equal(t, 0, res.Created)
		assert.Equal(t, []string{"Failed to create attendance for EMP009: disk full"}, res.Errors)
	})

	t.Run("no active employees", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.employees.EXPECT().FindActive(ctx).Return(nil, nil)

		_, err := deps.service.BulkCreate(ctx, "hr-1", attendance.BulkCreateRequest{
			Month: 4, Year: 2025, TotalWorkingDays: 22,
		})
		assert.ErrorIs(t, err, attendanceerrors.ErrNoActiveEmployees)
	})

	t.Run("present above working days", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.BulkCreate(ctx, "hr-1", attendance.BulkCreateRequest{
			Month: 4, Year: 2025, TotalWorkingDays: 20, DefaultPresentDays: intPtr(21),
		})
		assert.ErrorIs(t, err, attendanceerrors.ErrPresentExceedsWorkingDays)
	})
}

func TestAttendanceService_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("submit draft", func(t *testing.T) {
		deps := setupServiceTest(t)
		row := recordFor(activeEmployee("EMP001", 50000), attendance.StageDraft)

		expectTx(t, deps.sqlMock, true)
		deps.expectWithTx()
		deps.repo.EXPECT().FindByIDForUpdate(ctx, row.ID.String()).Return(row, nil)
		deps.repo.EXPECT().Update(ctx, row).Return(nil)

		res, err := deps.service.Submit(ctx, "hr-1", row.ID.String())

		require.NoError(t, err)
		assert.Equal(t, attendance.StageSubmitted, res.Status)
		assert.Equal(t, attendance.PayrollMoved, res.PayrollStage)
		require.NotNil(t, res.SubmittedBy)
		assert.Equal(t, "hr-1", *res.SubmittedBy)
	})

	t.Run("submit twice rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		row := recordFor(activeEmployee("EMP001", 50000), attendance.StageSubmitted)

		expectTx(t, deps.sqlMock, false)
		deps.expectWithTx()
		deps.repo.EXPECT().FindByIDForUpdate(ctx, row.ID.String()).Return(row, nil)

		_, err := deps.service.Submit(ctx, "hr-1", row.ID.String())

		assert.ErrorIs(t, err, attendanceerrors.ErrNotDraft)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("approve copies days onto employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		empl := activeEmployee("EMP001", 50000)
		row := recordFor(empl, attendance.StageSubmitted)

		expectTx(t, deps.sqlMock, true)
		deps.expectWithTx()
		deps.repo.EXPECT().FindByIDForUpdate(ctx, row.ID.String()).Return(row, nil)
		deps.employees.EXPECT().FindByIDForUpdate(ctx, empl.ID.String()).Return(empl, nil)
		deps.employees.EXPECT().Update(ctx, empl).DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			assert.Equal(t, 28, e.PaidDays)
			assert.Equal(t, row.TotalLeaves, e.Leaves)
			assert.True(t, decimal.NewFromInt(44867).Equal(e.NetSalary))
			return nil
		})
		deps.repo.EXPECT().Update(ctx, row).Return(nil)

		res, err := deps.service.Approve(ctx, "md-1", row.ID.String(), "looks right")

		require.NoError(t, err)
		assert.Equal(t, attendance.StageApproved, res.Status)
		assert.Equal(t, "looks right", res.Comments)
	})

	t.Run("approve with missing employee still approves", func(t *testing.T) {
		deps := setupServiceTest(t)
		row := recordFor(activeEmployee("EMP001", 50000), attendance.StageSubmitted)

		expectTx(t, deps.sqlMock, true)
		deps.expectWithTx()
		deps.repo.EXPECT().FindByIDForUpdate(ctx, row.ID.String()).Return(row, nil)
		deps.employees.EXPECT().FindByIDForUpdate(ctx, row.EmployeeID.String()).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Update(ctx, row).Return(nil)

		res, err := deps.service.Approve(ctx, "md-1", row.ID.String(), "")

		require.NoError(t, err)
		assert.Equal(t, attendance.StageApproved, res.Status)
	})

	t.Run("reject without reason", func(t *testing.T) {
		deps := setupServiceTest(t)
		row := recordFor(activeEmployee("EMP001", 50000), attendance.StageSubmitted)

		expectTx(t, deps.sqlMock, false)
		deps.expectWithTx()
		deps.repo.EXPECT().FindByIDForUpdate(ctx, row.ID.String()).Return(row, nil)

		_, err := deps.service.Reject(ctx, "md-1", row.ID.String(), "")

		assert.ErrorIs(t, err, attendanceerrors.ErrRejectReasonRequired)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Reject(ctx, "md-1", id, "bad data")

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Submit(ctx, "hr-1", "abc")

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidAttendanceID)
	})
}

func TestAttendanceService_Stats(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	deps.repo.EXPECT().Stats(ctx, 3, 2025).Return(attendance.StatsSummary{TotalEmployees: 4, TotalPresentDays: 100}, nil, nil)

	res, err := deps.service.Stats(ctx, 3, 2025)

	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Summary.TotalEmployees)
	assert.NotNil(t, res.StatusBreakdown)
	assert.Empty(t, res.StatusBreakdown)
}
