package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	importererrors "go-payroll/internal/importer/errors"
	"go-payroll/internal/salary"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/database"

	"go.uber.org/zap"
)

const defaultPaidDays = salary.StandardMonthDays

//go:generate mockgen -source=importer_service.go -destination=mock/importer_service_mock.go -package=mock
type Service interface {
	ImportAttendance(ctx context.Context, actorID string, month, year int, src RowSource) (Result, error)
}

type service struct {
	employees  employee.Repository
	attendance attendance.Service
	logger     *zap.Logger
}

func NewService(employees employee.Repository, attendanceService attendance.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("importer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("importer.service")
	}
	return &service{
		employees:  employees,
		attendance: attendanceService,
		logger:     l,
	}
}

// ImportAttendance upserts one attendance record per data row. A bad row is
// recorded in Result.Errors and never stops the rest of the file.
func (s *service) ImportAttendance(ctx context.Context, actorID string, month, year int, src RowSource) (Result, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("attendance import requested",
		zap.String("request_id", rid),
		zap.Int("month", month),
		zap.Int("year", year),
	)

	if month == 0 || year == 0 {
		return Result{}, importererrors.ErrPeriodRequired
	}
	if month < 1 || month > 12 || year < 2020 || year > 2030 {
		return Result{}, importererrors.ErrInvalidPeriod
	}

	header, err := src.Header()
	if err != nil {
		s.logger.Warn("attendance import rejected: header", zap.Error(err))
		return Result{}, importererrors.ErrUnreadableFile
	}
	cols := resolveColumns(header)
	if _, ok := cols[fieldCode]; !ok {
		s.logger.Warn("attendance import rejected: no code column", zap.Strings("header", header))
		return Result{}, importererrors.ErrCodeColumnMissing
	}

	res := Result{Results: []RowResult{}}
	for row := 1; ; row++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		res.Total++

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				res.Errors = append(res.Errors, RowError{Row: row, Message: "Malformed row: " + parseErr.Err.Error()})
				continue
			}
			s.logger.Error("attendance import read failed", zap.Int("row", row), zap.Error(err))
			return res, importererrors.ErrUnreadableFile
		}

		rr, rowErr := s.importRow(ctx, actorID, month, year, row, cols, rec)
		if rowErr != nil {
			s.logger.Warn("attendance import row failed",
				zap.Int("row", row),
				zap.String("employee_code", rowErr.EmployeeCode),
				zap.String("reason", rowErr.Message),
			)
			res.Errors = append(res.Errors, *rowErr)
			continue
		}
		res.Results = append(res.Results, rr)
		res.Processed++
	}

	s.logger.Info("attendance import finished",
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("processed", res.Processed),
		zap.Int("total", res.Total),
		zap.Int("errors", len(res.Errors)),
	)
	return res, nil
}

func (s *service) importRow(
	ctx context.Context,
	actorID string,
	month, year, row int,
	cols columns,
	rec []string,
) (RowResult, *RowError) {
	code, ok := cols.value(rec, fieldCode)
	if !ok {
		return RowResult{}, &RowError{Row: row, Message: "Missing employee code"}
	}
	fail := func(msg string) (RowResult, *RowError) {
		return RowResult{}, &RowError{Row: row, EmployeeCode: code, Message: msg}
	}

	req := attendance.UpsertAttendanceRequest{
		Month:    month,
		Year:     year,
		PaidDays: defaultPaidDays,
		Comments: "Imported from CSV",
	}

	if v, ok := cols.value(rec, fieldSalary); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return fail(fmt.Sprintf("Invalid salary %q", v))
		}
		req.Salary = &f
	}
	if v, ok := cols.value(rec, fieldPaidDays); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > salary.MaxPaidDays {
			return fail(fmt.Sprintf("Invalid paid days %q", v))
		}
		req.PaidDays = n
	}
	if v, ok := cols.value(rec, fieldWorkingDays); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > salary.MaxPaidDays {
			return fail(fmt.Sprintf("Invalid working days %q", v))
		}
		req.TotalWorkingDays = &n
	}
	if v, ok := cols.value(rec, fieldReimbursement); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return fail(fmt.Sprintf("Invalid reimbursement %q", v))
		}
		req.Reimbursement = f
	}
	if v, ok := cols.value(rec, fieldNote); ok {
		req.Note = v
	}

	emp, err := s.employees.FindByCode(ctx, code)
	if err != nil {
		if database.IsNotFound(err) {
			return fail("Employee not found with code: " + code)
		}
		s.logger.Error("attendance import employee lookup failed", zap.String("employee_code", code), zap.Error(err))
		return fail(apperror.ToHTTP(err).Message)
	}

	req.EmployeeID = emp.ID.String()
	req.DeductPF = &emp.DeductPF
	req.DeductESIC = &emp.DeductESIC
	if _, present := cols[fieldReimbursement]; !present {
		req.Reimbursement = emp.Reimbursement.InexactFloat64()
	}

	out, err := s.attendance.Upsert(ctx, actorID, req)
	if err != nil {
		return fail(apperror.ToHTTP(err).Message)
	}

	action := ActionUpdated
	if out.Created {
		action = ActionCreated
	}
	return RowResult{
		Row:          row,
		EmployeeCode: emp.EmployeeCode,
		Action:       action,
		AttendanceID: out.Attendance.ID,
	}, nil
}
