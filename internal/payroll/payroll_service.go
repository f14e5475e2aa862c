package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go-payroll/internal/attendance"
	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/document"
	"go-payroll/internal/events"
	kafka "go-payroll/internal/messaging/kafka"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/payslip"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/database"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Service interface {
	Move(ctx context.Context, actorID string, req PeriodKeyRequest) (attendance.AttendanceResponse, error)
	Revert(ctx context.Context, actorID string, req PeriodKeyRequest) (attendance.AttendanceResponse, error)
	MarkProcessed(ctx context.Context, actorID string, req PeriodKeyRequest) (attendance.AttendanceResponse, error)
	RevertProcessed(ctx context.Context, actorID string, req PeriodKeyRequest) (attendance.AttendanceResponse, error)
	ListMoved(ctx context.Context, filter ListFilter) ([]attendance.AttendanceResponse, int64, error)
	ListProcessed(ctx context.Context, filter ListFilter) ([]attendance.AttendanceResponse, int64, error)
	Report(ctx context.Context, req ReportRequest) (ReportFile, error)
}

type ReportRenderer interface {
	RenderReport(ctx context.Context, data document.ReportData) ([]byte, error)
}

type service struct {
	db            *sql.DB
	attendances   attendance.Repository
	payslips      payslip.Repository
	outbox        kafka.OutboxRepository
	renderer      ReportRenderer
	renderTimeout time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

func NewService(
	db *sql.DB,
	attendances attendance.Repository,
	payslips payslip.Repository,
	outbox kafka.OutboxRepository,
	renderer ReportRenderer,
	renderTimeout time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if renderTimeout <= 0 {
		renderTimeout = 30 * time.Second
	}
	return &service{
		db:            db,
		attendances:   attendances,
		payslips:      payslips,
		outbox:        outbox,
		renderer:      renderer,
		renderTimeout: renderTimeout,
		logger:        l,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Move(ctx context.Context, actorID string, req PeriodKeyRequest) (attendance.AttendanceResponse, error) {
	return s.transition(ctx, "move", req, attendanceerrors.ErrAttendanceNotFound, func(a *attendance.Attendance, _ *sql.Tx) error {
		return a.MoveToPayroll(actorID, s.now())
	})
}

func (s *service) Revert(ctx context.Context, actorID string, req PeriodKeyRequest) (attendance.AttendanceResponse, error) {
	return s.transition(ctx, "revert", req, attendanceerrors.ErrSubmittedAttendanceNotFound, func(a *attendance.Attendance, _ *sql.Tx) error {
		return a.RevertFromPayroll()
	})
}

// MarkProcessed records the salary as processed and queues attendance.processed in the same transaction.
func (s *service) MarkProcessed(ctx context.Context, actorID string, req PeriodKeyRequest) (attendance.AttendanceResponse, error) {
	return s.transition(ctx, "process", req, attendanceerrors.ErrSubmittedAttendanceNotFound, func(a *attendance.Attendance, tx *sql.Tx) error {
		if err := a.MarkProcessed(actorID, s.now()); err != nil {
			return err
		}

		rid := contextutil.GetRequestID(ctx)
		ev, err := kafka.NewEvent(
			rid,
			kafka.AggregateAttendance,
			a.ID.String(),
			"attendance.processed",
			events.AttendanceProcessedTopic,
			events.AttendanceProcessedEvent{
				EventType:    "attendance.processed",
				RequestID:    rid,
				AttendanceID: a.ID.String(),
				EmployeeID:   a.EmployeeID.String(),
				EmployeeCode: a.EmployeeCode,
				Month:        a.Month,
				Year:         a.Year,
				NetSalary:    a.NetSalary.StringFixed(2),
				ProcessedBy:  actorID,
				OccurredAt:   *a.ApprovedAt,
			},
		)
		if err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, ev)
	})
}

func (s *service) RevertProcessed(ctx context.Context, actorID string, req PeriodKeyRequest) (attendance.AttendanceResponse, error) {
	return s.transition(ctx, "revert_processed", req, payrollerrors.ErrProcessedAttendanceNotFound, func(a *attendance.Attendance, _ *sql.Tx) error {
		return a.RevertProcessed()
	})
}

func (s *service) ListMoved(ctx context.Context, filter ListFilter) ([]attendance.AttendanceResponse, int64, error) {
	return s.list(ctx, filter, attendance.StageSubmitted)
}

func (s *service) ListProcessed(ctx context.Context, filter ListFilter) ([]attendance.AttendanceResponse, int64, error) {
	return s.list(ctx, filter, attendance.StageApproved)
}

func (s *service) list(ctx context.Context, filter ListFilter, stage attendance.Stage) ([]attendance.AttendanceResponse, int64, error) {
	rows, total, err := s.attendances.FindAll(ctx, attendance.AttendanceFilter{
		Month:    filter.Month,
		Year:     filter.Year,
		Statuses: []attendance.Stage{stage},
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		s.logger.Error("list payroll records failed", zap.String("stage", string(stage)), zap.Error(err))
		return nil, 0, err
	}
	return attendance.MapToListResponse(rows), total, nil
}

// transition locks the record by natural key and applies fn. missing is returned when the key does not resolve.
func (s *service) transition(
	ctx context.Context,
	op string,
	req PeriodKeyRequest,
	missing error,
	fn func(a *attendance.Attendance, tx *sql.Tx) error,
) (attendance.AttendanceResponse, error) {
	code := strings.TrimSpace(req.EmployeeCode)
	s.logger.Debug("payroll transition requested",
		zap.String("op", op),
		zap.String("employee_code", code),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)
	if code == "" {
		return attendance.AttendanceResponse{}, payrollerrors.ErrEmployeeCodeRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("payroll transition begin tx failed", zap.String("op", op), zap.Error(err))
		return attendance.AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.attendances.WithTx(tx)

	row, err := qtx.FindByCodeAndPeriodForUpdate(ctx, code, req.Month, req.Year)
	if err != nil {
		if database.IsNotFound(err) {
			s.logger.Warn("payroll transition rejected: no record", zap.String("op", op), zap.String("employee_code", code))
			return attendance.AttendanceResponse{}, missing
		}
		s.logger.Error("payroll transition lookup failed", zap.String("op", op), zap.Error(err))
		return attendance.AttendanceResponse{}, err
	}

	from := row.PayrollStage()
	if err := fn(row, tx); err != nil {
		s.logger.Warn("payroll transition rejected",
			zap.String("op", op),
			zap.String("attendance_id", row.ID.String()),
			zap.String("status", row.Status),
			zap.Error(err),
		)
		return attendance.AttendanceResponse{}, err
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("payroll transition persist failed", zap.String("op", op), zap.Error(err))
		return attendance.AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("payroll transition commit failed", zap.String("op", op), zap.Error(err))
		return attendance.AttendanceResponse{}, err
	}

	s.logger.Info("payroll transition success",
		zap.String("op", op),
		zap.String("attendance_id", row.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(row.PayrollStage())),
	)
	return attendance.MapToResponse(*row), nil
}

// Report summarises the payslips of the requested window and renders them to PDF.
func (s *service) Report(ctx context.Context, req ReportRequest) (ReportFile, error) {
	if req.Type == "" {
		req.Type = ReportMonthly
	}
	if !req.Type.Valid() {
		return ReportFile{}, payrollerrors.ErrInvalidReportType
	}
	if (req.Type == ReportMonthly || req.Type == ReportQuarterly) && req.Month == 0 {
		return ReportFile{}, payrollerrors.ErrReportMonthRequired
	}

	from, to := ReportWindow(req.Type, req.Month)
	rows, err := s.payslips.FindForPeriod(ctx, req.Year, from, to)
	if err != nil {
		s.logger.Error("payroll report load payslips failed", zap.Error(err))
		return ReportFile{}, err
	}

	data := BuildReport(req, rows, s.now())

	rctx, cancel := context.WithTimeout(ctx, s.renderTimeout)
	defer cancel()
	content, err := s.renderer.RenderReport(rctx, data)
	if err != nil {
		s.logger.Error("payroll report render failed", zap.String("type", string(req.Type)), zap.Error(err))
		return ReportFile{}, payrollerrors.ErrReportRenderFailed
	}

	s.logger.Info("payroll report rendered",
		zap.String("type", string(req.Type)),
		zap.Int("year", req.Year),
		zap.Int("payslips", data.Count),
	)
	return ReportFile{
		Name:    fmt.Sprintf("payroll-report-%s-%d-%02d.pdf", req.Type, req.Year, req.Month),
		Content: content,
	}, nil
}

// ReportWindow returns the inclusive month range a report covers.
func ReportWindow(t ReportType, month int) (int, int) {
	switch t {
	case ReportMonthly:
		return month, month
	case ReportQuarterly:
		start := (month-1)/3*3 + 1
		return start, start + 2
	default:
		return 1, 12
	}
}

func BuildReport(req ReportRequest, rows []payslip.Payslip, at time.Time) document.ReportData {
	data := document.ReportData{
		Title:          cases.Title(language.English).String(string(req.Type)) + " Payroll Report",
		Count:          len(rows),
		Total:          decimal.Zero,
		Paid:           decimal.Zero,
		IncludeDetails: req.IncludeDetails && req.Type != ReportSummary,
		GeneratedAt:    at,
	}

	switch req.Type {
	case ReportMonthly:
		data.Period = fmt.Sprintf("%s %d", document.MonthName(req.Month), req.Year)
	case ReportQuarterly:
		data.Period = fmt.Sprintf("Q%d %d", (req.Month-1)/3+1, req.Year)
	case ReportSummary:
		data.Title = "Payroll Summary Report"
		data.Period = fmt.Sprintf("%d", req.Year)
	default:
		data.Period = fmt.Sprintf("%d", req.Year)
	}

	for _, p := range rows {
		data.Total = data.Total.Add(p.NetSalary)
		if p.IsPaid {
			data.Paid = data.Paid.Add(p.NetSalary)
		}
		if data.IncludeDetails {
			data.Rows = append(data.Rows, document.ReportRow{
				EmployeeCode: p.EmployeeCode,
				EmployeeName: p.EmployeeName,
				Department:   p.Department,
				Month:        p.Month,
				Year:         p.Year,
				NetSalary:    p.NetSalary,
				IsPaid:       p.IsPaid,
				PaidDays:     p.PaidDays,
				Leaves:       p.Leaves,
			})
		}
	}
	data.Pending = data.Total.Sub(data.Paid)
	return data
}
