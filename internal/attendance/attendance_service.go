package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/salary"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, actorID string, req UpsertAttendanceRequest) (UpsertResponse, error)
	BulkCreate(ctx context.Context, actorID string, req BulkCreateRequest) (BulkCreateResult, error)
	GetAll(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, int64, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	Submit(ctx context.Context, actorID, id string) (AttendanceResponse, error)
	Approve(ctx context.Context, actorID, id, comments string) (AttendanceResponse, error)
	Reject(ctx context.Context, actorID, id, reason string) (AttendanceResponse, error)
	Stats(ctx context.Context, month, year int) (StatsResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		logger:    l,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Upsert writes the period record and the employee's salary inputs in one transaction.
// An existing record for the period is overwritten only while it is draft or rejected.
func (s *service) Upsert(ctx context.Context, actorID string, req UpsertAttendanceRequest) (UpsertResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("upsert attendance requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	if req.PaidDays <= 0 {
		s.logger.Warn("upsert attendance rejected: paid days", zap.Int("paid_days", req.PaidDays))
		return UpsertResponse{}, attendanceerrors.ErrPaidDaysRequired
	}
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return UpsertResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	paidDays := salary.ClampPaidDays(req.PaidDays)
	workingDays := salary.StandardMonthDays
	if req.TotalWorkingDays != nil {
		workingDays = *req.TotalWorkingDays
	}
	if paidDays > workingDays {
		workingDays = paidDays
	}
	absent := workingDays - paidDays
	if req.hasLeaveSplit() {
		split := intOrZero(req.CasualLeaves) + intOrZero(req.SickLeaves) + intOrZero(req.EarnedLeaves) + intOrZero(req.OtherLeaves)
		if split > absent {
			return UpsertResponse{}, attendanceerrors.ErrLeavesExceedAbsentDays
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("upsert attendance begin tx failed", zap.Error(err))
		return UpsertResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	etx := s.employees.WithTx(tx)

	empl, err := etx.FindByIDForUpdate(ctx, req.EmployeeID)
	if err != nil {
		if database.IsNotFound(err) {
			return UpsertResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("upsert attendance load employee failed", zap.Error(err))
		return UpsertResponse{}, err
	}

	existing, err := qtx.FindByPeriodForUpdate(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil && !database.IsNotFound(err) {
		s.logger.Error("upsert attendance lookup failed", zap.Error(err))
		return UpsertResponse{}, err
	}
	if existing != nil && !existing.Editable() {
		s.logger.Warn("upsert attendance rejected: record in payroll",
			zap.String("attendance_id", existing.ID.String()),
			zap.String("status", existing.Status),
		)
		return UpsertResponse{}, attendanceerrors.ErrNotEditable
	}

	gross := empl.Salary
	if req.Salary != nil {
		gross = salary.Amount(*req.Salary)
	}
	deductPF := boolOrDefault(req.DeductPF, true)
	deductESIC := boolOrDefault(req.DeductESIC, true)
	reimbursement := salary.Amount(req.Reimbursement)

	empl.Salary = gross
	empl.PaidDays = paidDays
	empl.Leaves = absent
	empl.DeductPF = deductPF
	empl.DeductESIC = deductESIC
	empl.Reimbursement = reimbursement
	empl.Note = req.Note
	breakdown := empl.Recompute()

	if err := etx.Update(ctx, empl); err != nil {
		s.logger.Error("upsert attendance update employee failed", zap.Error(err))
		return UpsertResponse{}, err
	}

	created := existing == nil
	row := existing
	if created {
		row = &Attendance{
			ID:         uuid.New(),
			EmployeeID: empl.ID,
			Month:      req.Month,
			Year:       req.Year,
		}
	}
	row.EmployeeCode = empl.EmployeeCode
	row.EmployeeName = empl.Name
	row.TotalWorkingDays = workingDays
	row.PresentDays = paidDays
	if req.hasLeaveSplit() {
		row.CasualLeaves = intOrZero(req.CasualLeaves)
		row.SickLeaves = intOrZero(req.SickLeaves)
		row.EarnedLeaves = intOrZero(req.EarnedLeaves)
		row.OtherLeaves = intOrZero(req.OtherLeaves)
	} else {
		row.EstimateLeaves(absent)
	}
	row.Salary = gross
	row.DeductPF = deductPF
	row.DeductESIC = deductESIC
	row.Reimbursement = reimbursement
	row.Note = req.Note
	row.Comments = req.Comments
	row.resetToDraft()
	row.Normalize()
	row.Recompute()

	if created {
		err = qtx.Create(ctx, row)
	} else {
		err = qtx.Update(ctx, row)
	}
	if err != nil {
		s.logger.Error("upsert attendance persist failed", zap.Bool("created", created), zap.Error(err))
		return UpsertResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("upsert attendance commit failed", zap.Error(err))
		return UpsertResponse{}, err
	}

	s.logger.Info("upsert attendance success",
		zap.String("request_id", rid),
		zap.String("attendance_id", row.ID.String()),
		zap.String("employee_code", row.EmployeeCode),
		zap.Bool("created", created),
		zap.String("actor_id", actorID),
	)

	return UpsertResponse{
		Attendance:     MapToResponse(*row),
		Created:        created,
		EmployeeSalary: salary.NewBreakdownResponse(breakdown),
	}, nil
}

// BulkCreate opens a draft record for every active employee lacking one for the period.
// Existing records and per-employee failures are reported, never fatal.
func (s *service) BulkCreate(ctx context.Context, actorID string, req BulkCreateRequest) (BulkCreateResult, error) {
	s.logger.Debug("bulk create attendance requested",
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.String("actor_id", actorID),
	)

	present := req.TotalWorkingDays
	if req.DefaultPresentDays != nil {
		present = *req.DefaultPresentDays
	}
	if present > req.TotalWorkingDays {
		return BulkCreateResult{}, attendanceerrors.ErrPresentExceedsWorkingDays
	}

	employees, err := s.employees.FindActive(ctx)
	if err != nil {
		s.logger.Error("bulk create attendance load employees failed", zap.Error(err))
		return BulkCreateResult{}, err
	}
	if len(employees) == 0 {
		return BulkCreateResult{}, attendanceerrors.ErrNoActiveEmployees
	}

	result := BulkCreateResult{Total: len(employees)}
	for _, e := range employees {
		exists, err := s.repo.ExistsForPeriod(ctx, e.ID.String(), req.Month, req.Year)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to create attendance for %s: %v", e.EmployeeCode, err))
			continue
		}
		if exists {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Attendance record already exists for %s - %s", e.EmployeeCode, e.Name))
			continue
		}

		row := &Attendance{
			ID:               uuid.New(),
			EmployeeID:       e.ID,
			EmployeeCode:     e.EmployeeCode,
			EmployeeName:     e.Name,
			Month:            req.Month,
			Year:             req.Year,
			TotalWorkingDays: req.TotalWorkingDays,
			PresentDays:      present,
			Status:           string(StageDraft),
			Salary:           e.Salary,
			DeductPF:         e.DeductPF,
			DeductESIC:       e.DeductESIC,
			Reimbursement:    e.Reimbursement,
			OvertimeHours:    decimal.Zero,
		}
		row.Normalize()
		row.Recompute()

		if err := s.repo.Create(ctx, row); err != nil {
			if errors.Is(mapRepositoryError(err), attendanceerrors.ErrAttendanceExists) {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Attendance record already exists for %s - %s", e.EmployeeCode, e.Name))
				continue
			}
			s.logger.Warn("bulk create attendance item failed", zap.String("employee_code", e.EmployeeCode), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to create attendance for %s: %v", e.EmployeeCode, err))
			continue
		}
		result.Created++
	}

	s.logger.Info("bulk create attendance finished",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("total", result.Total),
	)
	return result, nil
}

func (s *service) GetAll(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, int64, error) {
	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, 0, err
	}
	return MapToListResponse(rows), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttendanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidAttendanceID
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	return MapToResponse(*row), nil
}

func (s *service) Submit(ctx context.Context, actorID, id string) (AttendanceResponse, error) {
	return s.transition(ctx, "submit", id, func(a *Attendance, _ employee.Repository) error {
		return a.Submit(actorID, s.now())
	})
}

// Approve also copies the approved present days and leaves onto the employee record.
func (s *service) Approve(ctx context.Context, actorID, id, comments string) (AttendanceResponse, error) {
	return s.transition(ctx, "approve", id, func(a *Attendance, etx employee.Repository) error {
		if err := a.Approve(actorID, comments, s.now()); err != nil {
			return err
		}

		empl, err := etx.FindByIDForUpdate(ctx, a.EmployeeID.String())
		if err != nil {
			if database.IsNotFound(err) {
				return nil
			}
			return err
		}
		empl.PaidDays = a.PresentDays
		empl.Leaves = a.TotalLeaves
		empl.Recompute()
		return etx.Update(ctx, empl)
	})
}

func (s *service) Reject(ctx context.Context, actorID, id, reason string) (AttendanceResponse, error) {
	return s.transition(ctx, "reject", id, func(a *Attendance, _ employee.Repository) error {
		return a.Reject(actorID, reason, s.now())
	})
}

func (s *service) Stats(ctx context.Context, month, year int) (StatsResponse, error) {
	summary, breakdown, err := s.repo.Stats(ctx, month, year)
	if err != nil {
		s.logger.Error("attendance stats failed", zap.Error(err))
		return StatsResponse{}, err
	}
	if breakdown == nil {
		breakdown = []StatusCount{}
	}
	return StatsResponse{Summary: summary, StatusBreakdown: breakdown}, nil
}

// transition locks the record, applies fn and persists it atomically.
func (s *service) transition(
	ctx context.Context,
	op, id string,
	fn func(a *Attendance, etx employee.Repository) error,
) (AttendanceResponse, error) {
	s.logger.Debug("attendance transition requested", zap.String("op", op), zap.String("attendance_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidAttendanceID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("attendance transition begin tx failed", zap.String("op", op), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	from := row.Status
	if err := fn(row, s.employees.WithTx(tx)); err != nil {
		s.logger.Warn("attendance transition rejected",
			zap.String("op", op),
			zap.String("attendance_id", id),
			zap.String("status", from),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("attendance transition persist failed", zap.String("op", op), zap.Error(err))
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("attendance transition commit failed", zap.String("op", op), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance transition success",
		zap.String("op", op),
		zap.String("attendance_id", id),
		zap.String("from", from),
		zap.String("to", row.Status),
	)
	return MapToResponse(*row), nil
}

func MapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:               a.ID.String(),
		EmployeeID:       a.EmployeeID.String(),
		EmployeeCode:     a.EmployeeCode,
		EmployeeName:     a.EmployeeName,
		Month:            a.Month,
		Year:             a.Year,
		TotalWorkingDays: a.TotalWorkingDays,
		PresentDays:      a.PresentDays,
		AbsentDays:       a.AbsentDays,
		CasualLeaves:     a.CasualLeaves,
		SickLeaves:       a.SickLeaves,
		EarnedLeaves:     a.EarnedLeaves,
		OtherLeaves:      a.OtherLeaves,
		TotalLeaves:      a.TotalLeaves,
		HalfDays:         a.HalfDays,
		OvertimeHours:    a.OvertimeHours.InexactFloat64(),
		Status:           a.Stage(),
		PayrollStage:     a.PayrollStage(),
		SubmittedBy:      a.SubmittedBy,
		SubmittedAt:      formatTime(a.SubmittedAt),
		ApprovedBy:       a.ApprovedBy,
		ApprovedAt:       formatTime(a.ApprovedAt),
		Comments:         a.Comments,
		Salary:           a.Salary.InexactFloat64(),
		DeductPF:         a.DeductPF,
		DeductESIC:       a.DeductESIC,
		Reimbursement:    a.Reimbursement.InexactFloat64(),
		Note:             a.Note,
		DayWiseDeduction: a.DayWiseDeduction.InexactFloat64(),
		NetSalary:        a.NetSalary.InexactFloat64(),
		UpdatedAt:        a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func MapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = MapToResponse(r)
	}
	return res
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
