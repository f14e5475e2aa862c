package salaryrevision

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/events"
	kafka "go-payroll/internal/messaging/kafka"
	salaryrevisionerrors "go-payroll/internal/salaryrevision/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const eventImplemented = "salary_revision.implemented"

//go:generate mockgen -source=salary_revision_service.go -destination=mock/salary_revision_service_mock.go -package=mock
type Service interface {
	Request(ctx context.Context, actorID string, req CreateRevisionRequest) (RevisionResponse, error)
	GetAll(ctx context.Context, filter RevisionFilter) ([]RevisionResponse, int64, error)
	GetByID(ctx context.Context, id string) (RevisionResponse, error)
	HRApprove(ctx context.Context, actorID, id, comments string) (RevisionResponse, error)
	FinanceApprove(ctx context.Context, actorID, id, comments string) (RevisionResponse, error)
	MDApprove(ctx context.Context, actorID, id, comments string) (RevisionResponse, error)
	Reject(ctx context.Context, actorID, id, reason string) (RevisionResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary_revision.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary_revision.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outbox,
		logger:    l,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Request snapshots the employee's current salary next to the proposed one.
func (s *service) Request(ctx context.Context, actorID string, req CreateRevisionRequest) (RevisionResponse, error) {
	s.logger.Debug("salary revision requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", req.EmployeeID),
		zap.String("reason", req.Reason),
	)

	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return RevisionResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	effective, err := time.Parse(time.DateOnly, req.EffectiveDate)
	if err != nil {
		return RevisionResponse{}, salaryrevisionerrors.ErrInvalidEffectiveDate
	}
	newSalary := decimal.NewFromFloat(req.NewSalary).Round(2)
	if !newSalary.IsPositive() {
		return RevisionResponse{}, salaryrevisionerrors.ErrInvalidNewSalary
	}

	emp, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if database.IsNotFound(err) {
			s.logger.Warn("salary revision rejected: employee not found", zap.String("employee_id", req.EmployeeID))
			return RevisionResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("salary revision load employee failed", zap.Error(err))
		return RevisionResponse{}, err
	}

	rev := &SalaryRevision{
		ID:            uuid.New(),
		EmployeeID:    emp.ID,
		EmployeeCode:  emp.EmployeeCode,
		EmployeeName:  emp.Name,
		CurrentSalary: emp.Salary,
		NewSalary:     newSalary,
		EffectiveDate: effective,
		Reason:        req.Reason,
		Description:   strings.TrimSpace(req.Description),
		Status:        string(StatusPending),
		RequestedBy:   actorID,
		RequestedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, rev); err != nil {
		s.logger.Error("salary revision persist failed", zap.Error(err))
		return RevisionResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("salary revision created",
		zap.String("revision_id", rev.ID.String()),
		zap.String("employee_code", rev.EmployeeCode),
		zap.String("current_salary", rev.CurrentSalary.StringFixed(2)),
		zap.String("new_salary", rev.NewSalary.StringFixed(2)),
	)
	return MapToResponse(*rev), nil
}

func (s *service) GetAll(ctx context.Context, filter RevisionFilter) ([]RevisionResponse, int64, error) {
	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list salary revisions failed", zap.Error(err))
		return nil, 0, err
	}
	return MapToListResponse(rows), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (RevisionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RevisionResponse{}, salaryrevisionerrors.ErrInvalidRevisionID
	}
	rev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RevisionResponse{}, mapRepositoryError(err)
	}
	return MapToResponse(*rev), nil
}

func (s *service) HRApprove(ctx context.Context, actorID, id, comments string) (RevisionResponse, error) {
	return s.transition(ctx, "hr_approve", id, func(r *SalaryRevision, _ *sql.Tx) error {
		return r.HRApprove(actorID, comments, s.now())
	})
}

func (s *service) FinanceApprove(ctx context.Context, actorID, id, comments string) (RevisionResponse, error) {
	return s.transition(ctx, "finance_approve", id, func(r *SalaryRevision, _ *sql.Tx) error {
		return r.FinanceApprove(actorID, comments, s.now())
	})
}

// MDApprove implements the revision: the employee's salary is replaced and the
// derived breakdown recomputed in the same transaction as the approval.
func (s *service) MDApprove(ctx context.Context, actorID, id, comments string) (RevisionResponse, error) {
	return s.transition(ctx, "md_approve", id, func(r *SalaryRevision, tx *sql.Tx) error {
		at := s.now()
		if err := r.MDApprove(actorID, comments, at); err != nil {
			return err
		}

		etx := s.employees.WithTx(tx)
		emp, err := etx.FindByIDForUpdate(ctx, r.EmployeeID.String())
		if err != nil {
			if database.IsNotFound(err) {
				return employeeerrors.ErrEmployeeNotFound
			}
			return err
		}

		previous := emp.Salary
		emp.Salary = r.NewSalary
		emp.Recompute()
		if err := etx.Update(ctx, emp); err != nil {
			return err
		}

		rid := contextutil.GetRequestID(ctx)
		ev, err := kafka.NewEvent(
			rid,
			kafka.AggregateSalaryRevision,
			r.ID.String(),
			eventImplemented,
			events.SalaryRevisionImplementedTopic,
			events.SalaryRevisionImplementedEvent{
				EventType:      eventImplemented,
				RequestID:      rid,
				RevisionID:     r.ID.String(),
				EmployeeID:     emp.ID.String(),
				EmployeeCode:   emp.EmployeeCode,
				PreviousSalary: previous.StringFixed(2),
				NewSalary:      r.NewSalary.StringFixed(2),
				ImplementedBy:  actorID,
				OccurredAt:     at,
			},
		)
		if err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, ev)
	})
}

func (s *service) Reject(ctx context.Context, actorID, id, reason string) (RevisionResponse, error) {
	return s.transition(ctx, "reject", id, func(r *SalaryRevision, _ *sql.Tx) error {
		return r.Reject(actorID, reason, s.now())
	})
}

func (s *service) transition(
	ctx context.Context,
	op, id string,
	fn func(r *SalaryRevision, tx *sql.Tx) error,
) (RevisionResponse, error) {
	s.logger.Debug("salary revision transition requested", zap.String("op", op), zap.String("revision_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return RevisionResponse{}, salaryrevisionerrors.ErrInvalidRevisionID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("salary revision begin tx failed", zap.String("op", op), zap.Error(err))
		return RevisionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rev, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return RevisionResponse{}, mapRepositoryError(err)
	}

	from := rev.Status
	if err := fn(rev, tx); err != nil {
		s.logger.Warn("salary revision transition rejected",
			zap.String("op", op),
			zap.String("revision_id", id),
			zap.String("status", from),
			zap.Error(err),
		)
		return RevisionResponse{}, err
	}

	if err := qtx.Update(ctx, rev); err != nil {
		s.logger.Error("salary revision persist failed", zap.String("op", op), zap.Error(err))
		return RevisionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("salary revision commit failed", zap.String("op", op), zap.Error(err))
		return RevisionResponse{}, err
	}

	s.logger.Info("salary revision transition success",
		zap.String("op", op),
		zap.String("revision_id", id),
		zap.String("from", from),
		zap.String("to", rev.Status),
	)
	return MapToResponse(*rev), nil
}

func MapToResponse(r SalaryRevision) RevisionResponse {
	return RevisionResponse{
		ID:                r.ID.String(),
		EmployeeID:        r.EmployeeID.String(),
		EmployeeCode:      r.EmployeeCode,
		EmployeeName:      r.EmployeeName,
		CurrentSalary:     r.CurrentSalary.InexactFloat64(),
		NewSalary:         r.NewSalary.InexactFloat64(),
		EffectiveDate:     r.EffectiveDate.Format(time.DateOnly),
		Reason:            r.Reason,
		Description:       r.Description,
		Status:            r.CurrentStatus(),
		RequestedBy:       r.RequestedBy,
		RequestedAt:       r.RequestedAt.UTC().Format(time.RFC3339),
		HRApprovedBy:      r.HRApprovedBy,
		HRApprovedAt:      formatTime(r.HRApprovedAt),
		HRComments:        r.HRComments,
		FinanceApprovedBy: r.FinanceApprovedBy,
		FinanceApprovedAt: formatTime(r.FinanceApprovedAt),
		FinanceComments:   r.FinanceComments,
		MDApprovedBy:      r.MDApprovedBy,
		MDApprovedAt:      formatTime(r.MDApprovedAt),
		MDComments:        r.MDComments,
		RejectedBy:        r.RejectedBy,
		RejectedAt:        formatTime(r.RejectedAt),
		RejectionReason:   r.RejectionReason,
		ImplementedBy:     r.ImplementedBy,
		ImplementedAt:     formatTime(r.ImplementedAt),
	}
}

func MapToListResponse(rows []SalaryRevision) []RevisionResponse {
	res := make([]RevisionResponse, len(rows))
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
