package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-payroll/internal/events"
	kafka "go-payroll/internal/messaging/kafka"
	paymenterrors "go-payroll/internal/payment/errors"
	"go-payroll/internal/payslip"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const requestCounter = "payment_request"

//go:generate mockgen -source=payment_service.go -destination=mock/payment_service_mock.go -package=mock
type Service interface {
	Request(ctx context.Context, actorID string, req CreatePaymentRequest) (PaymentResponse, error)
	GetAll(ctx context.Context, filter PaymentFilter) ([]PaymentResponse, int64, error)
	GetByID(ctx context.Context, id string) (PaymentResponse, error)
	FinanceApprove(ctx context.Context, actorID, id, comments string) (PaymentResponse, error)
	MDApprove(ctx context.Context, actorID, id, comments string) (PaymentResponse, error)
	Process(ctx context.Context, actorID, id, remarks string) (PaymentResponse, error)
	Reject(ctx context.Context, actorID, id, reason string) (PaymentResponse, error)
	Stats(ctx context.Context, month, year int) (StatsResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	payslips payslip.Repository
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	payslips payslip.Repository,
	counterRepo counter.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payment.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		payslips: payslips,
		counter:  counterRepo,
		outbox:   outbox,
		logger:   l,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Request opens a payment request for a payslip. The amount is taken from the payslip, never from the caller.
func (s *service) Request(ctx context.Context, actorID string, req CreatePaymentRequest) (PaymentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("payment request requested",
		zap.String("request_id", rid),
		zap.String("payslip_id", req.PayslipID),
		zap.String("method", req.PaymentMethod),
	)

	if _, err := uuid.Parse(req.PayslipID); err != nil {
		return PaymentResponse{}, paysliperrors.ErrInvalidPayslipID
	}
	paymentDate, err := time.Parse(time.DateOnly, req.PaymentDate)
	if err != nil {
		return PaymentResponse{}, paymenterrors.ErrInvalidPaymentDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("payment request begin tx failed", zap.Error(err))
		return PaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	slip, err := s.payslips.WithTx(tx).FindByIDForUpdate(ctx, req.PayslipID)
	if err != nil {
		if database.IsNotFound(err) {
			s.logger.Warn("payment request rejected: payslip not found", zap.String("payslip_id", req.PayslipID))
			return PaymentResponse{}, paysliperrors.ErrPayslipNotFound
		}
		s.logger.Error("payment request load payslip failed", zap.Error(err))
		return PaymentResponse{}, err
	}

	existing, err := qtx.FindActiveByPayslip(ctx, req.PayslipID)
	if err != nil && !database.IsNotFound(err) {
		s.logger.Error("payment request lookup failed", zap.Error(err))
		return PaymentResponse{}, err
	}
	if existing != nil {
		s.logger.Warn("payment request rejected: duplicate",
			zap.String("payslip_id", req.PayslipID),
			zap.String("existing_id", existing.ID.String()),
			zap.String("status", existing.Status),
		)
		return PaymentResponse{}, paymenterrors.ErrPaymentExists
	}

	seq, err := s.counter.WithTx(tx).Next(ctx, requestCounter)
	if err != nil {
		s.logger.Error("payment request number failed", zap.Error(err))
		return PaymentResponse{}, err
	}

	now := s.now()
	p := &PaymentRequest{
		ID:               uuid.New(),
		RequestNumber:    RequestNumber(slip.Year, slip.Month, seq),
		PayslipID:        slip.ID,
		EmployeeID:       slip.EmployeeID,
		EmployeeCode:     slip.EmployeeCode,
		EmployeeName:     slip.EmployeeName,
		Month:            slip.Month,
		Year:             slip.Year,
		Amount:           slip.NetSalary,
		PaymentDate:      paymentDate,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		Remarks:          req.Remarks,
		Status:           string(StatusPending),
		RequestedBy:      actorID,
		RequestedAt:      now,
	}
	if req.BankDetails != nil {
		p.Bank = BankDetails{
			AccountNumber: req.BankDetails.AccountNumber,
			IFSCCode:      req.BankDetails.IFSCCode,
			BankName:      req.BankDetails.BankName,
		}
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("payment request persist failed", zap.Error(err))
		return PaymentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("payment request commit failed", zap.Error(err))
		return PaymentResponse{}, err
	}

	s.logger.Info("payment request created",
		zap.String("payment_id", p.ID.String()),
		zap.String("request_number", p.RequestNumber),
		zap.String("employee_code", p.EmployeeCode),
		zap.String("amount", p.Amount.StringFixed(2)),
	)
	return MapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, filter PaymentFilter) ([]PaymentResponse, int64, error) {
	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list payments failed", zap.Error(err))
		return nil, 0, err
	}
	return MapToListResponse(rows), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PaymentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PaymentResponse{}, paymenterrors.ErrInvalidPaymentID
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PaymentResponse{}, mapRepositoryError(err)
	}
	return MapToResponse(*p), nil
}

func (s *service) FinanceApprove(ctx context.Context, actorID, id, comments string) (PaymentResponse, error) {
	return s.transition(ctx, "finance_approve", id, func(p *PaymentRequest, _ *sql.Tx) error {
		return p.FinanceApprove(actorID, comments, s.now())
	})
}

func (s *service) MDApprove(ctx context.Context, actorID, id, comments string) (PaymentResponse, error) {
	return s.transition(ctx, "md_approve", id, func(p *PaymentRequest, _ *sql.Tx) error {
		return p.MDApprove(actorID, comments, s.now())
	})
}

// Process pays the request. The linked payslip is marked paid and payment.paid is queued in the same transaction.
func (s *service) Process(ctx context.Context, actorID, id, remarks string) (PaymentResponse, error) {
	return s.transition(ctx, "process", id, func(p *PaymentRequest, tx *sql.Tx) error {
		at := s.now()
		if err := p.Process(actorID, remarks, at); err != nil {
			return err
		}

		ptx := s.payslips.WithTx(tx)
		slip, err := ptx.FindByIDForUpdate(ctx, p.PayslipID.String())
		if err != nil {
			if database.IsNotFound(err) {
				return paysliperrors.ErrPayslipNotFound
			}
			return err
		}
		if err := slip.MarkPaid(at); err != nil {
			return err
		}
		if err := ptx.Update(ctx, slip); err != nil {
			return err
		}

		rid := contextutil.GetRequestID(ctx)
		ev, err := kafka.NewEvent(
			rid,
			kafka.AggregatePayment,
			p.ID.String(),
			"payment.paid",
			events.PaymentPaidTopic,
			events.PaymentPaidEvent{
				EventType:        "payment.paid",
				RequestID:        rid,
				PaymentID:        p.ID.String(),
				RequestNumber:    p.RequestNumber,
				PayslipID:        p.PayslipID.String(),
				EmployeeCode:     p.EmployeeCode,
				Amount:           p.Amount.StringFixed(2),
				PaymentReference: p.PaymentReference,
				ProcessedBy:      actorID,
				OccurredAt:       at,
			},
		)
		if err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, ev)
	})
}

func (s *service) Reject(ctx context.Context, actorID, id, reason string) (PaymentResponse, error) {
	return s.transition(ctx, "reject", id, func(p *PaymentRequest, _ *sql.Tx) error {
		return p.Reject(actorID, reason, s.now())
	})
}

func (s *service) Stats(ctx context.Context, month, year int) (StatsResponse, error) {
	rows, err := s.repo.Stats(ctx, month, year)
	if err != nil {
		s.logger.Error("payment stats failed", zap.Error(err))
		return StatsResponse{}, err
	}

	resp := StatsResponse{StatusBreakdown: make([]StatusTotal, 0, len(rows))}
	total := decimal.Zero
	for _, r := range rows {
		resp.TotalPayments += r.Count
		total = total.Add(r.TotalAmount)
		resp.StatusBreakdown = append(resp.StatusBreakdown, StatusTotal{
			Status:      r.Status,
			Count:       r.Count,
			TotalAmount: r.TotalAmount.InexactFloat64(),
		})
	}
	resp.TotalAmount = total.InexactFloat64()
	return resp, nil
}

func (s *service) transition(
	ctx context.Context,
	op, id string,
	fn func(p *PaymentRequest, tx *sql.Tx) error,
) (PaymentResponse, error) {
	s.logger.Debug("payment transition requested", zap.String("op", op), zap.String("payment_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return PaymentResponse{}, paymenterrors.ErrInvalidPaymentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("payment transition begin tx failed", zap.String("op", op), zap.Error(err))
		return PaymentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return PaymentResponse{}, mapRepositoryError(err)
	}

	from := p.Status
	if err := fn(p, tx); err != nil {
		s.logger.Warn("payment transition rejected",
			zap.String("op", op),
			zap.String("payment_id", id),
			zap.String("status", from),
			zap.Error(err),
		)
		return PaymentResponse{}, err
	}

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("payment transition persist failed", zap.String("op", op), zap.Error(err))
		return PaymentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("payment transition commit failed", zap.String("op", op), zap.Error(err))
		return PaymentResponse{}, err
	}

	s.logger.Info("payment transition success",
		zap.String("op", op),
		zap.String("payment_id", id),
		zap.String("from", from),
		zap.String("to", p.Status),
	)
	return MapToResponse(*p), nil
}

// RequestNumber formats a request number such as PAY-202503-00042.
func RequestNumber(year, month int, seq int64) string {
	return fmt.Sprintf("PAY-%04d%02d-%05d", year, month, seq)
}

func MapToResponse(p PaymentRequest) PaymentResponse {
	resp := PaymentResponse{
		ID:                p.ID.String(),
		RequestNumber:     p.RequestNumber,
		PayslipID:         p.PayslipID.String(),
		EmployeeID:        p.EmployeeID.String(),
		EmployeeCode:      p.EmployeeCode,
		EmployeeName:      p.EmployeeName,
		Month:             p.Month,
		Year:              p.Year,
		Amount:            p.Amount.InexactFloat64(),
		PaymentDate:       p.PaymentDate.Format(time.DateOnly),
		PaymentMethod:     p.PaymentMethod,
		PaymentReference:  p.PaymentReference,
		Remarks:           p.Remarks,
		Status:            p.CurrentStatus(),
		RequestedBy:       p.RequestedBy,
		RequestedAt:       p.RequestedAt.UTC().Format(time.RFC3339),
		FinanceApprovedBy: p.FinanceApprovedBy,
		FinanceApprovedAt: formatTime(p.FinanceApprovedAt),
		FinanceComments:   p.FinanceComments,
		MDApprovedBy:      p.MDApprovedBy,
		MDApprovedAt:      formatTime(p.MDApprovedAt),
		MDComments:        p.MDComments,
		ProcessedBy:       p.ProcessedBy,
		ProcessedAt:       formatTime(p.ProcessedAt),
		RejectedBy:        p.RejectedBy,
		RejectedAt:        formatTime(p.RejectedAt),
		RejectionReason:   p.RejectionReason,
	}
	if p.Bank != (BankDetails{}) {
		resp.BankDetails = &BankDetailsResponse{
			AccountNumber: p.Bank.AccountNumber,
			IFSCCode:      p.Bank.IFSCCode,
			BankName:      p.Bank.BankName,
		}
	}
	return resp
}

func MapToListResponse(rows []PaymentRequest) []PaymentResponse {
	res := make([]PaymentResponse, len(rows))
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
