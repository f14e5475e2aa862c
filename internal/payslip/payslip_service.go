package payslip

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-payroll/internal/document"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/events"
	kafka "go-payroll/internal/messaging/kafka"
	"go-payroll/internal/notification"
	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_collaborators_mock.go -package=mock -exclude_interfaces=Service

// Notifier delivers a rendered payslip to the employee. Failures are reported in the Result, never as a panic or error.
type Notifier interface {
	SendPayslip(ctx context.Context, mail notification.PayslipMail, bulk bool) notification.Result
}

type Renderer interface {
	RenderPayslip(ctx context.Context, data document.PayslipData) ([]byte, error)
}

type Service interface {
	Generate(ctx context.Context, actorID string, req GenerateRequest) (GenerateResponse, error)
	GenerateBulk(ctx context.Context, actorID string, req GenerateBulkRequest) (BulkGenerateResult, error)
	GetAll(ctx context.Context, filter PayslipFilter) ([]PayslipResponse, int64, error)
	GetByID(ctx context.Context, id string) (PayslipResponse, error)
	RenderPDF(ctx context.Context, id string) (PDFFile, error)
	EmailHistory(ctx context.Context, id string) (EmailHistoryResponse, error)
	SendEmail(ctx context.Context, id string) (SendEmailResponse, error)
	SendBulkEmails(ctx context.Context, ids []string) (BulkEmailResult, error)
	MarkEmailDelivered(ctx context.Context, receipt DeliveryReceipt) error
}

type Config struct {
	CompanyName   string
	NotifyTimeout time.Duration
	RenderTimeout time.Duration
}

const defaultTimeout = 30 * time.Second

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	renderer  Renderer
	notifier  Notifier
	cfg       Config
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
	renderer Renderer,
	notifier Notifier,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = defaultTimeout
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = defaultTimeout
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outbox,
		renderer:  renderer,
		notifier:  notifier,
		cfg:       cfg,
		logger:    l,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Generate snapshots the employee's current breakdown. A failed email never undoes the payslip.
func (s *service) Generate(ctx context.Context, actorID string, req GenerateRequest) (GenerateResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("generate payslip requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return GenerateResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if database.IsNotFound(err) {
			return GenerateResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("generate payslip load employee failed", zap.Error(err))
		return GenerateResponse{}, err
	}

	p, err := s.generateFor(ctx, actorID, empl, req.Month, req.Year)
	if err != nil {
		return GenerateResponse{}, err
	}

	resp := GenerateResponse{Payslip: MapToResponse(*p)}
	if req.SendEmail {
		res := s.deliver(ctx, p, empl, false)
		resp.Payslip = MapToResponse(*p)
		resp.EmailSent = res.Success
		if !res.Success {
			resp.EmailError = &res.Error
		}
	}
	return resp, nil
}

// GenerateBulk attempts every active employee; failures are collected in order and never stop the run.
func (s *service) GenerateBulk(ctx context.Context, actorID string, req GenerateBulkRequest) (BulkGenerateResult, error) {
	s.logger.Debug("bulk generate payslips requested",
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Bool("send_email", req.SendEmail),
	)

	employees, err := s.employees.FindActive(ctx)
	if err != nil {
		s.logger.Error("bulk generate payslips load employees failed", zap.Error(err))
		return BulkGenerateResult{}, err
	}
	if len(employees) == 0 {
		return BulkGenerateResult{}, paysliperrors.ErrNoActiveEmployees
	}

	result := BulkGenerateResult{Total: len(employees)}
	for i := range employees {
		e := &employees[i]
		p, err := s.generateFor(ctx, actorID, e, req.Month, req.Year)
		if err != nil {
			if errors.Is(err, paysliperrors.ErrPayslipExists) {
				result.Errors = append(result.Errors, fmt.Sprintf("Payslip already exists for %s - %s", e.EmployeeCode, e.Name))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("Failed to generate payslip for %s: %v", e.EmployeeCode, err))
			}
			continue
		}
		result.Generated++

		if req.SendEmail {
			res := s.deliver(ctx, p, e, true)
			result.EmailResults = append(result.EmailResults, EmailResult{
				PayslipID:    p.ID.String(),
				EmployeeCode: p.EmployeeCode,
				EmployeeName: p.EmployeeName,
				Success:      res.Success,
				MessageID:    res.MessageID,
				Error:        res.Error,
			})
		}
	}

	s.logger.Info("bulk generate payslips finished",
		zap.Int("generated", result.Generated),
		zap.Int("total", result.Total),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (s *service) generateFor(ctx context.Context, actorID string, e *employee.Employee, month, year int) (*Payslip, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payslip begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsForPeriod(ctx, e.ID.String(), month, year)
	if err != nil {
		s.logger.Error("generate payslip lookup failed", zap.Error(err))
		return nil, err
	}
	if exists {
		s.logger.Warn("generate payslip rejected: exists",
			zap.String("employee_code", e.EmployeeCode),
			zap.Int("month", month),
			zap.Int("year", year),
		)
		return nil, paysliperrors.ErrPayslipExists
	}

	p := Snapshot(e, month, year, actorID, s.now())
	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("generate payslip persist failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	ev, err := kafka.NewEvent(
		contextutil.GetRequestID(ctx),
		kafka.AggregatePayslip,
		p.ID.String(),
		"payslip.generated",
		events.PayslipGeneratedTopic,
		events.PayslipGeneratedEvent{
			EventType:    "payslip.generated",
			RequestID:    contextutil.GetRequestID(ctx),
			PayslipID:    p.ID.String(),
			EmployeeID:   p.EmployeeID.String(),
			EmployeeCode: p.EmployeeCode,
			Month:        p.Month,
			Year:         p.Year,
			NetSalary:    p.NetSalary.StringFixed(2),
			OccurredAt:   p.GeneratedAt,
		},
	)
	if err != nil {
		return nil, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, ev); err != nil {
		s.logger.Error("generate payslip outbox failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("generate payslip commit failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("generate payslip success",
		zap.String("payslip_id", p.ID.String()),
		zap.String("employee_code", p.EmployeeCode),
		zap.Int("month", month),
		zap.Int("year", year),
	)
	return p, nil
}

// Snapshot copies the employee's stored breakdown onto a new payslip.
func Snapshot(e *employee.Employee, month, year int, generatedBy string, at time.Time) *Payslip {
	return &Payslip{
		ID:               uuid.New(),
		EmployeeID:       e.ID,
		Month:            month,
		Year:             year,
		EmployeeCode:     e.EmployeeCode,
		EmployeeName:     e.Name,
		Department:       e.Department,
		Designation:      e.Designation,
		Salary:           e.Salary,
		PaidDays:         e.PaidDays,
		Leaves:           e.Leaves,
		Basic:            e.Basic,
		HRA:              e.HRA,
		Conveyance:       e.Conveyance,
		OtherAllowance:   e.OtherAllowance,
		PF:               e.PF,
		ESIC:             e.ESIC,
		DayWiseDeduction: e.DayWiseDeduction,
		NetSalary:        e.NetSalary,
		GeneratedBy:      generatedBy,
		GeneratedAt:      at,
		EmailStatus:      EmailNotSent,
	}
}

func (s *service) GetAll(ctx context.Context, filter PayslipFilter) ([]PayslipResponse, int64, error) {
	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all payslips failed", zap.Error(err))
		return nil, 0, err
	}
	return MapToListResponse(rows), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayslipResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return PayslipResponse{}, err
	}
	return MapToResponse(*p), nil
}

func (s *service) RenderPDF(ctx context.Context, id string) (PDFFile, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return PDFFile{}, err
	}

	content, err := s.render(ctx, p)
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("payslip_id", id), zap.Error(err))
		return PDFFile{}, paysliperrors.ErrRenderFailed
	}
	return PDFFile{
		Name:         FileName(p),
		EmployeeCode: p.EmployeeCode,
		Content:      content,
	}, nil
}

func (s *service) EmailHistory(ctx context.Context, id string) (EmailHistoryResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return EmailHistoryResponse{}, err
	}
	logs, err := s.repo.ListEmailLogs(ctx, id)
	if err != nil {
		s.logger.Error("list payslip email logs failed", zap.Error(err))
		return EmailHistoryResponse{}, err
	}

	history := make([]EmailLogResponse, 0, len(logs))
	for _, l := range logs {
		history = append(history, EmailLogResponse{
			SentAt:    l.SentAt.Format(time.RFC3339),
			Success:   l.Success,
			MessageID: l.MessageID,
			Error:     l.Error,
			IsBulk:    l.IsBulk,
		})
	}
	return EmailHistoryResponse{
		PayslipID:   id,
		EmailStatus: p.EmailStatus,
		TotalSends:  len(history),
		History:     history,
	}, nil
}

// SendEmail re-sends an existing payslip. The delivery outcome is returned in the body.
func (s *service) SendEmail(ctx context.Context, id string) (SendEmailResponse, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return SendEmailResponse{}, err
	}

	empl, err := s.recipient(ctx, p)
	if err != nil {
		return SendEmailResponse{}, err
	}

	res := s.deliver(ctx, p, empl, false)

	total, err := s.repo.CountEmailLogs(ctx, id)
	if err != nil {
		s.logger.Error("count payslip email logs failed", zap.Error(err))
		return SendEmailResponse{}, err
	}

	out := SendEmailResponse{
		EmailSent:  res.Success,
		MessageID:  res.MessageID,
		TotalSends: total,
	}
	if !res.Success {
		out.Error = &res.Error
	}
	if p.EmailSentAt != nil {
		at := p.EmailSentAt.Format(time.RFC3339)
		out.LastSentAt = &at
	}
	return out, nil
}

func (s *service) SendBulkEmails(ctx context.Context, ids []string) (BulkEmailResult, error) {
	s.logger.Debug("bulk payslip email requested", zap.Int("count", len(ids)))

	result := BulkEmailResult{Total: len(ids), Results: make([]EmailResult, 0, len(ids))}
	for _, id := range ids {
		item := EmailResult{PayslipID: id}

		p, err := s.find(ctx, id)
		if err != nil {
			item.Error = err.Error()
			result.Failed++
			result.Results = append(result.Results, item)
			continue
		}
		item.EmployeeCode = p.EmployeeCode
		item.EmployeeName = p.EmployeeName

		empl, err := s.recipient(ctx, p)
		if err != nil {
			item.Error = err.Error()
			result.Failed++
			result.Results = append(result.Results, item)
			continue
		}

		res := s.deliver(ctx, p, empl, true)
		item.Success = res.Success
		item.MessageID = res.MessageID
		item.Error = res.Error
		if res.Success {
			result.Successful++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, item)
	}

	s.logger.Info("bulk payslip email finished",
		zap.Int("total", result.Total),
		zap.Int("successful", result.Successful),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// MarkEmailDelivered applies a relay receipt. Receipts for unknown or superseded messages are dropped.
func (s *service) MarkEmailDelivered(ctx context.Context, receipt DeliveryReceipt) error {
	if strings.TrimSpace(receipt.MessageID) == "" {
		s.logger.Warn("delivery receipt without message id dropped", zap.String("payslip_id", receipt.PayslipID))
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByMessageIDForUpdate(ctx, receipt.MessageID)
	if err != nil {
		if database.IsNotFound(err) {
			s.logger.Warn("delivery receipt for unknown message dropped", zap.String("message_id", receipt.MessageID))
			return nil
		}
		return err
	}

	if !p.ApplyDeliveryReceipt(receipt.MessageID, receipt.Delivered, receipt.Reason) {
		return nil
	}
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("delivery receipt persist failed", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("payslip email status updated",
		zap.String("payslip_id", p.ID.String()),
		zap.String("message_id", receipt.MessageID),
		zap.String("status", p.EmailStatus),
	)
	return nil
}

func (s *service) find(ctx context.Context, id string) (*Payslip, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, paysliperrors.ErrInvalidPayslipID
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return p, nil
}

func (s *service) recipient(ctx context.Context, p *Payslip) (*employee.Employee, error) {
	empl, err := s.employees.FindByID(ctx, p.EmployeeID.String())
	if err != nil {
		if database.IsNotFound(err) {
			return nil, paysliperrors.ErrEmployeeEmailMissing
		}
		return nil, err
	}
	if strings.TrimSpace(empl.Email) == "" {
		return nil, paysliperrors.ErrEmployeeEmailMissing
	}
	return empl, nil
}

// deliver renders, sends and records one attempt. p is updated in place with the stored status.
func (s *service) deliver(ctx context.Context, p *Payslip, e *employee.Employee, bulk bool) notification.Result {
	var res notification.Result
	content, err := s.render(ctx, p)
	if err != nil {
		res = notification.Failed(fmt.Errorf("render payslip: %w", err))
	} else {
		res = s.notify(ctx, notification.PayslipMail{
			To:           notification.Recipient{Name: e.Name, Email: e.Email},
			CompanyName:  s.cfg.CompanyName,
			EmployeeCode: p.EmployeeCode,
			Period:       fmt.Sprintf("%s %d", document.MonthName(p.Month), p.Year),
			NetSalary:    document.FormatMoney(p.NetSalary),
			FileName:     FileName(p),
			Attachment:   content,
		}, bulk)
	}

	if err := s.recordEmail(ctx, p, res, bulk); err != nil {
		s.logger.Error("record payslip email failed", zap.String("payslip_id", p.ID.String()), zap.Error(err))
	}
	return res
}

func (s *service) notify(ctx context.Context, mail notification.PayslipMail, bulk bool) notification.Result {
	nctx, cancel := context.WithTimeout(ctx, s.cfg.NotifyTimeout)
	defer cancel()

	done := make(chan notification.Result, 1)
	go func() {
		done <- s.notifier.SendPayslip(nctx, mail, bulk)
	}()

	select {
	case res := <-done:
		return res
	case <-nctx.Done():
		return notification.Result{
			Error: fmt.Sprintf("Email sending timeout after %d seconds", int(s.cfg.NotifyTimeout.Seconds())),
		}
	}
}

func (s *service) render(ctx context.Context, p *Payslip) ([]byte, error) {
	rctx, cancel := context.WithTimeout(ctx, s.cfg.RenderTimeout)
	defer cancel()
	return s.renderer.RenderPayslip(rctx, ToDocument(p))
}

func (s *service) recordEmail(ctx context.Context, p *Payslip, res notification.Result, bulk bool) error {
	at := s.now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	locked, err := qtx.FindByIDForUpdate(ctx, p.ID.String())
	if err != nil {
		return mapRepositoryError(err)
	}
	locked.RecordEmail(res, at)
	if err := qtx.Update(ctx, locked); err != nil {
		return err
	}
	if err := qtx.CreateEmailLog(ctx, &EmailLog{
		ID:        uuid.New(),
		PayslipID: locked.ID,
		SentAt:    at,
		Success:   res.Success,
		MessageID: res.MessageID,
		Error:     res.Error,
		IsBulk:    bulk,
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	*p = *locked
	return nil
}

func FileName(p *Payslip) string {
	return fmt.Sprintf("payslip-%s-%d-%02d.pdf", p.EmployeeCode, p.Year, p.Month)
}

func ToDocument(p *Payslip) document.PayslipData {
	return document.PayslipData{
		EmployeeCode:     p.EmployeeCode,
		EmployeeName:     p.EmployeeName,
		Department:       p.Department,
		Designation:      p.Designation,
		Month:            p.Month,
		Year:             p.Year,
		PaidDays:         p.PaidDays,
		Leaves:           p.Leaves,
		Salary:           p.Salary,
		Basic:            p.Basic,
		HRA:              p.HRA,
		Conveyance:       p.Conveyance,
		OtherAllowance:   p.OtherAllowance,
		PF:               p.PF,
		ESIC:             p.ESIC,
		DayWiseDeduction: p.DayWiseDeduction,
		NetSalary:        p.NetSalary,
		IsPaid:           p.IsPaid,
		GeneratedAt:      p.GeneratedAt,
	}
}

func MapToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:               p.ID.String(),
		EmployeeID:       p.EmployeeID.String(),
		EmployeeCode:     p.EmployeeCode,
		EmployeeName:     p.EmployeeName,
		Department:       p.Department,
		Designation:      p.Designation,
		Month:            p.Month,
		Year:             p.Year,
		Salary:           p.Salary.InexactFloat64(),
		PaidDays:         p.PaidDays,
		Leaves:           p.Leaves,
		Basic:            p.Basic.InexactFloat64(),
		HRA:              p.HRA.InexactFloat64(),
		Conveyance:       p.Conveyance.InexactFloat64(),
		OtherAllowance:   p.OtherAllowance.InexactFloat64(),
		PF:               p.PF.InexactFloat64(),
		ESIC:             p.ESIC.InexactFloat64(),
		DayWiseDeduction: p.DayWiseDeduction.InexactFloat64(),
		NetSalary:        p.NetSalary.InexactFloat64(),
		GeneratedBy:      p.GeneratedBy,
		GeneratedAt:      p.GeneratedAt.Format(time.RFC3339),
		IsPaid:           p.IsPaid,
		PaidAt:           formatTime(p.PaidAt),
		EmailSent:        p.EmailSent,
		EmailSentAt:      formatTime(p.EmailSentAt),
		EmailStatus:      p.EmailStatus,
		EmailMessageID:   p.EmailMessageID,
		EmailError:       p.EmailError,
	}
}

func MapToListResponse(rows []Payslip) []PayslipResponse {
	out := make([]PayslipResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, MapToResponse(p))
	}
	return out
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
