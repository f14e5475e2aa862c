package payslip_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/document"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	employeeMock "go-payroll/internal/employee/mock"
	kafka "go-payroll/internal/messaging/kafka"
	kafkaMock "go-payroll/internal/messaging/kafka/mock"
	"go-payroll/internal/notification"
	"go-payroll/internal/payslip"
	paysliperrors "go-payroll/internal/payslip/errors"
	payslipMock "go-payroll/internal/payslip/mock"

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
	service   payslip.Service
	repo      *payslipMock.MockRepository
	employees *employeeMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	renderer  *payslipMock.MockRenderer
	notifier  *payslipMock.MockNotifier
	created   *payslip.Payslip
}

func setupServiceTest(t *testing.T, cfg payslip.Config) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	d := &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      payslipMock.NewMockRepository(ctrl),
		employees: employeeMock.NewMockRepository(ctrl),
		outbox:    kafkaMock.NewMockOutboxRepository(ctrl),
		renderer:  payslipMock.NewMockRenderer(ctrl),
		notifier:  payslipMock.NewMockNotifier(ctrl),
	}
	if cfg.CompanyName == "" {
		cfg.CompanyName = "Acme Payroll"
	}
	d.service = payslip.NewService(db, d.repo, d.employees, d.outbox, d.renderer, d.notifier, cfg)
	return d
}

func activeEmployee(code string, gross int64) *employee.Employee {
	e := &employee.Employee{
		ID:           uuid.New(),
		EmployeeCode: code,
		Name:         "Anita Rao",
		Email:        "anita@example.com",
		Department:   "Engineering",
		Designation:  "Engineer",
		IsActive:     true,
		Salary:       decimal.NewFromInt(gross),
		PaidDays:     30,
		DeductPF:     true,
		DeductESIC:   true,
	}
	e.Recompute()
	return e
}

// expectGenerated sets up one successful generation transaction for e.
func (d *serviceDeps) expectGenerated(e *employee.Employee, month, year int) {
	d.sqlMock.ExpectBegin()
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.repo.EXPECT().ExistsForPeriod(gomock.Any(), e.ID.String(), month, year).Return(false, nil)
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *payslip.Payslip) error {
		d.created = p
		return nil
	})
	d.outbox.EXPECT().WithTx(gomock.Any()).Return(d.outbox)
	d.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
		if ev.EventType != "payslip.generated" || ev.AggregateType != kafka.AggregatePayslip {
			return errors.New("unexpected outbox event " + ev.EventType)
		}
		return nil
	})
	d.sqlMock.ExpectCommit()
}

// expectRecorded sets up the email bookkeeping transaction. A nil p locks the payslip created earlier in the test.
func (d *serviceDeps) expectRecorded(p *payslip.Payslip, bulk bool) {
	d.sqlMock.ExpectBegin()
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) (*payslip.Payslip, error) {
		src := p
		if src == nil {
			src = d.created
		}
		cp := *src
		return &cp, nil
	})
	d.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
	d.repo.EXPECT().CreateEmailLog(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *payslip.EmailLog) error {
		if l.IsBulk != bulk {
			return errors.New("unexpected bulk flag")
		}
		return nil
	})
	d.sqlMock.ExpectCommit()
}

func TestPayslipService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots the employee breakdown", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		e := activeEmployee("EMP001", 50000)

		d.employees.EXPECT().FindByID(gomock.Any(), e.ID.String()).Return(e, nil)
		d.expectGenerated(e, 3, 2025)

		resp, err := d.service.Generate(ctx, "user-1", payslip.GenerateRequest{EmployeeID: e.ID.String(), Month: 3, Year: 2025})
		require.NoError(t, err)

		assert.Equal(t, "EMP001", resp.Payslip.EmployeeCode)
		assert.Equal(t, 20000.0, resp.Payslip.Basic)
		assert.Equal(t, 1800.0, resp.Payslip.PF)
		assert.Equal(t, 0.0, resp.Payslip.ESIC)
		assert.Equal(t, 48200.0, resp.Payslip.NetSalary)
		assert.Equal(t, payslip.EmailNotSent, resp.Payslip.EmailStatus)
		assert.Equal(t, "user-1", resp.Payslip.GeneratedBy)
		assert.False(t, resp.EmailSent)
		assert.Nil(t, resp.EmailError)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate period is a conflict", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		e := activeEmployee("EMP001", 50000)

		d.employees.EXPECT().FindByID(gomock.Any(), e.ID.String()).Return(e, nil)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().ExistsForPeriod(gomock.Any(), e.ID.String(), 3, 2025).Return(true, nil)
		d.sqlMock.ExpectRollback()

		_, err := d.service.Generate(ctx, "user-1", payslip.GenerateRequest{EmployeeID: e.ID.String(), Month: 3, Year: 2025})
		assert.ErrorIs(t, err, paysliperrors.ErrPayslipExists)
		assert.Equal(t, "Payslip already exists for this month and year", err.Error())
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown employee", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		id := uuid.NewString()
		d.employees.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.service.Generate(ctx, "user-1", payslip.GenerateRequest{EmployeeID: id, Month: 3, Year: 2025})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		_, err := d.service.Generate(ctx, "user-1", payslip.GenerateRequest{EmployeeID: "nope", Month: 3, Year: 2025})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("email sent with generation", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		e := activeEmployee("EMP001", 50000)

		d.employees.EXPECT().FindByID(gomock.Any(), e.ID.String()).Return(e, nil)
		d.expectGenerated(e, 3, 2025)
		d.renderer.EXPECT().RenderPayslip(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, data document.PayslipData) ([]byte, error) {
			assert.Equal(t, "EMP001", data.EmployeeCode)
			assert.True(t, data.NetSalary.Equal(decimal.NewFromInt(48200)))
			return []byte("%PDF-1.3"), nil
		})
		d.notifier.EXPECT().SendPayslip(gomock.Any(), gomock.Any(), false).DoAndReturn(func(_ context.Context, mail notification.PayslipMail, _ bool) notification.Result {
			assert.Equal(t, "anita@example.com", mail.To.Email)
			assert.Equal(t, "March 2025", mail.Period)
			assert.Equal(t, "Rs. 48,200.00", mail.NetSalary)
			assert.Equal(t, "payslip-EMP001-2025-03.pdf", mail.FileName)
			assert.Equal(t, "Acme Payroll", mail.CompanyName)
			return notification.Result{Success: true, MessageID: "<m1@example.com>"}
		})
		d.expectRecorded(nil, false)

		resp, err := d.service.Generate(ctx, "user-1", payslip.GenerateRequest{EmployeeID: e.ID.String(), Month: 3, Year: 2025, SendEmail: true})
		require.NoError(t, err)

		assert.True(t, resp.EmailSent)
		assert.Nil(t, resp.EmailError)
		assert.Equal(t, payslip.EmailSent, resp.Payslip.EmailStatus)
		assert.Equal(t, "<m1@example.com>", resp.Payslip.EmailMessageID)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("notifier failure keeps the payslip", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		e := activeEmployee("EMP001", 50000)

		d.employees.EXPECT().FindByID(gomock.Any(), e.ID.String()).Return(e, nil)
		d.expectGenerated(e, 3, 2025)
		d.renderer.EXPECT().RenderPayslip(gomock.Any(), gomock.Any()).Return([]byte("%PDF-1.3"), nil)
		d.notifier.EXPECT().SendPayslip(gomock.Any(), gomock.Any(), false).Return(notification.Result{Error: "smtp unavailable"})
		d.expectRecorded(nil, false)

		resp, err := d.service.Generate(ctx, "user-1", payslip.GenerateRequest{EmployeeID: e.ID.String(), Month: 3, Year: 2025, SendEmail: true})
		require.NoError(t, err)

		assert.False(t, resp.EmailSent)
		require.NotNil(t, resp.EmailError)
		assert.Equal(t, "smtp unavailable", *resp.EmailError)
		assert.Equal(t, payslip.EmailFailed, resp.Payslip.EmailStatus)
		assert.Equal(t, 48200.0, resp.Payslip.NetSalary)
	})
}

func TestPayslipService_NotifyTimeout(t *testing.T) {
	d := setupServiceTest(t, payslip.Config{NotifyTimeout: 20 * time.Millisecond})
	e := activeEmployee("EMP001", 20000)

	d.employees.EXPECT().FindByID(gomock.Any(), e.ID.String()).Return(e, nil)
	d.expectGenerated(e, 4, 2025)
	d.renderer.EXPECT().RenderPayslip(gomock.Any(), gomock.Any()).Return([]byte("%PDF-1.3"), nil)
	d.notifier.EXPECT().SendPayslip(gomock.Any(), gomock.Any(), false).DoAndReturn(func(context.Context, notification.PayslipMail, bool) notification.Result {
		time.Sleep(300 * time.Millisecond)
		return notification.Result{Success: true, MessageID: "<late@example.com>"}
	})
	d.expectRecorded(nil, false)

	resp, err := d.service.Generate(context.Background(), "user-1", payslip.GenerateRequest{EmployeeID: e.ID.String(), Month: 4, Year: 2025, SendEmail: true})
	require.NoError(t, err)

	assert.False(t, resp.EmailSent)
	require.NotNil(t, resp.EmailError)
	assert.Contains(t, *resp.EmailError, "Email sending timeout after")
	assert.Equal(t, 18890.0, resp.Payslip.NetSalary)
}

func TestPayslipService_GenerateBulk(t *testing.T) {
	ctx := context.Background()

	t.Run("collects failures and continues", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		first := activeEmployee("EMP001", 50000)
		second := activeEmployee("EMP002", 20000)
		second.Name = "Vikram Singh"
		third := activeEmployee("EMP003", 30000)

		d.employees.EXPECT().FindActive(gomock.Any()).Return([]employee.Employee{*first, *second, *third}, nil)
		d.expectGenerated(first, 3, 2025)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().ExistsForPeriod(gomock.Any(), second.ID.String(), 3, 2025).Return(true, nil)
		d.sqlMock.ExpectRollback()

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().ExistsForPeriod(gomock.Any(), third.ID.String(), 3, 2025).Return(false, errors.New("connection reset"))
		d.sqlMock.ExpectRollback()

		result, err := d.service.GenerateBulk(ctx, "user-1", payslip.GenerateBulkRequest{Month: 3, Year: 2025})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Generated)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, []string{
			"Payslip already exists for EMP002 - Vikram Singh",
			"Failed to generate payslip for EMP003: connection reset",
		}, result.Errors)
		assert.Empty(t, result.EmailResults)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("emails each generated payslip as bulk", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		e := activeEmployee("EMP001", 50000)

		d.employees.EXPECT().FindActive(gomock.Any()).Return([]employee.Employee{*e}, nil)
		d.expectGenerated(e, 3, 2025)
		d.renderer.EXPECT().RenderPayslip(gomock.Any(), gomock.Any()).Return([]byte("%PDF-1.3"), nil)
		d.notifier.EXPECT().SendPayslip(gomock.Any(), gomock.Any(), true).Return(notification.Result{Success: true, MessageID: "<b1@example.com>"})
		d.expectRecorded(nil, true)

		result, err := d.service.GenerateBulk(ctx, "user-1", payslip.GenerateBulkRequest{Month: 3, Year: 2025, SendEmail: true})
		require.NoError(t, err)

		require.Len(t, result.EmailResults, 1)
		assert.True(t, result.EmailResults[0].Success)
		assert.Equal(t, "<b1@example.com>", result.EmailResults[0].MessageID)
	})

	t.Run("no active employees", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		d.employees.EXPECT().FindActive(gomock.Any()).Return(nil, nil)

		_, err := d.service.GenerateBulk(ctx, "user-1", payslip.GenerateBulkRequest{Month: 3, Year: 2025})
		assert.ErrorIs(t, err, paysliperrors.ErrNoActiveEmployees)
	})
}

func storedPayslip(e *employee.Employee) *payslip.Payslip {
	p := payslip.Snapshot(e, 3, 2025, "user-1", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	return p
}

func TestPayslipService_SendEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("resend reports the running total", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		e := activeEmployee("EMP001", 50000)
		p := storedPayslip(e)
		id := p.ID.String()

		d.repo.EXPECT().FindByID(gomock.Any(), id).Return(p, nil)
		d.employees.EXPECT().FindByID(gomock.Any(), e.ID.String()).Return(e, nil)
		d.renderer.EXPECT().RenderPayslip(gomock.Any(), gomock.Any()).Return([]byte("%PDF-1.3"), nil)
		d.notifier.EXPECT().SendPayslip(gomock.Any(), gomock.Any(), false).Return(notification.Result{Success: true, MessageID: "<r3@example.com>"})
		d.expectRecorded(p, false)
		d.repo.EXPECT().CountEmailLogs(gomock.Any(), id).Return(int64(3), nil)

		resp, err := d.service.SendEmail(ctx, id)
		require.NoError(t, err)

		assert.True(t, resp.EmailSent)
		assert.Equal(t, "<r3@example.com>", resp.MessageID)
		assert.Equal(t, int64(3), resp.TotalSends)
		assert.Nil(t, resp.Error)
		assert.NotNil(t, resp.LastSentAt)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing email is a validation error", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		e := activeEmployee("EMP001", 50000)
		e.Email = ""
		p := storedPayslip(e)

		d.repo.EXPECT().FindByID(gomock.Any(), p.ID.String()).Return(p, nil)
		d.employees.EXPECT().FindByID(gomock.Any(), e.ID.String()).Return(e, nil)

		_, err := d.service.SendEmail(ctx, p.ID.String())
		assert.ErrorIs(t, err, paysliperrors.ErrEmployeeEmailMissing)
		assert.Equal(t, "Employee email not found", err.Error())
	})

	t.Run("unknown payslip", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		id := uuid.NewString()
		d.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.service.SendEmail(ctx, id)
		assert.ErrorIs(t, err, paysliperrors.ErrPayslipNotFound)
	})
}

func TestPayslipService_SendBulkEmails(t *testing.T) {
	d := setupServiceTest(t, payslip.Config{})
	ok := activeEmployee("EMP001", 50000)
	okSlip := storedPayslip(ok)
	bad := activeEmployee("EMP002", 20000)
	badSlip := storedPayslip(bad)

	d.repo.EXPECT().FindByID(gomock.Any(), okSlip.ID.String()).Return(okSlip, nil)
	d.employees.EXPECT().FindByID(gomock.Any(), ok.ID.String()).Return(ok, nil)
	d.repo.EXPECT().FindByID(gomock.Any(), badSlip.ID.String()).Return(badSlip, nil)
	d.employees.EXPECT().FindByID(gomock.Any(), bad.ID.String()).Return(bad, nil)

	d.renderer.EXPECT().RenderPayslip(gomock.Any(), gomock.Any()).Return([]byte("%PDF-1.3"), nil).Times(2)
	gomock.InOrder(
		d.notifier.EXPECT().SendPayslip(gomock.Any(), gomock.Any(), true).Return(notification.Result{Success: true, MessageID: "<ok@example.com>"}),
		d.notifier.EXPECT().SendPayslip(gomock.Any(), gomock.Any(), true).Return(notification.Result{Error: "mailbox full"}),
	)
	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectCommit()
	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectCommit()
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo).Times(2)
	d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) (*payslip.Payslip, error) {
		if id == okSlip.ID.String() {
			cp := *okSlip
			return &cp, nil
		}
		cp := *badSlip
		return &cp, nil
	}).Times(2)
	d.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	d.repo.EXPECT().CreateEmailLog(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	result, err := d.service.SendBulkEmails(context.Background(), []string{"not-a-uuid", okSlip.ID.String(), badSlip.ID.String()})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Results, 3)
	assert.Equal(t, "Invalid payslip ID", result.Results[0].Error)
	assert.True(t, result.Results[1].Success)
	assert.Equal(t, "EMP001", result.Results[1].EmployeeCode)
	assert.Equal(t, "mailbox full", result.Results[2].Error)
	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}

func TestPayslipService_RenderPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("names the file by code and period", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		p := storedPayslip(activeEmployee("EMP001", 50000))

		d.repo.EXPECT().FindByID(gomock.Any(), p.ID.String()).Return(p, nil)
		d.renderer.EXPECT().RenderPayslip(gomock.Any(), gomock.Any()).Return([]byte("%PDF-1.3"), nil)

		file, err := d.service.RenderPDF(ctx, p.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "payslip-EMP001-2025-03.pdf", file.Name)
		assert.Equal(t, "EMP001", file.EmployeeCode)
		assert.Equal(t, []byte("%PDF-1.3"), file.Content)
	})

	t.Run("renderer failure", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		p := storedPayslip(activeEmployee("EMP001", 50000))

		d.repo.EXPECT().FindByID(gomock.Any(), p.ID.String()).Return(p, nil)
		d.renderer.EXPECT().RenderPayslip(gomock.Any(), gomock.Any()).Return(nil, document.ErrRenderTimeout)

		_, err := d.service.RenderPDF(ctx, p.ID.String())
		assert.ErrorIs(t, err, paysliperrors.ErrRenderFailed)
	})
}

func TestPayslipService_EmailHistory(t *testing.T) {
	d := setupServiceTest(t, payslip.Config{})
	p := storedPayslip(activeEmployee("EMP001", 50000))
	p.EmailStatus = payslip.EmailFailed
	at := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

	d.repo.EXPECT().FindByID(gomock.Any(), p.ID.String()).Return(p, nil)
	d.repo.EXPECT().ListEmailLogs(gomock.Any(), p.ID.String()).Return([]payslip.EmailLog{
		{ID: uuid.New(), PayslipID: p.ID, SentAt: at, Success: true, MessageID: "<a@x>"},
		{ID: uuid.New(), PayslipID: p.ID, SentAt: at.Add(time.Hour), Error: "bounced", IsBulk: true},
	}, nil)

	resp, err := d.service.EmailHistory(context.Background(), p.ID.String())
	require.NoError(t, err)

	assert.Equal(t, payslip.EmailFailed, resp.EmailStatus)
	assert.Equal(t, 2, resp.TotalSends)
	assert.Equal(t, "2025-04-02T09:00:00Z", resp.History[0].SentAt)
	assert.True(t, resp.History[1].IsBulk)
	assert.Equal(t, "bounced", resp.History[1].Error)
}

func TestPayslipService_MarkEmailDelivered(t *testing.T) {
	ctx := context.Background()

	t.Run("current message is marked delivered", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		p := storedPayslip(activeEmployee("EMP001", 50000))
		p.EmailStatus = payslip.EmailSent
		p.EmailMessageID = "<m1@example.com>"

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByMessageIDForUpdate(gomock.Any(), "<m1@example.com>").Return(p, nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, got *payslip.Payslip) error {
			assert.Equal(t, payslip.EmailDelivered, got.EmailStatus)
			return nil
		})
		d.sqlMock.ExpectCommit()

		err := d.service.MarkEmailDelivered(ctx, payslip.DeliveryReceipt{MessageID: "<m1@example.com>", Delivered: true})
		require.NoError(t, err)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown message is dropped", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
		d.repo.EXPECT().FindByMessageIDForUpdate(gomock.Any(), "<gone@example.com>").Return(nil, gorm.ErrRecordNotFound)
		d.sqlMock.ExpectRollback()

		err := d.service.MarkEmailDelivered(ctx, payslip.DeliveryReceipt{MessageID: "<gone@example.com>", Delivered: true})
		assert.NoError(t, err)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("empty message id", func(t *testing.T) {
		d := setupServiceTest(t, payslip.Config{})
		assert.NoError(t, d.service.MarkEmailDelivered(ctx, payslip.DeliveryReceipt{}))
	})
}
