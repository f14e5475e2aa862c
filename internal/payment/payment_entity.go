package payment

import (
	"strings"
	"time"

	paymenterrors "go-payroll/internal/payment/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending         Status = "pending"
	StatusFinanceApproved Status = "finance_approved"
	StatusMDApproved      Status = "md_approved"
	StatusPaid            Status = "paid"
	StatusRejected        Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusFinanceApproved, StatusMDApproved, StatusPaid, StatusRejected:
		return true
	}
	return false
}

const (
	MethodBankTransfer = "bank_transfer"
	MethodCheque       = "cheque"
	MethodCash         = "cash"
	MethodUPI          = "upi"
	MethodOther        = "other"
)

type BankDetails struct {
	AccountNumber string `gorm:"type:varchar(40)"`
	IFSCCode      string `gorm:"type:varchar(20)"`
	BankName      string `gorm:"type:varchar(100)"`
}

type PaymentRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestNumber string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_payment_request_number"`
	PayslipID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payment_active_payslip,where:status <> 'rejected'"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index:idx_payment_employee_period"`
	EmployeeCode  string    `gorm:"not null;index"`
	EmployeeName  string    `gorm:"not null"`
	Month         int       `gorm:"not null;index:idx_payment_employee_period"`
	Year          int       `gorm:"not null;index:idx_payment_employee_period"`

	Amount           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentDate      time.Time       `gorm:"type:date;not null"`
	PaymentMethod    string          `gorm:"type:varchar(20);not null"`
	PaymentReference string          `gorm:"not null"`
	Bank             BankDetails     `gorm:"embedded;embeddedPrefix:bank_"`
	Remarks          string

	Status      string    `gorm:"type:varchar(20);not null;default:pending;index:idx_payment_status_requested"`
	RequestedBy string    `gorm:"not null"`
	RequestedAt time.Time `gorm:"not null;index:idx_payment_status_requested"`

	FinanceApprovedBy *string
	FinanceApprovedAt *time.Time
	FinanceComments   string
	MDApprovedBy      *string
	MDApprovedAt      *time.Time
	MDComments        string
	ProcessedBy       *string
	ProcessedAt       *time.Time
	RejectedBy        *string
	RejectedAt        *time.Time
	RejectionReason   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PaymentRequest) TableName() string {
	return "payment_requests"
}

func (p *PaymentRequest) CurrentStatus() Status {
	return Status(p.Status)
}

// Active reports whether the request still blocks a new request for the same payslip.
func (p *PaymentRequest) Active() bool {
	return p.CurrentStatus() != StatusRejected
}

func (p *PaymentRequest) FinanceApprove(actor, comments string, at time.Time) error {
	if p.CurrentStatus() != StatusPending {
		return paymenterrors.ErrNotPending
	}
	p.Status = string(StatusFinanceApproved)
	p.FinanceApprovedBy = &actor
	p.FinanceApprovedAt = &at
	p.FinanceComments = comments
	return nil
}

func (p *PaymentRequest) MDApprove(actor, comments string, at time.Time) error {
	if p.CurrentStatus() != StatusFinanceApproved {
		return paymenterrors.ErrNotFinanceApproved
	}
	p.Status = string(StatusMDApproved)
	p.MDApprovedBy = &actor
	p.MDApprovedAt = &at
	p.MDComments = comments
	return nil
}

// Process marks the request paid. The caller flips the linked payslip in the same transaction.
func (p *PaymentRequest) Process(actor, remarks string, at time.Time) error {
	if p.CurrentStatus() != StatusMDApproved {
		return paymenterrors.ErrNotMDApproved
	}
	p.Status = string(StatusPaid)
	p.ProcessedBy = &actor
	p.ProcessedAt = &at
	if remarks != "" {
		p.Remarks = remarks
	}
	return nil
}

func (p *PaymentRequest) Reject(actor, reason string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return paymenterrors.ErrRejectReasonRequired
	}
	switch p.CurrentStatus() {
	case StatusRejected:
		return paymenterrors.ErrAlreadyRejected
	case StatusPaid:
		return paymenterrors.ErrAlreadyPaid
	}
	p.Status = string(StatusRejected)
	p.RejectedBy = &actor
	p.RejectedAt = &at
	p.RejectionReason = reason
	return nil
}
