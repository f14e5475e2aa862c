package payslip

import (
	"time"

	"go-payroll/internal/notification"
	paysliperrors "go-payroll/internal/payslip/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EmailNotSent   = "not_sent"
	EmailSent      = "sent"
	EmailDelivered = "delivered"
	EmailFailed    = "failed"
)

// Payslip is a point-in-time copy of an employee's computed breakdown. Money columns are never recomputed.
type Payslip struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payslip_period"`
	Month        int       `gorm:"not null;uniqueIndex:uq_payslip_period"`
	Year         int       `gorm:"not null;uniqueIndex:uq_payslip_period"`
	EmployeeCode string    `gorm:"not null;index"`
	EmployeeName string    `gorm:"not null"`
	Department   string
	Designation  string

	Salary           decimal.Decimal `gorm:"type:numeric(14,2)"`
	PaidDays         int
	Leaves           int
	Basic            decimal.Decimal `gorm:"type:numeric(14,2)"`
	HRA              decimal.Decimal `gorm:"type:numeric(14,2)"`
	Conveyance       decimal.Decimal `gorm:"type:numeric(14,2)"`
	OtherAllowance   decimal.Decimal `gorm:"type:numeric(14,2)"`
	PF               decimal.Decimal `gorm:"type:numeric(14,2)"`
	ESIC             decimal.Decimal `gorm:"type:numeric(14,2)"`
	DayWiseDeduction decimal.Decimal `gorm:"type:numeric(14,2)"`
	NetSalary        decimal.Decimal `gorm:"type:numeric(14,2)"`

	GeneratedBy string
	GeneratedAt time.Time
	IsPaid      bool
	PaidAt      *time.Time

	EmailSent      bool
	EmailSentAt    *time.Time
	EmailStatus    string `gorm:"type:varchar(20);not null;default:not_sent"`
	EmailMessageID string `gorm:"index"`
	EmailError     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Payslip) TableName() string {
	return "payslips"
}

// EmailLog is one delivery attempt. Rows are only ever appended.
type EmailLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayslipID uuid.UUID `gorm:"type:uuid;not null;index"`
	SentAt    time.Time
	Success   bool
	MessageID string
	Error     string
	IsBulk    bool
}

func (EmailLog) TableName() string {
	return "payslip_email_logs"
}

// RecordEmail overwrites the latest delivery status. A failure keeps the last successful send time
// but drops the message id, so receipts for the earlier message no longer match.
func (p *Payslip) RecordEmail(res notification.Result, at time.Time) {
	p.EmailSent = res.Success
	if res.Success {
		p.EmailSentAt = &at
		p.EmailStatus = EmailSent
		p.EmailMessageID = res.MessageID
		p.EmailError = ""
		return
	}
	p.EmailStatus = EmailFailed
	p.EmailMessageID = ""
	p.EmailError = res.Error
}

// MarkPaid is reached only through a processed payment request.
func (p *Payslip) MarkPaid(at time.Time) error {
	if p.IsPaid {
		return paysliperrors.ErrAlreadyPaid
	}
	p.IsPaid = true
	p.PaidAt = &at
	return nil
}

// ApplyDeliveryReceipt reports whether the receipt changed the status. Receipts for an older message are ignored.
func (p *Payslip) ApplyDeliveryReceipt(messageID string, delivered bool, reason string) bool {
	if p.EmailMessageID == "" || p.EmailMessageID != messageID {
		return false
	}
	if delivered {
		if p.EmailStatus == EmailDelivered {
			return false
		}
		p.EmailStatus = EmailDelivered
		p.EmailError = ""
		return true
	}
	p.EmailStatus = EmailFailed
	p.EmailSent = false
	p.EmailError = reason
	return true
}
