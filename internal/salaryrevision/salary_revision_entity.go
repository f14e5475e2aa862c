package salaryrevision

import (
	"strings"
	"time"

	salaryrevisionerrors "go-payroll/internal/salaryrevision/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending         Status = "pending"
	StatusHRApproved      Status = "hr_approved"
	StatusFinanceApproved Status = "finance_approved"
	StatusMDApproved      Status = "md_approved"
	StatusRejected        Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusHRApproved, StatusFinanceApproved, StatusMDApproved, StatusRejected:
		return true
	}
	return false
}

type SalaryRevision struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_revision_employee_status"`
	EmployeeCode string    `gorm:"not null;index"`
	EmployeeName string    `gorm:"not null"`

	CurrentSalary decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	NewSalary     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	EffectiveDate time.Time       `gorm:"type:date;not null"`
	Reason        string          `gorm:"type:varchar(20);not null"`
	Description   string          `gorm:"type:text;not null"`

	Status      string    `gorm:"type:varchar(20);not null;default:pending;index:idx_revision_employee_status;index:idx_revision_status_requested"`
	RequestedBy string    `gorm:"not null"`
	RequestedAt time.Time `gorm:"not null;index:idx_revision_status_requested"`

	HRApprovedBy      *string
	HRApprovedAt      *time.Time
	HRComments        string
	FinanceApprovedBy *string
	FinanceApprovedAt *time.Time
	FinanceComments   string
	MDApprovedBy      *string
	MDApprovedAt      *time.Time
	MDComments        string
	RejectedBy        *string
	RejectedAt        *time.Time
	RejectionReason   string
	ImplementedBy     *string
	ImplementedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SalaryRevision) TableName() string {
	return "salary_revisions"
}

func (r *SalaryRevision) CurrentStatus() Status {
	return Status(r.Status)
}

func (r *SalaryRevision) HRApprove(actor, comments string, at time.Time) error {
	if r.CurrentStatus() != StatusPending {
		return salaryrevisionerrors.ErrNotPending
	}
	r.Status = string(StatusHRApproved)
	r.HRApprovedBy = &actor
	r.HRApprovedAt = &at
	r.HRComments = comments
	return nil
}

func (r *SalaryRevision) FinanceApprove(actor, comments string, at time.Time) error {
	if r.CurrentStatus() != StatusHRApproved {
		return salaryrevisionerrors.ErrNotHRApproved
	}
	r.Status = string(StatusFinanceApproved)
	r.FinanceApprovedBy = &actor
	r.FinanceApprovedAt = &at
	r.FinanceComments = comments
	return nil
}

// MDApprove is the final stage. It also stamps the implementation; the caller applies the new salary.
func (r *SalaryRevision) MDApprove(actor, comments string, at time.Time) error {
	if r.CurrentStatus() != StatusFinanceApproved {
		return salaryrevisionerrors.ErrNotFinanceApproved
	}
	r.Status = string(StatusMDApproved)
	r.MDApprovedBy = &actor
	r.MDApprovedAt = &at
	r.MDComments = comments
	r.ImplementedBy = &actor
	r.ImplementedAt = &at
	return nil
}

func (r *SalaryRevision) Reject(actor, reason string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return salaryrevisionerrors.ErrRejectReasonRequired
	}
	switch r.CurrentStatus() {
	case StatusRejected:
		return salaryrevisionerrors.ErrAlreadyRejected
	case StatusMDApproved:
		return salaryrevisionerrors.ErrAlreadyImplemented
	}
	r.Status = string(StatusRejected)
	r.RejectedBy = &actor
	r.RejectedAt = &at
	r.RejectionReason = reason
	return nil
}
