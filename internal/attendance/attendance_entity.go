package attendance

import (
	"time"

	"go-payroll/internal/salary"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Attendance struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_period"`
	Month        int       `gorm:"not null;uniqueIndex:uq_attendance_period;index:idx_attendance_month_year"`
	Year         int       `gorm:"not null;uniqueIndex:uq_attendance_period;index:idx_attendance_month_year"`
	EmployeeCode string    `gorm:"not null;index"`
	EmployeeName string    `gorm:"not null"`

	TotalWorkingDays int
	PresentDays      int
	AbsentDays       int
	CasualLeaves     int
	SickLeaves       int
	EarnedLeaves     int
	OtherLeaves      int
	TotalLeaves      int
	HalfDays         int
	OvertimeHours    decimal.Decimal `gorm:"type:numeric(6,2)"`

	Status      string `gorm:"type:varchar(20);not null;default:draft;index"`
	SubmittedBy *string
	SubmittedAt *time.Time
	ApprovedBy  *string
	ApprovedAt  *time.Time
	Comments    string

	Salary           decimal.Decimal `gorm:"type:numeric(14,2)"`
	DeductPF         bool
	DeductESIC       bool
	Reimbursement    decimal.Decimal `gorm:"type:numeric(14,2)"`
	Note             string
	DayWiseDeduction decimal.Decimal `gorm:"type:numeric(14,2)"`
	NetSalary        decimal.Decimal `gorm:"type:numeric(14,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Attendance) TableName() string {
	return "attendances"
}

// Normalize re-derives the leave total and absent days from the entered counts.
func (a *Attendance) Normalize() {
	a.TotalLeaves = a.CasualLeaves + a.SickLeaves + a.EarnedLeaves + a.OtherLeaves
	a.AbsentDays = a.TotalLeaves + (a.TotalWorkingDays - a.PresentDays - a.TotalLeaves)
}

// EstimateLeaves splits absent days 40/30/20/10 across the leave types, flooring each share.
func (a *Attendance) EstimateLeaves(absent int) {
	if absent < 0 {
		absent = 0
	}
	a.CasualLeaves = absent * 40 / 100
	a.SickLeaves = absent * 30 / 100
	a.EarnedLeaves = absent * 20 / 100
	a.OtherLeaves = absent * 10 / 100
}

// Recompute derives the period's pay from the record's own inputs, using present days as paid days.
func (a *Attendance) Recompute() salary.Breakdown {
	b := salary.Calculate(salary.Input{
		Gross:         a.Salary,
		PaidDays:      a.PresentDays,
		DeductPF:      a.DeductPF,
		DeductESIC:    a.DeductESIC,
		Reimbursement: a.Reimbursement,
	})
	a.DayWiseDeduction = b.DayWiseDeduction
	a.NetSalary = b.NetSalary
	return b
}
