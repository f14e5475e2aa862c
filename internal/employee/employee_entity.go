package employee

import (
	"time"

	"go-payroll/internal/salary"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode string    `gorm:"uniqueIndex:uq_employee_code;not null"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex:uq_employee_email;not null"`
	Phone        string
	Department   string
	Designation  string
	JoiningDate  *time.Time `gorm:"type:date"`
	IsActive     bool       `gorm:"index"`

	Salary        decimal.Decimal `gorm:"type:numeric(14,2)"`
	PaidDays      int
	Leaves        int
	DeductPF      bool
	DeductESIC    bool
	Reimbursement decimal.Decimal `gorm:"type:numeric(14,2)"`
	Note          string

	Basic            decimal.Decimal `gorm:"type:numeric(14,2)"`
	HRA              decimal.Decimal `gorm:"type:numeric(14,2)"`
	Conveyance       decimal.Decimal `gorm:"type:numeric(14,2)"`
	OtherAllowance   decimal.Decimal `gorm:"type:numeric(14,2)"`
	PF               decimal.Decimal `gorm:"type:numeric(14,2)"`
	ESIC             decimal.Decimal `gorm:"type:numeric(14,2)"`
	DayWiseDeduction decimal.Decimal `gorm:"type:numeric(14,2)"`
	NetSalary        decimal.Decimal `gorm:"type:numeric(14,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) SalaryInput() salary.Input {
	return salary.Input{
		Gross:         e.Salary,
		PaidDays:      e.PaidDays,
		DeductPF:      e.DeductPF,
		DeductESIC:    e.DeductESIC,
		Reimbursement: e.Reimbursement,
	}
}

// Recompute derives the stored breakdown from the five calculator inputs.
// Every mutation of Salary, PaidDays, DeductPF, DeductESIC or Reimbursement must be followed by a call.
func (e *Employee) Recompute() salary.Breakdown {
	b := salary.Calculate(e.SalaryInput())
	e.Basic = b.Basic
	e.HRA = b.HRA
	e.Conveyance = b.Conveyance
	e.OtherAllowance = b.OtherAllowance
	e.PF = b.PF
	e.ESIC = b.ESIC
	e.DayWiseDeduction = b.DayWiseDeduction
	e.NetSalary = b.NetSalary
	return b
}

// Breakdown returns the last computed breakdown as stored on the record.
func (e *Employee) Breakdown() salary.Breakdown {
	return salary.Breakdown{
		Basic:            e.Basic,
		HRA:              e.HRA,
		Conveyance:       e.Conveyance,
		OtherAllowance:   e.OtherAllowance,
		PF:               e.PF,
		ESIC:             e.ESIC,
		DayWiseDeduction: e.DayWiseDeduction,
		NetSalary:        e.NetSalary,
	}
}
