package employee

import "go-payroll/internal/salary"

type CreateEmployeeRequest struct {
	EmployeeCode  string  `json:"employee_code" binding:"required,max=32"`
	Name          string  `json:"name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         string  `json:"phone"`
	Department    string  `json:"department"`
	Designation   string  `json:"designation"`
	JoiningDate   string  `json:"joining_date"`
	Salary        float64 `json:"salary" binding:"gte=0"`
	PaidDays      *int    `json:"paid_days" binding:"omitempty,min=0,max=31"`
	DeductPF      *bool   `json:"deduct_pf"`
	DeductESIC    *bool   `json:"deduct_esic"`
	Reimbursement float64 `json:"reimbursement" binding:"gte=0"`
	Note          string  `json:"note"`
}

// UpdateEmployeeRequest is a partial update; nil fields are left untouched.
type UpdateEmployeeRequest struct {
	Name          *string  `json:"name"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Phone         *string  `json:"phone"`
	Department    *string  `json:"department"`
	Designation   *string  `json:"designation"`
	JoiningDate   *string  `json:"joining_date"`
	IsActive      *bool    `json:"is_active"`
	Salary        *float64 `json:"salary" binding:"omitempty,gte=0"`
	PaidDays      *int     `json:"paid_days" binding:"omitempty,min=0,max=31"`
	DeductPF      *bool    `json:"deduct_pf"`
	DeductESIC    *bool    `json:"deduct_esic"`
	Reimbursement *float64 `json:"reimbursement" binding:"omitempty,gte=0"`
	Note          *string  `json:"note"`
}

type CalculateSalaryRequest struct {
	Salary        float64 `json:"salary" binding:"gte=0"`
	PaidDays      *int    `json:"paid_days" binding:"omitempty,min=0,max=31"`
	DeductPF      *bool   `json:"deduct_pf"`
	DeductESIC    *bool   `json:"deduct_esic"`
	Reimbursement float64 `json:"reimbursement" binding:"gte=0"`
}

type EmployeeFilter struct {
	Search     string
	Department string
	Active     *bool
	Page       int
	PageSize   int
}

type EmployeeResponse struct {
	ID              string                   `json:"id"`
	EmployeeCode    string                   `json:"employee_code"`
	Name            string                   `json:"name"`
	Email           string                   `json:"email"`
	Phone           string                   `json:"phone,omitempty"`
	Department      string                   `json:"department,omitempty"`
	Designation     string                   `json:"designation,omitempty"`
	JoiningDate     string                   `json:"joining_date,omitempty"`
	IsActive        bool                     `json:"is_active"`
	Salary          float64                  `json:"salary"`
	PaidDays        int                      `json:"paid_days"`
	Leaves          int                      `json:"leaves"`
	DeductPF        bool                     `json:"deduct_pf"`
	DeductESIC      bool                     `json:"deduct_esic"`
	Reimbursement   float64                  `json:"reimbursement"`
	Note            string                   `json:"note,omitempty"`
	SalaryBreakdown salary.BreakdownResponse `json:"salary_breakdown"`
	CreatedAt       string                   `json:"created_at"`
	UpdatedAt       string                   `json:"updated_at"`
}

type EmployeeOptionResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
}

type SalaryBreakdownResponse struct {
	EmployeeID    string                   `json:"employee_id"`
	EmployeeCode  string                   `json:"employee_code"`
	Name          string                   `json:"name"`
	Salary        float64                  `json:"salary"`
	PaidDays      int                      `json:"paid_days"`
	Reimbursement float64                  `json:"reimbursement"`
	Breakdown     salary.BreakdownResponse `json:"breakdown"`
}
