package attendance

import "go-payroll/internal/salary"

// UpsertAttendanceRequest enters a period's attendance. A nil leave split is estimated from absent days.
type UpsertAttendanceRequest struct {
	EmployeeID       string   `json:"employee_id" binding:"required,uuid"`
	Month            int      `json:"month" binding:"required,min=1,max=12"`
	Year             int      `json:"year" binding:"required,min=2020,max=2030"`
	Salary           *float64 `json:"salary" binding:"omitempty,gte=0"`
	PaidDays         int      `json:"paid_days" binding:"min=0,max=31"`
	TotalWorkingDays *int     `json:"total_working_days" binding:"omitempty,min=1,max=31"`
	CasualLeaves     *int     `json:"casual_leaves" binding:"omitempty,min=0"`
	SickLeaves       *int     `json:"sick_leaves" binding:"omitempty,min=0"`
	EarnedLeaves     *int     `json:"earned_leaves" binding:"omitempty,min=0"`
	OtherLeaves      *int     `json:"other_leaves" binding:"omitempty,min=0"`
	DeductPF         *bool    `json:"deduct_pf"`
	DeductESIC       *bool    `json:"deduct_esic"`
	Reimbursement    float64  `json:"reimbursement" binding:"gte=0"`
	Note             string   `json:"note"`
	Comments         string   `json:"comments"`
}

func (r UpsertAttendanceRequest) hasLeaveSplit() bool {
	return r.CasualLeaves != nil || r.SickLeaves != nil || r.EarnedLeaves != nil || r.OtherLeaves != nil
}

type BulkCreateRequest struct {
	Month              int  `json:"month" binding:"required,min=1,max=12"`
	Year               int  `json:"year" binding:"required,min=2020,max=2030"`
	TotalWorkingDays   int  `json:"total_working_days" binding:"required,min=1,max=31"`
	DefaultPresentDays *int `json:"default_present_days" binding:"omitempty,min=0,max=31"`
}

type ApproveRequest struct {
	Comments string `json:"comments"`
}

type RejectRequest struct {
	Comments string `json:"comments" binding:"required"`
}

type AttendanceFilter struct {
	Month        int
	Year         int
	Statuses     []Stage
	EmployeeID   string
	EmployeeCode string
	Page         int
	PageSize     int
}

type AttendanceResponse struct {
	ID               string       `json:"id"`
	EmployeeID       string       `json:"employee_id"`
	EmployeeCode     string       `json:"employee_code"`
	EmployeeName     string       `json:"employee_name"`
	Month            int          `json:"month"`
	Year             int          `json:"year"`
	TotalWorkingDays int          `json:"total_working_days"`
	PresentDays      int          `json:"present_days"`
	AbsentDays       int          `json:"absent_days"`
	CasualLeaves     int          `json:"casual_leaves"`
	SickLeaves       int          `json:"sick_leaves"`
	EarnedLeaves     int          `json:"earned_leaves"`
	OtherLeaves      int          `json:"other_leaves"`
	TotalLeaves      int          `json:"total_leaves"`
	HalfDays         int          `json:"half_days"`
	OvertimeHours    float64      `json:"overtime_hours"`
	Status           Stage        `json:"status"`
	PayrollStage     PayrollStage `json:"payroll_stage"`
	SubmittedBy      *string      `json:"submitted_by,omitempty"`
	SubmittedAt      *string      `json:"submitted_at,omitempty"`
	ApprovedBy       *string      `json:"approved_by,omitempty"`
	ApprovedAt       *string      `json:"approved_at,omitempty"`
	Comments         string       `json:"comments,omitempty"`
	Salary           float64      `json:"salary"`
	DeductPF         bool         `json:"deduct_pf"`
	DeductESIC       bool         `json:"deduct_esic"`
	Reimbursement    float64      `json:"reimbursement"`
	Note             string       `json:"note,omitempty"`
	DayWiseDeduction float64      `json:"day_wise_deduction"`
	NetSalary        float64      `json:"net_salary"`
	UpdatedAt        string       `json:"updated_at"`
}

// UpsertResponse carries the record plus the employee breakdown recomputed from the same inputs.
type UpsertResponse struct {
	Attendance     AttendanceResponse       `json:"attendance"`
	Created        bool                     `json:"created"`
	EmployeeSalary salary.BreakdownResponse `json:"employee_salary"`
}

type BulkCreateResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Total   int      `json:"total"`
	Errors  []string `json:"errors,omitempty"`
}

type StatsSummary struct {
	TotalEmployees    int64   `json:"total_employees"`
	TotalPresentDays  int64   `json:"total_present_days"`
	TotalAbsentDays   int64   `json:"total_absent_days"`
	TotalLeaves       int64   `json:"total_leaves"`
	AverageAttendance float64 `json:"average_attendance"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type StatsResponse struct {
	Summary         StatsSummary  `json:"summary"`
	StatusBreakdown []StatusCount `json:"status_breakdown"`
}
