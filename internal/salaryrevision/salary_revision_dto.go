package salaryrevision

type CreateRevisionRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required,uuid"`
	NewSalary     float64 `json:"new_salary" binding:"required,gt=0"`
	EffectiveDate string  `json:"effective_date" binding:"required,datetime=2006-01-02"`
	Reason        string  `json:"reason" binding:"required,oneof=increment promotion adjustment bonus other"`
	Description   string  `json:"description" binding:"required,max=1000"`
}

type ApproveRequest struct {
	Comments string `json:"comments" binding:"max=500"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type RevisionFilter struct {
	Status       Status
	EmployeeID   string
	EmployeeCode string
	Page         int
	PageSize     int
}

type RevisionResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	EmployeeCode      string  `json:"employee_code"`
	EmployeeName      string  `json:"employee_name"`
	CurrentSalary     float64 `json:"current_salary"`
	NewSalary         float64 `json:"new_salary"`
	EffectiveDate     string  `json:"effective_date"`
	Reason            string  `json:"reason"`
	Description       string  `json:"description"`
	Status            Status  `json:"status"`
	RequestedBy       string  `json:"requested_by"`
	RequestedAt       string  `json:"requested_at"`
	HRApprovedBy      *string `json:"hr_approved_by,omitempty"`
	HRApprovedAt      *string `json:"hr_approved_at,omitempty"`
	HRComments        string  `json:"hr_comments,omitempty"`
	FinanceApprovedBy *string `json:"finance_approved_by,omitempty"`
	FinanceApprovedAt *string `json:"finance_approved_at,omitempty"`
	FinanceComments   string  `json:"finance_comments,omitempty"`
	MDApprovedBy      *string `json:"md_approved_by,omitempty"`
	MDApprovedAt      *string `json:"md_approved_at,omitempty"`
	MDComments        string  `json:"md_comments,omitempty"`
	RejectedBy        *string `json:"rejected_by,omitempty"`
	RejectedAt        *string `json:"rejected_at,omitempty"`
	RejectionReason   string  `json:"rejection_reason,omitempty"`
	ImplementedBy     *string `json:"implemented_by,omitempty"`
	ImplementedAt     *string `json:"implemented_at,omitempty"`
}
