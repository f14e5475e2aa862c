package payment

type BankDetailsRequest struct {
	AccountNumber string `json:"account_number" binding:"omitempty,max=40"`
	IFSCCode      string `json:"ifsc_code" binding:"omitempty,max=20"`
	BankName      string `json:"bank_name" binding:"omitempty,max=100"`
}

type CreatePaymentRequest struct {
	PayslipID        string              `json:"payslip_id" binding:"required,uuid"`
	PaymentDate      string              `json:"payment_date" binding:"required,datetime=2006-01-02"`
	PaymentMethod    string              `json:"payment_method" binding:"required,oneof=bank_transfer cheque cash upi other"`
	PaymentReference string              `json:"payment_reference" binding:"required,max=100"`
	BankDetails      *BankDetailsRequest `json:"bank_details"`
	Remarks          string              `json:"remarks" binding:"max=500"`
}

type ApproveRequest struct {
	Comments string `json:"comments" binding:"max=500"`
}

type ProcessRequest struct {
	Remarks string `json:"remarks" binding:"max=500"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type PaymentFilter struct {
	Status       Status
	Month        int
	Year         int
	EmployeeID   string
	EmployeeCode string
	Page         int
	PageSize     int
}

type BankDetailsResponse struct {
	AccountNumber string `json:"account_number,omitempty"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
}

type PaymentResponse struct {
	ID                string               `json:"id"`
	RequestNumber     string               `json:"request_number"`
	PayslipID         string               `json:"payslip_id"`
	EmployeeID        string               `json:"employee_id"`
	EmployeeCode      string               `json:"employee_code"`
	EmployeeName      string               `json:"employee_name"`
	Month             int                  `json:"month"`
	Year              int                  `json:"year"`
	Amount            float64              `json:"amount"`
	PaymentDate       string               `json:"payment_date"`
	PaymentMethod     string               `json:"payment_method"`
	PaymentReference  string               `json:"payment_reference"`
	BankDetails       *BankDetailsResponse `json:"bank_details,omitempty"`
	Remarks           string               `json:"remarks,omitempty"`
	Status            Status               `json:"status"`
	RequestedBy       string               `json:"requested_by"`
	RequestedAt       string               `json:"requested_at"`
	FinanceApprovedBy *string              `json:"finance_approved_by,omitempty"`
	FinanceApprovedAt *string              `json:"finance_approved_at,omitempty"`
	FinanceComments   string               `json:"finance_comments,omitempty"`
	MDApprovedBy      *string              `json:"md_approved_by,omitempty"`
	MDApprovedAt      *string              `json:"md_approved_at,omitempty"`
	MDComments        string               `json:"md_comments,omitempty"`
	ProcessedBy       *string              `json:"processed_by,omitempty"`
	ProcessedAt       *string              `json:"processed_at,omitempty"`
	RejectedBy        *string              `json:"rejected_by,omitempty"`
	RejectedAt        *string              `json:"rejected_at,omitempty"`
	RejectionReason   string               `json:"rejection_reason,omitempty"`
}

type StatusTotal struct {
	Status      string  `json:"status"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

type StatsResponse struct {
	TotalPayments   int64         `json:"total_payments"`
	TotalAmount     float64       `json:"total_amount"`
	StatusBreakdown []StatusTotal `json:"status_breakdown"`
}
