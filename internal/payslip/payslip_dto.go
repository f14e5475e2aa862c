package payslip

import "time"

type GenerateRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Year       int    `json:"year" binding:"required,min=2020,max=2030"`
	SendEmail  bool   `json:"send_email"`
}

type GenerateBulkRequest struct {
	Month     int  `json:"month" binding:"required,min=1,max=12"`
	Year      int  `json:"year" binding:"required,min=2020,max=2030"`
	SendEmail bool `json:"send_email"`
}

type BulkEmailRequest struct {
	PayslipIDs []string `json:"payslip_ids" binding:"required,min=1,dive,uuid"`
}

type PayslipFilter struct {
	Month        int
	Year         int
	EmployeeCode string
	Page         int
	PageSize     int
}

type PayslipResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeCode     string  `json:"employee_code"`
	EmployeeName     string  `json:"employee_name"`
	Department       string  `json:"department,omitempty"`
	Designation      string  `json:"designation,omitempty"`
	Month            int     `json:"month"`
	Year             int     `json:"year"`
	Salary           float64 `json:"salary"`
	PaidDays         int     `json:"paid_days"`
	Leaves           int     `json:"leaves"`
	Basic            float64 `json:"basic"`
	HRA              float64 `json:"hra"`
	Conveyance       float64 `json:"conveyance"`
	OtherAllowance   float64 `json:"other_allowance"`
	PF               float64 `json:"pf"`
	ESIC             float64 `json:"esic"`
	DayWiseDeduction float64 `json:"day_wise_deduction"`
	NetSalary        float64 `json:"net_salary"`
	GeneratedBy      string  `json:"generated_by,omitempty"`
	GeneratedAt      string  `json:"generated_at"`
	IsPaid           bool    `json:"is_paid"`
	PaidAt           *string `json:"paid_at,omitempty"`
	EmailSent        bool    `json:"email_sent"`
	EmailSentAt      *string `json:"email_sent_at,omitempty"`
	EmailStatus      string  `json:"email_status"`
	EmailMessageID   string  `json:"email_message_id,omitempty"`
	EmailError       string  `json:"email_error,omitempty"`
}

// GenerateResponse reports payslip creation and the optional email independently.
type GenerateResponse struct {
	Payslip    PayslipResponse `json:"payslip"`
	EmailSent  bool            `json:"email_sent"`
	EmailError *string         `json:"email_error"`
}

type EmailResult struct {
	PayslipID    string `json:"payslip_id,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
	Success      bool   `json:"success"`
	MessageID    string `json:"message_id,omitempty"`
	Error        string `json:"error,omitempty"`
}

type BulkGenerateResult struct {
	Generated    int           `json:"generated"`
	Total        int           `json:"total"`
	Errors       []string      `json:"errors,omitempty"`
	EmailResults []EmailResult `json:"email_results,omitempty"`
}

type SendEmailResponse struct {
	EmailSent  bool    `json:"email_sent"`
	MessageID  string  `json:"message_id,omitempty"`
	Error      *string `json:"error"`
	TotalSends int64   `json:"total_sends"`
	LastSentAt *string `json:"last_sent_at,omitempty"`
}

type BulkEmailResult struct {
	Total      int           `json:"total"`
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Results    []EmailResult `json:"results"`
}

type EmailLogResponse struct {
	SentAt    string `json:"sent_at"`
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
	IsBulk    bool   `json:"is_bulk"`
}

type EmailHistoryResponse struct {
	PayslipID   string             `json:"payslip_id"`
	EmailStatus string             `json:"email_status"`
	TotalSends  int                `json:"total_sends"`
	History     []EmailLogResponse `json:"history"`
}

// PDFFile is a rendered payslip ready for download.
type PDFFile struct {
	Name         string
	EmployeeCode string
	Content      []byte
}

// DeliveryReceipt is a relay-reported outcome for a previously sent message.
type DeliveryReceipt struct {
	PayslipID string
	MessageID string
	Delivered bool
	Reason    string
	At        time.Time
}
