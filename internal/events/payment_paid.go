package events

import "time"

const PaymentPaidTopic = "payroll.payment.paid.v1"

type PaymentPaidEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	PaymentID        string    `json:"payment_id"`
	RequestNumber    string    `json:"request_number"`
	PayslipID        string    `json:"payslip_id"`
	EmployeeCode     string    `json:"employee_code"`
	Amount           string    `json:"amount"`
	PaymentReference string    `json:"payment_reference,omitempty"`
	ProcessedBy      string    `json:"processed_by"`
	OccurredAt       time.Time `json:"occurred_at"`
}
