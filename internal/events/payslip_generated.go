package events

import "time"

const PayslipGeneratedTopic = "payroll.payslip.generated.v1"

type PayslipGeneratedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	PayslipID    string    `json:"payslip_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	NetSalary    string    `json:"net_salary"`
	OccurredAt   time.Time `json:"occurred_at"`
}
