package events

import "time"

const SalaryRevisionImplementedTopic = "payroll.salary_revision.implemented.v1"

type SalaryRevisionImplementedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	RevisionID     string    `json:"revision_id"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeCode   string    `json:"employee_code"`
	PreviousSalary string    `json:"previous_salary"`
	NewSalary      string    `json:"new_salary"`
	ImplementedBy  string    `json:"implemented_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
