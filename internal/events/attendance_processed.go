package events

import "time"

const AttendanceProcessedTopic = "payroll.attendance.processed.v1"

// AttendanceProcessedEvent is emitted when an attendance record reaches the processed payroll stage.
type AttendanceProcessedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	AttendanceID string    `json:"attendance_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	NetSalary    string    `json:"net_salary"`
	ProcessedBy  string    `json:"processed_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
