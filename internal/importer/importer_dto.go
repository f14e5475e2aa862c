package importer

type RowResult struct {
	Row          int    `json:"row"`
	EmployeeCode string `json:"employee_code"`
	Action       string `json:"action"`
	AttendanceID string `json:"attendance_id"`
}

type RowError struct {
	Row          int    `json:"row"`
	EmployeeCode string `json:"employee_code,omitempty"`
	Message      string `json:"message"`
}

type Result struct {
	Processed int         `json:"processed"`
	Total     int         `json:"total"`
	Results   []RowResult `json:"results"`
	Errors    []RowError  `json:"errors,omitempty"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)
