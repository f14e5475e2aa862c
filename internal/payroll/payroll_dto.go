package payroll

// PeriodKeyRequest addresses an attendance record by its natural key.
type PeriodKeyRequest struct {
	EmployeeCode string `json:"employee_code" binding:"required"`
	Month        int    `json:"month" binding:"required,min=1,max=12"`
	Year         int    `json:"year" binding:"required,min=2020,max=2030"`
}

type ListFilter struct {
	Month    int
	Year     int
	Page     int
	PageSize int
}

type ReportType string

const (
	ReportMonthly   ReportType = "monthly"
	ReportQuarterly ReportType = "quarterly"
	ReportYearly    ReportType = "yearly"
	ReportSummary   ReportType = "summary"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportMonthly, ReportQuarterly, ReportYearly, ReportSummary:
		return true
	}
	return false
}

type ReportRequest struct {
	Type           ReportType `form:"type"`
	Month          int        `form:"month" binding:"omitempty,min=1,max=12"`
	Year           int        `form:"year" binding:"required,min=2020,max=2030"`
	IncludeDetails bool       `form:"include_details"`
}

// ReportFile is a rendered payroll report ready for download.
type ReportFile struct {
	Name    string
	Content []byte
}
