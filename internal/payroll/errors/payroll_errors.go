package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrProcessedAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Processed attendance record not found",
		http.StatusNotFound,
	)
	ErrEmployeeCodeRequired = apperror.RequiredField("employee_code")
	ErrInvalidReportType    = apperror.New(
		apperror.CodeInvalidInput,
		"Report type must be one of monthly, quarterly, yearly, summary",
		http.StatusBadRequest,
	)
	ErrReportMonthRequired = apperror.New(
		apperror.CodeInvalidInput,
		"month is required for monthly and quarterly reports",
		http.StatusBadRequest,
	)
	ErrReportRenderFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to render payroll report",
		http.StatusInternalServerError,
	)
)
