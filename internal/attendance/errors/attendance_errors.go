package attendanceerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)
	ErrSubmittedAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Submitted attendance record not found",
		http.StatusNotFound,
	)
	ErrAttendanceExists = apperror.New(
		apperror.CodeConflict,
		"Attendance record already exists for this period",
		http.StatusBadRequest,
	)
	ErrInvalidAttendanceID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid attendance ID",
		http.StatusBadRequest,
	)
	ErrPaidDaysRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Paid days must be greater than 0",
		http.StatusBadRequest,
	)
	ErrRejectReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Rejection reason is required",
		http.StatusBadRequest,
	)
	ErrNoActiveEmployees = apperror.New(
		apperror.CodeInvalidInput,
		"No active employees found",
		http.StatusBadRequest,
	)
	ErrPresentExceedsWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"Present days cannot exceed total working days",
		http.StatusBadRequest,
	)
	ErrLeavesExceedAbsentDays = apperror.New(
		apperror.CodeInvalidInput,
		"Leave breakdown cannot exceed absent days",
		http.StatusBadRequest,
	)

	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"Attendance record is not in draft status",
		http.StatusBadRequest,
	)
	ErrNotSubmitted = apperror.New(
		apperror.CodeInvalidState,
		"Attendance record must be submitted first",
		http.StatusBadRequest,
	)
	ErrAlreadyRejected = apperror.New(
		apperror.CodeInvalidState,
		"Attendance record is already rejected",
		http.StatusBadRequest,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"Attendance record is in payroll; revert it to draft before editing",
		http.StatusBadRequest,
	)
	ErrAlreadyInPayroll = apperror.New(
		apperror.CodeInvalidState,
		"Attendance record has already been moved to payroll",
		http.StatusBadRequest,
	)
	ErrNotProcessed = apperror.New(
		apperror.CodeInvalidState,
		"Attendance record has not been processed",
		http.StatusBadRequest,
	)
)
