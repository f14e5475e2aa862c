package paysliperrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payslip not found",
		http.StatusNotFound,
	)
	ErrPayslipExists = apperror.New(
		apperror.CodeConflict,
		"Payslip already exists for this month and year",
		http.StatusBadRequest,
	)
	ErrInvalidPayslipID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payslip ID",
		http.StatusBadRequest,
	)
	ErrNoActiveEmployees = apperror.New(
		apperror.CodeInvalidInput,
		"No active employees found",
		http.StatusBadRequest,
	)
	ErrEmployeeEmailMissing = apperror.New(
		apperror.CodeInvalidInput,
		"Employee email not found",
		http.StatusBadRequest,
	)
	ErrAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"Payslip is already marked as paid",
		http.StatusBadRequest,
	)
	ErrRenderFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to render document",
		http.StatusInternalServerError,
	)
)
