package salaryrevisionerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrRevisionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary revision not found",
		http.StatusNotFound,
	)
	ErrInvalidRevisionID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary revision ID",
		http.StatusBadRequest,
	)
	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"Valid effective date is required",
		http.StatusBadRequest,
	)
	ErrInvalidNewSalary = apperror.New(
		apperror.CodeInvalidInput,
		"New salary must be greater than 0",
		http.StatusBadRequest,
	)
	ErrRejectReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Rejection reason is required",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.InvalidField("status")

	ErrNotPending         = apperror.StateGuard("Salary revision is not in pending status")
	ErrNotHRApproved      = apperror.StateGuard("Salary revision must be HR approved first")
	ErrNotFinanceApproved = apperror.StateGuard("Salary revision must be Finance approved first")
	ErrAlreadyRejected    = apperror.StateGuard("Salary revision is already rejected")
	ErrAlreadyImplemented = apperror.StateGuard("Implemented salary revisions cannot be rejected")
)
