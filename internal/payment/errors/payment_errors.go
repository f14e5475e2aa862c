package paymenterrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrPaymentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payment request not found",
		http.StatusNotFound,
	)
	ErrInvalidPaymentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payment ID",
		http.StatusBadRequest,
	)
	ErrPaymentExists = apperror.New(
		apperror.CodeConflict,
		"Payment request already exists for this payslip",
		http.StatusBadRequest,
	)
	ErrInvalidPaymentDate = apperror.New(
		apperror.CodeInvalidInput,
		"Valid payment date is required",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.InvalidField("status")

	ErrNotPending         = apperror.StateGuard("Payment request is not in pending status")
	ErrNotFinanceApproved = apperror.StateGuard("Payment request must be Finance approved first")
	ErrNotMDApproved      = apperror.StateGuard("Payment request must be MD approved first")
	ErrAlreadyRejected    = apperror.StateGuard("Payment request is already rejected")
	ErrAlreadyPaid        = apperror.StateGuard("Paid payment requests cannot be rejected")

	ErrRejectReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Rejection reason is required",
		http.StatusBadRequest,
	)
)
