package importererrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"No file uploaded",
		http.StatusBadRequest,
	)
	ErrPeriodRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Month and year are required",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year 2020-2030",
		http.StatusBadRequest,
	)
	ErrUnreadableFile = apperror.New(
		apperror.CodeInvalidInput,
		"Error parsing CSV file",
		http.StatusBadRequest,
	)
	ErrCodeColumnMissing = apperror.New(
		apperror.CodeInvalidInput,
		"CSV header has no employee code column",
		http.StatusBadRequest,
	)
)
