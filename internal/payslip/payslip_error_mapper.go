package payslip

import (
	"strings"

	paysliperrors "go-payroll/internal/payslip/errors"
	"go-payroll/internal/shared/database"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if database.IsNotFound(err) {
		return paysliperrors.ErrPayslipNotFound
	}

	if constraint, ok := database.UniqueViolation(err); ok {
		if constraint == "" || constraint == "uq_payslip_period" {
			return paysliperrors.ErrPayslipExists
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed: payslips") {
		return paysliperrors.ErrPayslipExists
	}

	return err
}
