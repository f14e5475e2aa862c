package payment

import (
	"strings"

	paymenterrors "go-payroll/internal/payment/errors"
	"go-payroll/internal/shared/database"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if database.IsNotFound(err) {
		return paymenterrors.ErrPaymentNotFound
	}

	if constraint, ok := database.UniqueViolation(err); ok {
		if constraint == "" || constraint == "uq_payment_active_payslip" {
			return paymenterrors.ErrPaymentExists
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed: payment_requests.payslip_id") {
		return paymenterrors.ErrPaymentExists
	}

	return err
}
