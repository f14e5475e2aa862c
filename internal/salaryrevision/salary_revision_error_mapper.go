package salaryrevision

import (
	salaryrevisionerrors "go-payroll/internal/salaryrevision/errors"
	"go-payroll/internal/shared/database"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if database.IsNotFound(err) {
		return salaryrevisionerrors.ErrRevisionNotFound
	}
	return err
}
