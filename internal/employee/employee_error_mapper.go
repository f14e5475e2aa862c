package employee

import (
	"strings"

	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/database"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if database.IsNotFound(err) {
		return employeeerrors.ErrEmployeeNotFound
	}

	if constraint, ok := database.UniqueViolation(err); ok {
		switch constraint {
		case "uq_employee_code":
			return employeeerrors.ErrEmployeeCodeAlreadyExists
		case "uq_employee_email":
			return employeeerrors.ErrEmployeeEmailAlreadyExists
		}
	}

	// sqlite reports "UNIQUE constraint failed: employees.email"
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unique") {
		switch {
		case strings.Contains(errMsg, "employee_code"):
			return employeeerrors.ErrEmployeeCodeAlreadyExists
		case strings.Contains(errMsg, "email"):
			return employeeerrors.ErrEmployeeEmailAlreadyExists
		}
	}

	return err
}
