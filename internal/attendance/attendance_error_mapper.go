package attendance

import (
	"strings"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/shared/database"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if database.IsNotFound(err) {
		return attendanceerrors.ErrAttendanceNotFound
	}

	if constraint, ok := database.UniqueViolation(err); ok {
		if constraint == "" || constraint == "uq_attendance_period" {
			return attendanceerrors.ErrAttendanceExists
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed: attendances") {
		return attendanceerrors.ErrAttendanceExists
	}

	return err
}
