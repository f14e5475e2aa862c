package attendance

import (
	"strings"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
)

// Stage is the attendance lifecycle state stored in the status column.
type Stage string

const (
	StageDraft     Stage = "draft"
	StageSubmitted Stage = "submitted"
	StageApproved  Stage = "approved"
	StageRejected  Stage = "rejected"
)

func (s Stage) Valid() bool {
	switch s {
	case StageDraft, StageSubmitted, StageApproved, StageRejected:
		return true
	}
	return false
}

// PayrollStage is the payroll view of the same status column.
// submitted reads as moved to payroll and approved reads as salary processed.
type PayrollStage string

const (
	PayrollNotMoved  PayrollStage = "not_moved"
	PayrollMoved     PayrollStage = "moved"
	PayrollProcessed PayrollStage = "processed"
)

func (a *Attendance) Stage() Stage {
	return Stage(a.Status)
}

func (a *Attendance) PayrollStage() PayrollStage {
	switch a.Stage() {
	case StageSubmitted:
		return PayrollMoved
	case StageApproved:
		return PayrollProcessed
	default:
		return PayrollNotMoved
	}
}

// Editable reports whether the entered inputs may still be overwritten.
func (a *Attendance) Editable() bool {
	s := a.Stage()
	return s == StageDraft || s == StageRejected || s == ""
}

func (a *Attendance) Submit(actor string, at time.Time) error {
	if a.Stage() != StageDraft {
		return attendanceerrors.ErrNotDraft
	}
	a.Status = string(StageSubmitted)
	a.SubmittedBy = &actor
	a.SubmittedAt = &at
	return nil
}

func (a *Attendance) Approve(actor, comments string, at time.Time) error {
	if a.Stage() != StageSubmitted {
		return attendanceerrors.ErrNotSubmitted
	}
	a.Status = string(StageApproved)
	a.ApprovedBy = &actor
	a.ApprovedAt = &at
	a.Comments = comments
	return nil
}

func (a *Attendance) Reject(actor, reason string, at time.Time) error {
	if a.Stage() == StageRejected {
		return attendanceerrors.ErrAlreadyRejected
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return attendanceerrors.ErrRejectReasonRequired
	}
	a.Status = string(StageRejected)
	a.ApprovedBy = &actor
	a.ApprovedAt = &at
	a.Comments = reason
	return nil
}

// MoveToPayroll hands a draft record to payroll. It reuses the submit stamps.
func (a *Attendance) MoveToPayroll(actor string, at time.Time) error {
	switch a.Stage() {
	case StageDraft:
	case StageSubmitted, StageApproved:
		return attendanceerrors.ErrAlreadyInPayroll
	default:
		return attendanceerrors.ErrNotDraft
	}
	a.Status = string(StageSubmitted)
	a.SubmittedBy = &actor
	a.SubmittedAt = &at
	return nil
}

func (a *Attendance) MarkProcessed(actor string, at time.Time) error {
	if a.Stage() != StageSubmitted {
		return attendanceerrors.ErrNotSubmitted
	}
	a.Status = string(StageApproved)
	a.ApprovedBy = &actor
	a.ApprovedAt = &at
	return nil
}

func (a *Attendance) RevertFromPayroll() error {
	if a.Stage() != StageSubmitted {
		return attendanceerrors.ErrNotSubmitted
	}
	a.Status = string(StageDraft)
	a.SubmittedBy = nil
	a.SubmittedAt = nil
	return nil
}

func (a *Attendance) RevertProcessed() error {
	if a.Stage() != StageApproved {
		return attendanceerrors.ErrNotProcessed
	}
	a.Status = string(StageSubmitted)
	a.ApprovedBy = nil
	a.ApprovedAt = nil
	return nil
}

// resetToDraft is used by upsert when a draft or rejected record is re-entered.
func (a *Attendance) resetToDraft() {
	a.Status = string(StageDraft)
	a.SubmittedBy = nil
	a.SubmittedAt = nil
	a.ApprovedBy = nil
	a.ApprovedAt = nil
}
