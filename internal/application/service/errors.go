package service

import "errors"

var (
	// ErrReportNotFound is returned when a report identifier does not resolve
	ErrReportNotFound = errors.New("report not found")

	// ErrStatusConflict is returned when the stored status no longer matches
	// the status the actor believed they were transitioning from. The caller
	// should reload and retry; no history is written.
	ErrStatusConflict = errors.New("report was already updated by someone else")

	// ErrPermissionDenied is returned when the actor may not see or act on
	// the report
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotEditable is returned when the report is past the author-editable
	// statuses
	ErrNotEditable = errors.New("report is not editable in its current status")

	// ErrUserNotFound is returned when an actor identifier does not resolve
	ErrUserNotFound = errors.New("user not found")

	// ErrDepartmentNotFound is returned when a report references a department
	// that does not exist
	ErrDepartmentNotFound = errors.New("department not found")
)
