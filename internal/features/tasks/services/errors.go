package tasks_services

import "errors"

var (
	ErrInsufficientPermissions = errors.New("insufficient permissions for this project")
	ErrTaskNotFound            = errors.New("task not found")
	ErrMilestoneNotFound       = errors.New("milestone not found")
	ErrInvalidTaskStatus       = errors.New("invalid task status")
	ErrTitleRequired           = errors.New("title is required")
	ErrInvalidDueDate          = errors.New("due date must be a date or an RFC3339 timestamp")
	ErrNameRequired            = errors.New("name is required")
)
