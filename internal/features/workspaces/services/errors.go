package workspaces_services

import "errors"

var (
	ErrWorkspaceNotFound       = errors.New("workspace not found")
	ErrInsufficientPermissions = errors.New("insufficient permissions to view workspace")
)
