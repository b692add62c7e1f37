package projects_services

import "errors"

var (
	ErrProjectNameRequired  = errors.New("project name is required")
	ErrProjectNotFound      = errors.New("project not found")
	ErrCannotCreateProjects = errors.New("insufficient permissions to create projects")
	ErrCannotViewProject    = errors.New("insufficient permissions to view project")
	ErrCannotDeleteProject  = errors.New("insufficient permissions to delete project")
	ErrCannotViewWorkspace  = errors.New("insufficient permissions to view workspace projects")
)
