package team_services

import "errors"

var (
	ErrPermissionDenied       = errors.New("insufficient permissions")
	ErrAlreadyMember          = errors.New("user is already a member")
	ErrDuplicatePendingInvite = errors.New("a pending invitation already exists for this email")
	ErrInvalidToken           = errors.New("invitation not found")
	ErrAlreadyProcessed       = errors.New("invitation has already been processed")
	ErrInvitationExpired      = errors.New("invitation has expired")
	ErrEmailMismatch          = errors.New("invitation was sent to a different email")
	ErrNotFound               = errors.New("not found")
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidEmail           = errors.New("invalid email")
	ErrLastOwner              = errors.New("cannot remove or demote the last member with the highest role")
)
