package team_dto

import (
	"time"

	"teamsync/internal/features/roles"
	team_models "teamsync/internal/features/team/models"
	users_dto "teamsync/internal/features/users/dto"

	"github.com/google/uuid"
)

type CreateInvitationRequestDTO[R roles.Role] struct {
	Email string `json:"email" binding:"required,email"`
	Role  R      `json:"role"  binding:"required"`
}

type InvitationResponseDTO[R roles.Role] struct {
	ID         uuid.UUID                       `json:"id"`
	ScopeID    uuid.UUID                       `json:"scopeId"`
	Email      string                          `json:"email"`
	Role       R                               `json:"role"`
	Status     team_models.InvitationStatus    `json:"status"`
	ExpiresAt  time.Time                       `json:"expiresAt"`
	InvitedAt  time.Time                       `json:"invitedAt"`
	AcceptedAt *time.Time                      `json:"acceptedAt,omitempty"`
	InvitedBy  *users_dto.UserPublicProfileDTO `json:"invitedBy,omitempty"`
	// only set right after the token is issued
	Token      string `json:"token,omitempty"`
	InviteLink string `json:"inviteLink,omitempty"`
}

type GetInvitationsResponseDTO[R roles.Role] struct {
	Invitations []InvitationResponseDTO[R] `json:"invitations"`
}

type MemberResponseDTO[R roles.Role] struct {
	ID        uuid.UUID                    `json:"id"        gorm:"column:id"`
	UserID    uuid.UUID                    `json:"userId"    gorm:"column:user_id"`
	Email     string                       `json:"email"     gorm:"column:email"`
	Name      string                       `json:"name"      gorm:"column:name"`
	Role      R                            `json:"role"      gorm:"column:role"`
	Status    team_models.MembershipStatus `json:"status"    gorm:"column:status"`
	JoinedAt  time.Time                    `json:"joinedAt"  gorm:"column:joined_at"`
	InvitedAt *time.Time                   `json:"invitedAt" gorm:"column:invited_at"`
	InvitedBy *uuid.UUID                   `json:"invitedBy" gorm:"column:invited_by"`
}

type GetMembersResponseDTO[R roles.Role] struct {
	Members []MemberResponseDTO[R] `json:"members"`
}

type UpdateMemberRoleRequestDTO[R roles.Role] struct {
	Role R `json:"role" binding:"required"`
}

type AcceptInvitationResponseDTO struct {
	Scope        string    `json:"scope"`
	ScopeID      uuid.UUID `json:"scopeId"`
	MembershipID uuid.UUID `json:"membershipId"`
	Role         string    `json:"role"`
}

type InvitationPreviewDTO struct {
	Scope     string                          `json:"scope"`
	ScopeID   uuid.UUID                       `json:"scopeId"`
	ScopeName string                          `json:"scopeName"`
	Email     string                          `json:"email"`
	Role      string                          `json:"role"`
	Status    team_models.InvitationStatus    `json:"status"`
	ExpiresAt time.Time                       `json:"expiresAt"`
	InvitedBy *users_dto.UserPublicProfileDTO `json:"invitedBy,omitempty"`
}
