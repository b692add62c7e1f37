package team_models

import (
	"time"

	"teamsync/internal/features/roles"

	"github.com/google/uuid"
)

type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusPending   MembershipStatus = "pending"
	MembershipStatusSuspended MembershipStatus = "suspended"
)

// Membership is the fact that a user belongs to a workspace or project.
// At most one row exists per (scope, user).
type Membership[R roles.Role] struct {
	ID        uuid.UUID        `json:"id"        gorm:"column:id"`
	ScopeID   uuid.UUID        `json:"scopeId"   gorm:"column:scope_id"`
	UserID    uuid.UUID        `json:"userId"    gorm:"column:user_id"`
	Role      R                `json:"role"      gorm:"column:role"`
	Status    MembershipStatus `json:"status"    gorm:"column:status"`
	JoinedAt  time.Time        `json:"joinedAt"  gorm:"column:joined_at"`
	InvitedAt *time.Time       `json:"invitedAt" gorm:"column:invited_at"`
	InvitedBy *uuid.UUID       `json:"invitedBy" gorm:"column:invited_by"`
}

func (m *Membership[R]) IsActive() bool {
	return m.Status == MembershipStatusActive
}
