package team_models

import (
	"time"

	"teamsync/internal/features/roles"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusExpired  InvitationStatus = "expired"
	InvitationStatusRevoked  InvitationStatus = "revoked"
)

type Invitation[R roles.Role] struct {
	ID         uuid.UUID        `json:"id"         gorm:"column:id"`
	ScopeID    uuid.UUID        `json:"scopeId"    gorm:"column:scope_id"`
	Email      string           `json:"email"      gorm:"column:email"`
	Role       R                `json:"role"       gorm:"column:role"`
	Status     InvitationStatus `json:"status"     gorm:"column:status"`
	Token      string           `json:"-"          gorm:"column:token"`
	InvitedBy  uuid.UUID        `json:"invitedBy"  gorm:"column:invited_by"`
	ExpiresAt  time.Time        `json:"expiresAt"  gorm:"column:expires_at"`
	InvitedAt  time.Time        `json:"invitedAt"  gorm:"column:invited_at"`
	AcceptedAt *time.Time       `json:"acceptedAt" gorm:"column:accepted_at"`
}

func (i *Invitation[R]) IsExpired(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}

// EffectiveStatus reports a pending invitation past its expiry as expired.
// Nothing is written back.
func (i *Invitation[R]) EffectiveStatus(now time.Time) InvitationStatus {
	if i.Status == InvitationStatusPending && i.IsExpired(now) {
		return InvitationStatusExpired
	}

	return i.Status
}
