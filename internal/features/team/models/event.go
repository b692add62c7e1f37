package team_models

import (
	"time"

	"github.com/google/uuid"
)

type TeamEventType string

const (
	TeamEventInvitationCreated  TeamEventType = "invitation.created"
	TeamEventInvitationAccepted TeamEventType = "invitation.accepted"
	TeamEventInvitationRevoked  TeamEventType = "invitation.revoked"
	TeamEventInvitationResent   TeamEventType = "invitation.resent"
	TeamEventMemberRoleUpdated  TeamEventType = "member.role_updated"
	TeamEventMemberRemoved      TeamEventType = "member.removed"
)

// TeamEvent is emitted after a team mutation has been committed.
type TeamEvent struct {
	Type         TeamEventType `json:"type"`
	Scope        string        `json:"scope"`
	ScopeID      uuid.UUID     `json:"scopeId"`
	ActorID      *uuid.UUID    `json:"actorId,omitempty"`
	InvitationID *uuid.UUID    `json:"invitationId,omitempty"`
	MemberID     *uuid.UUID    `json:"memberId,omitempty"`
	UserID       *uuid.UUID    `json:"userId,omitempty"`
	Email        string        `json:"email,omitempty"`
	Role         string        `json:"role,omitempty"`
	OccurredAt   time.Time     `json:"occurredAt"`
}
