package team_interfaces

import (
	"context"

	"teamsync/internal/features/roles"
	team_dto "teamsync/internal/features/team/dto"
	team_models "teamsync/internal/features/team/models"
	users_models "teamsync/internal/features/users/models"

	"github.com/google/uuid"
)

// TeamStore persists memberships and invitations of one scope kind. Lookups
// return nil without an error when nothing matches.
type TeamStore[R roles.Role] interface {
	// WithTx runs fn against a store bound to a single transaction.
	WithTx(ctx context.Context, fn func(store TeamStore[R]) error) error

	CreateInvitation(ctx context.Context, invitation *team_models.Invitation[R]) error
	GetInvitationByID(ctx context.Context, scopeID, invitationID uuid.UUID) (*team_models.Invitation[R], error)
	GetInvitationByToken(ctx context.Context, token string) (*team_models.Invitation[R], error)
	// LockInvitationByToken also holds a row lock until the transaction ends.
	LockInvitationByToken(ctx context.Context, token string) (*team_models.Invitation[R], error)
	GetPendingInvitationByEmail(
		ctx context.Context,
		scopeID uuid.UUID,
		email string,
	) (*team_models.Invitation[R], error)
	ListInvitations(ctx context.Context, scopeID uuid.UUID) ([]*team_models.Invitation[R], error)
	UpdateInvitation(ctx context.Context, invitation *team_models.Invitation[R]) error

	CreateMembership(ctx context.Context, membership *team_models.Membership[R]) error
	GetMembershipByID(ctx context.Context, scopeID, membershipID uuid.UUID) (*team_models.Membership[R], error)
	GetMembershipByUser(ctx context.Context, scopeID, userID uuid.UUID) (*team_models.Membership[R], error)
	GetActiveMembershipByEmail(
		ctx context.Context,
		scopeID uuid.UUID,
		email string,
	) (*team_models.Membership[R], error)
	ListMembers(ctx context.Context, scopeID uuid.UUID) ([]*team_dto.MemberResponseDTO[R], error)
	CountActiveMembersWithRole(ctx context.Context, scopeID uuid.UUID, role R) (int64, error)
	UpdateMembershipRole(ctx context.Context, scopeID, membershipID uuid.UUID, role R) error
	DeleteMembership(ctx context.Context, scopeID, membershipID uuid.UUID) error
}

type UserDirectory interface {
	GetUserByID(userID uuid.UUID) (*users_models.User, error)
}

type ActivityLogWriter interface {
	WriteActivityLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID, projectID *uuid.UUID)
}

// ScopeNameResolver returns the display name of a workspace or project.
type ScopeNameResolver interface {
	GetScopeName(ctx context.Context, scopeID uuid.UUID) (string, error)
}

type TeamEventListener interface {
	OnTeamEvent(ctx context.Context, event team_models.TeamEvent)
}
