package team_repositories

import (
	"context"
	"errors"

	"teamsync/internal/features/roles"
	team_dto "teamsync/internal/features/team/dto"
	team_interfaces "teamsync/internal/features/team/interfaces"
	team_models "teamsync/internal/features/team/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamRepository stores the members and invitations of one scope kind in the
// tables named by the kind.
type TeamRepository[R roles.Role] struct {
	kind  team_models.ScopeKind
	getDb func() *gorm.DB
	tx    *gorm.DB
}

func NewTeamRepository[R roles.Role](kind team_models.ScopeKind, getDb func() *gorm.DB) *TeamRepository[R] {
	return &TeamRepository[R]{kind: kind, getDb: getDb}
}

func (r *TeamRepository[R]) conn(ctx context.Context) *gorm.DB {
	if r.tx != nil {
		return r.tx.WithContext(ctx)
	}

	return r.getDb().WithContext(ctx)
}

func (r *TeamRepository[R]) WithTx(
	ctx context.Context,
	fn func(store team_interfaces.TeamStore[R]) error,
) error {
	// nested calls join the outer transaction
	if r.tx != nil {
		return fn(r)
	}

	return r.getDb().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TeamRepository[R]{kind: r.kind, getDb: r.getDb, tx: tx})
	})
}

func (r *TeamRepository[R]) CreateInvitation(ctx context.Context, invitation *team_models.Invitation[R]) error {
	if invitation.ID == uuid.Nil {
		invitation.ID = uuid.New()
	}

	return r.conn(ctx).Table(r.kind.InvitesTable).Create(invitation).Error
}

func (r *TeamRepository[R]) GetInvitationByID(
	ctx context.Context,
	scopeID, invitationID uuid.UUID,
) (*team_models.Invitation[R], error) {
	return r.findInvitation(r.conn(ctx).Where("scope_id = ? AND id = ?", scopeID, invitationID))
}

func (r *TeamRepository[R]) GetInvitationByToken(
	ctx context.Context,
	token string,
) (*team_models.Invitation[R], error) {
	return r.findInvitation(r.conn(ctx).Where("token = ?", token))
}

func (r *TeamRepository[R]) LockInvitationByToken(
	ctx context.Context,
	token string,
) (*team_models.Invitation[R], error) {
	return r.findInvitation(
		r.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("token = ?", token),
	)
}

func (r *TeamRepository[R]) GetPendingInvitationByEmail(
	ctx context.Context,
	scopeID uuid.UUID,
	email string,
) (*team_models.Invitation[R], error) {
	return r.findInvitation(
		r.conn(ctx).Where(
			"scope_id = ? AND LOWER(email) = LOWER(?) AND status = ?",
			scopeID,
			email,
			team_models.InvitationStatusPending,
		),
	)
}

func (r *TeamRepository[R]) ListInvitations(
	ctx context.Context,
	scopeID uuid.UUID,
) ([]*team_models.Invitation[R], error) {
	invitations := make([]*team_models.Invitation[R], 0)

	err := r.conn(ctx).
		Table(r.kind.InvitesTable).
		Where("scope_id = ?", scopeID).
		Order("invited_at DESC").
		Find(&invitations).Error

	return invitations, err
}

func (r *TeamRepository[R]) UpdateInvitation(ctx context.Context, invitation *team_models.Invitation[R]) error {
	return r.conn(ctx).
		Table(r.kind.InvitesTable).
		Where("id = ?", invitation.ID).
		Updates(map[string]any{
			"status":      invitation.Status,
			"token":       invitation.Token,
			"expires_at":  invitation.ExpiresAt,
			"accepted_at": invitation.AcceptedAt,
		}).Error
}

func (r *TeamRepository[R]) CreateMembership(ctx context.Context, membership *team_models.Membership[R]) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	return r.conn(ctx).Table(r.kind.MembersTable).Create(membership).Error
}

func (r *TeamRepository[R]) GetMembershipByID(
	ctx context.Context,
	scopeID, membershipID uuid.UUID,
) (*team_models.Membership[R], error) {
	return r.findMembership(r.conn(ctx).Where("scope_id = ? AND id = ?", scopeID, membershipID))
}

func (r *TeamRepository[R]) GetMembershipByUser(
	ctx context.Context,
	scopeID, userID uuid.UUID,
) (*team_models.Membership[R], error) {
	return r.findMembership(r.conn(ctx).Where("scope_id = ? AND user_id = ?", scopeID, userID))
}

func (r *TeamRepository[R]) GetActiveMembershipByEmail(
	ctx context.Context,
	scopeID uuid.UUID,
	email string,
) (*team_models.Membership[R], error) {
	var membership team_models.Membership[R]

	err := r.conn(ctx).
		Table(r.kind.MembersTable+" m").
		Select("m.*").
		Joins("JOIN users u ON m.user_id = u.id").
		Where("m.scope_id = ? AND LOWER(u.email) = LOWER(?) AND m.status = ?",
			scopeID, email, team_models.MembershipStatusActive).
		Take(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

func (r *TeamRepository[R]) ListMembers(
	ctx context.Context,
	scopeID uuid.UUID,
) ([]*team_dto.MemberResponseDTO[R], error) {
	members := make([]*team_dto.MemberResponseDTO[R], 0)

	err := r.conn(ctx).
		Table(r.kind.MembersTable+" m").
		Select("m.id, m.user_id, u.email, u.name, m.role, m.status, m.joined_at, m.invited_at, m.invited_by").
		Joins("JOIN users u ON m.user_id = u.id").
		Where("m.scope_id = ?", scopeID).
		Order("m.joined_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *TeamRepository[R]) CountActiveMembersWithRole(
	ctx context.Context,
	scopeID uuid.UUID,
	role R,
) (int64, error) {
	var count int64

	err := r.conn(ctx).
		Table(r.kind.MembersTable).
		Where("scope_id = ? AND role = ? AND status = ?", scopeID, role, team_models.MembershipStatusActive).
		Count(&count).Error

	return count, err
}

func (r *TeamRepository[R]) UpdateMembershipRole(
	ctx context.Context,
	scopeID, membershipID uuid.UUID,
	role R,
) error {
	return r.conn(ctx).
		Table(r.kind.MembersTable).
		Where("scope_id = ? AND id = ?", scopeID, membershipID).
		Update("role", role).Error
}

func (r *TeamRepository[R]) DeleteMembership(ctx context.Context, scopeID, membershipID uuid.UUID) error {
	return r.conn(ctx).
		Table(r.kind.MembersTable).
		Where("scope_id = ? AND id = ?", scopeID, membershipID).
		Delete(&team_models.Membership[R]{}).Error
}

func (r *TeamRepository[R]) findInvitation(query *gorm.DB) (*team_models.Invitation[R], error) {
	var invitation team_models.Invitation[R]

	if err := query.Table(r.kind.InvitesTable).Take(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &invitation, nil
}

func (r *TeamRepository[R]) findMembership(query *gorm.DB) (*team_models.Membership[R], error) {
	var membership team_models.Membership[R]

	if err := query.Table(r.kind.MembersTable).Take(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}
