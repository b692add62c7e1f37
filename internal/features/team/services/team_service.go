package team_services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"teamsync/internal/features/roles"
	team_dto "teamsync/internal/features/team/dto"
	team_interfaces "teamsync/internal/features/team/interfaces"
	team_models "teamsync/internal/features/team/models"
	users_dto "teamsync/internal/features/users/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultInvitationTTL = 7 * 24 * time.Hour

type Options struct {
	InvitationTTL     time.Duration
	RequireEmailMatch bool
	// InviteBaseURL prefixes the acceptance link returned to the inviter
	InviteBaseURL string
}

// TeamService authorizes and performs membership and invitation changes for
// one scope kind. Callers resolve their own role first via GetUserRole and
// pass it into every mutating operation.
type TeamService[R roles.Role] struct {
	kind          team_models.ScopeKind
	store         team_interfaces.TeamStore[R]
	userDirectory team_interfaces.UserDirectory
	options       Options
	logger        *slog.Logger
	now           func() time.Time

	activityLogWriter team_interfaces.ActivityLogWriter
	scopeNameResolver team_interfaces.ScopeNameResolver
	listeners         []team_interfaces.TeamEventListener
}

func NewTeamService[R roles.Role](
	kind team_models.ScopeKind,
	store team_interfaces.TeamStore[R],
	userDirectory team_interfaces.UserDirectory,
	options Options,
	logger *slog.Logger,
) *TeamService[R] {
	if options.InvitationTTL <= 0 {
		options.InvitationTTL = defaultInvitationTTL
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TeamService[R]{
		kind:          kind,
		store:         store,
		userDirectory: userDirectory,
		options:       options,
		logger:        logger.With("scope", kind.Name),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *TeamService[R]) SetActivityLogWriter(writer team_interfaces.ActivityLogWriter) {
	s.activityLogWriter = writer
}

func (s *TeamService[R]) SetScopeNameResolver(resolver team_interfaces.ScopeNameResolver) {
	s.scopeNameResolver = resolver
}

func (s *TeamService[R]) AddTeamEventListener(listener team_interfaces.TeamEventListener) {
	s.listeners = append(s.listeners, listener)
}

func (s *TeamService[R]) Kind() team_models.ScopeKind {
	return s.kind
}

func (s *TeamService[R]) OwnsToken(token string) bool {
	return s.kind.OwnsToken(token)
}

// GetUserRole returns the role of an active member, or nil when the user has
// no active membership in the scope.
func (s *TeamService[R]) GetUserRole(ctx context.Context, scopeID, userID uuid.UUID) (*R, error) {
	membership, err := s.store.GetMembershipByUser(ctx, scopeID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	if membership == nil || !membership.IsActive() {
		return nil, nil
	}

	return &membership.Role, nil
}

// GrantMembership adds an active member directly, without an invitation. Used
// for the creator of a workspace or project.
func (s *TeamService[R]) GrantMembership(
	ctx context.Context,
	scopeID, userID uuid.UUID,
	role R,
) (*team_models.Membership[R], error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	existing, err := s.store.GetMembershipByUser(ctx, scopeID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	if existing != nil {
		return nil, ErrAlreadyMember
	}

	membership := &team_models.Membership[R]{
		ID:       uuid.New(),
		ScopeID:  scopeID,
		UserID:   userID,
		Role:     role,
		Status:   team_models.MembershipStatusActive,
		JoinedAt: s.now(),
	}

	if err := s.store.CreateMembership(ctx, membership); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMember
		}

		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	return membership, nil
}

func (s *TeamService[R]) CreateInvitation(
	ctx context.Context,
	scopeID uuid.UUID,
	inviterID uuid.UUID,
	inviterRole R,
	request *team_dto.CreateInvitationRequestDTO[R],
) (*team_dto.InvitationResponseDTO[R], error) {
	if !inviterRole.CanInviteMembers() {
		return nil, ErrPermissionDenied
	}

	if !request.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	if request.Role.Level() > inviterRole.Level() {
		return nil, ErrPermissionDenied
	}

	email := normalizeEmail(request.Email)
	if email == "" {
		return nil, ErrInvalidEmail
	}

	member, err := s.store.GetActiveMembershipByEmail(ctx, scopeID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}

	if member != nil {
		return nil, ErrAlreadyMember
	}

	pending, err := s.store.GetPendingInvitationByEmail(ctx, scopeID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending invitations: %w", err)
	}

	if pending != nil {
		return nil, ErrDuplicatePendingInvite
	}

	token, err := generateInvitationToken(s.kind.TokenPrefix)
	if err != nil {
		return nil, err
	}

	now := s.now()
	invitation := &team_models.Invitation[R]{
		ID:        uuid.New(),
		ScopeID:   scopeID,
		Email:     email,
		Role:      request.Role,
		Status:    team_models.InvitationStatusPending,
		Token:     token,
		InvitedBy: inviterID,
		ExpiresAt: now.Add(s.options.InvitationTTL),
		InvitedAt: now,
	}

	if err := s.store.CreateInvitation(ctx, invitation); err != nil {
		// the pending-email unique index catches concurrent invites
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePendingInvite
		}

		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.writeActivityLog(
		fmt.Sprintf("Invitation sent to %s as %s", email, request.Role),
		&inviterID,
		scopeID,
	)

	s.emit(ctx, team_models.TeamEvent{
		Type:         team_models.TeamEventInvitationCreated,
		ScopeID:      scopeID,
		ActorID:      &inviterID,
		InvitationID: &invitation.ID,
		Email:        email,
		Role:         string(request.Role),
	})

	response := s.toInvitationResponse(invitation, s.getPublicProfile(inviterID), now)
	s.attachToken(response, invitation.Token)

	return response, nil
}

func (s *TeamService[R]) AcceptInvitation(
	ctx context.Context,
	token string,
	userID uuid.UUID,
) (*team_dto.AcceptInvitationResponseDTO, error) {
	if !s.kind.OwnsToken(token) {
		return nil, ErrInvalidToken
	}

	var invitation *team_models.Invitation[R]
	var membership *team_models.Membership[R]

	err := s.store.WithTx(ctx, func(store team_interfaces.TeamStore[R]) error {
		locked, err := store.LockInvitationByToken(ctx, token)
		if err != nil {
			return fmt.Errorf("failed to get invitation: %w", err)
		}

		if locked == nil {
			return ErrInvalidToken
		}

		if locked.Status != team_models.InvitationStatusPending {
			return ErrAlreadyProcessed
		}

		now := s.now()
		if locked.IsExpired(now) {
			return ErrInvitationExpired
		}

		if s.options.RequireEmailMatch {
			if err := s.checkEmailMatches(locked, userID); err != nil {
				return err
			}
		}

		existing, err := store.GetMembershipByUser(ctx, locked.ScopeID, userID)
		if err != nil {
			return fmt.Errorf("failed to get membership: %w", err)
		}

		if existing != nil {
			return ErrAlreadyMember
		}

		invitedAt := locked.InvitedAt
		invitedBy := locked.InvitedBy
		created := &team_models.Membership[R]{
			ID:        uuid.New(),
			ScopeID:   locked.ScopeID,
			UserID:    userID,
			Role:      locked.Role,
			Status:    team_models.MembershipStatusActive,
			JoinedAt:  now,
			InvitedAt: &invitedAt,
			InvitedBy: &invitedBy,
		}

		if err := store.CreateMembership(ctx, created); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyMember
			}

			return fmt.Errorf("failed to create membership: %w", err)
		}

		locked.Status = team_models.InvitationStatusAccepted
		locked.AcceptedAt = &now

		if err := store.UpdateInvitation(ctx, locked); err != nil {
			return fmt.Errorf("failed to mark invitation accepted: %w", err)
		}

		invitation = locked
		membership = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.writeActivityLog(
		fmt.Sprintf("Invitation for %s accepted, joined as %s", invitation.Email, invitation.Role),
		&userID,
		invitation.ScopeID,
	)

	s.emit(ctx, team_models.TeamEvent{
		Type:         team_models.TeamEventInvitationAccepted,
		ScopeID:      invitation.ScopeID,
		ActorID:      &userID,
		InvitationID: &invitation.ID,
		MemberID:     &membership.ID,
		UserID:       &userID,
		Email:        invitation.Email,
		Role:         string(invitation.Role),
	})

	return &team_dto.AcceptInvitationResponseDTO{
		Scope:        s.kind.Name,
		ScopeID:      invitation.ScopeID,
		MembershipID: membership.ID,
		Role:         string(membership.Role),
	}, nil
}

// CancelInvitation revokes a pending invitation. Invitations that are pending
// in storage but past expiry can still be revoked.
func (s *TeamService[R]) CancelInvitation(
	ctx context.Context,
	scopeID, invitationID uuid.UUID,
	callerID uuid.UUID,
	callerRole R,
) error {
	if !callerRole.CanInviteMembers() {
		return ErrPermissionDenied
	}

	invitation, err := s.store.GetInvitationByID(ctx, scopeID, invitationID)
	if err != nil {
		return fmt.Errorf("failed to get invitation: %w", err)
	}

	if invitation == nil {
		return ErrNotFound
	}

	if invitation.Status != team_models.InvitationStatusPending {
		return ErrAlreadyProcessed
	}

	invitation.Status = team_models.InvitationStatusRevoked
	if err := s.store.UpdateInvitation(ctx, invitation); err != nil {
		return fmt.Errorf("failed to revoke invitation: %w", err)
	}

	s.writeActivityLog(
		fmt.Sprintf("Invitation for %s revoked", invitation.Email),
		&callerID,
		scopeID,
	)

	s.emit(ctx, team_models.TeamEvent{
		Type:         team_models.TeamEventInvitationRevoked,
		ScopeID:      scopeID,
		ActorID:      &callerID,
		InvitationID: &invitation.ID,
		Email:        invitation.Email,
		Role:         string(invitation.Role),
	})

	return nil
}

// ResendInvitation extends a pending invitation by the invitation TTL and
// issues a new token, so earlier links stop working.
func (s *TeamService[R]) ResendInvitation(
	ctx context.Context,
	scopeID, invitationID uuid.UUID,
	callerID uuid.UUID,
	callerRole R,
) (*team_dto.InvitationResponseDTO[R], error) {
	if !callerRole.CanInviteMembers() {
		return nil, ErrPermissionDenied
	}

	invitation, err := s.store.GetInvitationByID(ctx, scopeID, invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	if invitation == nil {
		return nil, ErrNotFound
	}

	if invitation.Role.Level() > callerRole.Level() {
		return nil, ErrPermissionDenied
	}

	if invitation.Status != team_models.InvitationStatusPending {
		return nil, ErrAlreadyProcessed
	}

	token, err := generateInvitationToken(s.kind.TokenPrefix)
	if err != nil {
		return nil, err
	}

	now := s.now()
	invitation.Token = token
	invitation.ExpiresAt = now.Add(s.options.InvitationTTL)

	if err := s.store.UpdateInvitation(ctx, invitation); err != nil {
		return nil, fmt.Errorf("failed to resend invitation: %w", err)
	}

	s.writeActivityLog(
		fmt.Sprintf("Invitation for %s resent", invitation.Email),
		&callerID,
		scopeID,
	)

	s.emit(ctx, team_models.TeamEvent{
		Type:         team_models.TeamEventInvitationResent,
		ScopeID:      scopeID,
		ActorID:      &callerID,
		InvitationID: &invitation.ID,
		Email:        invitation.Email,
		Role:         string(invitation.Role),
	})

	response := s.toInvitationResponse(invitation, s.getPublicProfile(invitation.InvitedBy), now)
	s.attachToken(response, invitation.Token)

	return response, nil
}

func (s *TeamService[R]) ListInvitations(
	ctx context.Context,
	scopeID uuid.UUID,
	callerRole R,
) (*team_dto.GetInvitationsResponseDTO[R], error) {
	if !callerRole.CanInviteMembers() {
		return nil, ErrPermissionDenied
	}

	invitations, err := s.store.ListInvitations(ctx, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	now := s.now()
	profiles := make(map[uuid.UUID]*users_dto.UserPublicProfileDTO)
	result := make([]team_dto.InvitationResponseDTO[R], 0, len(invitations))

	for _, invitation := range invitations {
		profile, ok := profiles[invitation.InvitedBy]
		if !ok {
			profile = s.getPublicProfile(invitation.InvitedBy)
			profiles[invitation.InvitedBy] = profile
		}

		result = append(result, *s.toInvitationResponse(invitation, profile, now))
	}

	return &team_dto.GetInvitationsResponseDTO[R]{Invitations: result}, nil
}

// PreviewInvitation describes an invitation to whoever holds its token.
func (s *TeamService[R]) PreviewInvitation(
	ctx context.Context,
	token string,
) (*team_dto.InvitationPreviewDTO, error) {
	if !s.kind.OwnsToken(token) {
		return nil, ErrInvalidToken
	}

	invitation, err := s.store.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	if invitation == nil {
		return nil, ErrInvalidToken
	}

	scopeName := ""
	if s.scopeNameResolver != nil {
		name, err := s.scopeNameResolver.GetScopeName(ctx, invitation.ScopeID)
		if err != nil {
			s.logger.Warn("failed to resolve scope name", "scopeId", invitation.ScopeID, "error", err)
		} else {
			scopeName = name
		}
	}

	return &team_dto.InvitationPreviewDTO{
		Scope:     s.kind.Name,
		ScopeID:   invitation.ScopeID,
		ScopeName: scopeName,
		Email:     invitation.Email,
		Role:      string(invitation.Role),
		Status:    invitation.EffectiveStatus(s.now()),
		ExpiresAt: invitation.ExpiresAt,
		InvitedBy: s.getPublicProfile(invitation.InvitedBy),
	}, nil
}

func (s *TeamService[R]) ListMembers(
	ctx context.Context,
	scopeID uuid.UUID,
	callerRole R,
) (*team_dto.GetMembersResponseDTO[R], error) {
	if !callerRole.CanViewMembers() {
		return nil, ErrPermissionDenied
	}

	members, err := s.store.ListMembers(ctx, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	result := make([]team_dto.MemberResponseDTO[R], len(members))
	for i, member := range members {
		result[i] = *member
	}

	return &team_dto.GetMembersResponseDTO[R]{Members: result}, nil
}

// UpdateRole changes a member's role. The updater can neither grant a role
// above its own level nor touch a member ranked above it, and the last active
// holder of the top role cannot be demoted.
func (s *TeamService[R]) UpdateRole(
	ctx context.Context,
	scopeID, memberID uuid.UUID,
	newRole R,
	updaterID uuid.UUID,
	updaterRole R,
) error {
	if !updaterRole.CanManageMembers() {
		return ErrPermissionDenied
	}

	if !newRole.IsValid() {
		return ErrInvalidRole
	}

	if newRole.Level() > updaterRole.Level() {
		return ErrPermissionDenied
	}

	var previousRole R
	var updated *team_models.Membership[R]

	err := s.store.WithTx(ctx, func(store team_interfaces.TeamStore[R]) error {
		membership, err := store.GetMembershipByID(ctx, scopeID, memberID)
		if err != nil {
			return fmt.Errorf("failed to get membership: %w", err)
		}

		if membership == nil {
			return ErrNotFound
		}

		if membership.Role.Level() > updaterRole.Level() {
			return ErrPermissionDenied
		}

		if membership.Role == newRole {
			return nil
		}

		if err := s.ensureNotLastTopMember(ctx, store, membership, newRole); err != nil {
			return err
		}

		if err := store.UpdateMembershipRole(ctx, scopeID, memberID, newRole); err != nil {
			return fmt.Errorf("failed to update member role: %w", err)
		}

		previousRole = membership.Role
		updated = membership

		return nil
	})
	if err != nil {
		return err
	}

	if updated == nil {
		return nil
	}

	s.writeActivityLog(
		fmt.Sprintf("Member role changed from %s to %s", previousRole, newRole),
		&updaterID,
		scopeID,
	)

	s.emit(ctx, team_models.TeamEvent{
		Type:     team_models.TeamEventMemberRoleUpdated,
		ScopeID:  scopeID,
		ActorID:  &updaterID,
		MemberID: &updated.ID,
		UserID:   &updated.UserID,
		Role:     string(newRole),
	})

	return nil
}

func (s *TeamService[R]) RemoveMember(
	ctx context.Context,
	scopeID, memberID uuid.UUID,
	removerID uuid.UUID,
	removerRole R,
) error {
	if !removerRole.CanManageMembers() {
		return ErrPermissionDenied
	}

	var removed *team_models.Membership[R]

	err := s.store.WithTx(ctx, func(store team_interfaces.TeamStore[R]) error {
		membership, err := store.GetMembershipByID(ctx, scopeID, memberID)
		if err != nil {
			return fmt.Errorf("failed to get membership: %w", err)
		}

		if membership == nil {
			return ErrNotFound
		}

		if membership.Role.Level() > removerRole.Level() {
			return ErrPermissionDenied
		}

		var none R
		if err := s.ensureNotLastTopMember(ctx, store, membership, none); err != nil {
			return err
		}

		if err := store.DeleteMembership(ctx, scopeID, memberID); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}

		removed = membership

		return nil
	})
	if err != nil {
		return err
	}

	s.writeActivityLog(
		fmt.Sprintf("Member removed (was %s)", removed.Role),
		&removerID,
		scopeID,
	)

	s.emit(ctx, team_models.TeamEvent{
		Type:     team_models.TeamEventMemberRemoved,
		ScopeID:  scopeID,
		ActorID:  &removerID,
		MemberID: &removed.ID,
		UserID:   &removed.UserID,
		Role:     string(removed.Role),
	})

	return nil
}

func (s *TeamService[R]) ensureNotLastTopMember(
	ctx context.Context,
	store team_interfaces.TeamStore[R],
	membership *team_models.Membership[R],
	newRole R,
) error {
	if !membership.Role.IsTop() || newRole.IsTop() || !membership.IsActive() {
		return nil
	}

	count, err := store.CountActiveMembersWithRole(ctx, membership.ScopeID, membership.Role)
	if err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}

	if count <= 1 {
		return ErrLastOwner
	}

	return nil
}

func (s *TeamService[R]) checkEmailMatches(invitation *team_models.Invitation[R], userID uuid.UUID) error {
	user, err := s.userDirectory.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil || normalizeEmail(user.Email) != normalizeEmail(invitation.Email) {
		return ErrEmailMismatch
	}

	return nil
}

func (s *TeamService[R]) getPublicProfile(userID uuid.UUID) *users_dto.UserPublicProfileDTO {
	if s.userDirectory == nil {
		return nil
	}

	user, err := s.userDirectory.GetUserByID(userID)
	if err != nil || user == nil {
		s.logger.Warn("failed to load user profile", "userId", userID, "error", err)
		return nil
	}

	return &users_dto.UserPublicProfileDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

func (s *TeamService[R]) toInvitationResponse(
	invitation *team_models.Invitation[R],
	inviter *users_dto.UserPublicProfileDTO,
	now time.Time,
) *team_dto.InvitationResponseDTO[R] {
	return &team_dto.InvitationResponseDTO[R]{
		ID:         invitation.ID,
		ScopeID:    invitation.ScopeID,
		Email:      invitation.Email,
		Role:       invitation.Role,
		Status:     invitation.EffectiveStatus(now),
		ExpiresAt:  invitation.ExpiresAt,
		InvitedAt:  invitation.InvitedAt,
		AcceptedAt: invitation.AcceptedAt,
		InvitedBy:  inviter,
	}
}

func (s *TeamService[R]) attachToken(response *team_dto.InvitationResponseDTO[R], token string) {
	response.Token = token
	if s.options.InviteBaseURL != "" {
		response.InviteLink = s.options.InviteBaseURL + "/invitations/" + token
	}
}

func (s *TeamService[R]) writeActivityLog(message string, actorID *uuid.UUID, scopeID uuid.UUID) {
	if s.activityLogWriter == nil {
		return
	}

	if s.kind.Name == team_models.WorkspaceScope.Name {
		s.activityLogWriter.WriteActivityLog(message, actorID, &scopeID, nil)
		return
	}

	s.activityLogWriter.WriteActivityLog(message, actorID, nil, &scopeID)
}

func (s *TeamService[R]) emit(ctx context.Context, event team_models.TeamEvent) {
	event.Scope = s.kind.Name
	event.OccurredAt = s.now()

	for _, listener := range s.listeners {
		listener.OnTeamEvent(ctx, event)
	}
}
