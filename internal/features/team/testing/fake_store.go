package team_testing

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"teamsync/internal/features/roles"
	team_dto "teamsync/internal/features/team/dto"
	team_interfaces "teamsync/internal/features/team/interfaces"
	team_models "teamsync/internal/features/team/models"
	users_enums "teamsync/internal/features/users/enums"
	users_models "teamsync/internal/features/users/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FakeUserDirectory is an in-memory user lookup. Unknown ids yield
// gorm.ErrRecordNotFound, the same as the users repository.
type FakeUserDirectory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*users_models.User
}

func NewFakeUserDirectory() *FakeUserDirectory {
	return &FakeUserDirectory{users: make(map[uuid.UUID]*users_models.User)}
}

func (d *FakeUserDirectory) AddUser(email, name string) *users_models.User {
	d.mu.Lock()
	defer d.mu.Unlock()

	user := &users_models.User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		Status:    users_enums.UserStatusActive,
		CreatedAt: time.Now().UTC(),
	}
	d.users[user.ID] = user

	return user
}

func (d *FakeUserDirectory) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, ok := d.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	copied := *user
	return &copied, nil
}

type fakeState[R roles.Role] struct {
	mu          sync.Mutex
	txMu        sync.Mutex
	invitations map[uuid.UUID]team_models.Invitation[R]
	memberships map[uuid.UUID]team_models.Membership[R]
	failWith    error
}

// FakeTeamStore keeps memberships and invitations in memory and enforces the
// same unique constraints as the migrations. Transactions are serialized and
// rolled back when the callback fails.
type FakeTeamStore[R roles.Role] struct {
	state *fakeState[R]
	users *FakeUserDirectory
	inTx  bool
}

func NewFakeTeamStore[R roles.Role](users *FakeUserDirectory) *FakeTeamStore[R] {
	return &FakeTeamStore[R]{
		state: &fakeState[R]{
			invitations: make(map[uuid.UUID]team_models.Invitation[R]),
			memberships: make(map[uuid.UUID]team_models.Membership[R]),
		},
		users: users,
	}
}

// FailWith makes every following call return err. Pass nil to reset.
func (s *FakeTeamStore[R]) FailWith(err error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	s.state.failWith = err
}

// AddMember inserts an active membership directly.
func (s *FakeTeamStore[R]) AddMember(scopeID, userID uuid.UUID, role R) *team_models.Membership[R] {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	membership := team_models.Membership[R]{
		ID:       uuid.New(),
		ScopeID:  scopeID,
		UserID:   userID,
		Role:     role,
		Status:   team_models.MembershipStatusActive,
		JoinedAt: time.Now().UTC(),
	}
	s.state.memberships[membership.ID] = membership

	return &membership
}

// PutInvitation inserts or replaces an invitation without any checks.
func (s *FakeTeamStore[R]) PutInvitation(invitation *team_models.Invitation[R]) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	s.state.invitations[invitation.ID] = *invitation
}

func (s *FakeTeamStore[R]) AllInvitations() []*team_models.Invitation[R] {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	result := make([]*team_models.Invitation[R], 0, len(s.state.invitations))
	for _, invitation := range s.state.invitations {
		copied := invitation
		result = append(result, &copied)
	}

	return result
}

func (s *FakeTeamStore[R]) AllMemberships() []*team_models.Membership[R] {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	result := make([]*team_models.Membership[R], 0, len(s.state.memberships))
	for _, membership := range s.state.memberships {
		copied := membership
		result = append(result, &copied)
	}

	return result
}

func (s *FakeTeamStore[R]) WithTx(
	ctx context.Context,
	fn func(store team_interfaces.TeamStore[R]) error,
) error {
	if s.inTx {
		return fn(s)
	}

	s.state.txMu.Lock()
	defer s.state.txMu.Unlock()

	s.state.mu.Lock()
	invitations := make(map[uuid.UUID]team_models.Invitation[R], len(s.state.invitations))
	for id, invitation := range s.state.invitations {
		invitations[id] = invitation
	}
	memberships := make(map[uuid.UUID]team_models.Membership[R], len(s.state.memberships))
	for id, membership := range s.state.memberships {
		memberships[id] = membership
	}
	s.state.mu.Unlock()

	txStore := &FakeTeamStore[R]{state: s.state, users: s.users, inTx: true}
	if err := fn(txStore); err != nil {
		s.state.mu.Lock()
		s.state.invitations = invitations
		s.state.memberships = memberships
		s.state.mu.Unlock()

		return err
	}

	return nil
}

func (s *FakeTeamStore[R]) CreateInvitation(ctx context.Context, invitation *team_models.Invitation[R]) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.failWith != nil {
		return s.state.failWith
	}

	for _, existing := range s.state.invitations {
		if existing.Token == invitation.Token {
			return gorm.ErrDuplicatedKey
		}

		if existing.ScopeID == invitation.ScopeID &&
			existing.Status == team_models.InvitationStatusPending &&
			invitation.Status == team_models.InvitationStatusPending &&
			strings.EqualFold(existing.Email, invitation.Email) {
			return gorm.ErrDuplicatedKey
		}
	}

	s.state.invitations[invitation.ID] = *invitation

	return nil
}

func (s *FakeTeamStore[R]) GetInvitationByID(
	ctx context.Context,
	scopeID, invitationID uuid.UUID,
) (*team_models.Invitation[R], error) {
	return s.findInvitation(func(invitation *team_models.Invitation[R]) bool {
		return invitation.ScopeID == scopeID && invitation.ID == invitationID
	})
}

func (s *FakeTeamStore[R]) GetInvitationByToken(
	ctx context.Context,
	token string,
) (*team_models.Invitation[R], error) {
	return s.findInvitation(func(invitation *team_models.Invitation[R]) bool {
		return invitation.Token == token
	})
}

func (s *FakeTeamStore[R]) LockInvitationByToken(
	ctx context.Context,
	token string,
) (*team_models.Invitation[R], error) {
	return s.GetInvitationByToken(ctx, token)
}

func (s *FakeTeamStore[R]) GetPendingInvitationByEmail(
	ctx context.Context,
	scopeID uuid.UUID,
	email string,
) (*team_models.Invitation[R], error) {
	return s.findInvitation(func(invitation *team_models.Invitation[R]) bool {
		return invitation.ScopeID == scopeID &&
			invitation.Status == team_models.InvitationStatusPending &&
			strings.EqualFold(invitation.Email, email)
	})
}

func (s *FakeTeamStore[R]) ListInvitations(
	ctx context.Context,
	scopeID uuid.UUID,
) ([]*team_models.Invitation[R], error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.failWith != nil {
		return nil, s.state.failWith
	}

	result := make([]*team_models.Invitation[R], 0)
	for _, invitation := range s.state.invitations {
		if invitation.ScopeID == scopeID {
			copied := invitation
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].InvitedAt.After(result[j].InvitedAt)
	})

	return result, nil
}

func (s *FakeTeamStore[R]) UpdateInvitation(ctx context.Context, invitation *team_models.Invitation[R]) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.failWith != nil {
		return s.state.failWith
	}

	existing, ok := s.state.invitations[invitation.ID]
	if !ok {
		return nil
	}

	existing.Status = invitation.Status
	existing.Token = invitation.Token
	existing.ExpiresAt = invitation.ExpiresAt
	existing.AcceptedAt = invitation.AcceptedAt
	s.state.invitations[invitation.ID] = existing

	return nil
}

func (s *FakeTeamStore[R]) CreateMembership(ctx context.Context, membership *team_models.Membership[R]) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.failWith != nil {
		return s.state.failWith
	}

	for _, existing := range s.state.memberships {
		if existing.ScopeID == membership.ScopeID && existing.UserID == membership.UserID {
			return gorm.ErrDuplicatedKey
		}
	}

	s.state.memberships[membership.ID] = *membership

	return nil
}

func (s *FakeTeamStore[R]) GetMembershipByID(
	ctx context.Context,
	scopeID, membershipID uuid.UUID,
) (*team_models.Membership[R], error) {
	return s.findMembership(func(membership *team_models.Membership[R]) bool {
		return membership.ScopeID == scopeID && membership.ID == membershipID
	})
}

func (s *FakeTeamStore[R]) GetMembershipByUser(
	ctx context.Context,
	scopeID, userID uuid.UUID,
) (*team_models.Membership[R], error) {
	return s.findMembership(func(membership *team_models.Membership[R]) bool {
		return membership.ScopeID == scopeID && membership.UserID == userID
	})
}

func (s *FakeTeamStore[R]) GetActiveMembershipByEmail(
	ctx context.Context,
	scopeID uuid.UUID,
	email string,
) (*team_models.Membership[R], error) {
	return s.findMembership(func(membership *team_models.Membership[R]) bool {
		if membership.ScopeID != scopeID || !membership.IsActive() {
			return false
		}

		user, err := s.users.GetUserByID(membership.UserID)
		return err == nil && strings.EqualFold(user.Email, email)
	})
}

func (s *FakeTeamStore[R]) ListMembers(
	ctx context.Context,
	scopeID uuid.UUID,
) ([]*team_dto.MemberResponseDTO[R], error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.failWith != nil {
		return nil, s.state.failWith
	}

	result := make([]*team_dto.MemberResponseDTO[R], 0)
	for _, membership := range s.state.memberships {
		if membership.ScopeID != scopeID {
			continue
		}

		member := &team_dto.MemberResponseDTO[R]{
			ID:        membership.ID,
			UserID:    membership.UserID,
			Role:      membership.Role,
			Status:    membership.Status,
			JoinedAt:  membership.JoinedAt,
			InvitedAt: membership.InvitedAt,
			InvitedBy: membership.InvitedBy,
		}

		if user, err := s.users.GetUserByID(membership.UserID); err == nil {
			member.Email = user.Email
			member.Name = user.Name
		}

		result = append(result, member)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].JoinedAt.Before(result[j].JoinedAt)
	})

	return result, nil
}

func (s *FakeTeamStore[R]) CountActiveMembersWithRole(
	ctx context.Context,
	scopeID uuid.UUID,
	role R,
) (int64, error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.failWith != nil {
		return 0, s.state.failWith
	}

	var count int64
	for _, membership := range s.state.memberships {
		if membership.ScopeID == scopeID && membership.Role == role && membership.IsActive() {
			count++
		}
	}

	return count, nil
}

func (s *FakeTeamStore[R]) UpdateMembershipRole(
	ctx context.Context,
	scopeID, membershipID uuid.UUID,
	role R,
) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.failWith != nil {
		return s.state.failWith
	}

	membership, ok := s.state.memberships[membershipID]
	if !ok || membership.ScopeID != scopeID {
		return nil
	}

	membership.Role = role
	s.state.memberships[membershipID] = membership

	return nil
}

func (s *FakeTeamStore[R]) DeleteMembership(ctx context.Context, scopeID, membershipID uuid.UUID) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.failWith != nil {
		return s.state.failWith
	}

	membership, ok := s.state.memberships[membershipID]
	if ok && membership.ScopeID == scopeID {
		delete(s.state.memberships, membershipID)
	}

	return nil
}

func (s *FakeTeamStore[R]) findInvitation(
	match func(invitation *team_models.Invitation[R]) bool,
) (*team_models.Invitation[R], error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.failWith != nil {
		return nil, s.state.failWith
	}

	for _, invitation := range s.state.invitations {
		copied := invitation
		if match(&copied) {
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *FakeTeamStore[R]) findMembership(
	match func(membership *team_models.Membership[R]) bool,
) (*team_models.Membership[R], error) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	if s.state.failWith != nil {
		return nil, s.state.failWith
	}

	for _, membership := range s.state.memberships {
		copied := membership
		if match(&copied) {
			return &copied, nil
		}
	}

	return nil, nil
}

var _ team_interfaces.TeamStore[roles.WorkspaceRole] = (*FakeTeamStore[roles.WorkspaceRole])(nil)

// ErrStoreUnavailable is a convenience error for FailWith.
var ErrStoreUnavailable = errors.New("store unavailable")
