package team_services

import (
	"context"
	"testing"

	"teamsync/internal/features/roles"
	team_models "teamsync/internal/features/team/models"
	team_testing "teamsync/internal/features/team/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv[R]) roleOf(t *testing.T, membershipID uuid.UUID) *R {
	t.Helper()

	membership, err := e.store.GetMembershipByID(context.Background(), e.scopeID, membershipID)
	require.NoError(t, err)

	if membership == nil {
		return nil
	}

	return &membership.Role
}

func Test_MembershipE2E_AdminPromotesMemberThenMemberCannotRemove(t *testing.T) {
	env := newWorkspaceEnv()
	ctx := context.Background()
	env.addMember("owner@example.com", roles.WorkspaceRoleOwner)
	admin, _ := env.addMember("admin@example.com", roles.WorkspaceRoleAdmin)
	_, carol := env.addMember("carol@example.com", roles.WorkspaceRoleMember)
	dave, daveMembership := env.addMember("dave@example.com", roles.WorkspaceRoleMember)

	err := env.service.UpdateRole(ctx, env.scopeID, carol.ID, roles.WorkspaceRoleAdmin, admin.ID, roles.WorkspaceRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, roles.WorkspaceRoleAdmin, *env.roleOf(t, carol.ID))

	before := len(env.store.AllMemberships())
	for _, target := range env.store.AllMemberships() {
		err := env.service.RemoveMember(ctx, env.scopeID, target.ID, dave.ID, roles.WorkspaceRoleMember)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	}

	assert.Len(t, env.store.AllMemberships(), before)
	assert.Equal(t, roles.WorkspaceRoleMember, *env.roleOf(t, daveMembership.ID))

	require.Len(t, env.events.events, 1)
	event := env.events.events[0]
	assert.Equal(t, team_models.TeamEventMemberRoleUpdated, event.Type)
	assert.Equal(t, carol.ID, *event.MemberID)
	assert.Equal(t, "admin", event.Role)
}

func Test_UpdateRole_WhenCallerCannotManage_ReturnsPermissionDeniedAndLeavesRole(t *testing.T) {
	testCases := []struct {
		name       string
		callerRole roles.WorkspaceRole
	}{
		{name: "member", callerRole: roles.WorkspaceRoleMember},
		{name: "viewer", callerRole: roles.WorkspaceRoleViewer},
		{name: "unknown role", callerRole: roles.WorkspaceRole("ghost")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newWorkspaceEnv()
			_, target := env.addMember("target@example.com", roles.WorkspaceRoleViewer)

			err := env.service.UpdateRole(
				context.Background(),
				env.scopeID,
				target.ID,
				roles.WorkspaceRoleViewer,
				uuid.New(),
				tc.callerRole,
			)

			assert.ErrorIs(t, err, ErrPermissionDenied)
			assert.Equal(t, roles.WorkspaceRoleViewer, *env.roleOf(t, target.ID))
			assert.Empty(t, env.events.events)
		})
	}
}

func Test_UpdateRole_WithUnknownMember_ReturnsNotFound(t *testing.T) {
	env := newWorkspaceEnv()
	owner, _ := env.addMember("owner@example.com", roles.WorkspaceRoleOwner)

	err := env.service.UpdateRole(
		context.Background(),
		env.scopeID,
		uuid.New(),
		roles.WorkspaceRoleAdmin,
		owner.ID,
		roles.WorkspaceRoleOwner,
	)

	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_UpdateRole_WithMemberOfAnotherScope_ReturnsNotFound(t *testing.T) {
	env := newWorkspaceEnv()
	owner, _ := env.addMember("owner@example.com", roles.WorkspaceRoleOwner)
	stranger := env.users.AddUser("stranger@example.com", "Stranger")
	foreign := env.store.AddMember(uuid.New(), stranger.ID, roles.WorkspaceRoleViewer)

	err := env.service.UpdateRole(
		context.Background(),
		env.scopeID,
		foreign.ID,
		roles.WorkspaceRoleAdmin,
		owner.ID,
		roles.WorkspaceRoleOwner,
	)

	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_UpdateRole_WithUnknownRole_ReturnsInvalidRole(t *testing.T) {
	env := newWorkspaceEnv()
	owner, _ := env.addMember("owner@example.com", roles.WorkspaceRoleOwner)
	_, target := env.addMember("target@example.com", roles.WorkspaceRoleViewer)

	err := env.service.UpdateRole(
		context.Background(),
		env.scopeID,
		target.ID,
		roles.WorkspaceRole("superadmin"),
		owner.ID,
		roles.WorkspaceRoleOwner,
	)

	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Equal(t, roles.WorkspaceRoleViewer, *env.roleOf(t, target.ID))
}

func Test_UpdateRole_WhenGrantingAboveOwnLevel_ReturnsPermissionDenied(t *testing.T) {
	env := newWorkspaceEnv()
	env.addMember("owner@example.com", roles.WorkspaceRoleOwner)
	admin, _ := env.addMember("admin@example.com", roles.WorkspaceRoleAdmin)
	_, target := env.addMember("target@example.com", roles.WorkspaceRoleMember)

	err := env.service.UpdateRole(
		context.Background(),
		env.scopeID,
		target.ID,
		roles.WorkspaceRoleOwner,
		admin.ID,
		roles.WorkspaceRoleAdmin,
	)

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, roles.WorkspaceRoleMember, *env.roleOf(t, target.ID))
}

func Test_UpdateRole_WhenTargetOutranksCaller_ReturnsPermissionDenied(t *testing.T) {
	env := newWorkspaceEnv()
	_, ownerMembership := env.addMember("owner@example.com", roles.WorkspaceRoleOwner)
	env.addMember("owner2@example.com", roles.WorkspaceRoleOwner)
	admin, _ := env.addMember("admin@example.com", roles.WorkspaceRoleAdmin)

	err := env.service.UpdateRole(
		context.Background(),
		env.scopeID,
		ownerMembership.ID,
		roles.WorkspaceRoleViewer,
		admin.ID,
		roles.WorkspaceRoleAdmin,
	)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = env.service.RemoveMember(context.Background(), env.scopeID, ownerMembership.ID, admin.ID, roles.WorkspaceRoleAdmin)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	assert.Equal(t, roles.WorkspaceRoleOwner, *env.roleOf(t, ownerMembership.ID))
}

func Test_UpdateRole_WhenDemotingLastOwner_ReturnsLastOwner(t *testing.T) {
	env := newWorkspaceEnv()
	ctx := context.Background()
	owner, ownerMembership := env.addMember("owner@example.com", roles.WorkspaceRoleOwner)

	err := env.service.UpdateRole(ctx, env.scopeID, ownerMembership.ID, roles.WorkspaceRoleAdmin, owner.ID, roles.WorkspaceRoleOwner)
	assert.ErrorIs(t, err, ErrLastOwner)
	assert.Equal(t, roles.WorkspaceRoleOwner, *env.roleOf(t, ownerMembership.ID))

	env.addMember("owner2@example.com", roles.WorkspaceRoleOwner)

	err = env.service.UpdateRole(ctx, env.scopeID, ownerMembership.ID, roles.WorkspaceRoleAdmin, owner.ID, roles.WorkspaceRoleOwner)
	require.NoError(t, err)
	assert.Equal(t, roles.WorkspaceRoleAdmin, *env.roleOf(t, ownerMembership.ID))
}

func Test_UpdateRole_WhenRoleUnchanged_DoesNothing(t *testing.T) {
	env := newWorkspaceEnv()
	owner, ownerMembership := env.addMember("owner@example.com", roles.WorkspaceRoleOwner)

	err := env.service.UpdateRole(
		context.Background(),
		env.scopeID,
		ownerMembership.ID,
		roles.WorkspaceRoleOwner,
		owner.ID,
		roles.WorkspaceRoleOwner,
	)

	require.NoError(t, err)
	assert.Empty(t, env.events.events)
	assert.Empty(t, env.activity.entries)
}

func Test_RemoveMember_WhenCallerCanManage_DeletesMembership(t *testing.T) {
	env := newWorkspaceEnv()
	ctx := context.Background()
	owner, _ := env.addMember("owner@example.com", roles.WorkspaceRoleOwner)
	bob, bobMembership := env.addMember("bob@example.com", roles.WorkspaceRoleMember)

	err := env.service.RemoveMember(ctx, env.scopeID, bobMembership.ID, owner.ID, roles.WorkspaceRoleOwner)
	require.NoError(t, err)

	assert.Nil(t, env.roleOf(t, bobMembership.ID))

	role, err := env.service.GetUserRole(ctx, env.scopeID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, role)

	require.Len(t, env.events.events, 1)
	assert.Equal(t, team_models.TeamEventMemberRemoved, env.events.events[0].Type)
	assert.Equal(t, bob.ID, *env.events.events[0].UserID)

	err = env.service.RemoveMember(ctx, env.scopeID, bobMembership.ID, owner.ID, roles.WorkspaceRoleOwner)
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_RemoveMember_WhenCallerIsViewer_ReturnsPermissionDenied(t *testing.T) {
	env := newWorkspaceEnv()
	viewer, _ := env.addMember("viewer@example.com", roles.WorkspaceRoleViewer)
	_, bobMembership := env.addMember("bob@example.com", roles.WorkspaceRoleViewer)

	err := env.service.RemoveMember(context.Background(), env.scopeID, bobMembership.ID, viewer.ID, roles.WorkspaceRoleViewer)

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Len(t, env.store.AllMemberships(), 2)
}

func Test_RemoveMember_WhenRemovingLastOwner_ReturnsLastOwner(t *testing.T) {
	env := newWorkspaceEnv()
	owner, ownerMembership := env.addMember("owner@example.com", roles.WorkspaceRoleOwner)

	err := env.service.RemoveMember(context.Background(), env.scopeID, ownerMembership.ID, owner.ID, roles.WorkspaceRoleOwner)

	assert.ErrorIs(t, err, ErrLastOwner)
	assert.Len(t, env.store.AllMemberships(), 1)
}

func Test_RemoveMember_WhenRemovingLastProjectAdmin_ReturnsLastOwner(t *testing.T) {
	env := newTestEnv[roles.ProjectRole](team_models.ProjectScope, Options{})
	admin, adminMembership := env.addMember("admin@example.com", roles.ProjectRoleAdmin)
	_, memberMembership := env.addMember("member@example.com", roles.ProjectRoleMember)

	err := env.service.RemoveMember(context.Background(), env.scopeID, adminMembership.ID, admin.ID, roles.ProjectRoleAdmin)
	assert.ErrorIs(t, err, ErrLastOwner)

	err = env.service.RemoveMember(context.Background(), env.scopeID, memberMembership.ID, admin.ID, roles.ProjectRoleAdmin)
	require.NoError(t, err)

	require.Len(t, env.activity.entries, 1)
	assert.Nil(t, env.activity.entries[0].workspaceID)
	assert.Equal(t, env.scopeID, *env.activity.entries[0].projectID)
}

func Test_RemoveMember_WhenStoreFails_ReturnsWrappedError(t *testing.T) {
	env := newWorkspaceEnv()
	owner, _ := env.addMember("owner@example.com", roles.WorkspaceRoleOwner)
	_, bobMembership := env.addMember("bob@example.com", roles.WorkspaceRoleMember)
	env.store.FailWith(team_testing.ErrStoreUnavailable)

	err := env.service.RemoveMember(context.Background(), env.scopeID, bobMembership.ID, owner.ID, roles.WorkspaceRoleOwner)

	assert.ErrorIs(t, err, team_testing.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func Test_ListMembers_ReturnsMembersWithProfiles(t *testing.T) {
	env := newWorkspaceEnv()
	ctx := context.Background()
	env.addMember("owner@example.com", roles.WorkspaceRoleOwner)
	env.addMember("viewer@example.com", roles.WorkspaceRoleViewer)
	env.store.AddMember(uuid.New(), uuid.New(), roles.WorkspaceRoleOwner)

	response, err := env.service.ListMembers(ctx, env.scopeID, roles.WorkspaceRoleViewer)
	require.NoError(t, err)
	require.Len(t, response.Members, 2)

	emails := []string{response.Members[0].Email, response.Members[1].Email}
	assert.ElementsMatch(t, []string{"owner@example.com", "viewer@example.com"}, emails)

	_, err = env.service.ListMembers(ctx, env.scopeID, roles.WorkspaceRole(""))
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
