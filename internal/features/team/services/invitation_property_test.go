package team_services

import (
	"context"
	"testing"

	"teamsync/internal/features/roles"
	team_dto "teamsync/internal/features/team/dto"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genWorkspaceRole() gopter.Gen {
	return gen.OneConstOf(
		roles.WorkspaceRoleOwner,
		roles.WorkspaceRoleAdmin,
		roles.WorkspaceRoleMember,
		roles.WorkspaceRoleViewer,
		roles.WorkspaceRole("intruder"),
	)
}

func TestInvitationAuthorizationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 150
	properties := gopter.NewProperties(parameters)

	properties.Property("invite succeeds iff inviter may invite and the role is valid and not above it", prop.ForAll(
		func(inviterRole roles.WorkspaceRole, invitedRole roles.WorkspaceRole) bool {
			env := newWorkspaceEnv()

			_, err := env.service.CreateInvitation(
				context.Background(),
				env.scopeID,
				uuid.New(),
				inviterRole,
				&team_dto.CreateInvitationRequestDTO[roles.WorkspaceRole]{
					Email: "candidate@example.com",
					Role:  invitedRole,
				},
			)

			allowed := inviterRole.CanInviteMembers() &&
				invitedRole.IsValid() &&
				invitedRole.Level() <= inviterRole.Level()

			if allowed {
				return err == nil && len(env.store.AllInvitations()) == 1
			}

			return err != nil && len(env.store.AllInvitations()) == 0
		},
		genWorkspaceRole(),
		genWorkspaceRole(),
	))

	properties.Property("role changes never leave a scope without an owner", prop.ForAll(
		func(callerRole, targetRole, newRole roles.WorkspaceRole) bool {
			env := newWorkspaceEnv()
			_, ownerMembership := env.addMember("owner@example.com", roles.WorkspaceRoleOwner)
			_, target := env.addMember("target@example.com", roles.WorkspaceRoleMember)
			if targetRole.IsValid() {
				_, target = env.addMember("other@example.com", targetRole)
			}

			err := env.service.UpdateRole(
				context.Background(),
				env.scopeID,
				ownerMembership.ID,
				newRole,
				uuid.New(),
				callerRole,
			)
			if err == nil && newRole != roles.WorkspaceRoleOwner && targetRole != roles.WorkspaceRoleOwner {
				return false
			}

			_ = env.service.RemoveMember(context.Background(), env.scopeID, target.ID, uuid.New(), callerRole)

			count, countErr := env.store.CountActiveMembersWithRole(
				context.Background(),
				env.scopeID,
				roles.WorkspaceRoleOwner,
			)

			return countErr == nil && count >= 1
		},
		genWorkspaceRole(),
		genWorkspaceRole(),
		genWorkspaceRole(),
	))

	properties.TestingRun(t)
}
