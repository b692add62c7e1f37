package workspaces_controllers

import (
	"net/http"
	"strings"
	"testing"

	"teamsync/internal/features/roles"
	team_controllers "teamsync/internal/features/team/controllers"
	team_dto "teamsync/internal/features/team/dto"
	team_models "teamsync/internal/features/team/models"
	users_testing "teamsync/internal/features/users/testing"
	workspaces_dto "teamsync/internal/features/workspaces/dto"
	workspaces_testing "teamsync/internal/features/workspaces/testing"
	test_utils "teamsync/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WorkspaceInvitationFlow_OwnerInvitesAndUserAccepts(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		team_controllers.GetWorkspaceTeamController(),
		team_controllers.GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspaceViaAPI("Flow workspace", owner, router)
	workspacePath := "/api/v1/workspaces/" + workspace.ID.String()

	var invitation team_dto.InvitationResponseDTO[roles.WorkspaceRole]
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		workspacePath+"/invitations",
		"Bearer "+owner.Token,
		team_dto.CreateInvitationRequestDTO[roles.WorkspaceRole]{
			Email: strings.ToUpper(invitee.Email),
			Role:  roles.WorkspaceRoleMember,
		},
		http.StatusCreated,
		&invitation,
	)
	assert.Equal(t, invitee.Email, invitation.Email)
	assert.Equal(t, team_models.InvitationStatusPending, invitation.Status)
	require.True(t, strings.HasPrefix(invitation.Token, "wsi_"))

	var preview team_dto.InvitationPreviewDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/invitations/"+invitation.Token,
		"Bearer "+invitee.Token,
		http.StatusOK,
		&preview,
	)
	assert.Equal(t, "Flow workspace", preview.ScopeName)
	assert.Equal(t, "workspace", preview.Scope)

	var accepted team_dto.AcceptInvitationResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/invitations/"+invitation.Token+"/accept",
		"Bearer "+invitee.Token,
		nil,
		http.StatusOK,
		&accepted,
	)
	assert.Equal(t, workspace.ID, accepted.ScopeID)
	assert.Equal(t, string(roles.WorkspaceRoleMember), accepted.Role)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/"+invitation.Token+"/accept",
		"Bearer "+invitee.Token,
		nil,
		http.StatusBadRequest,
	)

	var fetched workspaces_dto.WorkspaceResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, workspacePath, "Bearer "+invitee.Token, http.StatusOK, &fetched)
	require.NotNil(t, fetched.UserRole)
	assert.Equal(t, roles.WorkspaceRoleMember, *fetched.UserRole)

	var members team_dto.GetMembersResponseDTO[roles.WorkspaceRole]
	test_utils.MakeGetRequestAndUnmarshal(t, router, workspacePath+"/members", "Bearer "+invitee.Token, http.StatusOK, &members)
	assert.Len(t, members.Members, 2)

	// members cannot invite
	test_utils.MakePostRequest(
		t,
		router,
		workspacePath+"/invitations",
		"Bearer "+invitee.Token,
		team_dto.CreateInvitationRequestDTO[roles.WorkspaceRole]{Email: "someone@example.com", Role: roles.WorkspaceRoleViewer},
		http.StatusForbidden,
	)
}

func Test_WorkspaceInvitationFlow_DuplicateAndRevokedInvitations(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(
		GetWorkspaceController(),
		team_controllers.GetWorkspaceTeamController(),
		team_controllers.GetInvitationController(),
	)
	owner := users_testing.CreateTestUser()
	invitee := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Duplicates", owner)
	workspacePath := "/api/v1/workspaces/" + workspace.ID.String()

	request := team_dto.CreateInvitationRequestDTO[roles.WorkspaceRole]{Email: invitee.Email, Role: roles.WorkspaceRoleViewer}

	var invitation team_dto.InvitationResponseDTO[roles.WorkspaceRole]
	test_utils.MakePostRequestAndUnmarshal(t, router, workspacePath+"/invitations", "Bearer "+owner.Token, request, http.StatusCreated, &invitation)
	test_utils.MakePostRequest(t, router, workspacePath+"/invitations", "Bearer "+owner.Token, request, http.StatusBadRequest)

	test_utils.MakeDeleteRequest(t, router, workspacePath+"/invitations/"+invitation.ID.String(), "Bearer "+owner.Token, http.StatusOK)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/invitations/"+invitation.Token+"/accept",
		"Bearer "+invitee.Token,
		nil,
		http.StatusBadRequest,
	)

	test_utils.MakePostRequest(t, router, workspacePath+"/invitations", "Bearer "+owner.Token, request, http.StatusCreated)
}
