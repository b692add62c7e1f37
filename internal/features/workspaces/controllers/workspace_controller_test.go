package workspaces_controllers

import (
	"fmt"
	"net/http"
	"testing"

	activity_logs "teamsync/internal/features/activity_logs"
	"teamsync/internal/features/roles"
	users_testing "teamsync/internal/features/users/testing"
	workspaces_dto "teamsync/internal/features/workspaces/dto"
	workspaces_testing "teamsync/internal/features/workspaces/testing"
	test_utils "teamsync/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateWorkspace_WithValidName_CreatorBecomesOwner(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(GetWorkspaceController())
	user := users_testing.CreateTestUser()

	var response workspaces_dto.WorkspaceResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces",
		"Bearer "+user.Token,
		workspaces_dto.CreateWorkspaceRequestDTO{Name: "Acme"},
		http.StatusCreated,
		&response,
	)

	assert.Equal(t, "Acme", response.Name)
	assert.NotEqual(t, uuid.Nil, response.ID)
	require.NotNil(t, response.UserRole)
	assert.Equal(t, roles.WorkspaceRoleOwner, *response.UserRole)

	var fetched workspaces_dto.WorkspaceResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+response.ID.String(),
		"Bearer "+user.Token,
		http.StatusOK,
		&fetched,
	)
	assert.Equal(t, response.ID, fetched.ID)
	require.NotNil(t, fetched.UserRole)
	assert.Equal(t, roles.WorkspaceRoleOwner, *fetched.UserRole)
}

func Test_CreateWorkspace_WithInvalidRequest_ReturnsBadRequest(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(GetWorkspaceController())
	user := users_testing.CreateTestUser()

	testCases := []struct {
		name string
		body any
	}{
		{name: "missing name", body: map[string]string{}},
		{name: "blank name", body: workspaces_dto.CreateWorkspaceRequestDTO{Name: "   "}},
		{name: "malformed json", body: "{"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			test_utils.MakePostRequest(t, router, "/api/v1/workspaces", "Bearer "+user.Token, tc.body, http.StatusBadRequest)
		})
	}
}

func Test_GetWorkspaces_ReturnsOnlyWorkspacesWithMembership(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(GetWorkspaceController())
	owner := users_testing.CreateTestUser()
	viewer := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()

	uniqueID := uuid.New().String()[:8]
	first := workspaces_testing.CreateTestWorkspace(fmt.Sprintf("First %s", uniqueID), owner)
	second := workspaces_testing.CreateTestWorkspace(fmt.Sprintf("Second %s", uniqueID), owner)
	workspaces_testing.AddWorkspaceMember(second, viewer, roles.WorkspaceRoleViewer)

	var ownerResponse workspaces_dto.ListWorkspacesResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/workspaces", "Bearer "+owner.Token, http.StatusOK, &ownerResponse)
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, workspaceIDs(ownerResponse))

	var viewerResponse workspaces_dto.ListWorkspacesResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/workspaces", "Bearer "+viewer.Token, http.StatusOK, &viewerResponse)
	require.Len(t, viewerResponse.Workspaces, 1)
	assert.Equal(t, second.ID, viewerResponse.Workspaces[0].ID)
	require.NotNil(t, viewerResponse.Workspaces[0].UserRole)
	assert.Equal(t, roles.WorkspaceRoleViewer, *viewerResponse.Workspaces[0].UserRole)

	var outsiderResponse workspaces_dto.ListWorkspacesResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/workspaces", "Bearer "+outsider.Token, http.StatusOK, &outsiderResponse)
	assert.Empty(t, outsiderResponse.Workspaces)
}

func Test_GetWorkspace_WhenUserIsNotMember_ReturnsForbidden(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(GetWorkspaceController())
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Private", owner)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String(),
		"Bearer "+outsider.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "insufficient permissions")
}

func Test_GetWorkspace_WithInvalidID_ReturnsBadRequest(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(GetWorkspaceController())
	user := users_testing.CreateTestUser()

	test_utils.MakeGetRequest(t, router, "/api/v1/workspaces/not-a-uuid", "Bearer "+user.Token, http.StatusBadRequest)
}

func Test_GetWorkspace_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(GetWorkspaceController())

	test_utils.MakeGetRequest(t, router, "/api/v1/workspaces", "", http.StatusUnauthorized)
}

func Test_GetWorkspaceActivity_ReturnsCreationLineForMembersOnly(t *testing.T) {
	router := workspaces_testing.CreateTestRouter(GetWorkspaceController())
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Activity", owner)

	var response activity_logs.GetActivityLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/activity",
		"Bearer "+owner.Token,
		http.StatusOK,
		&response,
	)

	messages := make([]string, 0, len(response.ActivityLogs))
	for _, log := range response.ActivityLogs {
		messages = append(messages, log.Message)
	}
	assert.Contains(t, messages, "Workspace created: Activity")

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/activity",
		"Bearer "+outsider.Token,
		http.StatusForbidden,
	)
}

func workspaceIDs(response workspaces_dto.ListWorkspacesResponseDTO) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(response.Workspaces))
	for _, workspace := range response.Workspaces {
		ids = append(ids, workspace.ID)
	}
	return ids
}
