package projects_controllers

import (
	"net/http"
	"testing"

	projects_dto "teamsync/internal/features/projects/dto"
	projects_services "teamsync/internal/features/projects/services"
	projects_testing "teamsync/internal/features/projects/testing"
	"teamsync/internal/features/roles"
	users_testing "teamsync/internal/features/users/testing"
	workspaces_testing "teamsync/internal/features/workspaces/testing"
	test_utils "teamsync/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateProject_WithDifferentWorkspaceRoles_EnforcesCreatePermission(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Roles workspace", owner)

	testCases := []struct {
		name           string
		role           roles.WorkspaceRole
		expectedStatus int
	}{
		{name: "admin creates", role: roles.WorkspaceRoleAdmin, expectedStatus: http.StatusCreated},
		{name: "member creates", role: roles.WorkspaceRoleMember, expectedStatus: http.StatusCreated},
		{name: "viewer is denied", role: roles.WorkspaceRoleViewer, expectedStatus: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user := users_testing.CreateTestUser()
			workspaces_testing.AddWorkspaceMember(workspace, user, tc.role)

			resp := test_utils.MakePostRequest(
				t,
				router,
				"/api/v1/workspaces/"+workspace.ID.String()+"/projects",
				"Bearer "+user.Token,
				projects_dto.CreateProjectRequestDTO{Name: "Project of " + string(tc.role)},
				tc.expectedStatus,
			)

			if tc.expectedStatus == http.StatusForbidden {
				assert.Contains(t, string(resp.Body), "insufficient permissions to create projects")
			}
		})
	}
}

func Test_CreateProject_WhenUserIsOutsideWorkspace_ReturnsForbidden(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Closed workspace", owner)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/projects",
		"Bearer "+outsider.Token,
		projects_dto.CreateProjectRequestDTO{Name: "Intrusion"},
		http.StatusForbidden,
	)
}

func Test_CreateProject_CreatorBecomesProjectAdmin(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Admin workspace", owner)

	var response projects_dto.ProjectResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/projects",
		"Bearer "+owner.Token,
		projects_dto.CreateProjectRequestDTO{Name: "  Roadmap  ", Description: "Q3 plans"},
		http.StatusCreated,
		&response,
	)

	assert.Equal(t, "Roadmap", response.Name)
	assert.Equal(t, "Q3 plans", response.Description)
	assert.Equal(t, workspace.ID, response.WorkspaceID)
	require.NotNil(t, response.UserRole)
	assert.Equal(t, roles.ProjectRoleAdmin, *response.UserRole)

	role, err := projects_services.GetProjectService().GetUserProjectRole(t.Context(), response.ID, owner.UserID)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, roles.ProjectRoleAdmin, *role)
}

func Test_CreateProject_WithInvalidRequest_ReturnsBadRequest(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Validation workspace", owner)
	path := "/api/v1/workspaces/" + workspace.ID.String() + "/projects"

	test_utils.MakePostRequest(t, router, path, "Bearer "+owner.Token, map[string]string{}, http.StatusBadRequest)
	test_utils.MakePostRequest(
		t,
		router,
		path,
		"Bearer "+owner.Token,
		projects_dto.CreateProjectRequestDTO{Name: "   "},
		http.StatusBadRequest,
	)
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/workspaces/not-a-uuid/projects",
		"Bearer "+owner.Token,
		projects_dto.CreateProjectRequestDTO{Name: "Valid"},
		http.StatusBadRequest,
	)
}

func Test_GetWorkspaceProjects_ReturnsProjectsWithCallerRole(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	viewer := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Listing workspace", owner)
	workspaces_testing.AddWorkspaceMember(workspace, viewer, roles.WorkspaceRoleViewer)

	alpha := projects_testing.CreateTestProject(workspace, "Alpha", owner)
	beta := projects_testing.CreateTestProject(workspace, "Beta", owner)
	projects_testing.AddProjectMember(beta, viewer, roles.ProjectRoleMember)

	var response projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/projects",
		"Bearer "+viewer.Token,
		http.StatusOK,
		&response,
	)

	require.Len(t, response.Projects, 2)
	assert.Equal(t, alpha.ID, response.Projects[0].ID)
	assert.Nil(t, response.Projects[0].UserRole)
	assert.Equal(t, beta.ID, response.Projects[1].ID)
	require.NotNil(t, response.Projects[1].UserRole)
	assert.Equal(t, roles.ProjectRoleMember, *response.Projects[1].UserRole)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/workspaces/"+workspace.ID.String()+"/projects",
		"Bearer "+outsider.Token,
		http.StatusForbidden,
	)
}

func Test_GetProject_WithDifferentAccessPaths_EnforcesVisibility(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	workspaceViewer := users_testing.CreateTestUser()
	projectOnly := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()

	workspace := workspaces_testing.CreateTestWorkspace("Visibility workspace", owner)
	workspaces_testing.AddWorkspaceMember(workspace, workspaceViewer, roles.WorkspaceRoleViewer)
	project := projects_testing.CreateTestProject(workspace, "Visible", owner)
	projects_testing.AddProjectMember(project, projectOnly, roles.ProjectRoleViewer)

	path := "/api/v1/projects/" + project.ID.String()

	var viaWorkspace projects_dto.ProjectResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, path, "Bearer "+workspaceViewer.Token, http.StatusOK, &viaWorkspace)
	assert.Equal(t, project.ID, viaWorkspace.ID)
	assert.Nil(t, viaWorkspace.UserRole)

	var viaProject projects_dto.ProjectResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, path, "Bearer "+projectOnly.Token, http.StatusOK, &viaProject)
	require.NotNil(t, viaProject.UserRole)
	assert.Equal(t, roles.ProjectRoleViewer, *viaProject.UserRole)

	test_utils.MakeGetRequest(t, router, path, "Bearer "+outsider.Token, http.StatusForbidden)
	test_utils.MakeGetRequest(t, router, "/api/v1/projects/"+uuid.New().String(), "Bearer "+owner.Token, http.StatusNotFound)
}

func Test_DeleteProject_WithDifferentRoles_EnforcesDeletePermission(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	projectMember := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Deletion workspace", owner)
	workspaces_testing.AddWorkspaceMember(workspace, projectMember, roles.WorkspaceRoleMember)

	project := projects_testing.CreateTestProject(workspace, "Disposable", owner)
	projects_testing.AddProjectMember(project, projectMember, roles.ProjectRoleMember)
	path := "/api/v1/projects/" + project.ID.String()

	test_utils.MakeDeleteRequest(t, router, path, "Bearer "+projectMember.Token, http.StatusForbidden)

	// workspace owner deletes a project it has no project role in
	memberProject := projects_testing.CreateTestProject(workspace, "Member owned", projectMember)
	test_utils.MakeDeleteRequest(t, router, "/api/v1/projects/"+memberProject.ID.String(), "Bearer "+owner.Token, http.StatusOK)

	test_utils.MakeDeleteRequest(t, router, path, "Bearer "+owner.Token, http.StatusOK)
	test_utils.MakeGetRequest(t, router, path, "Bearer "+owner.Token, http.StatusNotFound)
}

func Test_GetProjectActivity_ReturnsProjectLines(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	workspace := workspaces_testing.CreateTestWorkspace("Activity workspace", owner)
	project := projects_testing.CreateTestProject(workspace, "Tracked", owner)

	var response struct {
		ActivityLogs []struct {
			Message string `json:"message"`
		} `json:"activityLogs"`
	}
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/activity",
		"Bearer "+owner.Token,
		http.StatusOK,
		&response,
	)

	require.NotEmpty(t, response.ActivityLogs)
	assert.Equal(t, "Project created: Tracked", response.ActivityLogs[0].Message)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/activity",
		"Bearer "+outsider.Token,
		http.StatusForbidden,
	)
}

func createProjectTestRouter() *gin.Engine {
	router := workspaces_testing.CreateTestRouter(GetProjectController())
	projects_services.SetupDependencies()

	return router
}
