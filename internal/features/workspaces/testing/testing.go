package workspaces_testing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	activity_logs "teamsync/internal/features/activity_logs"
	"teamsync/internal/features/roles"
	team_services "teamsync/internal/features/team/services"
	users_dto "teamsync/internal/features/users/dto"
	users_middleware "teamsync/internal/features/users/middleware"
	users_services "teamsync/internal/features/users/services"
	workspaces_dto "teamsync/internal/features/workspaces/dto"
	workspaces_models "teamsync/internal/features/workspaces/models"
	workspaces_services "teamsync/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
)

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// CreateTestRouter mounts the controllers behind the real JWT middleware.
func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		if routerGroup, ok := protected.(*gin.RouterGroup); ok {
			controller.RegisterRoutes(routerGroup)
		}
	}

	activity_logs.SetupDependencies()
	workspaces_services.SetupDependencies()

	return router
}

// CreateTestWorkspace creates a workspace owned by the given user without
// going through HTTP.
func CreateTestWorkspace(name string, owner *users_dto.SignInResponseDTO) *workspaces_models.Workspace {
	ownerUser, err := users_services.GetUserService().GetUserByID(owner.UserID)
	if err != nil {
		panic(err)
	}

	response, err := workspaces_services.GetWorkspaceService().CreateWorkspace(
		context.Background(),
		&workspaces_dto.CreateWorkspaceRequestDTO{Name: name},
		ownerUser,
	)
	if err != nil {
		panic(err)
	}

	return &workspaces_models.Workspace{
		ID:        response.ID,
		Name:      response.Name,
		CreatedAt: response.CreatedAt,
	}
}

// CreateTestWorkspaceViaAPI creates a workspace through POST /workspaces.
func CreateTestWorkspaceViaAPI(
	name string,
	owner *users_dto.SignInResponseDTO,
	router *gin.Engine,
) *workspaces_dto.WorkspaceResponseDTO {
	w := MakeAPIRequest(
		router,
		http.MethodPost,
		"/api/v1/workspaces",
		"Bearer "+owner.Token,
		workspaces_dto.CreateWorkspaceRequestDTO{Name: name},
	)

	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("Failed to create workspace. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var response workspaces_dto.WorkspaceResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

// AddWorkspaceMember grants an active membership directly, skipping the
// invitation round trip.
func AddWorkspaceMember(
	workspace *workspaces_models.Workspace,
	member *users_dto.SignInResponseDTO,
	role roles.WorkspaceRole,
) {
	_, err := team_services.GetWorkspaceTeamService().GrantMembership(
		context.Background(),
		workspace.ID,
		member.UserID,
		role,
	)
	if err != nil {
		panic("Failed to add member to workspace: " + err.Error())
	}
}

func MakeAPIRequest(router *gin.Engine, method, url, authToken string, body any) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
