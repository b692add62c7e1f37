package projects_services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	activity_logs "teamsync/internal/features/activity_logs"
	projects_dto "teamsync/internal/features/projects/dto"
	projects_interfaces "teamsync/internal/features/projects/interfaces"
	projects_models "teamsync/internal/features/projects/models"
	projects_repositories "teamsync/internal/features/projects/repositories"
	"teamsync/internal/features/roles"
	team_services "teamsync/internal/features/team/services"
	users_models "teamsync/internal/features/users/models"
	cache_utils "teamsync/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type ProjectService struct {
	projectRepository     *projects_repositories.ProjectRepository
	workspaceRoleResolver projects_interfaces.WorkspaceRoleResolver
	teamService           *team_services.TeamService[roles.ProjectRole]
	activityLogService    *activity_logs.ActivityLogService
	logger                *slog.Logger

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

// CreateProject requires the projects:create workspace permission. The
// creator becomes project admin.
func (s *ProjectService) CreateProject(
	ctx context.Context,
	workspaceID uuid.UUID,
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	workspaceRole, err := s.workspaceRoleResolver.GetUserWorkspaceRole(ctx, workspaceID, creator.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace role: %w", err)
	}

	if workspaceRole == nil || !roles.CanCreateProject(*workspaceRole) {
		return nil, ErrCannotCreateProjects
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	project := &projects_models.Project{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		Description: strings.TrimSpace(request.Description),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.projectRepository.CreateProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	_, err = s.teamService.GrantMembership(ctx, project.ID, creator.ID, roles.ProjectRoleAdmin)
	if err != nil {
		if deleteErr := s.projectRepository.DeleteProject(project.ID); deleteErr != nil {
			s.logger.Error("failed to delete project without admin", "projectId", project.ID, "error", deleteErr)
		}

		return nil, fmt.Errorf("failed to create project membership: %w", err)
	}

	// Pre-warm cache with new project for invitation previews
	s.projectCacheUtil.Set(project.ID.String(), project)

	s.activityLogService.WriteActivityLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&creator.ID,
		&workspaceID,
		&project.ID,
	)

	adminRole := roles.ProjectRoleAdmin
	return &projects_dto.ProjectResponseDTO{
		ID:          project.ID,
		WorkspaceID: project.WorkspaceID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UserRole:    &adminRole,
	}, nil
}

func (s *ProjectService) GetWorkspaceProjects(
	ctx context.Context,
	workspaceID uuid.UUID,
	user *users_models.User,
) (*projects_dto.ListProjectsResponseDTO, error) {
	workspaceRole, err := s.workspaceRoleResolver.GetUserWorkspaceRole(ctx, workspaceID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace role: %w", err)
	}

	if workspaceRole == nil || !roles.HasWorkspacePermission(*workspaceRole, roles.PermissionProjectsView) {
		return nil, ErrCannotViewWorkspace
	}

	projects, err := s.projectRepository.GetWorkspaceProjectsWithRole(workspaceID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace projects: %w", err)
	}

	return &projects_dto.ListProjectsResponseDTO{
		Projects: projects,
	}, nil
}

func (s *ProjectService) GetProject(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	project, projectRole, err := s.getViewableProject(ctx, projectID, user)
	if err != nil {
		return nil, err
	}

	return &projects_dto.ProjectResponseDTO{
		ID:          project.ID,
		WorkspaceID: project.WorkspaceID,
		Name:        project.Name,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UserRole:    projectRole,
	}, nil
}

// DeleteProject is allowed to project admins and to workspace roles holding
// projects:delete.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID uuid.UUID, user *users_models.User) error {
	project, err := s.getProject(projectID)
	if err != nil {
		return err
	}

	projectRole, err := s.teamService.GetUserRole(ctx, projectID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get project role: %w", err)
	}

	canDelete := projectRole != nil && roles.HasProjectPermission(*projectRole, roles.PermissionProjectDelete)
	if !canDelete {
		workspaceRole, err := s.workspaceRoleResolver.GetUserWorkspaceRole(ctx, project.WorkspaceID, user.ID)
		if err != nil {
			return fmt.Errorf("failed to get workspace role: %w", err)
		}

		canDelete = workspaceRole != nil &&
			roles.HasWorkspacePermission(*workspaceRole, roles.PermissionProjectsDelete)
	}

	if !canDelete {
		return ErrCannotDeleteProject
	}

	if err := s.projectRepository.DeleteProject(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.activityLogService.WriteActivityLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&user.ID,
		&project.WorkspaceID,
		nil,
	)

	return nil
}

func (s *ProjectService) GetProjectActivityLogs(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
	request *activity_logs.GetActivityLogsRequest,
) (*activity_logs.GetActivityLogsResponse, error) {
	if _, _, err := s.getViewableProject(ctx, projectID, user); err != nil {
		return nil, err
	}

	return s.activityLogService.GetProjectActivityLogs(projectID, request)
}

// GetUserProjectRole returns nil when the user is not an active member.
func (s *ProjectService) GetUserProjectRole(ctx context.Context, projectID, userID uuid.UUID) (*roles.ProjectRole, error) {
	return s.teamService.GetUserRole(ctx, projectID, userID)
}

// GetScopeName resolves the project name shown on invitation previews.
func (s *ProjectService) GetScopeName(_ context.Context, projectID uuid.UUID) (string, error) {
	project, err := s.GetProjectWithCache(projectID)
	if err != nil {
		return "", err
	}

	return project.Name, nil
}

func (s *ProjectService) GetProjectWithCache(projectID uuid.UUID) (*projects_models.Project, error) {
	projectIDStr := projectID.String()

	// Tier 1: Check cache
	if cachedProject := s.projectCacheUtil.Get(projectIDStr); cachedProject != nil {
		if cachedProject.IsNotExists {
			return nil, ErrProjectNotFound
		}

		return cachedProject, nil
	}

	// Tier 2: Database lookup with singleflight protection
	result, err, _ := s.singleflight.Do(projectIDStr, func() (any, error) {
		return s.projectRepository.GetProjectByID(projectID)
	})

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get project: %w", err)
		}

		// Cache the missing project to prevent future DB hits
		s.projectCacheUtil.Set(projectIDStr, &projects_models.Project{
			ID:          projectID,
			IsNotExists: true,
		})
		return nil, ErrProjectNotFound
	}

	project, ok := result.(*projects_models.Project)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to Project")
	}

	s.projectCacheUtil.Set(projectIDStr, project)

	return project, nil
}

// getViewableProject grants access to project members with project:view and
// to workspace members with projects:view. The returned role is the project
// role and may be nil.
func (s *ProjectService) getViewableProject(
	ctx context.Context,
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_models.Project, *roles.ProjectRole, error) {
	project, err := s.getProject(projectID)
	if err != nil {
		return nil, nil, err
	}

	projectRole, err := s.teamService.GetUserRole(ctx, projectID, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get project role: %w", err)
	}

	if projectRole != nil && roles.HasProjectPermission(*projectRole, roles.PermissionProjectView) {
		return project, projectRole, nil
	}

	workspaceRole, err := s.workspaceRoleResolver.GetUserWorkspaceRole(ctx, project.WorkspaceID, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workspace role: %w", err)
	}

	if workspaceRole == nil || !roles.HasWorkspacePermission(*workspaceRole, roles.PermissionProjectsView) {
		return nil, nil, ErrCannotViewProject
	}

	return project, projectRole, nil
}

func (s *ProjectService) getProject(projectID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}

		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}
