package workspaces_services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	activity_logs "teamsync/internal/features/activity_logs"
	"teamsync/internal/features/roles"
	team_services "teamsync/internal/features/team/services"
	users_models "teamsync/internal/features/users/models"
	workspaces_dto "teamsync/internal/features/workspaces/dto"
	workspaces_models "teamsync/internal/features/workspaces/models"
	workspaces_repositories "teamsync/internal/features/workspaces/repositories"
	cache_utils "teamsync/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type WorkspaceService struct {
	workspaceRepository *workspaces_repositories.WorkspaceRepository
	teamService         *team_services.TeamService[roles.WorkspaceRole]
	activityLogService  *activity_logs.ActivityLogService
	logger              *slog.Logger

	workspaceCacheUtil *cache_utils.CacheUtil[workspaces_models.Workspace]
	singleflight       singleflight.Group // Prevents thundering herd on DB calls
}

// CreateWorkspace stores the workspace and makes the creator its owner.
func (s *WorkspaceService) CreateWorkspace(
	ctx context.Context,
	request *workspaces_dto.CreateWorkspaceRequestDTO,
	creator *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, errors.New("workspace name is required")
	}

	workspace := &workspaces_models.Workspace{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.workspaceRepository.CreateWorkspace(workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	_, err := s.teamService.GrantMembership(ctx, workspace.ID, creator.ID, roles.WorkspaceRoleOwner)
	if err != nil {
		// a workspace without an owner is unreachable, drop it
		if deleteErr := s.workspaceRepository.DeleteWorkspace(workspace.ID); deleteErr != nil {
			s.logger.Error("failed to delete ownerless workspace", "workspaceId", workspace.ID, "error", deleteErr)
		}

		return nil, fmt.Errorf("failed to create workspace membership: %w", err)
	}

	// Pre-warm cache with new workspace for invitation previews
	s.workspaceCacheUtil.Set(workspace.ID.String(), workspace)

	s.activityLogService.WriteActivityLog(
		fmt.Sprintf("Workspace created: %s", workspace.Name),
		&creator.ID,
		&workspace.ID,
		nil,
	)

	ownerRole := roles.WorkspaceRoleOwner
	return &workspaces_dto.WorkspaceResponseDTO{
		ID:        workspace.ID,
		Name:      workspace.Name,
		CreatedAt: workspace.CreatedAt,
		UserRole:  &ownerRole,
	}, nil
}

func (s *WorkspaceService) GetUserWorkspaces(user *users_models.User) (*workspaces_dto.ListWorkspacesResponseDTO, error) {
	workspaces, err := s.workspaceRepository.GetWorkspacesWithRolesByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user workspaces: %w", err)
	}

	return &workspaces_dto.ListWorkspacesResponseDTO{
		Workspaces: workspaces,
	}, nil
}

func (s *WorkspaceService) GetWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	role, err := s.requireWorkspaceView(ctx, workspaceID, user)
	if err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}

		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return &workspaces_dto.WorkspaceResponseDTO{
		ID:        workspace.ID,
		Name:      workspace.Name,
		CreatedAt: workspace.CreatedAt,
		UserRole:  role,
	}, nil
}

func (s *WorkspaceService) GetWorkspaceActivityLogs(
	ctx context.Context,
	workspaceID uuid.UUID,
	user *users_models.User,
	request *activity_logs.GetActivityLogsRequest,
) (*activity_logs.GetActivityLogsResponse, error) {
	if _, err := s.requireWorkspaceView(ctx, workspaceID, user); err != nil {
		return nil, err
	}

	return s.activityLogService.GetWorkspaceActivityLogs(workspaceID, request)
}

// GetUserWorkspaceRole returns nil when the user is not an active member.
func (s *WorkspaceService) GetUserWorkspaceRole(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) (*roles.WorkspaceRole, error) {
	return s.teamService.GetUserRole(ctx, workspaceID, userID)
}

// GetScopeName resolves the workspace name shown on invitation previews.
func (s *WorkspaceService) GetScopeName(_ context.Context, workspaceID uuid.UUID) (string, error) {
	workspace, err := s.GetWorkspaceWithCache(workspaceID)
	if err != nil {
		return "", err
	}

	return workspace.Name, nil
}

func (s *WorkspaceService) GetWorkspaceWithCache(workspaceID uuid.UUID) (*workspaces_models.Workspace, error) {
	workspaceIDStr := workspaceID.String()

	if cachedWorkspace := s.workspaceCacheUtil.Get(workspaceIDStr); cachedWorkspace != nil {
		if cachedWorkspace.IsNotExists {
			return nil, ErrWorkspaceNotFound
		}

		return cachedWorkspace, nil
	}

	result, err, _ := s.singleflight.Do(workspaceIDStr, func() (any, error) {
		return s.workspaceRepository.GetWorkspaceByID(workspaceID)
	})

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get workspace: %w", err)
		}

		// Cache the missing workspace to prevent future DB hits
		s.workspaceCacheUtil.Set(workspaceIDStr, &workspaces_models.Workspace{
			ID:          workspaceID,
			IsNotExists: true,
		})
		return nil, ErrWorkspaceNotFound
	}

	workspace, ok := result.(*workspaces_models.Workspace)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to Workspace")
	}

	s.workspaceCacheUtil.Set(workspaceIDStr, workspace)

	return workspace, nil
}

func (s *WorkspaceService) requireWorkspaceView(
	ctx context.Context,
	workspaceID uuid.UUID,
	user *users_models.User,
) (*roles.WorkspaceRole, error) {
	role, err := s.teamService.GetUserRole(ctx, workspaceID, user.ID)
	if err != nil {
		return nil, err
	}

	if role == nil || !role.HasPermission(roles.PermissionWorkspaceView) {
		return nil, ErrInsufficientPermissions
	}

	return role, nil
}
