package team_controllers

import (
	"net/http"

	"teamsync/internal/features/roles"
	team_dto "teamsync/internal/features/team/dto"
	team_services "teamsync/internal/features/team/services"
	users_middleware "teamsync/internal/features/users/middleware"
	users_models "teamsync/internal/features/users/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TeamController serves the members and invitations routes of one scope kind,
// mounted under /workspaces/:id or /projects/:id.
type TeamController[R roles.Role] struct {
	teamService *team_services.TeamService[R]
	basePath    string
}

func NewTeamController[R roles.Role](
	teamService *team_services.TeamService[R],
	basePath string,
) *TeamController[R] {
	return &TeamController[R]{
		teamService: teamService,
		basePath:    basePath,
	}
}

func (c *TeamController[R]) RegisterRoutes(router *gin.RouterGroup) {
	scopeRoutes := router.Group(c.basePath + "/:id")

	scopeRoutes.GET("/members", c.ListMembers)
	scopeRoutes.PUT("/members/:memberId/role", c.UpdateMemberRole)
	scopeRoutes.DELETE("/members/:memberId", c.RemoveMember)

	scopeRoutes.GET("/invitations", c.ListInvitations)
	scopeRoutes.POST("/invitations", c.CreateInvitation)
	scopeRoutes.DELETE("/invitations/:invitationId", c.CancelInvitation)
	scopeRoutes.POST("/invitations/:invitationId/resend", c.ResendInvitation)
}

// ListMembers
// @Summary List members
// @Description List members of a workspace or project. Requires the view members permission.
// @Tags team
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace or project ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/members [get]
// @Router /projects/{id}/members [get]
func (c *TeamController[R]) ListMembers(ctx *gin.Context) {
	_, scopeID, role, ok := c.resolveCaller(ctx)
	if !ok {
		return
	}

	response, err := c.teamService.ListMembers(ctx.Request.Context(), scopeID, role)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateMemberRole
// @Summary Change member role
// @Description Change the role of a member. The caller cannot grant a role above its own.
// @Tags team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace or project ID"
// @Param memberId path string true "Membership ID"
// @Param request body map[string]string true "New role"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/members/{memberId}/role [put]
// @Router /projects/{id}/members/{memberId}/role [put]
func (c *TeamController[R]) UpdateMemberRole(ctx *gin.Context) {
	user, scopeID, role, ok := c.resolveCaller(ctx)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(ctx.Param("memberId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	var request team_dto.UpdateMemberRoleRequestDTO[R]
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err = c.teamService.UpdateRole(ctx.Request.Context(), scopeID, memberID, request.Role, user.ID, role)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member role changed successfully"})
}

// RemoveMember
// @Summary Remove member
// @Description Remove a member from a workspace or project
// @Tags team
// @Security BearerAuth
// @Param id path string true "Workspace or project ID"
// @Param memberId path string true "Membership ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/members/{memberId} [delete]
// @Router /projects/{id}/members/{memberId} [delete]
func (c *TeamController[R]) RemoveMember(ctx *gin.Context) {
	user, scopeID, role, ok := c.resolveCaller(ctx)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(ctx.Param("memberId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	if err := c.teamService.RemoveMember(ctx.Request.Context(), scopeID, memberID, user.ID, role); err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

// ListInvitations
// @Summary List invitations
// @Description List invitations of a workspace or project with their effective status
// @Tags team
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace or project ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/invitations [get]
// @Router /projects/{id}/invitations [get]
func (c *TeamController[R]) ListInvitations(ctx *gin.Context) {
	_, scopeID, role, ok := c.resolveCaller(ctx)
	if !ok {
		return
	}

	response, err := c.teamService.ListInvitations(ctx.Request.Context(), scopeID, role)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateInvitation
// @Summary Invite by email
// @Description Create a pending invitation. The response carries the token and acceptance link.
// @Tags team
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace or project ID"
// @Param request body map[string]string true "Email and role"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/invitations [post]
// @Router /projects/{id}/invitations [post]
func (c *TeamController[R]) CreateInvitation(ctx *gin.Context) {
	user, scopeID, role, ok := c.resolveCaller(ctx)
	if !ok {
		return
	}

	var request team_dto.CreateInvitationRequestDTO[R]
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.teamService.CreateInvitation(ctx.Request.Context(), scopeID, user.ID, role, &request)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// CancelInvitation
// @Summary Revoke invitation
// @Description Revoke a pending invitation
// @Tags team
// @Security BearerAuth
// @Param id path string true "Workspace or project ID"
// @Param invitationId path string true "Invitation ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/invitations/{invitationId} [delete]
// @Router /projects/{id}/invitations/{invitationId} [delete]
func (c *TeamController[R]) CancelInvitation(ctx *gin.Context) {
	user, scopeID, role, ok := c.resolveCaller(ctx)
	if !ok {
		return
	}

	invitationID, err := uuid.Parse(ctx.Param("invitationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation ID"})
		return
	}

	err = c.teamService.CancelInvitation(ctx.Request.Context(), scopeID, invitationID, user.ID, role)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Invitation revoked successfully"})
}

// ResendInvitation
// @Summary Resend invitation
// @Description Issue a new token for a pending invitation and extend its expiry
// @Tags team
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace or project ID"
// @Param invitationId path string true "Invitation ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/invitations/{invitationId}/resend [post]
// @Router /projects/{id}/invitations/{invitationId}/resend [post]
func (c *TeamController[R]) ResendInvitation(ctx *gin.Context) {
	user, scopeID, role, ok := c.resolveCaller(ctx)
	if !ok {
		return
	}

	invitationID, err := uuid.Parse(ctx.Param("invitationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation ID"})
		return
	}

	response, err := c.teamService.ResendInvitation(ctx.Request.Context(), scopeID, invitationID, user.ID, role)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// resolveCaller writes the error response itself when it returns false.
func (c *TeamController[R]) resolveCaller(ctx *gin.Context) (*users_models.User, uuid.UUID, R, bool) {
	var none R

	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, uuid.Nil, none, false
	}

	scopeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + c.teamService.Kind().Name + " ID"})
		return nil, uuid.Nil, none, false
	}

	role, err := c.teamService.GetUserRole(ctx.Request.Context(), scopeID, user.ID)
	if err != nil {
		respondWithError(ctx, err)
		return nil, uuid.Nil, none, false
	}

	if role == nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": team_services.ErrPermissionDenied.Error()})
		return nil, uuid.Nil, none, false
	}

	return user, scopeID, *role, true
}
