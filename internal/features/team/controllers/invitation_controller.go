package team_controllers

import (
	"context"
	"net/http"
	"strconv"

	team_dto "teamsync/internal/features/team/dto"
	team_services "teamsync/internal/features/team/services"
	users_middleware "teamsync/internal/features/users/middleware"
	"teamsync/internal/util/logger"
	"teamsync/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvitationHandler is implemented by every TeamService instantiation.
type InvitationHandler interface {
	OwnsToken(token string) bool
	PreviewInvitation(ctx context.Context, token string) (*team_dto.InvitationPreviewDTO, error)
	AcceptInvitation(
		ctx context.Context,
		token string,
		userID uuid.UUID,
	) (*team_dto.AcceptInvitationResponseDTO, error)
}

type AcceptLimit struct {
	RPS   int
	Burst int
}

// InvitationController serves the token-addressed invitation routes. The
// token prefix picks the scope kind.
type InvitationController struct {
	handlers    []InvitationHandler
	rateLimiter *rate_limit.RateLimiter
	acceptLimit AcceptLimit
}

func NewInvitationController(handlers ...InvitationHandler) *InvitationController {
	return &InvitationController{handlers: handlers}
}

// SetRateLimiter enables per-user throttling of acceptance attempts.
func (c *InvitationController) SetRateLimiter(limiter *rate_limit.RateLimiter, limit AcceptLimit) {
	c.rateLimiter = limiter
	c.acceptLimit = limit
}

func (c *InvitationController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/invitations/:token", c.PreviewInvitation)
	router.POST("/invitations/:token/accept", c.AcceptInvitation)
}

// PreviewInvitation
// @Summary Preview invitation
// @Description Describe the invitation behind a token: scope, role, inviter and effective status
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param token path string true "Invitation token"
// @Success 200 {object} team_dto.InvitationPreviewDTO
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /invitations/{token} [get]
func (c *InvitationController) PreviewInvitation(ctx *gin.Context) {
	if _, ok := users_middleware.GetUserFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	token := ctx.Param("token")
	handler := c.handlerFor(token)
	if handler == nil {
		respondWithError(ctx, team_services.ErrInvalidToken)
		return
	}

	response, err := handler.PreviewInvitation(ctx.Request.Context(), token)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AcceptInvitation
// @Summary Accept invitation
// @Description Join the workspace or project the invitation was issued for
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param token path string true "Invitation token"
// @Success 200 {object} team_dto.AcceptInvitationResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Router /invitations/{token}/accept [post]
func (c *InvitationController) AcceptInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	// tokens are unguessable, the limit only blunts automated probing
	if c.rateLimiter != nil {
		result, err := c.rateLimiter.Allow(
			ctx.Request.Context(),
			"invitation_accept:"+user.ID.String(),
			c.acceptLimit.RPS,
			c.acceptLimit.Burst,
		)
		if err != nil {
			logger.GetLogger().Warn("rate limit check failed", "userId", user.ID, "error", err)
		}

		if !result.Allowed {
			ctx.Header("Retry-After", strconv.Itoa(result.RetryAfterSec))
			ctx.JSON(
				http.StatusTooManyRequests,
				gin.H{"error": "Rate limit exceeded. Please try again later."},
			)
			return
		}
	}

	token := ctx.Param("token")
	handler := c.handlerFor(token)
	if handler == nil {
		respondWithError(ctx, team_services.ErrInvalidToken)
		return
	}

	response, err := handler.AcceptInvitation(ctx.Request.Context(), token, user.ID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *InvitationController) handlerFor(token string) InvitationHandler {
	for _, handler := range c.handlers {
		if handler.OwnsToken(token) {
			return handler
		}
	}

	return nil
}
