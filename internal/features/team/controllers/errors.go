package team_controllers

import (
	"errors"
	"net/http"

	team_services "teamsync/internal/features/team/services"
	"teamsync/internal/util/logger"

	"github.com/gin-gonic/gin"
)

var badRequestErrors = []error{
	team_services.ErrAlreadyMember,
	team_services.ErrDuplicatePendingInvite,
	team_services.ErrAlreadyProcessed,
	team_services.ErrInvitationExpired,
	team_services.ErrInvalidRole,
	team_services.ErrInvalidEmail,
	team_services.ErrLastOwner,
}

// respondWithError maps team errors to HTTP statuses. Unknown errors are
// logged and reported without detail.
func respondWithError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, team_services.ErrPermissionDenied),
		errors.Is(err, team_services.ErrEmailMismatch):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	case errors.Is(err, team_services.ErrInvalidToken),
		errors.Is(err, team_services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	logger.GetLogger().Error(
		"team request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
