package activity_logs

import (
	"net/http"

	users_middleware "teamsync/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type ActivityLogController struct {
	activityLogService *ActivityLogService
}

func (c *ActivityLogController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/activity-logs/me", c.GetMyActivityLogs)
}

// GetMyActivityLogs
// @Summary Get own activity
// @Description Retrieve activity lines written for actions of the current user
// @Tags activity-logs
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param beforeDate query string false "Filter logs created before this date (RFC3339 format)" format(date-time)
// @Success 200 {object} GetActivityLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /activity-logs/me [get]
func (c *ActivityLogController) GetMyActivityLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	request := &GetActivityLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.activityLogService.GetUserActivityLogs(user.ID, request)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activity logs"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
