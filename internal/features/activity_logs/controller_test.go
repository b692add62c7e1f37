package activity_logs

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	users_middleware "teamsync/internal/features/users/middleware"
	users_services "teamsync/internal/features/users/services"
	users_testing "teamsync/internal/features/users/testing"
	test_utils "teamsync/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_GetMyActivityLogs_ReturnsLogsOfCurrentUser(t *testing.T) {
	user := users_testing.CreateTestUser()
	otherUser := users_testing.CreateTestUser()
	router := createRouter()
	service := GetActivityLogService()
	testID := uuid.New().String()

	ownMessage := fmt.Sprintf("Test own log %s", testID)
	otherMessage := fmt.Sprintf("Test foreign log %s", testID)
	createActivityLog(service, ownMessage, &user.UserID, nil, nil)
	createActivityLog(service, otherMessage, &otherUser.UserID, nil, nil)

	var response GetActivityLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/activity-logs/me?limit=100", "Bearer "+user.Token, http.StatusOK, &response)

	messages := extractMessages(response.ActivityLogs)
	assert.Contains(t, messages, ownMessage)
	assert.NotContains(t, messages, otherMessage)
}

func Test_GetMyActivityLogs_WithBeforeDateFilter_ReturnsFilteredLogs(t *testing.T) {
	user := users_testing.CreateTestUser()
	router := createRouter()
	createActivityLog(GetActivityLogService(), "Test recent log", &user.UserID, nil, nil)

	beforeTime := time.Now().UTC().Add(-30 * time.Minute)

	var response GetActivityLogsResponse
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		fmt.Sprintf("/api/v1/activity-logs/me?beforeDate=%s&limit=1000", beforeTime.Format(time.RFC3339)),
		"Bearer "+user.Token, http.StatusOK, &response)

	for _, log := range response.ActivityLogs {
		assert.True(t, log.CreatedAt.Before(beforeTime),
			fmt.Sprintf("Log created at %s should be before filter time %s",
				log.CreatedAt.Format(time.RFC3339), beforeTime.Format(time.RFC3339)))
	}
}

func Test_GetMyActivityLogs_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	router := createRouter()

	test_utils.MakeGetRequest(t, router, "/api/v1/activity-logs/me", "", http.StatusUnauthorized)
}

func createRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupDependencies()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetActivityLogController().RegisterRoutes(protected.(*gin.RouterGroup))

	return router
}
