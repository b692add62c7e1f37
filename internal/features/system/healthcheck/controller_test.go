package system_healthcheck

import (
	"context"
	"errors"
	"net/http"
	"testing"

	test_utils "teamsync/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	err error
}

func (s stubChecker) IsAvailable(context.Context) error {
	return s.err
}

func createRouter(checker AvailabilityChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	controller := &HealthcheckController{checker: checker}
	controller.RegisterRoutes(router.Group("/api/v1"))

	return router
}

func Test_CheckHealth_ReturnsOk(t *testing.T) {
	router := createRouter(stubChecker{err: errors.New("down")})

	test_utils.MakeGetRequest(t, router, "/api/v1/system/health", "", http.StatusOK)
}

func Test_CheckReadiness_WhenDependenciesAvailable_ReturnsReady(t *testing.T) {
	router := createRouter(stubChecker{})

	var response map[string]string
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/system/ready", "", http.StatusOK, &response)

	assert.Equal(t, "ready", response["status"])
}

func Test_CheckReadiness_WhenDependencyDown_ReturnsServiceUnavailable(t *testing.T) {
	router := createRouter(stubChecker{err: errors.New("cache check failed: timeout")})

	var response map[string]string
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/system/ready", "", http.StatusServiceUnavailable, &response)

	assert.Contains(t, response["error"], "cache check failed")
}
