package system_healthcheck

import (
	"teamsync/internal/downdetect"
)

var healthcheckController = &HealthcheckController{}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}

func getAvailabilityChecker() AvailabilityChecker {
	return downdetect.GetDowndetectService()
}
