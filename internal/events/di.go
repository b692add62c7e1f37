package events

import (
	team_services "teamsync/internal/features/team/services"
	"teamsync/internal/util/logger"
)

// SetupDependencies attaches the publisher to both team services. Without a
// bus nothing is attached.
func SetupDependencies() {
	bus := GetBus()
	if bus == nil {
		return
	}

	publisher := NewTeamEventPublisher(bus, logger.GetLogger())
	team_services.GetWorkspaceTeamService().AddTeamEventListener(publisher)
	team_services.GetProjectTeamService().AddTeamEventListener(publisher)
}
