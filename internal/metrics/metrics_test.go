package metrics

import (
	"context"
	"testing"

	team_models "teamsync/internal/features/team/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func Test_TeamEventCounter_CountsByScopeAndType(t *testing.T) {
	counter := NewTeamEventCounter(prometheus.NewRegistry())

	counter.OnTeamEvent(context.Background(), team_models.TeamEvent{
		Type:  team_models.TeamEventInvitationCreated,
		Scope: team_models.WorkspaceScope.Name,
	})
	counter.OnTeamEvent(context.Background(), team_models.TeamEvent{
		Type:  team_models.TeamEventInvitationCreated,
		Scope: team_models.WorkspaceScope.Name,
	})
	counter.OnTeamEvent(context.Background(), team_models.TeamEvent{
		Type:  team_models.TeamEventInvitationCreated,
		Scope: team_models.ProjectScope.Name,
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(counter.events.WithLabelValues("workspace", "invitation.created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.events.WithLabelValues("project", "invitation.created")))
	assert.Equal(t, 0.0, testutil.ToFloat64(counter.events.WithLabelValues("project", "member.removed")))
}
