package events

import (
	"context"
	"errors"
	"testing"

	team_models "teamsync/internal/features/team/models"
	"teamsync/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBus struct {
	subjects []string
	payloads []any
	err      error
}

func (b *recordingBus) Publish(_ context.Context, subject string, v any) error {
	b.subjects = append(b.subjects, subject)
	b.payloads = append(b.payloads, v)
	return b.err
}

func Test_TeamEventSubject_IncludesScopeAndType(t *testing.T) {
	subject := TeamEventSubject(team_models.TeamEvent{
		Type:  team_models.TeamEventInvitationAccepted,
		Scope: team_models.ProjectScope.Name,
	})

	assert.Equal(t, "teamsync.team.project.invitation.accepted", subject)
}

func Test_OnTeamEvent_PublishesEventPayload(t *testing.T) {
	bus := &recordingBus{}
	publisher := NewTeamEventPublisher(bus, logger.GetLogger())

	event := team_models.TeamEvent{
		Type:    team_models.TeamEventMemberRemoved,
		Scope:   team_models.WorkspaceScope.Name,
		ScopeID: uuid.New(),
	}
	publisher.OnTeamEvent(context.Background(), event)

	require.Len(t, bus.subjects, 1)
	assert.Equal(t, "teamsync.team.workspace.member.removed", bus.subjects[0])
	assert.Equal(t, event, bus.payloads[0])
}

func Test_OnTeamEvent_WhenPublishFails_DoesNotPanic(t *testing.T) {
	bus := &recordingBus{err: errors.New("connection closed")}
	publisher := NewTeamEventPublisher(bus, logger.GetLogger())

	assert.NotPanics(t, func() {
		publisher.OnTeamEvent(context.Background(), team_models.TeamEvent{Type: team_models.TeamEventInvitationCreated})
	})
	assert.Len(t, bus.subjects, 1)
}

func Test_Bus_WhenNil_ReportsNotConnected(t *testing.T) {
	var bus *Bus

	assert.ErrorIs(t, bus.Publish(context.Background(), "teamsync.team.test", nil), ErrNotConnected)
	assert.ErrorIs(t, bus.Ping(0), ErrNotConnected)
	assert.NotPanics(t, bus.Close)
}
