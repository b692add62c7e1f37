package events

import (
	"context"
	"log/slog"

	team_models "teamsync/internal/features/team/models"
)

const teamSubjectPrefix = "teamsync.team."

type publisher interface {
	Publish(ctx context.Context, subject string, v any) error
}

// TeamEventPublisher forwards committed team events to the bus. Publishing is
// best-effort: the mutation already happened, so failures are only logged.
type TeamEventPublisher struct {
	bus    publisher
	logger *slog.Logger
}

func NewTeamEventPublisher(bus publisher, logger *slog.Logger) *TeamEventPublisher {
	return &TeamEventPublisher{bus: bus, logger: logger}
}

func (p *TeamEventPublisher) OnTeamEvent(ctx context.Context, event team_models.TeamEvent) {
	if p.bus == nil {
		return
	}

	subject := TeamEventSubject(event)
	if err := p.bus.Publish(ctx, subject, event); err != nil {
		p.logger.Warn(
			"Failed to publish team event",
			"subject", subject,
			"scopeId", event.ScopeID,
			"error", err,
		)
	}
}

// TeamEventSubject is teamsync.team.<scope>.<event type>, for example
// teamsync.team.project.invitation.accepted.
func TeamEventSubject(event team_models.TeamEvent) string {
	return teamSubjectPrefix + event.Scope + "." + string(event.Type)
}
