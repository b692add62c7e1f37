package metrics

import (
	"context"
	"sync"

	team_models "teamsync/internal/features/team/models"
	team_services "teamsync/internal/features/team/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TeamEventCounter counts committed team events by scope kind and type.
type TeamEventCounter struct {
	events *prometheus.CounterVec
}

func NewTeamEventCounter(registerer prometheus.Registerer) *TeamEventCounter {
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "teamsync",
			Subsystem: "team",
			Name:      "events_total",
			Help:      "Team membership and invitation events.",
		},
		[]string{"scope", "type"},
	)
	registerer.MustRegister(events)

	return &TeamEventCounter{events: events}
}

func (c *TeamEventCounter) OnTeamEvent(_ context.Context, event team_models.TeamEvent) {
	c.events.WithLabelValues(event.Scope, string(event.Type)).Inc()
}

var setupOnce sync.Once

// SetupDependencies registers the counter once with the default registry.
func SetupDependencies() {
	setupOnce.Do(func() {
		counter := NewTeamEventCounter(prometheus.DefaultRegisterer)
		team_services.GetWorkspaceTeamService().AddTeamEventListener(counter)
		team_services.GetProjectTeamService().AddTeamEventListener(counter)
	})
}

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
