package downdetect

import (
	"context"
	"fmt"
	"time"

	"teamsync/internal/cache"
	"teamsync/internal/events"
	"teamsync/internal/storage"
)

const probeTimeout = 3 * time.Second

type DowndetectService struct {
	bus *events.Bus
}

// IsAvailable probes the stores the API cannot serve without. The event bus
// is optional and only checked when configured.
func (s *DowndetectService) IsAvailable(ctx context.Context) error {
	if err := storage.GetDb().WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := cache.Ping(ctx, probeTimeout); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	if s.bus != nil {
		if err := s.bus.Ping(probeTimeout); err != nil {
			return fmt.Errorf("event bus check failed: %w", err)
		}
	}

	return nil
}
