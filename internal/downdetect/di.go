package downdetect

import (
	"sync"

	"teamsync/internal/events"
)

var (
	downdetectService *DowndetectService
	initOnce          sync.Once
)

func GetDowndetectService() *DowndetectService {
	initOnce.Do(func() {
		downdetectService = &DowndetectService{
			events.GetBus(),
		}
	})

	return downdetectService
}
