package users_interfaces

import (
	"github.com/google/uuid"
)

type ActivityLogWriter interface {
	WriteActivityLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID, projectID *uuid.UUID)
}
