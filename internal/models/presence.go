package models

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus is a presence record. Created implicitly on the first write
// for a user and never deleted.
type UserStatus struct {
	UserID        uuid.UUID
	IsOnline      bool
	LastSeen      time.Time
	LastHeartbeat time.Time
}
