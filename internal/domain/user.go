package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the persisted per-user record the summarizer rolls forward.
type UserProfile struct {
	UserID           uuid.UUID
	BehaviorSummary  *BehaviorSummary
	SummaryUpdatedAt *time.Time
	CreatedAt        time.Time
}

// PlatformConnection links a user to an external platform account.
// AccessToken is plaintext in memory and sealed at rest.
type PlatformConnection struct {
	UserID         uuid.UUID
	Platform       Platform
	ExternalUserID string
	AccessToken    string
	ConnectedAt    time.Time
}
