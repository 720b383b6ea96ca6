package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedProfile creates an empty user profile and returns its user id.
func SeedProfile(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO user_profiles (user_id, created_at) VALUES ($1, $2)`,
		userID, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile: %v", err)
	}
	return userID
}

// NewEvent returns an unsaved event of the given type for userID at ts.
func NewEvent(userID uuid.UUID, eventType domain.EventType, ts time.Time) domain.BehaviorEvent {
	return domain.BehaviorEvent{
		ID:        uuid.New(),
		UserID:    userID,
		PostID:    "post-" + uniqueSuffix(),
		EventType: eventType,
		Timestamp: ts.UTC().Truncate(time.Microsecond),
		Metadata: domain.EventMetadata{
			Tags:        []string{"go"},
			Creator:     "creator-" + uniqueSuffix(),
			ContentType: string(domain.PostTypeShort),
			Platform:    string(domain.PlatformYouTube),
		},
	}
}

// NewPost returns an unsaved normalized post with a unique id.
func NewPost(platform domain.Platform) domain.NormalizedPost {
	suffix := uniqueSuffix()
	return domain.NormalizedPost{
		ID:       "post-" + suffix,
		Platform: platform,
		URL:      "https://example.com/" + suffix,
		Type:     domain.PostTypeShort,
		Creator: domain.Creator{
			Handle:      "creator-" + suffix,
			ID:          "cid-" + suffix,
			DisplayName: "Creator " + suffix,
		},
		Text:          "post " + suffix,
		Tags:          []string{"go"},
		Stats:         domain.PostStats{Likes: 10, Views: 100},
		TimePublished: time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
	}
}
