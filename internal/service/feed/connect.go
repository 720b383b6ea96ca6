package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/pkg/ctxutil"
)

// Connect stores or replaces the user's connection to a platform.
func (s *Service) Connect(ctx context.Context, input ConnectInput) (*domain.PlatformConnection, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if !s.client.Supports(domain.Platform(input.Platform)) {
		return nil, fmt.Errorf("connect %s: %w", input.Platform, domain.ErrUnsupportedPlatform)
	}

	conn := domain.PlatformConnection{
		UserID:         userID,
		Platform:       domain.Platform(input.Platform),
		ExternalUserID: input.ExternalUserID,
		AccessToken:    input.AccessToken,
		ConnectedAt:    s.now().UTC(),
	}
	if err := s.connections.UpsertConnection(ctx, conn); err != nil {
		return nil, fmt.Errorf("upsert connection: %w", err)
	}

	s.invalidate(ctx, userID)

	s.log.InfoContext(ctx, "platform connected",
		slog.String("user_id", userID.String()),
		slog.String("platform", input.Platform),
	)

	conn.AccessToken = ""
	return &conn, nil
}

// Disconnect removes the user's connection to platform.
func (s *Service) Disconnect(ctx context.Context, platform string) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	p := domain.Platform(platform)
	if !p.IsValid() {
		return domain.NewValidationError("platform", "unsupported platform")
	}

	if err := s.connections.DeleteConnection(ctx, userID, p); err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

// invalidate drops cached ranked pages built from the old connection set.
// The cache is best effort, so failures are only logged.
func (s *Service) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.ranker.Invalidate(ctx, userID); err != nil {
		s.log.WarnContext(ctx, "ranked feed invalidation failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}
}
