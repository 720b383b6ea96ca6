package behavior

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/metrics"
	"github.com/heartmarshall/feedsense-backend/pkg/ctxutil"
)

// RecordEvents validates a batch of events for the authenticated user, stamps
// ids and starts the summary update path in the background, detached from
// ctx cancellation. Events without a session id inherit the one carried by
// ctx. Only validation and auth errors surface.
func (s *Service) RecordEvents(ctx context.Context, input RecordEventsInput) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return 0, err
	}

	limit := s.now().Add(s.cfg.FutureSkew)
	var errs []domain.FieldError
	for idx, e := range input.Events {
		if e.Timestamp.After(limit) {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("events[%d].timestamp", idx),
				Message: "in the future",
			})
		}
	}
	if len(errs) > 0 {
		return 0, domain.NewValidationErrors(errs)
	}

	var headerSession *string
	if sid := ctxutil.SessionIDFromCtx(ctx); sid != "" {
		headerSession = &sid
	}

	events := make([]domain.BehaviorEvent, 0, len(input.Events))
	for _, e := range input.Events {
		sessionID := e.SessionID
		if sessionID == nil {
			sessionID = headerSession
		}
		events = append(events, domain.BehaviorEvent{
			ID:          uuid.New(),
			UserID:      userID,
			PostID:      strings.TrimSpace(e.PostID),
			EventType:   e.EventType,
			Timestamp:   e.Timestamp,
			DwellTimeMs: e.DwellTimeMs,
			Metadata:    e.Metadata,
			SessionID:   sessionID,
		})
	}

	s.pending.Add(1)
	go func(ctx context.Context) {
		defer s.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				s.log.ErrorContext(ctx, "summary update panicked",
					slog.String("user_id", userID.String()),
					slog.String("panic", fmt.Sprint(r)),
				)
			}
		}()
		s.UpdateUserSummary(ctx, userID, events)
	}(context.WithoutCancel(ctx))
	metrics.EventsIngested.Add(float64(len(events)))

	s.log.InfoContext(ctx, "events recorded",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(events)),
	)

	return len(events), nil
}
