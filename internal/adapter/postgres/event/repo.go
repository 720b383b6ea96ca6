// Package event implements the behavior event store using PostgreSQL.
package event

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/feedsense-backend/internal/adapter/postgres"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

const table = "behavior_events"

var columns = []string{
	"id", "user_id", "post_id", "event_type", "occurred_at",
	"dwell_time_ms", "metadata", "session_id",
}

// Repo provides behavior event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// InsertEvents writes events in a single COPY. Events without an id get one.
// Either every event is stored or none is.
func (r *Repo) InsertEvents(ctx context.Context, events []domain.BehaviorEvent) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(events))
	for i := range events {
		e := &events[i]
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		meta, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal event metadata: %w", err)
		}
		rows = append(rows, []any{
			e.ID, e.UserID, e.PostID, string(e.EventType), e.Timestamp.UTC(),
			e.DwellTimeMs, meta, e.SessionID,
		})
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows)); err != nil {
		return postgres.MapError(err, "behavior_event", "")
	}

	return nil
}

// FindEvents returns the user's events at or after since, oldest first.
func (r *Repo) FindEvents(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.BehaviorEvent, error) {
	return r.FindEventsByType(ctx, userID, since)
}

// FindEventsByType is FindEvents restricted to the given event types.
// No types means every type.
func (r *Repo) FindEventsByType(ctx context.Context, userID uuid.UUID, since time.Time, types ...domain.EventType) ([]domain.BehaviorEvent, error) {
	b := postgres.Builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"occurred_at": since.UTC()}).
		OrderBy("occurred_at ASC", "id ASC")

	if len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		b = b.Where(sq.Eq{"event_type": names})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find events query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "behavior_event", userID.String())
	}
	defer rows.Close()

	var out []domain.BehaviorEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, postgres.MapError(err, "behavior_event", userID.String())
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "behavior_event", userID.String())
	}

	return out, nil
}

// DeleteOlderThan removes events that occurred before t and returns how many were deleted.
func (r *Repo) DeleteOlderThan(ctx context.Context, t time.Time) (int64, error) {
	query, args, err := postgres.Builder.
		Delete(table).
		Where(sq.Lt{"occurred_at": t.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete events query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "behavior_event", "")
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func scanEvent(row pgx.Row) (domain.BehaviorEvent, error) {
	var (
		e         domain.BehaviorEvent
		eventType string
		meta      []byte
	)
	if err := row.Scan(
		&e.ID, &e.UserID, &e.PostID, &eventType, &e.Timestamp,
		&e.DwellTimeMs, &meta, &e.SessionID,
	); err != nil {
		return domain.BehaviorEvent{}, err
	}

	e.EventType = domain.EventType(eventType)
	e.Timestamp = e.Timestamp.UTC()
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &e.Metadata); err != nil {
			return domain.BehaviorEvent{}, fmt.Errorf("unmarshal event metadata: %w", err)
		}
	}

	return e, nil
}
