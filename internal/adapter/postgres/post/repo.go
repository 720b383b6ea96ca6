// Package post implements the normalized post store using PostgreSQL.
package post

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/feedsense-backend/internal/adapter/postgres"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

const table = "posts"

const upsertSuffix = `ON CONFLICT (platform, id) DO UPDATE SET
	post_type = EXCLUDED.post_type,
	url = EXCLUDED.url,
	creator_handle = EXCLUDED.creator_handle,
	creator_id = EXCLUDED.creator_id,
	payload = EXCLUDED.payload,
	published_at = EXCLUDED.published_at,
	last_seen_at = EXCLUDED.last_seen_at`

// Repo provides post persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New creates a new post repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, now: time.Now}
}

// UpsertPosts stores posts keyed by (platform, id) and refreshes last_seen_at.
// Duplicate keys in one call collapse to the last occurrence.
// Returns the number of rows written.
func (r *Repo) UpsertPosts(ctx context.Context, posts []domain.NormalizedPost) (int, error) {
	if len(posts) == 0 {
		return 0, nil
	}

	seenAt := r.now().UTC()
	b := postgres.Builder.
		Insert(table).
		Columns("platform", "id", "post_type", "url", "creator_handle", "creator_id",
			"payload", "published_at", "first_seen_at", "last_seen_at").
		Suffix(upsertSuffix)

	for _, p := range dedup(posts) {
		payload, err := json.Marshal(p)
		if err != nil {
			return 0, fmt.Errorf("marshal post %s: %w", p.ID, err)
		}
		b = b.Values(string(p.Platform), p.ID, string(p.Type), p.URL, p.Creator.Handle, p.Creator.ID,
			payload, publishedAt(p), seenAt, seenAt)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build upsert posts query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "post", "")
	}

	return int(tag.RowsAffected()), nil
}

// Get returns a stored post. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Get(ctx context.Context, platform domain.Platform, id string) (*domain.NormalizedPost, error) {
	query, args, err := postgres.Builder.
		Select("payload").
		From(table).
		Where(sq.Eq{"platform": string(platform), "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get post query: %w", err)
	}

	var payload []byte
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&payload); err != nil {
		return nil, postgres.MapError(err, "post", string(platform)+":"+id)
	}

	var p domain.NormalizedPost
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("unmarshal post %s: %w", id, err)
	}
	return &p, nil
}

// DeleteNotSeenSince removes posts whose last_seen_at is before t.
func (r *Repo) DeleteNotSeenSince(ctx context.Context, t time.Time) (int64, error) {
	query, args, err := postgres.Builder.
		Delete(table).
		Where(sq.Lt{"last_seen_at": t.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete posts query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "post", "")
	}

	return tag.RowsAffected(), nil
}

func dedup(posts []domain.NormalizedPost) []domain.NormalizedPost {
	index := make(map[string]int, len(posts))
	out := make([]domain.NormalizedPost, 0, len(posts))
	for _, p := range posts {
		key := string(p.Platform) + ":" + p.ID
		if i, ok := index[key]; ok {
			out[i] = p
			continue
		}
		index[key] = len(out)
		out = append(out, p)
	}
	return out
}

func publishedAt(p domain.NormalizedPost) *time.Time {
	t := p.PublishedAt()
	if t.IsZero() {
		return nil
	}
	return &t
}
