// Package profile implements the user profile and platform connection store using PostgreSQL.
package profile

import (
	"context"
	"errors"
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

// sealer encrypts access tokens before they reach the database.
type sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// Repo provides profile persistence backed by PostgreSQL.
type Repo struct {
	pool   *pgxpool.Pool
	sealer sealer
	now    func() time.Time
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool, sealer sealer) *Repo {
	return &Repo{pool: pool, sealer: sealer, now: time.Now}
}

const upsertSummarySQL = `
INSERT INTO user_profiles (user_id, behavior_summary, summary_updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET
	behavior_summary = EXCLUDED.behavior_summary,
	summary_updated_at = EXCLUDED.summary_updated_at`

// UpdateBehaviorSummary writes summary onto the user's profile, creating the profile if needed.
func (r *Repo) UpdateBehaviorSummary(ctx context.Context, userID uuid.UUID, summary domain.BehaviorSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal behavior summary: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, upsertSummarySQL, userID, payload, r.now().UTC()); err != nil {
		return postgres.MapError(err, "user_profile", userID.String())
	}
	return nil
}

// Get returns the user's profile. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	query, args, err := postgres.Builder.
		Select("user_id", "behavior_summary", "summary_updated_at", "created_at").
		From("user_profiles").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get profile query: %w", err)
	}

	var (
		p       domain.UserProfile
		summary []byte
	)
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	if err := row.Scan(&p.UserID, &summary, &p.SummaryUpdatedAt, &p.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "user_profile", userID.String())
	}

	if len(summary) > 0 {
		var s domain.BehaviorSummary
		if err := json.Unmarshal(summary, &s); err != nil {
			return nil, fmt.Errorf("unmarshal behavior summary: %w", err)
		}
		p.BehaviorSummary = &s
	}

	return &p, nil
}

// ---------------------------------------------------------------------------
// Platform connections
// ---------------------------------------------------------------------------

const ensureProfileSQL = `INSERT INTO user_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`

const upsertConnectionSQL = `
INSERT INTO platform_connections (user_id, platform, external_user_id, access_token, connected_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, platform) DO UPDATE SET
	external_user_id = EXCLUDED.external_user_id,
	access_token = EXCLUDED.access_token,
	connected_at = EXCLUDED.connected_at`

// UpsertConnection stores conn with its access token sealed. The profile row is
// created in the same batch when missing.
func (r *Repo) UpsertConnection(ctx context.Context, conn domain.PlatformConnection) error {
	sealed, err := r.sealer.Seal([]byte(conn.AccessToken))
	if err != nil {
		return fmt.Errorf("seal access token: %w", err)
	}

	connectedAt := conn.ConnectedAt
	if connectedAt.IsZero() {
		connectedAt = r.now()
	}

	batch := &pgx.Batch{}
	batch.Queue(ensureProfileSQL, conn.UserID)
	batch.Queue(upsertConnectionSQL, conn.UserID, string(conn.Platform), conn.ExternalUserID, sealed, connectedAt.UTC())

	results := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer results.Close()

	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "platform_connection", string(conn.Platform))
		}
	}
	return nil
}

// ListConnections returns the user's connections with access tokens unsealed,
// ordered by platform. Connections that fail to unseal are skipped.
func (r *Repo) ListConnections(ctx context.Context, userID uuid.UUID) ([]domain.PlatformConnection, error) {
	query, args, err := postgres.Builder.
		Select("user_id", "platform", "external_user_id", "access_token", "connected_at").
		From("platform_connections").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("platform").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list connections query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "platform_connection", userID.String())
	}
	defer rows.Close()

	var (
		out       []domain.PlatformConnection
		unsealErr error
	)
	for rows.Next() {
		var (
			c        domain.PlatformConnection
			platform string
			sealed   []byte
		)
		if err := rows.Scan(&c.UserID, &platform, &c.ExternalUserID, &sealed, &c.ConnectedAt); err != nil {
			return nil, postgres.MapError(err, "platform_connection", userID.String())
		}

		token, err := r.sealer.Open(sealed)
		if err != nil {
			unsealErr = errors.Join(unsealErr, fmt.Errorf("%s: %w", platform, err))
			continue
		}

		c.Platform = domain.Platform(platform)
		c.AccessToken = string(token)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "platform_connection", userID.String())
	}

	if len(out) == 0 && unsealErr != nil {
		return nil, fmt.Errorf("list connections: %w", unsealErr)
	}
	return out, nil
}

// DeleteConnection removes the user's connection to platform.
// Returns domain.ErrNotFound if there was none.
func (r *Repo) DeleteConnection(ctx context.Context, userID uuid.UUID, platform domain.Platform) error {
	query, args, err := postgres.Builder.
		Delete("platform_connections").
		Where(sq.Eq{"user_id": userID, "platform": string(platform)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete connection query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "platform_connection", string(platform))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("platform_connection %s: %w", platform, domain.ErrNotFound)
	}
	return nil
}
