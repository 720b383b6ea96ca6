package post

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/heartmarshall/feedsense-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

func newRepo(t *testing.T) *Repo {
	t.Helper()
	return New(testhelper.SetupTestDB(t))
}

func TestRepo_UpsertPosts_InsertThenGet(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	p := testhelper.NewPost(domain.PlatformYouTube)
	n, err := repo.UpsertPosts(ctx, []domain.NormalizedPost{p})
	if err != nil {
		t.Fatalf("UpsertPosts: %v", err)
	}
	if n != 1 {
		t.Errorf("written = %d, want 1", n)
	}

	got, err := repo.Get(ctx, p.Platform, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Text != p.Text || got.Creator.Handle != p.Creator.Handle || got.Stats.Likes != p.Stats.Likes {
		t.Errorf("Get = %+v, want %+v", got, p)
	}
}

func TestRepo_UpsertPosts_UpdatesExisting(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	p := testhelper.NewPost(domain.PlatformReddit)
	if _, err := repo.UpsertPosts(ctx, []domain.NormalizedPost{p}); err != nil {
		t.Fatalf("UpsertPosts: %v", err)
	}

	p.Stats.Likes = 999
	if _, err := repo.UpsertPosts(ctx, []domain.NormalizedPost{p}); err != nil {
		t.Fatalf("UpsertPosts again: %v", err)
	}

	got, err := repo.Get(ctx, p.Platform, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Stats.Likes != 999 {
		t.Errorf("Likes = %d, want 999", got.Stats.Likes)
	}
}

func TestRepo_UpsertPosts_SameIDDifferentPlatform(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	a := testhelper.NewPost(domain.PlatformTikTok)
	b := a
	b.Platform = domain.PlatformTwitch

	n, err := repo.UpsertPosts(ctx, []domain.NormalizedPost{a, b})
	if err != nil {
		t.Fatalf("UpsertPosts: %v", err)
	}
	if n != 2 {
		t.Errorf("written = %d, want 2", n)
	}
}

func TestRepo_UpsertPosts_DuplicateInBatch(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	first := testhelper.NewPost(domain.PlatformTwitter)
	last := first
	last.Text = "edited"

	n, err := repo.UpsertPosts(ctx, []domain.NormalizedPost{first, last})
	if err != nil {
		t.Fatalf("UpsertPosts: %v", err)
	}
	if n != 1 {
		t.Errorf("written = %d, want 1", n)
	}

	got, err := repo.Get(ctx, first.Platform, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Text != "edited" {
		t.Errorf("Text = %q, want last occurrence", got.Text)
	}
}

func TestRepo_UpsertPosts_Empty(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	n, err := repo.UpsertPosts(context.Background(), nil)
	if err != nil || n != 0 {
		t.Fatalf("UpsertPosts(nil) = %d, %v; want 0, nil", n, err)
	}
}

func TestRepo_Get_NotFound(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	_, err := repo.Get(context.Background(), domain.PlatformYouTube, "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRepo_DeleteNotSeenSince(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	ancient := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	stale := testhelper.NewPost(domain.PlatformInstagram)
	repo.now = func() time.Time { return ancient }
	if _, err := repo.UpsertPosts(ctx, []domain.NormalizedPost{stale}); err != nil {
		t.Fatalf("UpsertPosts stale: %v", err)
	}

	fresh := testhelper.NewPost(domain.PlatformInstagram)
	repo.now = time.Now
	if _, err := repo.UpsertPosts(ctx, []domain.NormalizedPost{fresh}); err != nil {
		t.Fatalf("UpsertPosts fresh: %v", err)
	}

	n, err := repo.DeleteNotSeenSince(ctx, ancient.Add(time.Hour))
	if err != nil {
		t.Fatalf("DeleteNotSeenSince: %v", err)
	}
	if n < 1 {
		t.Errorf("deleted = %d, want at least 1", n)
	}

	if _, err := repo.Get(ctx, stale.Platform, stale.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("stale post should be deleted, err = %v", err)
	}
	if _, err := repo.Get(ctx, fresh.Platform, fresh.ID); err != nil {
		t.Errorf("fresh post should remain, err = %v", err)
	}
}

func TestDedup_KeepsFirstPositionLastValue(t *testing.T) {
	t.Parallel()

	a := domain.NormalizedPost{ID: "1", Platform: domain.PlatformYouTube, Text: "a"}
	b := domain.NormalizedPost{ID: "2", Platform: domain.PlatformYouTube}
	a2 := a
	a2.Text = "a2"

	got := dedup([]domain.NormalizedPost{a, b, a2})
	if len(got) != 2 || got[0].Text != "a2" || got[1].ID != "2" {
		t.Errorf("dedup = %+v", got)
	}
}
