package normalize

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

func newTestService() *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type panicAdapter struct{ youtubeAdapter }

func (panicAdapter) Map(domain.RawPost) (domain.NormalizedPost, error) {
	panic("boom")
}

type invalidAdapter struct{ twitterAdapter }

func (invalidAdapter) Map(domain.RawPost) (domain.NormalizedPost, error) {
	return domain.NormalizedPost{ID: "x", Platform: domain.PlatformTwitter, Type: "gif"}, nil
}

// ---------------------------------------------------------------------------
// Normalize: never fails
// ---------------------------------------------------------------------------

func TestNormalize_EmptyInputAlwaysValid(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	platforms := append(domain.AllPlatforms(), "mastodon", "")

	for _, p := range platforms {
		for _, raw := range []domain.RawPost{nil, {}} {
			post := svc.Normalize(raw, p)
			if err := Validate(post); err != nil {
				t.Errorf("platform %q: Validate() = %v", p, err)
			}
			if post.Creator != domain.PlaceholderCreator() {
				t.Errorf("platform %q: Creator = %+v, want placeholder", p, post.Creator)
			}
			if post.Text != PlaceholderText {
				t.Errorf("platform %q: Text = %q, want placeholder", p, post.Text)
			}
			if post.Tags == nil {
				t.Errorf("platform %q: Tags is nil", p)
			}
		}
	}
}

func TestNormalize_HostileFieldsStayValid(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	platforms := append(domain.AllPlatforms(), "mastodon")
	raws := []domain.RawPost{
		{"id": "x", "text": "hi", "timestamp": 1.7e12, "create_time": 1.7e12, "created_utc": 1.7e12, "created_at": 1.7e12},
		{"id": "x", "text": "hi", "timestamp": 1e300, "create_time": 1e300, "created_utc": 1e300, "created_at": "99999-01-01T00:00:00Z"},
		{"id": "x", "text": "hi", "timestamp": -5, "created_at": "not a date"},
		{"id": "x", "text": "hi", "duration": "PT99999999999999999999S"},
		{"id": "x", "text": "hi", "duration": 1e30, "video_duration": 1e30},
		{"id": "x", "text": "hi", "duration": -10, "likes": -3, "views": "-9", "stats": map[string]any{"likes": -1}},
		{"id": "x", "text": "hi", "duration": "NaN", "timestamp": "Inf"},
	}

	for _, p := range platforms {
		for i, raw := range raws {
			post := svc.Normalize(raw, p)
			if err := Validate(post); err != nil {
				t.Errorf("platform %q raw #%d: Validate() = %v (post %+v)", p, i, err, post)
			}
			if post.DurationSeconds != nil && *post.DurationSeconds < 0 {
				t.Errorf("platform %q raw #%d: negative duration %d", p, i, *post.DurationSeconds)
			}
		}
	}
}

func TestTimestamp_Units(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    any
		want string
		ok   bool
	}{
		{"seconds", 1.7e9, "2023-11-14T22:13:20Z", true},
		{"milliseconds", 1.7e12, "2023-11-14T22:13:20Z", true},
		{"numeric string millis", "1700000000000", "2023-11-14T22:13:20Z", true},
		{"rfc3339", "2026-03-01T12:00:00Z", "2026-03-01T12:00:00Z", true},
		{"beyond year 9999", 1e300, "", false},
		{"zero", 0, "", false},
		{"negative", -1, "", false},
	}
	for _, tt := range tests {
		got, ok := timestamp(domain.RawPost{"ts": tt.v}, "ts")
		if ok != tt.ok {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && got.Format(time.RFC3339) != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got.Format(time.RFC3339), tt.want)
		}
	}
}

func TestNormalize_UnknownPlatformKeepsName(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	post := svc.Normalize(domain.RawPost{"id": "m1", "text": "hello fediverse", "username": "ada"}, "mastodon")
	if post.Platform != "mastodon" {
		t.Errorf("Platform = %q, want mastodon", post.Platform)
	}
	if post.ID != "m1" {
		t.Errorf("ID = %q, want m1", post.ID)
	}
	if post.Creator.Handle != "ada" || post.Creator.ID != "ada" {
		t.Errorf("Creator = %+v, want handle ada", post.Creator)
	}

	if got := svc.Normalize(domain.RawPost{}, "").Platform; got != "unknown" {
		t.Errorf("empty platform: Platform = %q, want unknown", got)
	}
}

func TestNormalize_MapErrorFallsBack(t *testing.T) {
	t.Parallel()

	svc := newTestService()

	post := svc.Normalize(domain.RawPost{
		"title":     "orphan clip",
		"timestamp": "2026-03-01T10:00:00Z",
		"thumbnail": "https://img.example/t.jpg",
	}, domain.PlatformYouTube)

	if !strings.HasPrefix(post.ID, "fallback-") {
		t.Errorf("ID = %q, want fallback hash", post.ID)
	}
	if post.Platform != domain.PlatformYouTube {
		t.Errorf("Platform = %q, want youtube", post.Platform)
	}
	if post.Text != "orphan clip" {
		t.Errorf("Text = %q", post.Text)
	}
	if post.TimePublished != "2026-03-01T10:00:00Z" {
		t.Errorf("TimePublished = %q", post.TimePublished)
	}
	if post.Thumbnail == nil || *post.Thumbnail != "https://img.example/t.jpg" {
		t.Errorf("Thumbnail = %v", post.Thumbnail)
	}
	if post.Creator != domain.PlaceholderCreator() {
		t.Errorf("Creator = %+v, want placeholder", post.Creator)
	}
}

func TestNormalize_FallbackIDIsDeterministic(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	raw := domain.RawPost{"text": "same payload", "likes": 3}

	a := svc.Normalize(raw, domain.PlatformReddit)
	b := svc.Normalize(raw, domain.PlatformReddit)
	c := svc.Normalize(domain.RawPost{"text": "other payload"}, domain.PlatformReddit)

	if a.ID != b.ID {
		t.Errorf("IDs differ for the same payload: %q vs %q", a.ID, b.ID)
	}
	if a.ID == c.ID {
		t.Errorf("IDs collide for different payloads: %q", a.ID)
	}
	if a.Stats.Likes != 3 {
		t.Errorf("Likes = %d, want 3", a.Stats.Likes)
	}
}

func TestNormalize_PanicFallsBack(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	svc.Register(panicAdapter{})

	post := svc.Normalize(domain.RawPost{"id": "v1", "text": "survives"}, domain.PlatformYouTube)

	if post.ID != "v1" {
		t.Errorf("ID = %q, want v1", post.ID)
	}
	if err := Validate(post); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNormalize_InvalidOutputFallsBack(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	svc.Register(invalidAdapter{})

	post := svc.Normalize(domain.RawPost{"id": "t1"}, domain.PlatformTwitter)

	if post.Type != domain.PostTypeShort {
		t.Errorf("Type = %q, want short", post.Type)
	}
	if err := Validate(post); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	raws := []domain.RawPost{{"id": "1"}, {}, {"id": "3"}}

	got := svc.NormalizeAll(raws, domain.PlatformTikTok)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].ID != "1" || got[2].ID != "3" {
		t.Errorf("order not preserved: %q, %q", got[0].ID, got[2].ID)
	}
}

// ---------------------------------------------------------------------------
// Validate
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() domain.NormalizedPost {
		return domain.NormalizedPost{
			ID:            "p1",
			Platform:      domain.PlatformReddit,
			Type:          domain.PostTypeThread,
			Creator:       domain.PlaceholderCreator(),
			Text:          "body",
			TimePublished: "2026-03-01T10:00:00Z",
		}
	}
	neg := -1

	tests := []struct {
		name  string
		mut   func(*domain.NormalizedPost)
		field string
	}{
		{"valid", func(*domain.NormalizedPost) {}, ""},
		{"missing id", func(p *domain.NormalizedPost) { p.ID = "" }, "id"},
		{"missing platform", func(p *domain.NormalizedPost) { p.Platform = "" }, "platform"},
		{"bad type", func(p *domain.NormalizedPost) { p.Type = "gif" }, "type"},
		{"missing handle", func(p *domain.NormalizedPost) { p.Creator.Handle = "" }, "creator.handle"},
		{"missing creator id", func(p *domain.NormalizedPost) { p.Creator.ID = "" }, "creator.id"},
		{"missing text", func(p *domain.NormalizedPost) { p.Text = "" }, "text"},
		{"bad time", func(p *domain.NormalizedPost) { p.TimePublished = "yesterday" }, "timePublished"},
		{"negative stats", func(p *domain.NormalizedPost) { p.Stats.Views = -1 }, "stats"},
		{"negative duration", func(p *domain.NormalizedPost) { p.DurationSeconds = &neg }, "durationSeconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := valid()
			tt.mut(&p)

			err := Validate(p)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Error("error does not wrap ErrValidation")
			}
			if len(ve.Errors) != 1 || ve.Errors[0].Field != tt.field {
				t.Errorf("Errors = %+v, want field %q", ve.Errors, tt.field)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Parsing helpers
// ---------------------------------------------------------------------------

func TestParseISODuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"PT1H2M3S", 3723, true},
		{"PT45S", 45, true},
		{"PT12M", 720, true},
		{"P1DT1H", 90000, true},
		{"PT1.5S", 1, true},
		{"PT0S", 0, true},
		{"", 0, false},
		{"P", 0, false},
		{"PT", 0, false},
		{"1H2M", 0, false},
		{"PTXS", 0, false},
		{"pt1h", 0, false},
		{"PT99999999999999999999S", 0, false},
		{"P99999999999D", 0, false},
	}

	for _, tt := range tests {
		got := ParseISODuration(tt.in)
		if !tt.ok {
			if got != nil {
				t.Errorf("ParseISODuration(%q) = %d, want nil", tt.in, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("ParseISODuration(%q) = %v, want %d", tt.in, got, tt.want)
		}
	}
}

func TestExtractHashtagsAndMentions(t *testing.T) {
	t.Parallel()

	text := "Shipping #Go and #go again with #Rust_lang, thanks @Ada and @ada and @grace_h"

	if got, want := ExtractHashtags(text), []string{"go", "rust_lang"}; !slices.Equal(got, want) {
		t.Errorf("ExtractHashtags = %v, want %v", got, want)
	}
	if got, want := ExtractMentions(text), []string{"ada", "grace_h"}; !slices.Equal(got, want) {
		t.Errorf("ExtractMentions = %v, want %v", got, want)
	}
	if got := ExtractHashtags("no tags here"); got != nil {
		t.Errorf("ExtractHashtags(no tags) = %v, want nil", got)
	}
}

func TestKeywordTags(t *testing.T) {
	t.Parallel()

	got := KeywordTags("The Quick brown foxes jumped over the lazy dogs, quick!")
	want := []string{"quick", "brown", "foxes", "jumped", "lazy", "dogs"}
	if !slices.Equal(got, want) {
		t.Errorf("KeywordTags = %v, want %v", got, want)
	}

	many := "alpha bravo charlie delta echoes foxtrot golf hotel india juliet kilo lima mike"
	if got := KeywordTags(many); len(got) != MaxKeywordTags {
		t.Errorf("len(KeywordTags) = %d, want %d", len(got), MaxKeywordTags)
	}
}

func TestMergeTags_KeywordFallbackOnlyWhenNoTags(t *testing.T) {
	t.Parallel()

	if got := mergeTags("distributed systems", []string{"#Go", "go", " Rust "}); !slices.Equal(got, []string{"go", "rust"}) {
		t.Errorf("explicit tags: %v", got)
	}
	if got := mergeTags("distributed systems", nil); !slices.Equal(got, []string{"distributed", "systems"}) {
		t.Errorf("keyword fallback: %v", got)
	}
	if got := mergeTags("", nil); got == nil || len(got) != 0 {
		t.Errorf("empty: %v, want empty non-nil", got)
	}
}

func TestCount_ClampsNegative(t *testing.T) {
	t.Parallel()

	raw := domain.RawPost{"a": -5, "b": "12", "c": "x", "d": 3.9}
	if got := count(raw, "a"); got != 0 {
		t.Errorf("count(-5) = %d", got)
	}
	if got := count(raw, "b"); got != 12 {
		t.Errorf("count(\"12\") = %d", got)
	}
	if got := count(raw, "c"); got != 0 {
		t.Errorf("count(\"x\") = %d", got)
	}
	if got := count(raw, "d"); got != 3 {
		t.Errorf("count(3.9) = %d", got)
	}
	if got := count(raw, "missing"); got != 0 {
		t.Errorf("count(missing) = %d", got)
	}
}
