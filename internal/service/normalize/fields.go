package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// lookup walks nested maps along path.
func lookup(raw domain.RawPost, path ...string) (any, bool) {
	var cur any = map[string]any(raw)
	for _, p := range path {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case domain.RawPost:
		return m, true
	}
	return nil, false
}

// str returns the trimmed string at path. Numbers are formatted.
func str(raw domain.RawPost, path ...string) string {
	v, ok := lookup(raw, path...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return ""
}

// firstStr returns the first non-empty top-level string among keys.
func firstStr(raw domain.RawPost, keys ...string) string {
	for _, k := range keys {
		if s := str(raw, k); s != "" {
			return s
		}
	}
	return ""
}

// num returns the number at path. Numeric strings are parsed; anything else is absent.
func num(raw domain.RawPost, path ...string) (float64, bool) {
	v, ok := lookup(raw, path...)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return 0, false
}

// count returns a non-negative counter at path; absent or negative values are 0.
func count(raw domain.RawPost, path ...string) int64 {
	f, ok := num(raw, path...)
	if !ok || f <= 0 {
		return 0
	}
	if f > math.MaxInt64/2 {
		return math.MaxInt64 / 2
	}
	return int64(f)
}

func boolean(raw domain.RawPost, path ...string) bool {
	v, ok := lookup(raw, path...)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	}
	return false
}

// strList returns the string items of the list at path.
func strList(raw domain.RawPost, path ...string) []string {
	v, ok := lookup(raw, path...)
	if !ok {
		return nil
	}
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, it := range items {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// maps returns the object items of the list at path.
func maps(raw domain.RawPost, path ...string) []domain.RawPost {
	v, ok := lookup(raw, path...)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]domain.RawPost, 0, len(items))
	for _, it := range items {
		if m, ok := asMap(it); ok {
			out = append(out, m)
		}
	}
	return out
}

func sub(raw domain.RawPost, path ...string) domain.RawPost {
	v, ok := lookup(raw, path...)
	if !ok {
		return nil
	}
	m, _ := asMap(v)
	return m
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Numeric timestamps above this are unix milliseconds rather than seconds.
const epochMillisThreshold = 1e11

// timestamp parses the value at path as an RFC 3339-like string or a unix
// timestamp in seconds or milliseconds. Results outside years 1..9999 are rejected.
func timestamp(raw domain.RawPost, path ...string) (time.Time, bool) {
	v, ok := lookup(raw, path...)
	if !ok {
		return time.Time{}, false
	}
	if s, isStr := v.(string); isStr {
		s = strings.TrimSpace(s)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), representable(t)
			}
		}
	}
	f, ok := num(raw, path...)
	if !ok || f <= 0 || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	if f > epochMillisThreshold {
		f /= 1000
	}
	if f > maxUnixSeconds {
		return time.Time{}, false
	}
	sec, frac := math.Modf(f)
	t := time.Unix(int64(sec), int64(frac*1e9)).UTC()
	return t, representable(t)
}

// maxUnixSeconds is 9999-12-31T23:59:59Z.
const maxUnixSeconds = 253402300799

// representable reports whether t formats as a valid RFC 3339 timestamp.
func representable(t time.Time) bool {
	y := t.UTC().Year()
	return y >= 1 && y <= 9999
}

// firstTime returns the first parseable top-level timestamp among keys.
func firstTime(raw domain.RawPost, keys ...string) (time.Time, bool) {
	for _, k := range keys {
		if t, ok := timestamp(raw, k); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatTime renders t as RFC 3339 UTC; the zero time renders as the unix epoch.
func formatTime(t time.Time, ok bool) string {
	if !ok || t.IsZero() || !representable(t) {
		t = time.Unix(0, 0)
	}
	return t.UTC().Format(time.RFC3339)
}
