package normalize

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseISODuration converts an ISO-8601 duration token such as PT1H2M3S to
// whole seconds. Absent or unparseable input yields nil.
func ParseISODuration(s string) *int {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "" && m[4] == "") {
		return nil
	}

	total := 0.0
	for i, mult := range []float64{0, 86400, 3600, 60, 1} {
		if i == 0 || m[i] == "" {
			continue
		}
		v, err := strconv.ParseFloat(m[i], 64)
		if err != nil {
			return nil
		}
		total += v * mult
	}

	if total > maxDurationSeconds {
		return nil
	}
	secs := int(total)
	return &secs
}

// Durations above this are treated as garbage.
const maxDurationSeconds = math.MaxInt32

// parseClockDuration parses Go-style durations such as "3h8m33s" (Twitch VODs).
func parseClockDuration(s string) *int {
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 || d.Seconds() > maxDurationSeconds {
		return nil
	}
	secs := int(d.Seconds())
	return &secs
}

func secondsPtr(f float64, ok bool) *int {
	if !ok || f < 0 || f > maxDurationSeconds || math.IsNaN(f) {
		return nil
	}
	secs := int(f)
	return &secs
}
