package reservation

import (
	"encoding/json"
	"sort"
	"time"
)

const DayLayout = "2006-01-02"

// Day formats t as the yyyy-MM-dd key used by windows, selections and the
// activity counter.
func Day(t time.Time) string { return t.Format(DayLayout) }

func ValidDay(s string) bool {
	_, err := time.Parse(DayLayout, s)
	return err == nil
}

// DecodeDates parses the serialized date list stored on a reservation row.
// Malformed payloads decode to an empty list rather than failing the whole
// read path; the write path never produces them.
func DecodeDates(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func EncodeDates(dates []string) string {
	b, _ := json.Marshal(dates)
	return string(b)
}

// NormalizeDates dedupes and sorts ascending. Valid yyyy-MM-dd strings order
// lexicographically the same as chronologically.
func NormalizeDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
