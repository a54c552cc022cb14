package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// unknownValue is the default for fields the dashboard labels rather than
// leaves blank.
const unknownValue = "Unknown"

// Candidate keys for the non-string fields, in priority order.
var (
	idKeys        = []string{"id", "incident_id"}
	latitudeKeys  = []string{"lat", "latitude"}
	longitudeKeys = []string{"lng", "longitude"}
)

// stringField describes how one string field of Incident is resolved.
type stringField struct {
	name string
	keys []string
	def  string
	set  func(*Incident, string)
}

// fieldTable lists the string fields of Incident with their candidate keys
// (first present wins) and defaults.
var fieldTable = []stringField{
	{"crime_type", []string{"type", "crime_type", "incident_type"}, unknownValue, func(i *Incident, v string) { i.CrimeType = v }},
	{"severity", []string{"severity", "priority"}, "Medium", func(i *Incident, v string) { i.Severity = v }},
	{"occurred_at", []string{"time", "incident_date", "created_at"}, unknownValue, func(i *Incident, v string) { i.OccurredAt = v }},
	{"district", []string{"district", "area", "location"}, unknownValue, func(i *Incident, v string) { i.District = v }},
	{"description", []string{"description", "details"}, "", func(i *Incident, v string) { i.Description = v }},
	{"ticket_id", []string{"ticketid", "ticket_id", "reference_number"}, "", func(i *Incident, v string) { i.TicketID = v }},
	{"caller_name", []string{"caller_name", "reporter", "caller"}, "Anonymous", func(i *Incident, v string) { i.CallerName = v }},
	{"address", []string{"address", "location_address", "street_address"}, "", func(i *Incident, v string) { i.Address = v }},
	{"officer", []string{"officer", "assigned_officer", "responding_officer"}, "", func(i *Incident, v string) { i.Officer = v }},
	{"status", []string{"status", "case_status"}, "Pending", func(i *Incident, v string) { i.Status = v }},
}

// normalizeRecord builds an Incident from one JSON object. The second return
// value is false when no usable id was found; the caller assigns one.
func normalizeRecord(rec map[string]any) (Incident, bool) {
	var inc Incident

	var hasID bool
	if v, ok := firstPresent(rec, idKeys); ok {
		inc.ID, hasID = coerceID(v)
	}
	if v, ok := firstPresent(rec, latitudeKeys); ok {
		inc.Latitude = coerceFloat(v)
	}
	if v, ok := firstPresent(rec, longitudeKeys); ok {
		inc.Longitude = coerceFloat(v)
	}

	for _, f := range fieldTable {
		value := f.def
		if v, ok := firstPresent(rec, f.keys); ok {
			if s, ok := coerceString(v); ok {
				value = s
			}
		}
		f.set(&inc, value)
	}

	return inc, hasID
}

// firstPresent returns the value of the first key in keys whose value is
// present (see present).
func firstPresent(rec map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && present(v) {
			return v, true
		}
	}
	return nil, false
}

// present reports whether a decoded JSON value counts as supplied: null,
// false, numeric zero and "" do not.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

func coerceString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// coerceFloat converts a coordinate value, returning 0 for anything that is
// not a finite number.
func coerceFloat(v any) float64 {
	switch t := v.(type) {
	case json.Number:
		return parseFloatOrZero(t.String())
	case string:
		return parseFloatOrZero(t)
	default:
		return 0
	}
}

// parseFloatOrZero reads the longest leading decimal number in s, so
// "17.68abc" yields 17.68. Leading space is skipped; anything without a
// numeric prefix, and out-of-range values, yield 0.
func parseFloatOrZero(s string) float64 {
	prefix := numericPrefix(strings.TrimLeft(s, " \t\n\r"))
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// numericPrefix returns the longest prefix of s matching
// [+-]?(digits[.digits]|.digits)([eE][+-]?digits)?, or "" if none.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits := countDigits(s[i:])
	i += intDigits
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = countDigits(s[i+1:])
		if intDigits > 0 || fracDigits > 0 {
			i += 1 + fracDigits
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if n := countDigits(s[j:]); n > 0 {
			i = j + n
		}
	}
	return s[:i]
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

// coerceID accepts integral numbers and base-10 integer strings.
func coerceID(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
