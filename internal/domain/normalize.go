package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime"
	"strings"
)

const (
	// Fallback ids are drawn from [0, fallbackIDRange).
	fallbackIDRange       = 100000
	maxFallbackIDAttempts = 32
)

// shapeKeys are the object properties searched, in order, for the incident
// array when the body is not an array itself.
var shapeKeys = []string{"data", "incidents", "records"}

// fallbackID draws a random id in [0, n). Swapped in tests.
var fallbackID = rand.Int64N

// Batch is the result of normalizing one response body.
type Batch struct {
	Incidents []Incident
	// Dropped counts array elements that were not JSON objects.
	Dropped int
}

// Normalize parses a backend response body and converts every object in its
// incident array into an Incident. The array may be the body itself or the
// value of a "data", "incidents" or "records" property.
func Normalize(body []byte) (Batch, error) {
	v, err := decodeJSON(body)
	if err != nil {
		return Batch{}, err
	}
	rows, err := locateRows(v)
	if err != nil {
		return Batch{}, err
	}
	return normalizeRows(rows), nil
}

// NormalizeStrict is the alternative contract: the response must declare a
// JSON content type and the body must be a bare array.
func NormalizeStrict(body []byte, contentType string) (Batch, error) {
	if !isJSONContentType(contentType) {
		return Batch{}, fmt.Errorf("%w: content type %q is not application/json", ErrInvalidResponseFormat, contentType)
	}
	v, err := decodeJSON(body)
	if err != nil {
		return Batch{}, err
	}
	rows, ok := v.([]any)
	if !ok {
		return Batch{}, fmt.Errorf("%w: top-level value is %s, want array", ErrUnexpectedResponseShape, jsonKind(v))
	}
	return normalizeRows(rows), nil
}

// decodeJSON parses exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", ErrInvalidResponseFormat)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponseFormat, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrInvalidResponseFormat)
	}
	return v, nil
}

func locateRows(v any) ([]any, error) {
	switch t := v.(type) {
	case []any:
		return t, nil
	case map[string]any:
		for _, key := range shapeKeys {
			if rows, ok := t[key].([]any); ok {
				return rows, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s has no incident array at top level or under %s",
		ErrUnexpectedResponseShape, jsonKind(v), strings.Join(shapeKeys, ", "))
}

func normalizeRows(rows []any) Batch {
	out := make([]Incident, 0, len(rows))
	taken := make(map[int64]struct{}, len(rows))
	var missingID []int

	for _, row := range rows {
		rec, ok := row.(map[string]any)
		if !ok {
			continue
		}
		inc, hasID := normalizeRecord(rec)
		if hasID {
			taken[inc.ID] = struct{}{}
		} else {
			missingID = append(missingID, len(out))
		}
		out = append(out, inc)
	}

	// Assigned after the pass so fallbacks avoid every upstream id in the batch.
	for _, idx := range missingID {
		out[idx].ID = newFallbackID(taken)
	}

	return Batch{Incidents: out, Dropped: len(rows) - len(out)}
}

func newFallbackID(taken map[int64]struct{}) int64 {
	for range maxFallbackIDAttempts {
		id := fallbackID(fallbackIDRange)
		if _, dup := taken[id]; !dup {
			taken[id] = struct{}{}
			return id
		}
	}

	// The range is crowded; step past the largest id in use.
	next := int64(fallbackIDRange)
	for id := range taken {
		if id >= next {
			next = id + 1
		}
	}
	taken[next] = struct{}{}
	return next
}

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
