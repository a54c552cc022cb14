package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/dial112-incident-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listing = `{"incidents": [
	{"id": 1, "lat": 17.68, "lng": 83.21, "type": "Robbery", "district": "Visakhapatnam"},
	{"id": 2, "type": "Robbery", "district": "Guntur"},
	{"id": 3, "type": "Accident", "district": "Guntur"},
	7
]}`

func TestRun_StdinToStdout(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(nil, strings.NewReader(listing), &stdout))

	var got output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Len(t, got.Incidents, 3)
	assert.Equal(t, 1, got.Dropped)
	assert.Equal(t, []domain.DistrictSummary{
		{Name: "Guntur", IncidentCount: 2},
		{Name: "Visakhapatnam", IncidentCount: 1},
	}, got.Districts)
	require.Len(t, got.CrimeTypes, 2)
	assert.Equal(t, "Robbery", got.CrimeTypes[0].CrimeType)
	assert.Equal(t, "#8b5cf6", got.CrimeTypes[0].Color)
	require.NotNil(t, got.Bounds)
	assert.Equal(t, 1, got.Bounds.Located)
}

func TestRun_FileToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "all_records.json")
	out := filepath.Join(dir, "out", "snapshot.json")
	require.NoError(t, os.WriteFile(in, []byte(`[{"id": 9}]`), 0o600))

	require.NoError(t, run([]string{"-in", in, "-out", out}, nil, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var got output
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Incidents, 1)
	assert.Equal(t, int64(9), got.Incidents[0].ID)
	assert.Nil(t, got.Bounds)
}

func TestRun_StrictRejectsWrappedArray(t *testing.T) {
	err := run([]string{"-strict"}, strings.NewReader(listing), &bytes.Buffer{})
	require.ErrorIs(t, err, domain.ErrUnexpectedResponseShape)
	assert.Contains(t, err.Error(), domain.KindUnexpectedResponseShape)
}

func TestRun_StrictChecksContentType(t *testing.T) {
	err := run([]string{"-strict", "-content-type", "text/html"}, strings.NewReader(`[]`), &bytes.Buffer{})
	require.ErrorIs(t, err, domain.ErrInvalidResponseFormat)
}

func TestRun_InvalidJSON(t *testing.T) {
	err := run(nil, strings.NewReader(`<html>`), &bytes.Buffer{})
	require.ErrorIs(t, err, domain.ErrInvalidResponseFormat)
}

func TestRun_MissingFile(t *testing.T) {
	err := run([]string{"-in", filepath.Join(t.TempDir(), "missing.json")}, nil, nil)
	require.Error(t, err)
}
