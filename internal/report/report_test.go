package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxmods/stockcheck/internal/report"
	"github.com/nxmods/stockcheck/internal/scan"
	"github.com/nxmods/stockcheck/pkg/errclass"
)

func sampleResult() *scan.Result {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &scan.Result{
		Root:        "/mods/example",
		Platform:    "wiiu",
		GameVersion: "1.5.0",
		StartedAt:   started,
		FinishedAt:  started.Add(1500 * time.Millisecond),
		Summary:     scan.Summary{Total: 3, Unmodified: 1, Modified: 1, Skipped: 1, Flagged: 1},
		Entries: []scan.Entry{
			{File: "content/Actor/ActorInfo.product.sbyml", Path: "Actor/ActorInfo.product.byml", Status: scan.StatusUnmodified},
			{File: "content/Pack/Bootup.pack", Path: "Pack/Bootup.pack", Status: scan.StatusModified, Modified: true, Fingerprint: "2df0ad6bd4c4a1b0"},
			{File: "readme.txt", Status: scan.StatusSkipped},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want report.Format
	}{
		{"json", report.FormatJSON},
		{"JSON", report.FormatJSON},
		{"yaml", report.FormatYAML},
		{"yml", report.FormatYAML},
		{" cbor ", report.FormatCBOR},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := report.ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := report.ParseFormat("xml")
	assert.ErrorIs(t, err, errclass.ErrFormatUnsupported)
}

func TestEncodeDecode_AllFormats(t *testing.T) {
	want := sampleResult()
	for _, f := range report.Formats() {
		t.Run(string(f), func(t *testing.T) {
			data, err := report.Encode(f, want)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			got, err := report.Decode(f, data)
			require.NoError(t, err)
			assert.Equal(t, want.Entries, got.Entries)
			assert.Equal(t, want.Summary, got.Summary)
			assert.Equal(t, want.Platform, got.Platform)
			assert.True(t, want.StartedAt.Equal(got.StartedAt))
			assert.True(t, want.FinishedAt.Equal(got.FinishedAt))
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	for _, f := range report.Formats() {
		a, err := report.Encode(f, sampleResult())
		require.NoError(t, err)
		b, err := report.Encode(f, sampleResult())
		require.NoError(t, err)
		assert.Equal(t, a, b, string(f))
	}
}

func TestEncode_JSONShape(t *testing.T) {
	data, err := report.Encode(report.FormatJSON, sampleResult())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"status": "skipped"`)
	assert.Contains(t, s, `"game_version": "1.5.0"`)
	// Skipped entries have no canonical path.
	assert.NotContains(t, s, `"path": ""`)
	assert.Less(t, strings.Index(s, `"entries"`), strings.Index(s, `"summary"`))
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := report.Encode("toml", sampleResult())
	assert.ErrorIs(t, err, errclass.ErrFormatUnsupported)

	_, err = report.Decode("toml", nil)
	assert.ErrorIs(t, err, errclass.ErrFormatUnsupported)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := report.Decode(report.FormatJSON, []byte("{not json"))
	assert.Error(t, err)
	_, err = report.Decode(report.FormatCBOR, []byte{0xff, 0x00})
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.yaml")

	require.NoError(t, report.Write(path, report.FormatYAML, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got, err := report.Decode(report.FormatYAML, data)
	require.NoError(t, err)
	assert.Equal(t, sampleResult().Entries, got.Entries)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWrite_Errors(t *testing.T) {
	err := report.Write(filepath.Join(t.TempDir(), "r.json"), "toml", sampleResult())
	assert.ErrorIs(t, err, errclass.ErrFormatUnsupported)

	err = report.Write(filepath.Join(t.TempDir(), "missing", "r.json"), report.FormatJSON, sampleResult())
	assert.Error(t, err)
}
