// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/janderssonse/pkgcenter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() domain.SearchResult {
	return domain.NewSearchResult("foo", []domain.PackageRecord{
		{Repository: "core", Name: "foo", Version: "1.0-1", Description: "A sample package"},
		{Repository: "extra", Name: "bar", Version: "2.0-1", Description: "Another package", Installed: true},
	})
}

func TestOutputAdapter_SearchText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	adapter := NewOutputAdapterWithWriter(&buf, TextFormat, false)
	require.NoError(t, adapter.Search(sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "REPO")
	assert.Contains(t, out, "A sample package")
	assert.Contains(t, out, StatusInstalled)
	assert.Contains(t, out, StatusAvailable)
	assert.Contains(t, out, "2 packages found (1 installed)")
}

func TestOutputAdapter_SearchTextTruncatesDescriptions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	long := strings.Repeat("d", 200)
	adapter := NewOutputAdapterWithWriter(&buf, TextFormat, true)
	require.NoError(t, adapter.Search(domain.NewSearchResult("x", []domain.PackageRecord{
		{Repository: "aur", Name: "x", Version: "1", Description: long},
	})))

	assert.NotContains(t, buf.String(), long)
	assert.Contains(t, buf.String(), "…")
	assert.NotContains(t, buf.String(), "packages found", "quiet drops the summary line")
}

func TestOutputAdapter_SearchEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	adapter := NewOutputAdapterWithWriter(&buf, TextFormat, false)
	require.NoError(t, adapter.Search(domain.NewSearchResult("zzz", nil)))
	assert.Equal(t, "No packages found for \"zzz\"\n", buf.String())
}

func TestOutputAdapter_SearchPlain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	adapter := NewOutputAdapterWithWriter(&buf, PlainFormat, false)
	require.NoError(t, adapter.Search(sampleResult()))
	assert.Equal(t, "core/foo 1.0-1 available\nextra/bar 2.0-1 installed\n", buf.String())
}

func TestOutputAdapter_SearchJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	adapter := NewOutputAdapterWithWriter(&buf, JSONFormat, true)
	require.NoError(t, adapter.Search(sampleResult()))

	var decoded domain.SearchResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleResult(), decoded)
}

func TestOutputAdapter_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format OutputFormat
		quiet  bool
		call   func(*OutputAdapter) error
		want   string
	}{
		{
			name:   "text success",
			format: TextFormat,
			call:   func(o *OutputAdapter) error { return o.Success("Installation finished.") },
			want:   "Installation finished.\n",
		},
		{
			name:   "quiet suppresses success",
			format: TextFormat,
			quiet:  true,
			call:   func(o *OutputAdapter) error { return o.Success("Installation finished.") },
			want:   "",
		},
		{
			name:   "text error",
			format: TextFormat,
			call:   func(o *OutputAdapter) error { return o.Error("boom") },
			want:   "Error: boom\n",
		},
		{
			name:   "json error",
			format: JSONFormat,
			call:   func(o *OutputAdapter) error { return o.Error("boom") },
			want:   "{\n  \"error\": \"boom\",\n  \"status\": \"error\"\n}\n",
		},
		{
			name:   "json skips info",
			format: JSONFormat,
			call:   func(o *OutputAdapter) error { return o.Info("searching") },
			want:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			require.NoError(t, tc.call(NewOutputAdapterWithWriter(&buf, tc.format, tc.quiet)))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"", TextFormat, false},
		{"table", TextFormat, false},
		{"JSON", JSONFormat, false},
		{"plain", PlainFormat, false},
		{"xml", TextFormat, true},
	}

	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
		} else {
			require.NoError(t, err)
		}

		assert.Equal(t, tt.want, got)
	}
}

func TestFormatFromFlags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TextFormat, FormatFromFlags(false, false))
	assert.Equal(t, JSONFormat, FormatFromFlags(true, false))
	assert.Equal(t, PlainFormat, FormatFromFlags(false, true))
	assert.Equal(t, JSONFormat, FormatFromFlags(true, true))
}
