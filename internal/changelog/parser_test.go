package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `# Changelog

Intro text that belongs to no version.

## 2.1.0

- Added dark mode
- Fixed login loop

## 2.0.0-beta.1

Big rewrite.

## 1.9

Maintenance release.
`

func TestParse_NewestFirst(t *testing.T) {
	entries := Parse(sampleDoc)
	require.Len(t, entries, 3)

	assert.Equal(t, "2.1.0", entries[0].Version)
	assert.Equal(t, "2.0.0-beta.1", entries[1].Version)
	assert.Equal(t, "1.9", entries[2].Version)
}

func TestParse_BodyTrimmedVerbatim(t *testing.T) {
	entries := Parse(sampleDoc)
	require.Len(t, entries, 3)

	assert.Equal(t, "- Added dark mode\n- Fixed login loop", entries[0].Content)
	assert.Equal(t, "Big rewrite.", entries[1].Content)
	assert.Equal(t, "Maintenance release.", entries[2].Content)
}

func TestParse_PrologueDiscarded(t *testing.T) {
	entries := Parse("these lines\nprecede any heading\n## 1.0.0\nbody")
	require.Len(t, entries, 1)
	assert.Equal(t, "1.0.0", entries[0].Version)
	assert.Equal(t, "body", entries[0].Content)
}

func TestParse_NoHeadings(t *testing.T) {
	assert.Empty(t, Parse("# Title\n\njust prose, no version headings\n"))
	assert.Empty(t, Parse(""))
}

func TestParse_EmptyBody(t *testing.T) {
	entries := Parse("## 1.1.0\n## 1.0.0\ncontent")
	require.Len(t, entries, 2)
	assert.Equal(t, "", entries[0].Content)
	assert.Equal(t, "content", entries[1].Content)
}

func TestParse_HeadingVariants(t *testing.T) {
	tests := []struct {
		line    string
		version string
		match   bool
	}{
		{"## 1.2", "1.2", true},
		{"## 1.2.3", "1.2.3", true},
		{"## 1.2.3-rc.1", "1.2.3-rc.1", true},
		{"## 1.2.3 - 2026-01-15", "1.2.3", true},
		{"### 1.2.3", "", false},
		{"## v1.2.3", "", false},
		{"## not a version", "", false},
		{"1.2.3", "", false},
	}

	for _, tt := range tests {
		entries := Parse(tt.line)
		if tt.match {
			require.Len(t, entries, 1, "line %q", tt.line)
			assert.Equal(t, tt.version, entries[0].Version)
		} else {
			assert.Empty(t, entries, "line %q", tt.line)
		}
	}
}

func TestParse_DuplicateVersionKeepsBoth(t *testing.T) {
	// Duplicates are not collapsed; index lookups simply never reach the
	// second occurrence.
	entries := Parse("## 1.0.0\nfirst\n## 1.0.0\nsecond")
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Content)
	assert.Equal(t, "second", entries[1].Content)
}
