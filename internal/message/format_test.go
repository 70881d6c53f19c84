package message

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/relwatch/relwatch/internal/changelog"
)

func TestFormat(t *testing.T) {
	got := Format(changelog.Entry{Version: "2.1.0", Content: "- Added dark mode"})
	assert.Equal(t, "🚀 **2.1.0**\n\n- Added dark mode", got)
}

func TestFormat_EmptyBody(t *testing.T) {
	got := Format(changelog.Entry{Version: "1.0.0"})
	assert.Equal(t, "🚀 **1.0.0**\n\n", got)
}

func TestTruncate_WithinLimitUnchanged(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 100))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "", Truncate("", 10))
}

func TestTruncate_CutsAndMarks(t *testing.T) {
	got := Truncate(strings.Repeat("a", 50), 20)
	assert.Equal(t, strings.Repeat("a", 16)+"\n...", got)
	assert.Len(t, got, 20)
}

func TestTruncate_NeverExceedsLimit(t *testing.T) {
	inputs := []string{
		strings.Repeat("x", 5000),
		strings.Repeat("héllo wörld ", 500),
		strings.Repeat("🚀", 300),
	}
	limits := []int{1, 3, 4, 10, 100, 4096}

	for _, s := range inputs {
		for _, limit := range limits {
			got := Truncate(s, limit)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), limit, "limit %d", limit)
		}
	}
}

func TestTruncate_Unbounded(t *testing.T) {
	long := strings.Repeat("y", 100000)
	assert.Equal(t, long, Truncate(long, 0))
	assert.Equal(t, long, Truncate(long, -1))
}

func TestTruncate_MultiByteBoundary(t *testing.T) {
	got := Truncate(strings.Repeat("🚀", 100), 50)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 50)
}
