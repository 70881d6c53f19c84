package message

import (
	"fmt"

	"github.com/relwatch/relwatch/internal/changelog"
)

// Format renders a changelog entry as notification text: a marked version
// header, a blank line, then the entry body as-is. Length limits are the
// platforms' concern, not the formatter's.
func Format(entry changelog.Entry) string {
	return fmt.Sprintf("🚀 **%s**\n\n%s", entry.Version, entry.Content)
}

// Truncate caps text at max characters, counted in runes. Oversized text is
// cut to max-4 characters and terminated with an ellipsis line so the result
// never exceeds max. max <= 0 means unbounded.
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max < 4 {
		return string(runes[:max])
	}
	return string(runes[:max-4]) + "\n..."
}
