package changelog

import (
	"regexp"
	"strings"
)

// Entry is one version section of the changelog: the version from its
// heading and the trimmed body beneath it. Parse returns entries
// newest-first, matching the document's top-to-bottom order.
type Entry struct {
	Version string
	Content string
}

// A version heading is a level-2 markdown heading starting with MAJOR.MINOR
// or MAJOR.MINOR.PATCH, optionally followed by a pre-release suffix such as
// 1.2.3-beta.1. Trailing text on the heading line (release dates etc.) is
// ignored.
var versionHeading = regexp.MustCompile(`^##\s+(\d+\.\d+(?:\.\d+)?(?:-[\w.]+)?)`)

// Parse splits raw markdown into version entries. Lines before the first
// version heading are discarded. A document without version headings yields
// no entries.
func Parse(text string) []Entry {
	var (
		entries []Entry
		version string
		body    []string
		open    bool
	)

	flush := func() {
		if !open {
			return
		}
		entries = append(entries, Entry{
			Version: version,
			Content: strings.TrimSpace(strings.Join(body, "\n")),
		})
	}

	for _, line := range strings.Split(text, "\n") {
		if match := versionHeading.FindStringSubmatch(line); match != nil {
			flush()
			version = match[1]
			body = nil
			open = true
			continue
		}
		if open {
			body = append(body, line)
		}
	}
	flush()

	return entries
}
