package entities

import "strings"

const (
	unreleasedHeading = "## [Unreleased]"
	changedSubheading = "### Changed"
	releasePrefix     = "## ["
	bulletPrefix      = "- "
)

// AddUnreleasedChange records a bullet under "## [Unreleased]" / "### Changed"
// of a Keep-a-Changelog document. It reports false, leaving content untouched,
// when there is no Unreleased section or the exact bullet is already present.
func AddUnreleasedChange(content, entry string) (string, bool) {
	lines := strings.Split(content, "\n")

	start := indexOfTrimmed(lines, 0, len(lines), unreleasedHeading)
	if start < 0 {
		return content, false
	}
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), releasePrefix) {
			end = i
			break
		}
	}

	if indexOfTrimmed(lines, start+1, end, entry) >= 0 {
		return content, false
	}

	var block []string
	at := start + 1
	if changed := indexOfTrimmed(lines, start+1, end, changedSubheading); changed >= 0 {
		at = lastBulletAfter(lines, changed, end) + 1
		block = []string{entry}
	} else {
		block = []string{"", changedSubheading, "", entry}
	}

	updated := make([]string, 0, len(lines)+len(block))
	updated = append(updated, lines[:at]...)
	updated = append(updated, block...)
	updated = append(updated, lines[at:]...)
	return strings.Join(updated, "\n"), true
}

func indexOfTrimmed(lines []string, from, to int, want string) int {
	for i := from; i < to; i++ {
		if strings.TrimSpace(lines[i]) == want {
			return i
		}
	}
	return -1
}

// lastBulletAfter returns the index of the last bullet in the subsection that
// starts at heading, skipping blank lines between bullets.
func lastBulletAfter(lines []string, heading, end int) int {
	last := heading
	for i := heading + 1; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, bulletPrefix) {
			break
		}
		last = i
	}
	return last
}
