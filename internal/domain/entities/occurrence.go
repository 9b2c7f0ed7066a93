package entities

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// trackPattern is the accepted shape of a MAJOR.MINOR track string.
var trackPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

// Track is a MAJOR.MINOR CPython release line, independent of the patch number.
type Track struct {
	Major int
	Minor int
}

// ParseTrack validates and parses a track string such as "3.13".
func ParseTrack(raw string) (Track, error) {
	normalized := strings.TrimSpace(raw)
	if !trackPattern.MatchString(normalized) {
		return Track{}, fmt.Errorf("%w: %q must be in the form X.Y (e.g. 3.13)", ErrInvalidTrack, raw)
	}

	major, minor, _ := strings.Cut(normalized, ".")
	majorNum, majorErr := strconv.Atoi(major)
	minorNum, minorErr := strconv.Atoi(minor)
	if majorErr != nil || minorErr != nil {
		return Track{}, fmt.Errorf("%w: %q has an out-of-range component", ErrInvalidTrack, raw)
	}

	return Track{Major: majorNum, Minor: minorNum}, nil
}

func (t Track) String() string {
	return fmt.Sprintf("%d.%d", t.Major, t.Minor)
}

// Less orders tracks numerically, so 3.9 sorts before 3.10.
func (t Track) Less(other Track) bool {
	if t.Major != other.Major {
		return t.Major < other.Major
	}
	return t.Minor < other.Minor
}

// VersionOccurrence is one located, parsed version token in one file.
type VersionOccurrence struct {
	File           string `json:"file"`   // forward-slash path relative to the workspace
	Line           int    `json:"line"`   // 1-based
	Column         int    `json:"column"` // 1-based, counted in characters
	MatchedVersion string `json:"matched"`
	Major          int    `json:"major"`
	Minor          int    `json:"minor"`
	Patch          int    `json:"patch"`
	ByteOffset     int    `json:"byteOffset"` // offset of the version token itself
	PatternID      string `json:"patternId"`
}

// Track returns the MAJOR.MINOR line of the occurrence.
func (o VersionOccurrence) Track() Track {
	return Track{Major: o.Major, Minor: o.Minor}
}

// SortOccurrences orders occurrences by (file, line, column).
func SortOccurrences(occurrences []VersionOccurrence) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		a, b := occurrences[i], occurrences[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// UniqueFiles returns the sorted distinct files referenced by the occurrences.
func UniqueFiles(occurrences []VersionOccurrence) []string {
	seen := make(map[string]struct{}, len(occurrences))
	files := make([]string, 0, len(occurrences))
	for _, occurrence := range occurrences {
		if _, ok := seen[occurrence.File]; ok {
			continue
		}
		seen[occurrence.File] = struct{}{}
		files = append(files, occurrence.File)
	}
	sort.Strings(files)
	return files
}

// GroupByFile buckets occurrences per file, preserving their relative order.
func GroupByFile(occurrences []VersionOccurrence) map[string][]VersionOccurrence {
	grouped := make(map[string][]VersionOccurrence)
	for _, occurrence := range occurrences {
		grouped[occurrence.File] = append(grouped[occurrence.File], occurrence)
	}
	return grouped
}

// TrackAlignment is the result of reducing occurrences to a single track.
// Track is nil when there are no occurrences or when Conflicts is non-empty.
type TrackAlignment struct {
	Track     *Track
	Conflicts []string
}
