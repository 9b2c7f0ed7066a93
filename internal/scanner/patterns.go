package scanner

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// PatternID names one supported file format.
type PatternID string

const (
	PatternWorkflowPythonVersion PatternID = "workflow-python-version"
	PatternDockerfileFrom        PatternID = "dockerfile-from"
	PatternPythonVersionFile     PatternID = "python-version-file"
	PatternToolVersions          PatternID = "tool-versions"
	PatternRuntimeTxt            PatternID = "runtime-txt"
	PatternPyprojectPython       PatternID = "pyproject-python"
	PatternToxIni                PatternID = "tox-ini"
	PatternPipfile               PatternID = "pipfile"
	PatternEnvironmentYml        PatternID = "environment-yml"
)

// versionGroup is the name of the capture group holding the version token.
const versionGroup = "version"

// versionToken only accepts fully qualified MAJOR.MINOR.PATCH versions.
const versionToken = `(?P<version>\d+\.\d+\.\d+)`

// FileSelector decides whether a pattern applies to a path. All comparisons
// are case-insensitive on the forward-slash form of the path. A path matches
// when it contains DirSegment (if set) and its basename equals one of
// Basenames or ends with one of Suffixes.
type FileSelector struct {
	DirSegment string
	Basenames  []string
	Suffixes   []string
}

// Matches reports whether the selector applies to path.
func (s FileSelector) Matches(path string) bool {
	normalized := strings.ToLower(normalizePath(path))
	if s.DirSegment != "" && !strings.Contains("/"+normalized, "/"+s.DirSegment) {
		return false
	}

	base := basename(normalized)
	for _, name := range s.Basenames {
		if base == name {
			return true
		}
	}
	for _, suffix := range s.Suffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

// Pattern pairs a file selector with the regexes that locate version tokens
// in files of that format. Every regex captures exactly one "version" group.
type Pattern struct {
	ID          PatternID
	Description string
	Selector    FileSelector
	Regexes     []*regexp.Regexp
}

//nolint:gochecknoglobals // fixed, audited pattern table
var library = []Pattern{
	{
		ID:          PatternWorkflowPythonVersion,
		Description: "python-version inputs inside GitHub Actions workflows",
		Selector:    FileSelector{DirSegment: ".github/workflows/", Suffixes: []string{".yml", ".yaml"}},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)python-version\s*:\s*['"]?` + versionToken + `['"]?`),
		},
	},
	{
		ID:          PatternDockerfileFrom,
		Description: "Python base images and version args in Dockerfiles",
		Selector:    FileSelector{Basenames: []string{"dockerfile"}, Suffixes: []string{".dockerfile"}},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)FROM\s+\S*python[^\s:]*:` + versionToken),
			regexp.MustCompile(`(?i)\b(?:ARG|ENV)\s+PYTHON[_-]?VERSION\s*=\s*['"]?` + versionToken + `['"]?`),
		},
	},
	{
		ID:          PatternPythonVersionFile,
		Description: ".python-version files containing a sole version",
		Selector:    FileSelector{Basenames: []string{".python-version"}},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^[ \t]*` + versionToken + `[ \t\r]*$`),
		},
	},
	{
		ID:          PatternToolVersions,
		Description: "python entries inside .tool-versions",
		Selector:    FileSelector{Basenames: []string{".tool-versions"}},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^python[ \t]+` + versionToken + `\b`),
		},
	},
	{
		ID:          PatternRuntimeTxt,
		Description: "Heroku-style runtime.txt files",
		Selector:    FileSelector{Basenames: []string{"runtime.txt"}},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^python-` + versionToken + `\b`),
		},
	},
	{
		ID:          PatternPyprojectPython,
		Description: "python requirement entries inside pyproject.toml",
		Selector:    FileSelector{Basenames: []string{"pyproject.toml"}},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(
				`(?i)\b(?:requires-python|python(?:[_-]?version)?|pythonVersion)\s*=\s*"(?:==)?` + versionToken + `"`,
			),
		},
	},
	{
		ID:          PatternToxIni,
		Description: "tox.ini basepython/python_version fields",
		Selector:    FileSelector{Basenames: []string{"tox.ini"}},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^[ \t]*python_version[ \t]*=[ \t]*` + versionToken + `\b`),
			regexp.MustCompile(`(?im)^[ \t]*basepython[ \t]*=[ \t]*python` + versionToken + `\b`),
		},
	},
	{
		ID:          PatternPipfile,
		Description: "Pipfile python version declarations",
		Selector:    FileSelector{Basenames: []string{"pipfile"}},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?im)^[ \t]*python_full_version[ \t]*=[ \t]*"` + versionToken + `"`),
			regexp.MustCompile(`(?im)^[ \t]*python_version[ \t]*=[ \t]*"` + versionToken + `"`),
		},
	},
	{
		ID:          PatternEnvironmentYml,
		Description: "Conda environment python dependencies",
		Selector:    FileSelector{Basenames: []string{"environment.yml", "environment.yaml"}},
		Regexes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:^|\s|-)python(?:==|=)` + versionToken + `\b`),
		},
	},
}

// Patterns returns the built-in pattern library.
func Patterns() []Pattern {
	return library
}

// PatternsFor returns the patterns whose selector matches path.
func PatternsFor(path string) []Pattern {
	var applicable []Pattern
	for _, pattern := range library {
		if pattern.Selector.Matches(path) {
			applicable = append(applicable, pattern)
		}
	}
	return applicable
}

// IsSupportedFile reports whether any pattern applies to path.
func IsSupportedFile(path string) bool {
	return len(PatternsFor(path)) > 0
}

// IsWorkflowFile reports whether path lives under a workflow-definitions directory.
func IsWorkflowFile(path string) bool {
	normalized := "/" + strings.ToLower(normalizePath(path))
	return strings.Contains(normalized, "/.github/workflows/")
}

// FindVersionOccurrences applies every applicable pattern to content and
// returns the located version tokens ordered by (line, column, version).
// The byte offset of each occurrence points at the version token itself.
func FindVersionOccurrences(path, content string) []entities.VersionOccurrence {
	var occurrences []entities.VersionOccurrence
	seen := make(map[int]struct{})
	locator := newPositionLocator(content)

	for _, pattern := range PatternsFor(path) {
		for _, regex := range pattern.Regexes {
			group := regex.SubexpIndex(versionGroup)
			if group < 0 {
				continue
			}

			for _, match := range regex.FindAllStringSubmatchIndex(content, -1) {
				start, end := match[2*group], match[2*group+1]
				if start < 0 {
					continue
				}
				if _, dup := seen[start]; dup {
					continue
				}

				version := content[start:end]
				major, minor, patch, ok := parseVersionParts(version)
				if !ok {
					continue
				}

				seen[start] = struct{}{}
				line, column := locator.position(start)
				occurrences = append(occurrences, entities.VersionOccurrence{
					File:           normalizePath(path),
					Line:           line,
					Column:         column,
					MatchedVersion: version,
					Major:          major,
					Minor:          minor,
					Patch:          patch,
					ByteOffset:     start,
					PatternID:      string(pattern.ID),
				})
			}
		}
	}

	sortWithinFile(occurrences)
	return occurrences
}

// parseVersionParts splits a dotted triple, rejecting anything that is not
// three non-negative integers.
func parseVersionParts(version string) (int, int, int, bool) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 { //nolint:mnd // MAJOR.MINOR.PATCH
		return 0, 0, 0, false
	}

	numbers := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, 0, 0, false
		}
		numbers = append(numbers, n)
	}
	return numbers[0], numbers[1], numbers[2], true
}

// positionLocator converts byte offsets to 1-based line/column pairs. "\n",
// "\r\n" and a lone "\r" each end a line; columns count characters.
type positionLocator struct {
	content    string
	lineStarts []int
}

func newPositionLocator(content string) *positionLocator {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return &positionLocator{content: content, lineStarts: starts}
}

func (l *positionLocator) position(offset int) (int, int) {
	line := 0
	for line+1 < len(l.lineStarts) && l.lineStarts[line+1] <= offset {
		line++
	}
	column := utf8.RuneCountInString(l.content[l.lineStarts[line]:offset]) + 1
	return line + 1, column
}

func sortWithinFile(occurrences []entities.VersionOccurrence) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		a, b := occurrences[i], occurrences[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.MatchedVersion < b.MatchedVersion
	})
}

func normalizePath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

func basename(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
