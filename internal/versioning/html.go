package versioning

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// releaseLinkPattern accepts anchor text that starts with a full release
// version not followed by a pre-release marker ("3.13.1 - Dec. 3, 2024").
var releaseLinkPattern = regexp.MustCompile(`^(\d+\.\d+\.\d+)(?:$|[^0-9A-Za-z.])`)

// ExtractReleaseVersions returns the distinct release versions linked from a
// downloads page, in document order.
func ExtractReleaseVersions(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse release index: %w", err)
	}

	seen := make(map[string]struct{})
	var versions []string
	doc.Find("a").Each(func(_ int, link *goquery.Selection) {
		text := strings.TrimSpace(link.Text())
		text = strings.TrimSpace(strings.TrimPrefix(text, "Python "))

		match := releaseLinkPattern.FindStringSubmatch(text)
		if match == nil {
			return
		}
		if _, ok := seen[match[1]]; ok {
			return
		}
		seen[match[1]] = struct{}{}
		versions = append(versions, match[1])
	})

	return versions, nil
}

// LatestFromHTMLIndex picks the newest release on track from a downloads
// page. It returns nil when the page lists nothing for the track.
func LatestFromHTMLIndex(track entities.Track, html string) (*entities.ResolvedVersion, error) {
	versions, err := ExtractReleaseVersions(html)
	if err != nil {
		return nil, err
	}

	prefix := track.String() + "."
	latest := ""
	for _, version := range versions {
		if !strings.HasPrefix(version, prefix) {
			continue
		}
		if latest == "" || CompareVersions(version, latest) > 0 {
			latest = version
		}
	}

	if latest == "" {
		return nil, nil //nolint:nilnil // nothing published for the track
	}
	return &entities.ResolvedVersion{Version: latest, SourceTag: "v" + latest}, nil
}
