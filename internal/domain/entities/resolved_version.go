package entities

// StableTag is a tagged CPython release as reported by the tag source.
type StableTag struct {
	TagName   string `json:"tagName"`
	Version   string `json:"version"`
	Major     int    `json:"major"`
	Minor     int    `json:"minor"`
	Patch     int    `json:"patch"`
	CommitSHA string `json:"commitSha"`
}

// ResolvedVersion is the single upgrade target chosen for a track.
type ResolvedVersion struct {
	Version      string `json:"version"`
	SourceTag    string `json:"sourceTag"`
	SourceCommit string `json:"sourceCommit"`
}

// ManifestEntry is one release in the runner versions manifest.
type ManifestEntry struct {
	Version string         `json:"version"`
	Files   []ManifestFile `json:"files"`
}

// ManifestFile is one downloadable build of a manifest release.
type ManifestFile struct {
	Platform string `json:"platform"`
}

// RunnerAvailability reports on which hosted-runner platforms a version can be installed.
type RunnerAvailability struct {
	Version string `json:"version"`
	Win     bool   `json:"win"`
	Mac     bool   `json:"mac"`
	Linux   bool   `json:"linux"`
}
