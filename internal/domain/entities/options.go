package entities

// DefaultBranchPrefix is prepended to the track to name the update branch.
const DefaultBranchPrefix = "chore/bump-python-"

// DefaultIgnores are always excluded from discovery.
func DefaultIgnores() []string {
	return []string{"**/node_modules/**", "**/.git/**", "**/dist/**"}
}

// DefaultPaths are scanned when no include globs are configured.
func DefaultPaths() []string {
	return []string{
		".github/workflows/**/*.yml",
		".github/workflows/**/*.yaml",
		"**/Dockerfile",
		"**/*.dockerfile",
		"**/.python-version",
		"**/.tool-versions",
		"**/runtime.txt",
		"**/pyproject.toml",
		"**/tox.ini",
		"**/Pipfile",
		"**/environment.yml",
		"**/environment.yaml",
	}
}

// Snapshots are pre-supplied substitutes for network responses. A nil field
// means the snapshot is absent.
type Snapshots struct {
	CPythonTags    []StableTag       `json:"cpythonTags,omitempty"`
	PythonOrgHTML  *string           `json:"pythonOrgHtml,omitempty"`
	RunnerManifest []ManifestEntry   `json:"runnerManifest,omitempty"`
	ReleaseNotes   map[string]string `json:"releaseNotes,omitempty"`
}

// BumpOptions is the input contract of a single pipeline run.
type BumpOptions struct {
	Workspace         string
	Track             string // empty means "use the detected track"
	IncludePrerelease bool
	Paths             []string
	Ignore            []string
	FollowSymlinks    bool
	DryRun            bool
	AllowPRCreation   bool
	NoNetworkFallback bool
	SecurityKeywords  []string
	Snapshots         *Snapshots

	Token         string
	Repository    *Repository
	DefaultBranch string
	Remote        string
	AuthorName    string
	AuthorEmail   string
	Changelog     bool
	ShowDiff      bool
}

// ScanOptions is the input of a scan-only run.
type ScanOptions struct {
	Workspace      string
	Paths          []string
	Ignore         []string
	FollowSymlinks bool
}
