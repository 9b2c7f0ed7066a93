package entities

// PatchResult describes the rewrite computed for one file.
// Changed is false only when UpdatedContent equals OriginalContent.
type PatchResult struct {
	File            string
	OriginalContent string
	UpdatedContent  string
	Changed         bool
	Replacements    []VersionOccurrence
	FromVersion     string
	ToVersion       string
}
