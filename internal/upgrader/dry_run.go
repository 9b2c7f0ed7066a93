package upgrader

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// DryRunReport describes what a run would change without writing anything.
type DryRunReport struct {
	Patches      []entities.PatchResult
	ChangedFiles []string
	Summary      string
	Diffs        map[string]string
}

// RunDryRun computes a patch per context and summarizes the result.
func RunDryRun(contexts []RewriteContext, showDiff bool) DryRunReport {
	patches := make([]entities.PatchResult, 0, len(contexts))
	for _, rewrite := range contexts {
		patches = append(patches, ComputePatch(rewrite))
	}
	return Summarize(patches, showDiff)
}

// Summarize renders one line per replacement ("file:line:col old -> new")
// and, when showDiff is set, a character diff per changed file.
func Summarize(patches []entities.PatchResult, showDiff bool) DryRunReport {
	report := DryRunReport{Patches: patches, ChangedFiles: []string{}}
	seen := make(map[string]struct{})
	for _, patch := range patches {
		if !patch.Changed {
			continue
		}
		if _, ok := seen[patch.File]; !ok {
			seen[patch.File] = struct{}{}
			report.ChangedFiles = append(report.ChangedFiles, patch.File)
		}
	}

	var builder strings.Builder
	builder.WriteString("Dry-run summary:\n")
	if len(report.ChangedFiles) == 0 {
		builder.WriteString("  No changes would be applied.")
		report.Summary = builder.String()
		return report
	}

	fmt.Fprintf(&builder, "  %d file(s) would be updated:", len(report.ChangedFiles))
	differ := diffmatchpatch.New()
	for _, patch := range patches {
		if !patch.Changed {
			continue
		}

		fmt.Fprintf(&builder, "\n  - %s", patch.File)
		for _, replacement := range patch.Replacements {
			if replacement.MatchedVersion == patch.ToVersion {
				continue
			}
			fmt.Fprintf(&builder, "\n      %s:%d:%d %s -> %s",
				patch.File, replacement.Line, replacement.Column, replacement.MatchedVersion, patch.ToVersion)
		}

		if showDiff {
			if report.Diffs == nil {
				report.Diffs = make(map[string]string)
			}
			diffs := differ.DiffMain(patch.OriginalContent, patch.UpdatedContent, false)
			report.Diffs[patch.File] = differ.DiffPrettyText(differ.DiffCleanupSemantic(diffs))
		}
	}

	report.Summary = builder.String()
	return report
}
