package commands

import (
	"fmt"
	"strings"

	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// prContent holds the information needed to describe a bump on the forge.
type prContent struct {
	Track                string
	NewVersion           string
	FilesChanged         []string
	BranchName           string
	DefaultBranch        string
	SkippedWorkflowFiles []string
}

// branchName returns the update branch for a track.
func branchName(track string) string {
	return entities.DefaultBranchPrefix + track
}

// generateTitle returns the PR title, also used as the commit message.
func generateTitle(track, version string) string {
	return fmt.Sprintf("chore: bump python %s to %s", track, version)
}

// changelogEntry returns the Keep-a-Changelog bullet recorded for a bump.
func changelogEntry(track, version string) string {
	return fmt.Sprintf("- changed the CPython `%s` pins to `%s`", track, version)
}

// generatePRBody returns the markdown description for a bump PR.
func generatePRBody(info prContent) string {
	var body strings.Builder

	body.WriteString("## Summary\n\n")
	fmt.Fprintf(&body, "- Bump CPython %s pins to `%s`.\n\n", info.Track, info.NewVersion)

	body.WriteString("## Files Updated\n\n")
	if len(info.FilesChanged) == 0 {
		body.WriteString("No files were modified in this bump.\n")
	}
	for _, file := range info.FilesChanged {
		fmt.Fprintf(&body, "- `%s`\n", file)
	}
	body.WriteString("\n")

	if len(info.SkippedWorkflowFiles) > 0 {
		body.WriteString("## Workflow File Notice\n\n")
		body.WriteString("The following workflow files were detected but left unchanged " +
			"because the provided token lacks the `workflow` scope:\n\n")
		for _, file := range info.SkippedWorkflowFiles {
			fmt.Fprintf(&body, "- `%s`\n", file)
		}
		body.WriteString("\nProvide a personal access token with the `workflow` scope " +
			"before rerunning to update these files automatically.\n\n")
	}

	body.WriteString("## Rollback\n\n")
	body.WriteString("Before merge, close this PR and delete the branch:\n\n")
	fmt.Fprintf(&body, "```sh\ngit push origin --delete %s\n```\n\n", info.BranchName)
	fmt.Fprintf(&body, "After merge, revert the change on %s:\n\n", info.DefaultBranch)
	fmt.Fprintf(&body, "```sh\ngit checkout %[1]s\ngit pull --ff-only origin %[1]s\n"+
		"git revert --no-edit <merge_commit_sha>\ngit push origin %[1]s\n```\n\n", info.DefaultBranch)
	body.WriteString("Replace `<merge_commit_sha>` with the SHA of the merge commit if rollback is required.")

	return body.String()
}
