package controllers

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pybump/internal/domain/commands"
	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// ScanController handles the "scan" subcommand.
type ScanController struct {
	command commands.Scan
}

// NewScanController creates a new ScanController.
func NewScanController(command commands.Scan) *ScanController {
	return &ScanController{command: command}
}

// GetBind returns the Cobra command metadata for the scan controller.
func (it *ScanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "scan [path]",
		Short: "List pinned CPython versions",
		Long: `List every pinned CPython version in a repository together with
the MAJOR.MINOR track they share. Nothing is resolved or changed.`,
	}
}

// Execute scans the workspace and prints a table of occurrences.
func (it *ScanController) Execute(cmd *cobra.Command, args []string) {
	workspace, err := workspaceFrom(args)
	if err != nil {
		logger.Errorf("invalid workspace: %v", err)
		return
	}

	flags := cmd.Flags()
	report, err := it.command.Execute(context.Background(), entities.ScanOptions{
		Workspace:      workspace,
		Paths:          sliceFlag(flags, "paths", nil),
		Ignore:         sliceFlag(flags, "ignore", nil),
		FollowSymlinks: boolFlag(flags, "follow-symlinks", false),
	})
	if err != nil {
		logger.Errorf("Scan failed: %v", err)
		return
	}

	printReport(cmd.OutOrStdout(), report)
}

// AddFlags adds the scan-specific flags to the given Cobra command.
func (it *ScanController) AddFlags(cmd *cobra.Command) {
	addDiscoveryFlags(cmd)
}

func printReport(out io.Writer, report *commands.ScanReport) {
	if len(report.Occurrences) == 0 {
		fmt.Fprintf(out, "No pinned CPython versions found in %d file(s).\n", len(report.FilesScanned))
		return
	}

	header := color.New(color.Bold)
	location := color.New(color.FgCyan)

	table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0) //nolint:mnd // column padding
	fmt.Fprintln(table, header.Sprint("LOCATION")+"\t"+header.Sprint("VERSION")+"\t"+header.Sprint("PATTERN"))
	for _, occurrence := range report.Occurrences {
		fmt.Fprintf(table, "%s\t%s\t%s\n",
			location.Sprintf("%s:%d:%d", occurrence.File, occurrence.Line, occurrence.Column),
			occurrence.MatchedVersion,
			occurrence.PatternID,
		)
	}
	_ = table.Flush()

	alignment := report.Alignment
	switch {
	case len(alignment.Conflicts) > 0:
		fmt.Fprintf(out, "\n%s tracks disagree: %v\n", color.YellowString("warning:"), alignment.Conflicts)
	case alignment.Track != nil:
		fmt.Fprintf(out, "\nTrack: %s\n", color.GreenString(alignment.Track.String()))
	}
}
