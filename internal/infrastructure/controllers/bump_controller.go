package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pybump/internal/domain/commands"
	"github.com/rios0rios0/pybump/internal/domain/entities"
)

// BumpController handles the "bump" subcommand.
type BumpController struct {
	command commands.Bump
}

// NewBumpController creates a new BumpController.
func NewBumpController(command commands.Bump) *BumpController {
	return &BumpController{command: command}
}

// GetBind returns the Cobra command metadata for the bump controller.
func (it *BumpController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "bump [path]",
		Short: "Bump pinned CPython patch versions",
		Long: `Scan a repository for pinned CPython versions, resolve the latest
patch release on their MAJOR.MINOR track, and rewrite every pin.

Without --allow-pr-creation the run only reports what would change.
With it, files are rewritten and, when a token and repository are
available, committed to chore/bump-python-<track> and proposed as a
pull request. The outcome is printed as JSON.`,
	}
}

// Execute runs one bump and prints its outcome.
func (it *BumpController) Execute(cmd *cobra.Command, args []string) {
	opts, err := buildBumpOptions(cmd, args)
	if err != nil {
		logger.Errorf("invalid configuration: %v", err)
		return
	}

	outcome, err := it.command.Execute(context.Background(), opts)
	if err != nil {
		logger.Errorf("Bump failed: %v", err)
		return
	}

	if outcome.IsSkip() {
		logger.Infof("Skipped: %s", outcome.Reason)
	}
	if err = printOutcome(cmd, outcome); err != nil {
		logger.Errorf("failed to print outcome: %v", err)
	}
}

// AddFlags adds the bump-specific flags to the given Cobra command.
func (it *BumpController) AddFlags(cmd *cobra.Command) {
	addDiscoveryFlags(cmd)
	cmd.Flags().String("track", "", "MAJOR.MINOR track to bump (default: the detected track)")
	cmd.Flags().Bool("include-prerelease", false, "Allow alpha, beta and release-candidate targets")
	cmd.Flags().Bool("allow-pr-creation", false, "Rewrite files and open a pull request")
	cmd.Flags().Bool("no-network-fallback", false, "Never touch the network; rely on snapshots")
	cmd.Flags().StringSlice("security-keywords", nil, "Only bump when the release notes mention one of these")
	cmd.Flags().String("repository", "", "Target repository as owner/repo (default: from the git remote)")
	cmd.Flags().String("default-branch", "", "Base branch for the pull request (default: current branch)")
	cmd.Flags().String("remote", "", "Git remote to push to (default: origin)")
	cmd.Flags().String("author-name", "", "Commit author name")
	cmd.Flags().String("author-email", "", "Commit author email")
	cmd.Flags().Bool("changelog", false, "Record the bump under Unreleased in CHANGELOG.md")
	cmd.Flags().Bool("diff", false, "Print a diff per file in dry-run mode")
	cmd.Flags().String("tags-snapshot", "", "JSON file with CPython tags")
	cmd.Flags().String("html-snapshot", "", "HTML file with the python.org release index")
	cmd.Flags().String("manifest-snapshot", "", "JSON file with the runner versions manifest")
	cmd.Flags().String("notes-snapshot", "", "JSON file mapping tags to release notes")
}

// buildBumpOptions merges the settings file, the flags and the environment.
// Flags that were set explicitly win over the settings file.
func buildBumpOptions(cmd *cobra.Command, args []string) (entities.BumpOptions, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return entities.BumpOptions{}, err
	}

	workspace, err := workspaceFrom(args)
	if err != nil {
		return entities.BumpOptions{}, err
	}

	flags := cmd.Flags()
	opts := entities.BumpOptions{
		Workspace:         workspace,
		Track:             stringFlag(flags, "track", settings.Track),
		IncludePrerelease: boolFlag(flags, "include-prerelease", settings.IncludePrerelease),
		Paths:             sliceFlag(flags, "paths", settings.Paths),
		Ignore:            sliceFlag(flags, "ignore", settings.Ignore),
		FollowSymlinks:    boolFlag(flags, "follow-symlinks", settings.FollowSymlinks),
		DryRun:            boolFlag(flags, "dry-run", settings.DryRun),
		AllowPRCreation:   boolFlag(flags, "allow-pr-creation", settings.AllowPRCreation),
		NoNetworkFallback: boolFlag(flags, "no-network-fallback", settings.NoNetworkFallback),
		SecurityKeywords:  sliceFlag(flags, "security-keywords", settings.SecurityKeywords),
		Token:             stringFlag(flags, "token", settings.Token),
		DefaultBranch:     stringFlag(flags, "default-branch", settings.DefaultBranch),
		Remote:            stringFlag(flags, "remote", settings.Remote),
		AuthorName:        stringFlag(flags, "author-name", settings.AuthorName),
		AuthorEmail:       stringFlag(flags, "author-email", settings.AuthorEmail),
		Changelog:         boolFlag(flags, "changelog", settings.Changelog),
		ShowDiff:          boolFlag(flags, "diff", false),
	}

	if opts.Track != "" {
		if _, err = entities.ParseTrack(opts.Track); err != nil {
			return entities.BumpOptions{}, err
		}
	}
	if opts.Token == "" {
		opts.Token = entities.ResolveTokenFromEnv()
	}

	if slug := stringFlag(flags, "repository", settings.Repository); slug != "" {
		opts.Repository = entities.ParseRepository(slug)
		if opts.Repository == nil {
			return entities.BumpOptions{}, fmt.Errorf("repository %q must be in the form owner/repo", slug)
		}
	}

	opts.Snapshots, err = entities.LoadSnapshots(entities.SnapshotSettings{
		CPythonTags:    stringFlag(flags, "tags-snapshot", settings.Snapshots.CPythonTags),
		PythonOrgHTML:  stringFlag(flags, "html-snapshot", settings.Snapshots.PythonOrgHTML),
		RunnerManifest: stringFlag(flags, "manifest-snapshot", settings.Snapshots.RunnerManifest),
		ReleaseNotes:   stringFlag(flags, "notes-snapshot", settings.Snapshots.ReleaseNotes),
	})
	if err != nil {
		return entities.BumpOptions{}, err
	}

	return opts, nil
}

// loadSettings reads the --config file, or an auto-detected one. Running
// without any settings file is fine.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("no config file found, using flags only: %v", err)
			return &entities.Settings{}, nil
		}
		configPath = found
	}

	logger.Infof("Using config file: %s", configPath)
	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}

func workspaceFrom(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	absolute, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	return absolute, nil
}

func printOutcome(cmd *cobra.Command, outcome *entities.Outcome) error {
	if outcome == nil {
		return errors.New("no outcome produced")
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(outcome)
}
