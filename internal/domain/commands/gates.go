package commands

import (
	"context"
	"errors"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pybump/internal/domain/entities"
	"github.com/rios0rios0/pybump/internal/scanner"
	"github.com/rios0rios0/pybump/internal/upgrader"
	"github.com/rios0rios0/pybump/internal/versioning"
)

// personalTokenPrefixes identify user-scoped credentials that may carry the
// workflow scope. Anything else is treated as an automation token.
//
//nolint:gochecknoglobals // fixed prefix table
var personalTokenPrefixes = []string{"ghp_", "github_pat_", "gho_", "ghu_"}

// isPersonalToken guesses from its prefix whether token is a personal credential.
func isPersonalToken(token string) bool {
	for _, prefix := range personalTokenPrefixes {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	return false
}

// bumpState is the data shared by the gates of one run. Gates may narrow
// updates and record skippedWorkflowFiles.
type bumpState struct {
	opts       entities.BumpOptions
	track      entities.Track
	resolved   entities.ResolvedVersion
	scan       *scanner.Result
	writePhase bool

	notes    *versioning.NotesLookup
	keywords []string
	manifest versioning.Source[[]entities.ManifestEntry]

	updates              []entities.VersionOccurrence
	skippedWorkflowFiles []string
}

// gate is one eligibility check. A returned error aborts the run.
type gate struct {
	name  string
	check func(ctx context.Context, state *bumpState) (entities.GateResult, error)
}

// orderedGates returns the eligibility checks in evaluation order.
func orderedGates() []gate {
	return []gate{
		{name: "pre-release", check: preReleaseGate},
		{name: "security", check: securityGate},
		{name: "runners", check: runnerGate},
		{name: "already-latest", check: alreadyLatestGate},
		{name: "workflow-permission", check: workflowPermissionGate},
	}
}

// runGates evaluates gates in order and stops at the first block.
func runGates(ctx context.Context, gates []gate, state *bumpState) (entities.GateResult, error) {
	for _, current := range gates {
		result, err := current.check(ctx, state)
		if err != nil {
			return entities.GateResult{}, err
		}
		if !result.Allowed {
			logger.Infof("[gate] %s blocked the run: %s", current.name, result.Reason)
			return result, nil
		}
		logger.Debugf("[gate] %s passed", current.name)
	}
	return entities.Allow(), nil
}

func preReleaseGate(_ context.Context, state *bumpState) (entities.GateResult, error) {
	version := state.resolved.Version
	return versioning.EnforcePreReleaseGuard(state.opts.IncludePrerelease, &version), nil
}

func securityGate(ctx context.Context, state *bumpState) (entities.GateResult, error) {
	if len(state.keywords) == 0 {
		return entities.Allow(), nil
	}

	notes, found, err := state.notes.Find(ctx, state.resolved)
	if err != nil {
		logger.Warnf("[gate] release notes unavailable: %v", err)
		found = false
	}
	if !found {
		return entities.Block(entities.SkipSecurityGateBlocked, map[string]any{
			"keywords":          state.keywords,
			"releaseNotesFound": false,
		}), nil
	}

	keyword, matched := versioning.MatchKeyword(notes, state.keywords)
	if !matched {
		return entities.Block(entities.SkipSecurityGateBlocked, map[string]any{
			"keywords":          state.keywords,
			"releaseNotesFound": true,
		}), nil
	}

	logger.Infof("[gate] release notes mention %q", keyword)
	return entities.Allow(), nil
}

func runnerGate(ctx context.Context, state *bumpState) (entities.GateResult, error) {
	manifest, err := state.manifest.Load(ctx)
	if err != nil {
		if errors.Is(err, entities.ErrNetworkDisabled) {
			return entities.GateResult{}, err
		}
		logger.Warnf("[gate] runner manifest unreachable, assuming no runners: %v", err)
		manifest = nil
	}

	missing := versioning.MissingPlatforms(versioning.AvailabilityFor(manifest, state.resolved.Version))
	if len(missing) > 0 {
		return entities.Block(entities.SkipRunnersMissing, map[string]any{"missing": missing}), nil
	}
	return entities.Allow(), nil
}

// alreadyLatestGate drops occurrences at or beyond the target version.
func alreadyLatestGate(_ context.Context, state *bumpState) (entities.GateResult, error) {
	target := state.resolved.Version

	updates := make([]entities.VersionOccurrence, 0, len(state.updates))
	for _, occurrence := range state.updates {
		if occurrence.MatchedVersion == target {
			continue
		}
		if upgrader.IsNewerVersion(target, occurrence.MatchedVersion) {
			logger.Warnf("[gate] %s:%d pins %s, newer than %s; leaving it alone",
				occurrence.File, occurrence.Line, occurrence.MatchedVersion, target)
			continue
		}
		updates = append(updates, occurrence)
	}
	state.updates = updates

	if len(updates) == 0 {
		return entities.Block(entities.SkipAlreadyLatest, nil), nil
	}
	return entities.Allow(), nil
}

// workflowPermissionGate withholds workflow files from automation tokens,
// which cannot push changes under .github/workflows.
func workflowPermissionGate(_ context.Context, state *bumpState) (entities.GateResult, error) {
	if !state.writePhase || isPersonalToken(state.opts.Token) {
		return entities.Allow(), nil
	}

	kept := make([]entities.VersionOccurrence, 0, len(state.updates))
	var withheld []entities.VersionOccurrence
	for _, occurrence := range state.updates {
		if scanner.IsWorkflowFile(occurrence.File) {
			withheld = append(withheld, occurrence)
			continue
		}
		kept = append(kept, occurrence)
	}
	if len(withheld) == 0 {
		return entities.Allow(), nil
	}

	state.skippedWorkflowFiles = entities.UniqueFiles(withheld)
	logger.Warnf("[gate] token cannot update workflow files, skipping %d file(s)", len(state.skippedWorkflowFiles))

	if len(kept) == 0 {
		return entities.Block(entities.SkipWorkflowPermissionNeeded, map[string]any{
			"skippedWorkflowFiles": state.skippedWorkflowFiles,
		}), nil
	}
	state.updates = kept
	return entities.Allow(), nil
}
