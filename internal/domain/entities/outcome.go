package entities

// SkipReason explains why a pipeline run stopped without producing changes.
type SkipReason string

const (
	SkipNoMatchesFound            SkipReason = "no_matches_found"
	SkipMultipleTracksDetected    SkipReason = "multiple_tracks_detected"
	SkipPreReleaseGuarded         SkipReason = "pre_release_guarded"
	SkipSecurityGateBlocked       SkipReason = "security_gate_blocked"
	SkipRunnersMissing            SkipReason = "runners_missing"
	SkipAlreadyLatest             SkipReason = "already_latest"
	SkipWorkflowPermissionNeeded  SkipReason = "workflow_permission_required"
	SkipPullRequestExists         SkipReason = "pr_exists"
	SkipPullRequestCreationFailed SkipReason = "pr_creation_failed"
)

// OutcomeStatus tags which variant of Outcome is populated.
type OutcomeStatus string

const (
	StatusSkip    OutcomeStatus = "skip"
	StatusSuccess OutcomeStatus = "success"
)

// Outcome is the single result of a pipeline run. A skip carries Reason and
// optional Details; a success carries DryRun and, when side effects ran,
// PullRequest.
type Outcome struct {
	Status               OutcomeStatus      `json:"status"`
	Reason               SkipReason         `json:"reason,omitempty"`
	NewVersion           string             `json:"newVersion,omitempty"`
	FilesChanged         []string           `json:"filesChanged"`
	DryRun               bool               `json:"dryRun"`
	Details              map[string]any     `json:"details,omitempty"`
	PullRequest          *PullRequestResult `json:"pullRequest,omitempty"`
	SkippedWorkflowFiles []string           `json:"skippedWorkflowFiles,omitempty"`
}

// NewSkip builds a skip outcome.
func NewSkip(reason SkipReason, newVersion string, files []string, details map[string]any) *Outcome {
	if files == nil {
		files = []string{}
	}
	return &Outcome{
		Status:       StatusSkip,
		Reason:       reason,
		NewVersion:   newVersion,
		FilesChanged: files,
		Details:      details,
	}
}

// NewSuccess builds a success outcome.
func NewSuccess(newVersion string, files []string, dryRun bool) *Outcome {
	if files == nil {
		files = []string{}
	}
	return &Outcome{
		Status:       StatusSuccess,
		NewVersion:   newVersion,
		FilesChanged: files,
		DryRun:       dryRun,
	}
}

func (o *Outcome) IsSkip() bool    { return o.Status == StatusSkip }
func (o *Outcome) IsSuccess() bool { return o.Status == StatusSuccess }
