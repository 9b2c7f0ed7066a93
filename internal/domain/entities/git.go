package entities

// BranchCommitInput describes the local branch and commit to create.
type BranchCommitInput struct {
	RepoPath      string
	Track         string
	Files         []string
	CommitMessage string
	BranchPrefix  string
	AuthorName    string
	AuthorEmail   string
}

// BranchCommitResult reports what the git collaborator committed.
type BranchCommitResult struct {
	Branch         string
	CommitCreated  bool
	FilesCommitted []string
}

// PushInput describes a branch push.
type PushInput struct {
	RepoPath       string
	Branch         string
	Remote         string
	Token          string
	ForceWithLease bool
	SetUpstream    bool
}

// PullRequestAction says whether a pull request was opened or refreshed.
type PullRequestAction string

const (
	PullRequestCreated PullRequestAction = "created"
	PullRequestUpdated PullRequestAction = "updated"
)
