package aggregate

import "github.com/shhac/prdash/internal/github"

// Sink receives load-cycle events in completion order. Implementations
// must be safe for concurrent use; repositories complete from different
// goroutines. All events carry the generation of the cycle that produced
// them so a sink can discard events from a superseded load.
type Sink interface {
	IdentityResolved(id Identity)
	RepoCompleted(res RepoResult)
	Progress(p Progress)
	Done(d LoadDone)
}

// Identity announces the acting reviewer before any repository work starts.
type Identity struct {
	Generation int
	Reviewer   github.User
}

// RepoResult is the outcome for one repository: rows, a failure, or
// nothing to display.
type RepoResult struct {
	Generation int
	Repo       string
	Rows       []RowSummary
	TotalCount int
	Err        error // repository-level failure; rows are nil
}

// Failed reports a repository-level failure (the PR listing itself failed).
func (r RepoResult) Failed() bool { return r.Err != nil }

// Empty reports a repository with no open PRs; such repositories are not
// rendered at all.
func (r RepoResult) Empty() bool { return r.Err == nil && len(r.Rows) == 0 }

// Progress reports loaded-so-far out of total configured repositories.
type Progress struct {
	Generation int
	Loaded     int
	Total      int
}

// LoadDone closes a load cycle.
type LoadDone struct {
	Generation int
	Reviewer   string
	// TotalFailure is set when at least one repository rendered and every
	// rendered repository was a failure.
	TotalFailure bool
}
