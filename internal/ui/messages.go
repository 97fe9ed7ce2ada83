package ui

import (
	"github.com/shhac/prdash/internal/aggregate"
)

// -- Load cycle events --

// IdentityMsg is sent when the acting reviewer has been resolved.
type IdentityMsg struct {
	Identity aggregate.Identity
}

// RepoCompletedMsg is sent as each repository finishes loading.
type RepoCompletedMsg struct {
	Result aggregate.RepoResult
}

// ProgressMsg carries loaded/total repository counts.
type ProgressMsg struct {
	Progress aggregate.Progress
}

// LoadDoneMsg is sent when a load cycle has completed.
type LoadDoneMsg struct {
	Done aggregate.LoadDone
}

// LoadFailedMsg is sent when a load cycle aborts before repository work,
// i.e. identity resolution failed.
type LoadFailedMsg struct {
	Err error
}
