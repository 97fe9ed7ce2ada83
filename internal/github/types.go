package github

import "time"

// User represents a GitHub user.
type User struct {
	Login     string
	AvatarURL string
}

// PullRequest is one open PR as returned by the list endpoint.
type PullRequest struct {
	Number             int
	Title              string
	URL                string // API URL
	HTMLURL            string
	Author             User
	CreatedAt          time.Time
	Draft              bool
	RequestedReviewers []string
}

// ReviewEvent is a single submitted review. A reviewer may have many
// events on one PR over time.
type ReviewEvent struct {
	Reviewer    string
	State       string // "APPROVED", "CHANGES_REQUESTED", "COMMENTED", "DISMISSED", "PENDING"
	SubmittedAt time.Time
}

// PRDetail carries the per-PR stats only the detail endpoint returns.
type PRDetail struct {
	Commits      int
	ChangedFiles int
}

// Review states as reported by the API.
const (
	StateApproved         = "APPROVED"
	StateChangesRequested = "CHANGES_REQUESTED"
	StateCommented        = "COMMENTED"
)
