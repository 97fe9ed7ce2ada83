// Package aggregate drives the load cycle: fan out over repositories,
// enrich every open PR under bounded concurrency and reduce the results
// into row summaries for the render sink.
package aggregate

import (
	"context"

	"github.com/shhac/prdash/internal/github"
)

// Fetcher is the GitHub surface the pipeline consumes.
// *github.Client satisfies this interface.
type Fetcher interface {
	FetchAuthenticatedUser(ctx context.Context) (github.User, error)
	ListOpenPRs(ctx context.Context, org, repo string) ([]github.PullRequest, error)
	ListReviews(ctx context.Context, org, repo string, number int) ([]github.ReviewEvent, error)
	GetPRDetail(ctx context.Context, org, repo string, number int) (*github.PRDetail, error)
	GetUser(ctx context.Context, login string) (github.User, error)
}
