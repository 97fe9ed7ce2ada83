package aggregate

import (
	"context"
	"log/slog"

	"github.com/shhac/prdash/internal/github"
	"github.com/shhac/prdash/internal/pool"
)

// RepoAggregator loads one repository: list its open PRs, then build a
// row summary per PR under the inner concurrency limit.
type RepoAggregator struct {
	client  Fetcher
	builder *summaryBuilder
	prLimit int
	log     *slog.Logger
}

// Aggregate never returns an error: a failed PR listing becomes an error
// record so one broken repository cannot abort its siblings.
func (a *RepoAggregator) Aggregate(ctx context.Context, org, repo string, generation int) RepoResult {
	prs, err := a.client.ListOpenPRs(ctx, org, repo)
	if err != nil {
		a.log.Warn("repository load failed", "repo", repo, "error", err)
		return RepoResult{Generation: generation, Repo: repo, Err: err}
	}

	if len(prs) == 0 {
		return RepoResult{Generation: generation, Repo: repo}
	}

	// build handles its own failures, so Map cannot error here.
	rows, _ := pool.Map(ctx, prs, a.prLimit, func(ctx context.Context, pr github.PullRequest) (RowSummary, error) {
		return a.builder.build(ctx, org, repo, pr), nil
	})

	return RepoResult{
		Generation: generation,
		Repo:       repo,
		Rows:       rows,
		TotalCount: len(rows),
	}
}
