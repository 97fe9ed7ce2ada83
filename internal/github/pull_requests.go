package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v72/github"
)

// ListOpenPRs returns the open PRs for org/repo. One page of up to 100;
// the dashboard deliberately does not paginate further.
func (c *Client) ListOpenPRs(ctx context.Context, org, repo string) ([]PullRequest, error) {
	opts := &gh.PullRequestListOptions{
		State:       "open",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	prs, _, err := c.gh.PullRequests.List(ctx, org, repo, opts)
	if err != nil {
		return nil, c.wrapError(fmt.Sprintf("list open PRs for %s/%s", org, repo), err)
	}

	out := make([]PullRequest, 0, len(prs))
	for _, pr := range prs {
		reviewers := make([]string, 0, len(pr.RequestedReviewers))
		for _, r := range pr.RequestedReviewers {
			reviewers = append(reviewers, r.GetLogin())
		}

		out = append(out, PullRequest{
			Number:             pr.GetNumber(),
			Title:              pr.GetTitle(),
			URL:                pr.GetURL(),
			HTMLURL:            pr.GetHTMLURL(),
			Author:             userFromGH(pr.GetUser()),
			CreatedAt:          pr.GetCreatedAt().Time,
			Draft:              pr.GetDraft(),
			RequestedReviewers: reviewers,
		})
	}

	return out, nil
}

// GetPRDetail fetches the detail endpoint for the commit and changed-file
// counts the list endpoint omits.
func (c *Client) GetPRDetail(ctx context.Context, org, repo string, number int) (*PRDetail, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, org, repo, number)
	if err != nil {
		return nil, c.wrapError(fmt.Sprintf("get PR %s/%s#%d", org, repo, number), err)
	}

	return &PRDetail{
		Commits:      pr.GetCommits(),
		ChangedFiles: pr.GetChangedFiles(),
	}, nil
}
