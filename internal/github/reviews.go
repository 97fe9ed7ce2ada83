package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v72/github"
)

// ListReviews fetches the submitted reviews for a PR in submission order.
// One page of up to 100, matching the list endpoint.
func (c *Client) ListReviews(ctx context.Context, org, repo string, number int) ([]ReviewEvent, error) {
	opts := &gh.ListOptions{PerPage: 100}

	reviews, _, err := c.gh.PullRequests.ListReviews(ctx, org, repo, number, opts)
	if err != nil {
		return nil, c.wrapError(fmt.Sprintf("list reviews for %s/%s#%d", org, repo, number), err)
	}

	out := make([]ReviewEvent, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewEvent{
			Reviewer:    r.GetUser().GetLogin(),
			State:       r.GetState(),
			SubmittedAt: r.GetSubmittedAt().Time,
		})
	}

	return out, nil
}
