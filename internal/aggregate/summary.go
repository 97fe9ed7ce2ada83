package aggregate

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shhac/prdash/internal/filter"
	"github.com/shhac/prdash/internal/github"
	"github.com/shhac/prdash/internal/review"
)

// Sentinels for rows whose enrichment failed.
const (
	UnknownCount = -1
	StateUnknown = "unknown"
	StateNone    = "none"
)

// RowSummary is the immutable per-PR record built once per load cycle.
type RowSummary struct {
	Repo      string
	Number    int
	Title     string
	HTMLURL   string
	Author    github.User
	CreatedAt time.Time

	IsNew                bool
	IsDraft              bool
	RequestedReviewers   []string
	IAmRequestedReviewer bool

	MyReviewCount       int    // -1 when enrichment failed
	MyLatestReviewState string // "none" when never reviewed, "unknown" on failure
	ApprovalCount       int    // -1 when enrichment failed

	Approvals         []github.User
	ChangesRequested  []github.User
	Commented         []github.User
	AwaitingReviewers []github.User

	TotalReviewerCount int
	CommitCount        int // -1 when enrichment failed
	FileCount          int // -1 when enrichment failed
	LoadError          bool
}

// FilterMeta projects the row onto the metadata the filter engine reads.
func (r RowSummary) FilterMeta() filter.RowMeta {
	return filter.RowMeta{
		IsNew:                r.IsNew,
		IsDraft:              r.IsDraft,
		IAmRequestedReviewer: r.IAmRequestedReviewer,
		MyReviewCount:        r.MyReviewCount,
		MyLatestReviewState:  r.MyLatestReviewState,
		ApprovalCount:        r.ApprovalCount,
	}
}

// summaryBuilder turns one listed PR into a RowSummary. The reviews and
// detail fetches run concurrently; if either fails the row is produced
// anyway with sentinel values, never dropped.
type summaryBuilder struct {
	client    Fetcher
	users     *github.UserCache
	reviewer  string
	ignored   []string
	newWindow time.Duration
	now       func() time.Time
	log       *slog.Logger
}

func (b *summaryBuilder) build(ctx context.Context, org, repo string, pr github.PullRequest) RowSummary {
	row := RowSummary{
		Repo:               repo,
		Number:             pr.Number,
		Title:              pr.Title,
		HTMLURL:            pr.HTMLURL,
		CreatedAt:          pr.CreatedAt,
		IsDraft:            pr.Draft,
		RequestedReviewers: pr.RequestedReviewers,
	}
	row.IsNew = b.now().Sub(pr.CreatedAt) < b.newWindow
	row.IAmRequestedReviewer = slices.Contains(pr.RequestedReviewers, b.reviewer)

	var (
		events []github.ReviewEvent
		detail *github.PRDetail
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		events, err = b.client.ListReviews(ctx, org, repo, pr.Number)
		return err
	})
	g.Go(func() error {
		var err error
		detail, err = b.client.GetPRDetail(ctx, org, repo, pr.Number)
		return err
	})

	if err := g.Wait(); err != nil {
		b.log.Warn("PR enrichment failed, producing degraded row",
			"repo", repo, "pr", pr.Number, "error", err)
		row.CommitCount = UnknownCount
		row.FileCount = UnknownCount
		row.MyReviewCount = UnknownCount
		row.ApprovalCount = UnknownCount
		row.MyLatestReviewState = StateUnknown
		row.TotalReviewerCount = review.TotalReviewerCount(pr.RequestedReviewers, nil, nil, nil)
		row.LoadError = true
		row.Author = b.users.Get(ctx, pr.Author.Login)
		return row
	}

	row.CommitCount = detail.Commits
	row.FileCount = detail.ChangedFiles

	latest := review.BuildLatestStateMap(events)
	approvals := latest.UsersByState(github.StateApproved)
	changes := latest.UsersByState(github.StateChangesRequested)
	commented := review.Commenters(latest, pr.Author.Login, b.ignored)
	awaiting := review.AwaitingReviewers(pr.RequestedReviewers, events)

	row.ApprovalCount = len(approvals)
	row.TotalReviewerCount = review.TotalReviewerCount(pr.RequestedReviewers, approvals, changes, commented)

	row.MyReviewCount, row.MyLatestReviewState = b.myReviewStatus(events)

	row.Author = b.users.Get(ctx, pr.Author.Login)
	row.Approvals = b.resolveUsers(ctx, approvals)
	row.ChangesRequested = b.resolveUsers(ctx, changes)
	row.Commented = b.resolveUsers(ctx, commented)
	row.AwaitingReviewers = b.resolveUsers(ctx, awaiting)

	return row
}

// myReviewStatus counts the acting reviewer's submissions and takes the
// state of the most recent one, by ascending submission time.
func (b *summaryBuilder) myReviewStatus(events []github.ReviewEvent) (int, string) {
	var mine []github.ReviewEvent
	for _, e := range events {
		if e.Reviewer == b.reviewer {
			mine = append(mine, e)
		}
	}
	if len(mine) == 0 {
		return 0, StateNone
	}

	slices.SortStableFunc(mine, func(a, b github.ReviewEvent) int {
		return a.SubmittedAt.Compare(b.SubmittedAt)
	})

	state := mine[len(mine)-1].State
	if state == "" {
		state = StateUnknown
	}
	return len(mine), state
}

// resolveUsers fetches display profiles for a group of logins. The
// per-cycle user cache deduplicates the concurrent burst.
func (b *summaryBuilder) resolveUsers(ctx context.Context, logins []string) []github.User {
	if len(logins) == 0 {
		return nil
	}

	users := make([]github.User, len(logins))
	var wg sync.WaitGroup
	for i, login := range logins {
		wg.Add(1)
		go func() {
			defer wg.Done()
			users[i] = b.users.Get(ctx, login)
		}()
	}
	wg.Wait()
	return users
}
