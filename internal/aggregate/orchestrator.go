package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shhac/prdash/internal/github"
	"github.com/shhac/prdash/internal/pool"
)

// Options configures the aggregation pipeline for one Orchestrator.
type Options struct {
	Org               string
	Repos             []string
	Reviewer          string // empty = resolve from the token
	RepoConcurrency   int
	PRConcurrency     int
	NewWindow         time.Duration
	IgnoredCommenters []string
}

// IdentityError means the acting reviewer could not be resolved. It is
// the only failure that aborts a load cycle before repository work.
type IdentityError struct {
	Err error
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("could not determine username from token: %v", e.Err)
}

func (e *IdentityError) Unwrap() error { return e.Err }

// Orchestrator runs load cycles. Each cycle gets a fresh generation and
// a fresh user cache; results from superseded cycles are identifiable by
// their generation and dropped by the sink.
type Orchestrator struct {
	client     Fetcher
	opts       Options
	log        *slog.Logger
	now        func() time.Time
	generation atomic.Int64
}

// NewOrchestrator builds an orchestrator over client.
func NewOrchestrator(client Fetcher, opts Options, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{client: client, opts: opts, log: log, now: time.Now}
}

// Load runs one full cycle, emitting events to sink as repositories
// complete. It returns an error only for identity resolution failure;
// every other failure is reported through the sink.
func (o *Orchestrator) Load(ctx context.Context, sink Sink) error {
	gen := int(o.generation.Add(1))
	log := o.log.With("generation", gen)

	reviewer := github.User{Login: o.opts.Reviewer}
	if reviewer.Login == "" {
		u, err := o.client.FetchAuthenticatedUser(ctx)
		if err != nil {
			log.Error("identity resolution failed", "error", err)
			return &IdentityError{Err: err}
		}
		reviewer = u
	}
	log.Info("load cycle started", "reviewer", reviewer.Login, "repos", len(o.opts.Repos))
	sink.IdentityResolved(Identity{Generation: gen, Reviewer: reviewer})

	// Request-scoped: cleared by construction at the start of each cycle.
	users := github.NewUserCache(o.client)

	builder := &summaryBuilder{
		client:    o.client,
		users:     users,
		reviewer:  reviewer.Login,
		ignored:   o.opts.IgnoredCommenters,
		newWindow: o.opts.NewWindow,
		now:       o.now,
		log:       log,
	}
	agg := &RepoAggregator{
		client:  o.client,
		builder: builder,
		prLimit: o.opts.PRConcurrency,
		log:     log,
	}

	total := len(o.opts.Repos)
	var mu sync.Mutex
	loaded, failed, rendered := 0, 0, 0

	sink.Progress(Progress{Generation: gen, Loaded: 0, Total: total})

	_, _ = pool.Map(ctx, o.opts.Repos, o.opts.RepoConcurrency, func(ctx context.Context, repo string) (struct{}, error) {
		res := agg.Aggregate(ctx, o.opts.Org, repo, gen)

		mu.Lock()
		loaded++
		if res.Failed() {
			failed++
			rendered++
		} else if !res.Empty() {
			rendered++
		}
		sink.RepoCompleted(res)
		sink.Progress(Progress{Generation: gen, Loaded: loaded, Total: total})
		mu.Unlock()

		return struct{}{}, nil
	})

	totalFailure := rendered > 0 && failed == rendered
	if totalFailure {
		log.Error("all repositories failed to load")
	} else {
		log.Info("load cycle finished", "loaded", loaded, "failed", failed)
	}

	sink.Done(LoadDone{Generation: gen, Reviewer: reviewer.Login, TotalFailure: totalFailure})
	return nil
}
