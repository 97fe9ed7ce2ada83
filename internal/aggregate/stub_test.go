package aggregate

import (
	"context"
	"fmt"
	"sync"

	"github.com/shhac/prdash/internal/github"
)

// stubClient is an in-memory Fetcher. Reviews and details are keyed by
// "repo#number".
type stubClient struct {
	mu sync.Mutex

	me    github.User
	meErr error

	prs    map[string][]github.PullRequest
	prsErr map[string]error

	reviews    map[string][]github.ReviewEvent
	reviewsErr map[string]error

	details    map[string]*github.PRDetail
	detailsErr map[string]error

	userErr   map[string]error
	userCalls map[string]int
	meCalls   int
}

func newStubClient() *stubClient {
	return &stubClient{
		prs:        make(map[string][]github.PullRequest),
		prsErr:     make(map[string]error),
		reviews:    make(map[string][]github.ReviewEvent),
		reviewsErr: make(map[string]error),
		details:    make(map[string]*github.PRDetail),
		detailsErr: make(map[string]error),
		userErr:    make(map[string]error),
		userCalls:  make(map[string]int),
	}
}

func prKey(repo string, number int) string {
	return fmt.Sprintf("%s#%d", repo, number)
}

func (s *stubClient) FetchAuthenticatedUser(context.Context) (github.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meCalls++
	return s.me, s.meErr
}

func (s *stubClient) ListOpenPRs(_ context.Context, _, repo string) ([]github.PullRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.prsErr[repo]; err != nil {
		return nil, err
	}
	return s.prs[repo], nil
}

func (s *stubClient) ListReviews(_ context.Context, _, repo string, number int) ([]github.ReviewEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := prKey(repo, number)
	if err := s.reviewsErr[key]; err != nil {
		return nil, err
	}
	return s.reviews[key], nil
}

func (s *stubClient) GetPRDetail(_ context.Context, _, repo string, number int) (*github.PRDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := prKey(repo, number)
	if err := s.detailsErr[key]; err != nil {
		return nil, err
	}
	if d, ok := s.details[key]; ok {
		return d, nil
	}
	return &github.PRDetail{}, nil
}

func (s *stubClient) GetUser(_ context.Context, login string) (github.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userCalls[login]++
	if err := s.userErr[login]; err != nil {
		return github.User{}, err
	}
	return github.User{Login: login, AvatarURL: "https://a/" + login}, nil
}

// recordingSink collects events for assertions.
type recordingSink struct {
	mu         sync.Mutex
	identities []Identity
	repos      []RepoResult
	progress   []Progress
	done       []LoadDone
}

func (r *recordingSink) IdentityResolved(id Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identities = append(r.identities, id)
}

func (r *recordingSink) RepoCompleted(res RepoResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.repos = append(r.repos, res)
}

func (r *recordingSink) Progress(p Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, p)
}

func (r *recordingSink) Done(d LoadDone) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = append(r.done, d)
}

func (r *recordingSink) repoResult(repo string) (RepoResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.repos {
		if res.Repo == repo {
			return res, true
		}
	}
	return RepoResult{}, false
}
