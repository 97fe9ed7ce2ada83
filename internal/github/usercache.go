package github

import (
	"context"
	"sync"
)

// UserFetcher is the profile lookup UserCache memoizes. *Client satisfies it.
type UserFetcher interface {
	GetUser(ctx context.Context, login string) (User, error)
}

// UserCache memoizes user-profile lookups for the duration of one load
// cycle. Construct a fresh cache per cycle; it is never shared across
// cycles. Lookups that fail degrade to a placeholder with an empty avatar
// so a profile failure can never fail the row it is rendered in.
type UserCache struct {
	fetch UserFetcher

	mu      sync.Mutex
	entries map[string]*userEntry
}

type userEntry struct {
	ready chan struct{}
	user  User
}

// NewUserCache builds an empty cache backed by fetch.
func NewUserCache(fetch UserFetcher) *UserCache {
	return &UserCache{
		fetch:   fetch,
		entries: make(map[string]*userEntry),
	}
}

// Get returns the profile for login, fetching it at most once per cache
// lifetime. Concurrent callers for the same login share one fetch.
func (uc *UserCache) Get(ctx context.Context, login string) User {
	uc.mu.Lock()
	if e, ok := uc.entries[login]; ok {
		uc.mu.Unlock()
		<-e.ready
		return e.user
	}

	e := &userEntry{ready: make(chan struct{})}
	uc.entries[login] = e
	uc.mu.Unlock()

	u, err := uc.fetch.GetUser(ctx, login)
	if err != nil {
		u = User{Login: login}
	}
	e.user = u
	close(e.ready)

	return e.user
}
