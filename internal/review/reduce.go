// Package review reduces raw review events into per-PR review state.
// Everything here is pure: no I/O, no failure modes.
package review

import (
	"github.com/shhac/prdash/internal/github"
)

// LatestStateMap maps each reviewer to the state of their most recent
// review. Reviewers keep their first-seen order so derived sets are
// deterministic.
type LatestStateMap struct {
	order  []string
	states map[string]latestState
}

type latestState struct {
	state string
	time  int64 // unix millis; zero submitted_at reduces to 0
}

// BuildLatestStateMap reduces events to one state per reviewer, keeping
// the event with the maximum submission time. An exact timestamp tie goes
// to the later event in input order.
func BuildLatestStateMap(events []github.ReviewEvent) *LatestStateMap {
	m := &LatestStateMap{states: make(map[string]latestState)}

	for _, e := range events {
		if e.Reviewer == "" {
			continue
		}

		t := int64(0)
		if !e.SubmittedAt.IsZero() {
			t = e.SubmittedAt.UnixMilli()
		}

		prev, seen := m.states[e.Reviewer]
		if !seen {
			m.order = append(m.order, e.Reviewer)
		}
		if !seen || t >= prev.time {
			m.states[e.Reviewer] = latestState{state: e.State, time: t}
		}
	}

	return m
}

// State returns the latest state for a reviewer.
func (m *LatestStateMap) State(reviewer string) (string, bool) {
	s, ok := m.states[reviewer]
	return s.state, ok
}

// Len returns the number of reviewers with a submitted review.
func (m *LatestStateMap) Len() int { return len(m.order) }

// UsersByState returns the reviewers whose latest state equals state, in
// first-seen order.
func (m *LatestStateMap) UsersByState(state string) []string {
	var users []string
	for _, u := range m.order {
		if m.states[u].state == state {
			users = append(users, u)
		}
	}
	return users
}

// Commenters returns the reviewers whose latest state is COMMENTED,
// excluding the PR author and any ignored login.
func Commenters(m *LatestStateMap, author string, ignored []string) []string {
	skip := make(map[string]bool, len(ignored)+1)
	skip[author] = true
	for _, u := range ignored {
		skip[u] = true
	}

	var users []string
	for _, u := range m.UsersByState(github.StateCommented) {
		if !skip[u] {
			users = append(users, u)
		}
	}
	return users
}

// AwaitingReviewers returns the requested reviewers who have not submitted
// any review event at all. Submission presence is what counts, not state.
func AwaitingReviewers(requested []string, events []github.ReviewEvent) []string {
	submitted := make(map[string]bool, len(events))
	for _, e := range events {
		submitted[e.Reviewer] = true
	}

	var awaiting []string
	for _, r := range requested {
		if !submitted[r] {
			awaiting = append(awaiting, r)
		}
	}
	return awaiting
}

// TotalReviewerCount is the size of the deduplicated union of the four
// groups. A reviewer who both reviewed and was requested counts once.
func TotalReviewerCount(requested, approvals, changesRequested, commented []string) int {
	seen := make(map[string]bool)
	for _, group := range [][]string{requested, approvals, changesRequested, commented} {
		for _, u := range group {
			seen[u] = true
		}
	}
	return len(seen)
}
