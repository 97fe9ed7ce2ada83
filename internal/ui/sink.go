package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/prdash/internal/aggregate"
)

// chanSink bridges aggregate events into the Bubbletea message loop.
// Channel sends are goroutine-safe, which is all aggregate.Sink requires.
type chanSink struct {
	ch chan tea.Msg
}

func newChanSink(ch chan tea.Msg) *chanSink {
	return &chanSink{ch: ch}
}

func (s *chanSink) IdentityResolved(id aggregate.Identity) {
	s.ch <- IdentityMsg{Identity: id}
}

func (s *chanSink) RepoCompleted(res aggregate.RepoResult) {
	s.ch <- RepoCompletedMsg{Result: res}
}

func (s *chanSink) Progress(p aggregate.Progress) {
	s.ch <- ProgressMsg{Progress: p}
}

func (s *chanSink) Done(d aggregate.LoadDone) {
	s.ch <- LoadDoneMsg{Done: d}
}
