package ui

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/prdash/internal/aggregate"
	"github.com/shhac/prdash/internal/config"
	"github.com/shhac/prdash/internal/filter"
	"github.com/shhac/prdash/internal/github"
	"github.com/shhac/prdash/internal/store"
)

type nopLoader struct{}

func (nopLoader) Load(context.Context, aggregate.Sink) error { return nil }

func newTestApp(t *testing.T, kv store.KV, repos ...string) App {
	t.Helper()
	cfg := &config.Config{
		Org:                "acme",
		Repos:              repos,
		FilesWarnThreshold: config.DefaultFilesWarnThreshold,
	}
	m := NewApp(cfg, nopLoader{}, kv, slog.New(slog.DiscardHandler))
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return model.(App)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, m App, msg tea.Msg) App {
	t.Helper()
	model, _ := m.Update(msg)
	return model.(App)
}

func withIdentity(t *testing.T, m App, gen int) App {
	t.Helper()
	return press(t, m, IdentityMsg{Identity: aggregate.Identity{
		Generation: gen,
		Reviewer:   github.User{Login: "me"},
	}})
}

func TestIdentityPersistsUsername(t *testing.T) {
	kv := store.NewMemory()
	m := newTestApp(t, kv, "api")
	m = withIdentity(t, m, 1)

	if m.reviewer.Login != "me" {
		t.Fatalf("reviewer = %q, want me", m.reviewer.Login)
	}
	if v, ok := kv.Get("github_username"); !ok || v != "me" {
		t.Errorf("github_username = %q, %v", v, ok)
	}
}

func TestRepoCompletedUpdatesSections(t *testing.T) {
	m := newTestApp(t, store.NewMemory(), "api", "web", "tools")
	m = withIdentity(t, m, 1)

	m = press(t, m, RepoCompletedMsg{Result: aggregate.RepoResult{
		Generation: 1, Repo: "api",
		Rows:       []aggregate.RowSummary{{Repo: "api", Number: 1, Title: "Fix it"}},
		TotalCount: 1,
	}})
	m = press(t, m, RepoCompletedMsg{Result: aggregate.RepoResult{
		Generation: 1, Repo: "web", Err: errors.New("boom"),
	}})
	m = press(t, m, RepoCompletedMsg{Result: aggregate.RepoResult{
		Generation: 1, Repo: "tools",
	}})

	if m.sections[0].status != sectionLoaded {
		t.Errorf("api status = %v, want loaded", m.sections[0].status)
	}
	if m.sections[1].status != sectionError {
		t.Errorf("web status = %v, want error", m.sections[1].status)
	}
	if m.sections[2].status != sectionEmpty {
		t.Errorf("tools status = %v, want empty", m.sections[2].status)
	}

	// Sections keep configured order: loaded api, failed web. Empty tools
	// never renders.
	visible := m.visibleSectionIndexes()
	if len(visible) != 2 || visible[0] != 0 || visible[1] != 1 {
		t.Errorf("visible sections = %v, want [0 1]", visible)
	}
}

func TestStaleGenerationEventsDropped(t *testing.T) {
	m := newTestApp(t, store.NewMemory(), "api")
	m = withIdentity(t, m, 2)

	m = press(t, m, RepoCompletedMsg{Result: aggregate.RepoResult{
		Generation: 1, Repo: "api",
		Rows: []aggregate.RowSummary{{Repo: "api", Number: 9}},
	}})
	if m.sections[0].status != sectionLoading {
		t.Errorf("stale result applied: status = %v", m.sections[0].status)
	}

	m = press(t, m, LoadDoneMsg{Done: aggregate.LoadDone{Generation: 1, TotalFailure: true}})
	if !m.loading || m.banner != "" {
		t.Errorf("stale done applied: loading=%v banner=%q", m.loading, m.banner)
	}
}

func TestSectionHiddenWhenAllRowsFiltered(t *testing.T) {
	m := newTestApp(t, store.NewMemory(), "api")
	m = withIdentity(t, m, 1)
	m = press(t, m, RepoCompletedMsg{Result: aggregate.RepoResult{
		Generation: 1, Repo: "api",
		Rows:       []aggregate.RowSummary{{Repo: "api", Number: 1, IsDraft: true}},
		TotalCount: 1,
	}})

	// Default draft mode hides drafts, so the only row is filtered out.
	if got := m.visibleSectionIndexes(); len(got) != 0 {
		t.Fatalf("visible sections = %v, want none", got)
	}

	m = press(t, m, keyRune('d')) // hideDrafts -> onlyDrafts
	if got := m.visibleSectionIndexes(); len(got) != 1 {
		t.Fatalf("visible sections after filter change = %v, want one", got)
	}
}

func TestFilterKeysPersistSnapshot(t *testing.T) {
	kv := store.NewMemory()
	m := newTestApp(t, kv, "api")

	m = press(t, m, keyRune('w'))
	if !m.filters.AwaitingMyReview {
		t.Fatal("w did not toggle awaitingMyReview")
	}

	reloaded := filter.NewStore(kv)
	got, ok := reloaded.LoadFilters()
	if !ok || !got.AwaitingMyReview {
		t.Errorf("persisted snapshot = %+v, %v", got, ok)
	}

	m = press(t, m, keyRune('c'))
	if !filter.Equal(m.filters, filter.Defaults()) {
		t.Errorf("c did not reset filters: %+v", m.filters)
	}
}

func TestCycleModes(t *testing.T) {
	draft := []string{filter.DraftHide, filter.DraftOnly, filter.DraftAny, filter.DraftHide}
	for i := 0; i < len(draft)-1; i++ {
		if got := cycleDraftMode(draft[i]); got != draft[i+1] {
			t.Errorf("cycleDraftMode(%q) = %q, want %q", draft[i], got, draft[i+1])
		}
	}

	approval := []string{filter.ApprovalAny, filter.ApprovalGte1, filter.ApprovalGte2, filter.ApprovalLt2, filter.ApprovalEq0, filter.ApprovalAny}
	for i := 0; i < len(approval)-1; i++ {
		if got := cycleApprovalMode(approval[i]); got != approval[i+1] {
			t.Errorf("cycleApprovalMode(%q) = %q, want %q", approval[i], got, approval[i+1])
		}
	}

	news := []string{filter.NewAny, filter.NewOnly, filter.NewNot, filter.NewAny}
	for i := 0; i < len(news)-1; i++ {
		if got := cycleNewMode(news[i]); got != news[i+1] {
			t.Errorf("cycleNewMode(%q) = %q, want %q", news[i], got, news[i+1])
		}
	}
}

func TestPresetSaveFlow(t *testing.T) {
	kv := store.NewMemory()
	m := newTestApp(t, kv, "api")

	m = press(t, m, keyRune('w'))
	m = press(t, m, keyRune('s'))
	if m.mode != ModePresetName {
		t.Fatalf("mode = %v, want ModePresetName", m.mode)
	}

	for _, r := range "mine" {
		m = press(t, m, keyRune(r))
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != ModeNormal {
		t.Fatalf("mode after enter = %v", m.mode)
	}
	presets := m.presets.Presets()
	if len(presets) != 1 || presets[0].Name != "mine" {
		t.Fatalf("presets = %+v", presets)
	}
	if !m.hasActive || m.activePreset.Name != "mine" {
		t.Errorf("active preset not resolved: hasActive=%v", m.hasActive)
	}
}

func TestPresetDeleteFlow(t *testing.T) {
	kv := store.NewMemory()
	m := newTestApp(t, kv, "api")

	if _, err := m.presets.Create("mine", m.filters); err != nil {
		t.Fatal(err)
	}
	m.resolveActive()
	if !m.hasActive {
		t.Fatal("expected active preset")
	}

	m = press(t, m, keyRune('x'))
	if m.mode != ModeConfirmDelete {
		t.Fatalf("mode = %v, want ModeConfirmDelete", m.mode)
	}
	m = press(t, m, keyRune('y'))

	if len(m.presets.Presets()) != 0 {
		t.Error("preset not deleted")
	}
	if m.hasActive {
		t.Error("active preset still resolved after delete")
	}
}

func TestApplyPresetByDigit(t *testing.T) {
	kv := store.NewMemory()
	m := newTestApp(t, kv, "api")

	want := filter.State{AwaitingMyReview: true, ApprovalMode: filter.ApprovalEq0}
	if _, err := m.presets.Create("strict", want); err != nil {
		t.Fatal(err)
	}

	m = press(t, m, keyRune('1'))
	if !filter.Equal(m.filters, want) {
		t.Errorf("filters = %+v, want %+v", m.filters, want)
	}
	if !m.hasActive || m.activePreset.Name != "strict" {
		t.Error("applied preset not active")
	}
}

func TestCollapsePersists(t *testing.T) {
	kv := store.NewMemory()
	m := newTestApp(t, kv, "api")
	m = withIdentity(t, m, 1)
	m = press(t, m, RepoCompletedMsg{Result: aggregate.RepoResult{
		Generation: 1, Repo: "api",
		Rows:       []aggregate.RowSummary{{Repo: "api", Number: 1}},
		TotalCount: 1,
	}})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" ")})
	if !m.sections[0].collapsed {
		t.Fatal("space did not collapse the section")
	}
	if v, ok := kv.Get("collapsed_api"); !ok || v != "1" {
		t.Errorf("collapsed_api = %q, %v", v, ok)
	}

	// A fresh app over the same store restores the flag.
	m2 := newTestApp(t, kv, "api")
	if !m2.sections[0].collapsed {
		t.Error("collapse flag not restored on startup")
	}
}

func TestThemeTogglePersists(t *testing.T) {
	kv := store.NewMemory()
	m := newTestApp(t, kv, "api")
	if !m.dark {
		t.Fatal("expected dark theme by default")
	}

	m = press(t, m, keyRune('t'))
	if m.dark {
		t.Fatal("t did not switch theme")
	}
	if v, ok := kv.Get("dark_mode"); !ok || v != "0" {
		t.Errorf("dark_mode = %q, %v", v, ok)
	}

	m2 := newTestApp(t, kv, "api")
	if m2.dark {
		t.Error("light theme not restored on startup")
	}
}

func TestLoadFailedShowsBanner(t *testing.T) {
	m := newTestApp(t, store.NewMemory(), "api")
	m = press(t, m, LoadFailedMsg{Err: errors.New("no token")})

	if m.loading {
		t.Error("still loading after failure")
	}
	if m.banner == "" {
		t.Error("expected a banner message")
	}
}
