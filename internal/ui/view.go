package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shhac/prdash/internal/aggregate"
	"github.com/shhac/prdash/internal/filter"
	"github.com/shhac/prdash/internal/github"
)

func (m App) theme() theme {
	if m.dark {
		return darkTheme()
	}
	return lightTheme()
}

func (m App) View() string {
	if !m.initialized {
		return "Loading…"
	}
	if m.width < 60 || m.height < 8 {
		t := m.theme()
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			t.banner.Render("Terminal too small. Resize to at least 60×8."))
	}

	if m.mode == ModeHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.banner != "" {
		b.WriteString(m.theme().banner.Render(m.banner))
		b.WriteString("\n")
	}
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(m.renderPresetRow())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// chromeHeight is the number of lines above and below the viewport.
func (m App) chromeHeight() int {
	h := 4 // header, filter bar, preset row, status bar
	if m.banner != "" {
		h++
	}
	return h
}

// refreshContent re-renders the section list into the viewport. Called
// after any change to data, filters, theme or layout.
func (m *App) refreshContent() {
	if !m.initialized {
		return
	}
	chrome := m.chromeHeight()
	if vpHeight := m.height - chrome; vpHeight >= 1 {
		m.viewport.Height = vpHeight
	}
	m.viewport.SetContent(m.renderSections())
}

func (m App) renderHeader() string {
	t := m.theme()
	title := t.title.Render("prdash")

	who := ""
	if m.reviewer.Login != "" {
		who = t.sectionMeta.Render(" reviewing as " + m.reviewer.Login)
	}

	status := ""
	if m.loading {
		status = fmt.Sprintf("  %s loading %d/%d", m.spin.View(), m.loaded, m.total)
	} else {
		n := 0
		for _, s := range m.sections {
			if s.status == sectionLoaded {
				n += len(s.rows)
			}
		}
		status = t.sectionMeta.Render("  " + pluralize(n, "open PR"))
	}

	return title + who + status
}

func (m App) renderFilterBar() string {
	t := m.theme()

	seg := func(label, value string, active bool) string {
		s := t.filterOff
		if active {
			s = t.filterOn
		}
		return s.Render(label + ":" + value)
	}
	toggle := func(label string, on bool) string {
		v := "off"
		if on {
			v = "on"
		}
		return seg(label, v, on)
	}

	f := filter.Normalize(m.filters)
	parts := []string{
		seg("[d]rafts", draftModeLabel(f.DraftMode), f.DraftMode != filter.DraftAny),
		seg("[n]ew", newModeLabel(f.NewMode), f.NewMode != filter.NewAny),
		seg("[a]pprovals", approvalModeLabel(f.ApprovalMode), f.ApprovalMode != filter.ApprovalAny),
		toggle("[w]aiting-on-me", f.AwaitingMyReview),
		toggle("[v] reviewed-not-approved", f.ReviewedNotApproved),
	}
	return strings.Join(parts, "  ")
}

func draftModeLabel(mode string) string {
	switch mode {
	case filter.DraftHide:
		return "hide"
	case filter.DraftOnly:
		return "only"
	}
	return "any"
}

func newModeLabel(mode string) string {
	switch mode {
	case filter.NewOnly:
		return "only"
	case filter.NewNot:
		return "not"
	}
	return "any"
}

func approvalModeLabel(mode string) string {
	switch mode {
	case filter.ApprovalGte1:
		return "≥1"
	case filter.ApprovalGte2:
		return "≥2"
	case filter.ApprovalLt2:
		return "<2"
	case filter.ApprovalEq0:
		return "0"
	}
	return "any"
}

func (m App) renderPresetRow() string {
	t := m.theme()
	presets := m.presets.Presets()
	if len(presets) == 0 {
		return t.help.Render("presets: none yet, press s to save the current filters")
	}

	parts := make([]string, 0, len(presets)+1)
	parts = append(parts, t.sectionMeta.Render("presets:"))
	for i, p := range presets {
		if i >= 9 {
			break
		}
		label := fmt.Sprintf("%d %s", i+1, p.Name)
		if m.hasActive && p.ID == m.activePreset.ID {
			parts = append(parts, t.presetActive.Render(label))
		} else {
			parts = append(parts, t.presetChip.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m App) renderSections() string {
	t := m.theme()
	visible := m.visibleSectionIndexes()
	if len(visible) == 0 {
		if m.loading {
			return t.help.Render("Loading repositories…")
		}
		return t.help.Render("Nothing to show. Press c to clear filters, or r to reload.")
	}

	var b strings.Builder
	for pos, idx := range visible {
		if pos > 0 {
			b.WriteString("\n")
		}
		m.renderSection(&b, t, m.sections[idx], pos == m.cursor)
	}
	return b.String()
}

func (m App) renderSection(b *strings.Builder, t theme, s repoSection, cursored bool) {
	marker := "  "
	if cursored {
		marker = t.cursor.Render("▸ ")
	}
	name := displayRepo(s.repo, m.cfg.RepoStripPrefix)

	switch s.status {
	case sectionLoading:
		fmt.Fprintf(b, "%s%s %s\n", marker, t.sectionTitle.Render(name), t.sectionMeta.Render("loading…"))
		return

	case sectionError:
		fmt.Fprintf(b, "%s%s\n", marker, t.sectionTitle.Render(name))
		fmt.Fprintf(b, "    %s\n", t.sectionError.Render(github.FormatError(s.err)))
		return
	}

	rows := m.visibleRows(s)
	meta := pluralize(s.totalCount, "open PR")
	if len(rows) < s.totalCount {
		meta = fmt.Sprintf("%d of %s shown", len(rows), meta)
	}
	fmt.Fprintf(b, "%s%s %s\n", marker, t.sectionTitle.Render(name), t.sectionMeta.Render(meta))
	if s.collapsed {
		fmt.Fprintf(b, "    %s\n", t.sectionMeta.Render("collapsed"))
		return
	}
	for _, row := range rows {
		m.renderRow(b, t, row)
	}
}

func (m App) renderRow(b *strings.Builder, t theme, row aggregate.RowSummary) {
	// Title line
	tags := ""
	if row.IsDraft {
		tags += " " + t.draftLabel.Render("[draft]")
	}
	if row.IsNew {
		tags += " " + t.newTag.Render("[new]")
	}
	if row.LoadError {
		tags += " " + t.rowWarning.Render("[details unavailable]")
	}
	title := truncate(row.Title, m.width-20)
	fmt.Fprintf(b, "    %s %s%s\n",
		t.rowMeta.Render(fmt.Sprintf("#%d", row.Number)),
		t.rowTitle.Render(title), tags)

	// Meta line
	meta := []string{
		"by " + row.Author.Login,
		timeAgo(row.CreatedAt, m.now()),
	}
	if row.CommitCount != aggregate.UnknownCount {
		meta = append(meta, pluralize(row.CommitCount, "commit"))
	}
	if row.FileCount != aggregate.UnknownCount {
		files := pluralize(row.FileCount, "file")
		if row.FileCount > m.cfg.FilesWarnThreshold {
			files = t.rowWarning.Render(files)
		}
		meta = append(meta, files)
	}
	meta = append(meta, m.myStateLabel(t, row))
	fmt.Fprintf(b, "      %s\n", t.rowMeta.Render(strings.Join(meta, " · ")))

	// Reviewer line, only when something is known
	if line := m.renderReviewers(t, row); line != "" {
		fmt.Fprintf(b, "      %s\n", line)
	}
}

func (m App) myStateLabel(t theme, row aggregate.RowSummary) string {
	switch row.MyLatestReviewState {
	case aggregate.StateUnknown:
		return t.rowWarning.Render("me: unknown")
	case aggregate.StateNone:
		if row.IAmRequestedReviewer {
			return t.awaiting.Render("me: review requested")
		}
		return "me: not reviewed"
	case github.StateApproved:
		return t.approved.Render("me: approved")
	case github.StateChangesRequested:
		return t.changes.Render("me: changes requested")
	default:
		return t.commented.Render("me: commented")
	}
}

func (m App) renderReviewers(t theme, row aggregate.RowSummary) string {
	var parts []string
	if n := len(row.Approvals); n > 0 {
		parts = append(parts, t.approved.Render(fmt.Sprintf("approved(%d): %s", n, joinLogins(logins(row.Approvals)))))
	}
	if n := len(row.ChangesRequested); n > 0 {
		parts = append(parts, t.changes.Render(fmt.Sprintf("changes(%d): %s", n, joinLogins(logins(row.ChangesRequested)))))
	}
	if n := len(row.Commented); n > 0 {
		parts = append(parts, t.commented.Render(fmt.Sprintf("commented(%d): %s", n, joinLogins(logins(row.Commented)))))
	}
	if n := len(row.AwaitingReviewers); n > 0 {
		parts = append(parts, t.awaiting.Render(fmt.Sprintf("awaiting(%d): %s", n, joinLogins(logins(row.AwaitingReviewers)))))
	}
	return strings.Join(parts, "  ")
}

func logins(users []github.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Login
	}
	return out
}

func (m App) renderStatusBar() string {
	t := m.theme()

	var content string
	switch m.mode {
	case ModePresetName:
		content = t.statusAccent.Render(" save preset ") + " " + m.nameInput.View() + t.help.Render("  enter to save, esc to cancel")
	case ModeConfirmOverwrite:
		content = t.statusAccent.Render(" overwrite? ") + fmt.Sprintf(" preset %q exists. y to overwrite, n to cancel", m.pendingName)
	case ModeConfirmDelete:
		content = t.statusAccent.Render(" delete? ") + fmt.Sprintf(" delete preset %q? y to delete, n to cancel", m.activePreset.Name)
	default:
		if m.statusLine != "" {
			content = " " + m.statusLine
		} else {
			content = " r reload · d/n/a cycle filters · w/v toggles · c clear · s save preset · ? help · q quit"
		}
	}

	return t.statusBar.Width(m.width).Render(content)
}

func (m App) renderHelp() string {
	t := m.theme()
	rows := [][2]string{
		{"r", "reload all repositories"},
		{"d", "cycle draft filter (hide, only, any)"},
		{"n", "cycle new filter (any, only, not)"},
		{"a", "cycle approvals filter (any, ≥1, ≥2, <2, 0)"},
		{"w", "toggle awaiting-my-review"},
		{"v", "toggle reviewed-but-not-approved"},
		{"c", "reset filters to defaults"},
		{"s", "save current filters as a preset"},
		{"x", "delete the active preset"},
		{"1-9", "apply the nth preset"},
		{"tab", "move between repositories"},
		{"space", "collapse or expand the current repository"},
		{"t", "toggle light and dark theme"},
		{"↑/↓, pgup/pgdn", "scroll"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(t.title.Render("prdash keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s  %s\n", t.filterOn.Render(fmt.Sprintf("%-16s", r[0])), r[1])
	}
	b.WriteString("\n")
	b.WriteString(t.help.Render("press any key to close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
