package ui

import "github.com/charmbracelet/lipgloss"

// theme holds the style set for one color scheme. Both schemes are built
// up front; the dark-mode flag picks one at render time.
type theme struct {
	title        lipgloss.Style
	banner       lipgloss.Style
	sectionTitle lipgloss.Style
	sectionMeta  lipgloss.Style
	sectionError lipgloss.Style
	rowTitle     lipgloss.Style
	rowMeta      lipgloss.Style
	rowWarning   lipgloss.Style
	draftLabel   lipgloss.Style
	openLabel    lipgloss.Style
	newTag       lipgloss.Style
	approved     lipgloss.Style
	changes      lipgloss.Style
	commented    lipgloss.Style
	awaiting     lipgloss.Style
	highlightMe  lipgloss.Style
	filterOn     lipgloss.Style
	filterOff    lipgloss.Style
	presetChip   lipgloss.Style
	presetActive lipgloss.Style
	statusBar    lipgloss.Style
	statusAccent lipgloss.Style
	cursor       lipgloss.Style
	help         lipgloss.Style
}

func darkTheme() theme {
	return theme{
		title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		banner:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		sectionTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		sectionMeta:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		sectionError: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		rowTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		rowMeta:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		rowWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		draftLabel:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		openLabel:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		newTag:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		approved:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		changes:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		commented:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		awaiting:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		highlightMe:  lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true),
		filterOn:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		filterOff:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		presetChip:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")).Padding(0, 1),
		presetActive: lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("62")).Padding(0, 1).Bold(true),
		statusBar:    lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")),
		statusAccent: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("62")).Bold(true),
		cursor:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		help:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func lightTheme() theme {
	t := darkTheme()
	t.title = t.title.Foreground(lipgloss.Color("57"))
	t.sectionTitle = t.sectionTitle.Foreground(lipgloss.Color("130"))
	t.rowTitle = t.rowTitle.Foreground(lipgloss.Color("235"))
	t.rowMeta = t.rowMeta.Foreground(lipgloss.Color("243"))
	t.sectionMeta = t.sectionMeta.Foreground(lipgloss.Color("243"))
	t.filterOff = t.filterOff.Foreground(lipgloss.Color("249"))
	t.presetChip = t.presetChip.Foreground(lipgloss.Color("235")).Background(lipgloss.Color("253"))
	t.statusBar = t.statusBar.Background(lipgloss.Color("253")).Foreground(lipgloss.Color("235"))
	t.statusAccent = t.statusAccent.Background(lipgloss.Color("253")).Foreground(lipgloss.Color("57"))
	return t
}
