package ui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/prdash/internal/aggregate"
	"github.com/shhac/prdash/internal/config"
	"github.com/shhac/prdash/internal/filter"
	"github.com/shhac/prdash/internal/github"
	"github.com/shhac/prdash/internal/store"
)

// Durable store keys owned by the UI layer.
const (
	usernameKey     = "github_username"
	darkModeKey     = "dark_mode"
	collapsedPrefix = "collapsed_"
)

// AppMode tracks which input mode the app is in.
type AppMode int

const (
	ModeNormal AppMode = iota
	ModePresetName       // typing a name for a new preset
	ModeConfirmOverwrite // a preset with that name exists
	ModeConfirmDelete    // deleting the active preset
	ModeHelp
)

type sectionStatus int

const (
	sectionLoading sectionStatus = iota
	sectionLoaded
	sectionError
	sectionEmpty
)

// repoSection holds one configured repository's loaded state. Sections
// keep the configured order regardless of completion order.
type repoSection struct {
	repo       string
	status     sectionStatus
	rows       []aggregate.RowSummary
	totalCount int
	err        error
	collapsed  bool
}

// App is the root Bubbletea model for the dashboard.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	loader  Loader
	kv      store.KV
	presets *filter.Store

	keys      keyMap
	events    chan tea.Msg
	spin      spinner.Model
	viewport  viewport.Model
	nameInput textinput.Model

	// Load cycle state
	generation int
	loading    bool
	reviewer   github.User
	sections   []repoSection
	cursor     int
	loaded     int
	total      int
	banner     string
	statusLine string

	// Filters
	filters      filter.State
	activePreset filter.Preset
	hasActive    bool
	pendingName  string // name in flight through the confirm-overwrite flow

	mode        AppMode
	dark        bool
	width       int
	height      int
	initialized bool
	now         func() time.Time
}

// NewApp wires the dashboard model. kv is the durable store backing
// filters, presets and the small UI flags.
func NewApp(cfg *config.Config, loader Loader, kv store.KV, log *slog.Logger) App {
	if log == nil {
		log = slog.Default()
	}

	presets := filter.NewStore(kv)
	filters, ok := presets.LoadFilters()
	if !ok {
		filters = filter.Defaults()
	}

	sections := make([]repoSection, len(cfg.Repos))
	for i, repo := range cfg.Repos {
		collapsed := false
		if v, ok := kv.Get(collapsedPrefix + repo); ok && v == "1" {
			collapsed = true
		}
		sections[i] = repoSection{repo: repo, status: sectionLoading, collapsed: collapsed}
	}

	dark := true
	if v, ok := kv.Get(darkModeKey); ok {
		dark = v != "0"
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "preset name"
	ti.CharLimit = 40

	m := App{
		cfg:       cfg,
		log:       log,
		loader:    loader,
		kv:        kv,
		presets:   presets,
		keys:      defaultKeyMap(),
		events:    make(chan tea.Msg, 64),
		spin:      sp,
		nameInput: ti,
		sections:  sections,
		filters:   filters,
		dark:      dark,
		loading:   true,
		total:     len(cfg.Repos),
		now:       time.Now,
	}
	m.resolveActive()
	return m
}

func (m App) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		startLoadCmd(m.loader, m.events),
		listenCmd(m.events),
	)
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case IdentityMsg:
		return m.handleIdentity(msg)
	case RepoCompletedMsg:
		return m.handleRepoCompleted(msg)
	case ProgressMsg:
		return m.handleProgress(msg)
	case LoadDoneMsg:
		return m.handleLoadDone(msg)
	case LoadFailedMsg:
		m.loading = false
		m.banner = github.FormatError(msg.Err)
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m App) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	chrome := m.chromeHeight()
	vpHeight := m.height - chrome
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.initialized {
		m.viewport = viewport.New(m.width, vpHeight)
		m.initialized = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.refreshContent()
	return m, nil
}

// -- Load cycle events --

func (m App) handleIdentity(msg IdentityMsg) (tea.Model, tea.Cmd) {
	if msg.Identity.Generation < m.generation {
		return m, listenCmd(m.events)
	}
	m.generation = msg.Identity.Generation
	m.reviewer = msg.Identity.Reviewer
	if m.reviewer.Login != "" {
		if err := m.kv.Set(usernameKey, m.reviewer.Login); err != nil {
			m.log.Warn("failed to persist username", "error", err)
		}
	}
	m.refreshContent()
	return m, listenCmd(m.events)
}

func (m App) handleRepoCompleted(msg RepoCompletedMsg) (tea.Model, tea.Cmd) {
	if msg.Result.Generation < m.generation {
		return m, listenCmd(m.events)
	}
	for i := range m.sections {
		if m.sections[i].repo != msg.Result.Repo {
			continue
		}
		s := &m.sections[i]
		s.rows = msg.Result.Rows
		s.totalCount = msg.Result.TotalCount
		s.err = msg.Result.Err
		switch {
		case msg.Result.Failed():
			s.status = sectionError
		case msg.Result.Empty():
			s.status = sectionEmpty
		default:
			s.status = sectionLoaded
		}
		break
	}
	m.refreshContent()
	return m, listenCmd(m.events)
}

func (m App) handleProgress(msg ProgressMsg) (tea.Model, tea.Cmd) {
	if msg.Progress.Generation < m.generation {
		return m, listenCmd(m.events)
	}
	m.loaded = msg.Progress.Loaded
	m.total = msg.Progress.Total
	return m, listenCmd(m.events)
}

func (m App) handleLoadDone(msg LoadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Done.Generation < m.generation {
		return m, listenCmd(m.events)
	}
	m.loading = false
	if msg.Done.TotalFailure {
		m.banner = "All repositories failed to load. Check your token and network."
	}
	m.refreshContent()
	return m, listenCmd(m.events)
}

// -- Key handling --

func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModePresetName:
		return m.handlePresetNameKey(msg)
	case ModeConfirmOverwrite:
		return m.handleConfirmOverwriteKey(msg)
	case ModeConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	case ModeHelp:
		m.mode = ModeNormal
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m.startReload()

	case key.Matches(msg, m.keys.Theme):
		m.dark = !m.dark
		v := "1"
		if !m.dark {
			v = "0"
		}
		if err := m.kv.Set(darkModeKey, v); err != nil {
			m.log.Warn("failed to persist theme", "error", err)
		}
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.NextSection):
		if n := len(m.visibleSectionIndexes()); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
		m.refreshContent()
		return m, nil

	case key.Matches(msg, m.keys.Collapse):
		return m.toggleCollapse()

	case key.Matches(msg, m.keys.Draft):
		m.filters.DraftMode = cycleDraftMode(m.filters.DraftMode)
		return m.filtersChanged()
	case key.Matches(msg, m.keys.New):
		m.filters.NewMode = cycleNewMode(m.filters.NewMode)
		return m.filtersChanged()
	case key.Matches(msg, m.keys.Approval):
		m.filters.ApprovalMode = cycleApprovalMode(m.filters.ApprovalMode)
		return m.filtersChanged()
	case key.Matches(msg, m.keys.AwaitingMe):
		m.filters.AwaitingMyReview = !m.filters.AwaitingMyReview
		return m.filtersChanged()
	case key.Matches(msg, m.keys.ReviewedNotOK):
		m.filters.ReviewedNotApproved = !m.filters.ReviewedNotApproved
		return m.filtersChanged()
	case key.Matches(msg, m.keys.ClearFilters):
		m.filters = filter.Defaults()
		return m.filtersChanged()

	case key.Matches(msg, m.keys.SavePreset):
		m.mode = ModePresetName
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.DeletePreset):
		if m.hasActive {
			m.mode = ModeConfirmDelete
		}
		return m, nil
	}

	// Digits 1-9 apply the nth preset.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		idx := int(s[0] - '1')
		presets := m.presets.Presets()
		if idx < len(presets) {
			m.filters = presets[idx].Filters
			return m.filtersChanged()
		}
		return m, nil
	}

	// Everything else scrolls the viewport.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m App) handlePresetNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.nameInput.Blur()
		return m, nil

	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		m.nameInput.Blur()
		if name == "" {
			m.mode = ModeNormal
			return m, nil
		}
		if existing, ok := m.presets.FindByName(name); ok {
			m.pendingName = existing.Name
			m.mode = ModeConfirmOverwrite
			return m, nil
		}
		p, err := m.presets.Create(name, m.filters)
		if err != nil {
			m.log.Warn("failed to save preset", "name", name, "error", err)
			m.statusLine = "Could not save preset."
		} else {
			m.statusLine = "Saved preset " + p.Name + "."
		}
		m.mode = ModeNormal
		m.resolveActive()
		m.refreshContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m App) handleConfirmOverwriteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		existing, ok := m.presets.FindByName(m.pendingName)
		if ok {
			if _, err := m.presets.Overwrite(existing.ID, existing.Name, m.filters); err != nil {
				m.log.Warn("failed to overwrite preset", "name", existing.Name, "error", err)
				m.statusLine = "Could not overwrite preset."
			} else {
				m.statusLine = "Updated preset " + existing.Name + "."
			}
		}
		m.mode = ModeNormal
		m.pendingName = ""
		m.resolveActive()
		m.refreshContent()
		return m, nil
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingName = ""
		return m, nil
	}
	return m, nil
}

func (m App) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if m.hasActive {
			removed, err := m.presets.Delete(m.activePreset.ID)
			if err != nil {
				m.log.Warn("failed to delete preset", "id", m.activePreset.ID, "error", err)
				m.statusLine = "Could not delete preset."
			} else if removed {
				m.statusLine = "Deleted preset " + m.activePreset.Name + "."
			}
		}
		m.mode = ModeNormal
		m.resolveActive()
		m.refreshContent()
		return m, nil
	case "n", "N", "esc":
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

// -- State transitions --

func (m App) startReload() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	m.loading = true
	m.banner = ""
	m.statusLine = ""
	m.loaded = 0
	m.total = len(m.sections)
	for i := range m.sections {
		m.sections[i].status = sectionLoading
		m.sections[i].rows = nil
		m.sections[i].err = nil
	}
	m.refreshContent()
	return m, tea.Batch(m.spin.Tick, startLoadCmd(m.loader, m.events))
}

// filtersChanged persists the new snapshot, recomputes the active preset
// and re-renders.
func (m App) filtersChanged() (tea.Model, tea.Cmd) {
	if err := m.presets.SaveFilters(m.filters); err != nil {
		m.log.Warn("failed to persist filters", "error", err)
	}
	m.resolveActive()
	m.refreshContent()
	return m, nil
}

func (m *App) resolveActive() {
	m.activePreset, m.hasActive = m.presets.ResolveActive(m.filters)
}

func (m App) toggleCollapse() (tea.Model, tea.Cmd) {
	visible := m.visibleSectionIndexes()
	if m.cursor >= len(visible) {
		return m, nil
	}
	s := &m.sections[visible[m.cursor]]
	s.collapsed = !s.collapsed
	storeKey := collapsedPrefix + s.repo
	var err error
	if s.collapsed {
		err = m.kv.Set(storeKey, "1")
	} else {
		err = m.kv.Delete(storeKey)
	}
	if err != nil {
		m.log.Warn("failed to persist collapse state", "repo", s.repo, "error", err)
	}
	m.refreshContent()
	return m, nil
}

func cycleDraftMode(mode string) string {
	switch mode {
	case filter.DraftHide:
		return filter.DraftOnly
	case filter.DraftOnly:
		return filter.DraftAny
	default:
		return filter.DraftHide
	}
}

func cycleNewMode(mode string) string {
	switch mode {
	case filter.NewAny:
		return filter.NewOnly
	case filter.NewOnly:
		return filter.NewNot
	default:
		return filter.NewAny
	}
}

func cycleApprovalMode(mode string) string {
	switch mode {
	case filter.ApprovalAny:
		return filter.ApprovalGte1
	case filter.ApprovalGte1:
		return filter.ApprovalGte2
	case filter.ApprovalGte2:
		return filter.ApprovalLt2
	case filter.ApprovalLt2:
		return filter.ApprovalEq0
	default:
		return filter.ApprovalAny
	}
}

// visibleSectionIndexes returns the indexes of sections that render:
// failures always, loaded sections only when a row passes the filters.
// Empty repositories never render.
func (m App) visibleSectionIndexes() []int {
	var out []int
	for i, s := range m.sections {
		switch s.status {
		case sectionError, sectionLoading:
			out = append(out, i)
		case sectionLoaded:
			if len(m.visibleRows(s)) > 0 {
				out = append(out, i)
			}
		}
	}
	return out
}

// visibleRows applies the filter state to a section's rows.
func (m App) visibleRows(s repoSection) []aggregate.RowSummary {
	var out []aggregate.RowSummary
	for _, row := range s.rows {
		if filter.Matches(row.FilterMeta(), m.filters) {
			out = append(out, row)
		}
	}
	return out
}
