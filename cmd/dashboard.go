package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/gridrisk/internal/catalog"
	"github.com/kamal-hamza/gridrisk/internal/core/domain"
	"github.com/kamal-hamza/gridrisk/internal/core/services"
	"github.com/kamal-hamza/gridrisk/pkg/ui"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Launch interactive dashboard (alias: dash)",
	Long: `Launch a full-screen interactive dashboard over the generated fleet.

The dashboard has five tabs:
- Predictive Maintenance: asset list with a live prediction readout
- ML Models, Crew Optimization, Architecture and Business Impact pages

Keyboard Shortcuts:
  Navigation:
    ↑/k ↓/j     Move in the asset list
    g / G       Jump to top / bottom
    tab / 1-5   Switch tabs
    PgUp/PgDn   Scroll the detail pane

  Filtering:
    /           Fuzzy search (id, type, location, voltage)
    f           Cycle risk filter (all, CRITICAL, HIGH, MEDIUM)
    Esc         Clear search

  General:
    ?           Show help
    q           Quit dashboard
    Ctrl+C      Force quit`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	query, gen, err := loadQuery(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fleet: %w", err)
	}

	m := newDashboardModel(ctx, query, generationLine(gen))

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}

	return nil
}

// Dashboard tabs
type dashboardTab int

const (
	tabPredictive dashboardTab = iota
	tabModels
	tabCrews
	tabArchitecture
	tabImpact
)

var tabNames = []string{
	"Predictive Maintenance",
	"ML Models",
	"Crew Optimization",
	"Architecture",
	"Business Impact",
}

// Dashboard view modes
type viewMode int

const (
	modeList viewMode = iota
	modeSearch
	modeHelp
)

// riskFilters is the cycle order of the f key; "" shows every level
var riskFilters = []domain.RiskLevel{"", domain.RiskCritical, domain.RiskHigh, domain.RiskMedium}

// Dashboard model
type dashboardModel struct {
	ctx      context.Context
	query    *services.QueryService
	caption  string
	now      time.Time
	filtered []domain.AssetRecord // Assets after search and risk filter
	cursor   int                  // Selected item index
	offset   int                  // Scroll offset of the list
	mode     viewMode
	tab      dashboardTab
	filter   int // Index into riskFilters
	search   textinput.Model
	help     help.Model
	keys     keyMap
	detail   viewport.Model // Prediction readout for the selected asset
	page     viewport.Model // Catalog tabs
	width    int
	height   int
	ready    bool
	message  string
}

// Key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Filter  key.Binding
	Search  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Search, k.Filter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.NextTab, k.PrevTab},
		{k.Search, k.Filter, k.Escape, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "bottom"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab", "previous tab"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "risk filter"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

func newDashboardModel(ctx context.Context, query *services.QueryService, caption string) dashboardModel {
	ti := textinput.New()
	ti.Placeholder = "Search assets..."
	ti.CharLimit = 100
	ti.Width = 50

	detail := viewport.New(80, 20)
	detail.Style = lipgloss.NewStyle().Foreground(ui.ColorDefault)

	m := dashboardModel{
		ctx:     ctx,
		query:   query,
		caption: caption,
		now:     query.Fleet().GeneratedAt(),
		mode:    modeList,
		tab:     tabPredictive,
		search:  ti,
		help:    help.New(),
		keys:    keys,
		detail:  detail,
		page:    viewport.New(80, 20),
	}
	m.applyFilters()
	return m
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true

		detailHeight := msg.Height - 12
		if detailHeight < 10 {
			detailHeight = 10
		}
		m.detail.Width = msg.Width/2 - 4
		m.detail.Height = detailHeight
		m.page.Width = msg.Width - 2
		m.page.Height = msg.Height - 6
		m.refreshDetail()
		m.refreshPage()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	if m.tab == tabPredictive {
		m.detail, cmd = m.detail.Update(msg)
	} else {
		m.page, cmd = m.page.Update(msg)
	}
	return m, cmd
}

func (m dashboardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.switchTab((m.tab + 1) % dashboardTab(len(tabNames)))

	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab((m.tab + dashboardTab(len(tabNames)) - 1) % dashboardTab(len(tabNames)))

	case len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] < '1'+rune(len(tabNames)):
		m.switchTab(dashboardTab(msg.Runes[0] - '1'))

	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	}

	if m.tab != tabPredictive {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.page.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.page.LineDown(1)
		case msg.Type == tea.KeyPgUp:
			m.page.ViewUp()
		case msg.Type == tea.KeyPgDown:
			m.page.ViewDown()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
			m.refreshDetail()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.adjustViewport()
			m.refreshDetail()
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.offset = 0
		m.refreshDetail()

	case key.Matches(msg, m.keys.Bottom):
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
			m.adjustViewport()
			m.refreshDetail()
		}

	case msg.Type == tea.KeyPgUp:
		m.detail.ViewUp()

	case msg.Type == tea.KeyPgDown:
		m.detail.ViewDown()

	case key.Matches(msg, m.keys.Filter):
		m.filter = (m.filter + 1) % len(riskFilters)
		m.applyFilters()

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applyFilters()
		}
	}

	return m, nil
}

func (m dashboardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		m.search.Blur()
		m.search.SetValue("")
		m.applyFilters()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.mode = modeList
		m.search.Blur()
		return m, nil

	// Only arrow keys navigate while typing, not j/k
	case msg.Type == tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
			m.refreshDetail()
		}

	case msg.Type == tea.KeyDown:
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.adjustViewport()
			m.refreshDetail()
		}

	default:
		oldQuery := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != oldQuery {
			m.applyFilters()
		}
		return m, cmd
	}

	return m, nil
}

func (m dashboardModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = modeList
	}
	return m, nil
}

// switchTab moves to tab and loads its page content
func (m *dashboardModel) switchTab(tab dashboardTab) {
	m.tab = tab
	m.refreshPage()
}

// riskFilter returns the active risk level, or "" when showing all
func (m dashboardModel) riskFilter() domain.RiskLevel {
	return riskFilters[m.filter]
}

// applyFilters recomputes the visible assets from the search query and
// the risk filter. Search results keep their match ranking.
func (m *dashboardModel) applyFilters() {
	assets := m.query.Fleet().Assets()

	if q := strings.TrimSpace(m.search.Value()); q != "" {
		resp, err := m.query.Search(m.ctx, services.SearchRequest{Query: q})
		if err != nil {
			m.message = "Search failed: " + err.Error()
			return
		}
		assets = resp.Assets
	}

	if level := m.riskFilter(); level != "" {
		kept := make([]domain.AssetRecord, 0, len(assets))
		for _, a := range assets {
			if a.RiskLevel == level {
				kept = append(kept, a)
			}
		}
		assets = kept
	}

	m.filtered = assets
	m.message = ""
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
		m.offset = 0
	}
	m.refreshDetail()
}

// selected returns the asset under the cursor
func (m dashboardModel) selected() (domain.AssetRecord, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return domain.AssetRecord{}, false
	}
	return m.filtered[m.cursor], true
}

// refreshDetail renders the prediction readout for the selected asset
func (m *dashboardModel) refreshDetail() {
	a, ok := m.selected()
	if !ok {
		m.detail.SetContent(ui.FormatMuted("No asset selected"))
		return
	}
	m.detail.SetContent(renderPrediction(services.Predict(a), m.now))
	m.detail.GotoTop()
}

// refreshPage renders the catalog page for the current tab
func (m *dashboardModel) refreshPage() {
	var content string
	switch m.tab {
	case tabModels:
		content = renderModelsPage()
	case tabCrews:
		content = renderCrewsPage(m.query.Fleet())
	case tabArchitecture:
		content = renderArchitecturePage()
	case tabImpact:
		content = renderImpactPage(catalog.DefaultROI())
	default:
		return
	}
	m.page.SetContent(content)
	m.page.GotoTop()
}

// listHeight is how many asset rows fit on screen
func (m dashboardModel) listHeight() int {
	h := m.height - 12 // Header, tabs, summary, search, footer
	if h < 3 {
		h = 3
	}
	return h
}

// adjustViewport keeps the cursor inside the visible list window
func (m *dashboardModel) adjustViewport() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "\n  Loading dashboard..."
	}

	if m.mode == modeHelp {
		return m.viewHelp()
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.tab == tabPredictive {
		s.WriteString(m.viewPredictive())
	} else {
		s.WriteString(m.page.View())
	}

	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m dashboardModel) viewPredictive() string {
	var s strings.Builder

	s.WriteString(m.renderSummary())
	s.WriteString("\n")
	s.WriteString(m.renderSearchBar())
	s.WriteString("\n")

	listWidth := m.width / 2
	if listWidth < 40 {
		listWidth = 40
	}

	list := lipgloss.NewStyle().Width(listWidth).Render(m.renderAssetList(listWidth))
	if m.width-listWidth < 40 {
		// Too narrow for the detail pane
		s.WriteString(list)
		return s.String()
	}

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.detail.View()))
	return s.String()
}

func (m dashboardModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Padding(0, 1)

	statsStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Align(lipgloss.Right)

	title := titleStyle.Render(ui.IconAsset + " Smart Grid Predictive Maintenance")
	stats := statsStyle.Render(m.caption)

	spacer := m.width - lipgloss.Width(title) - lipgloss.Width(stats)
	if spacer < 0 {
		spacer = 0
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Repeat(" ", spacer), stats)
}

func (m dashboardModel) renderTabs() string {
	active := lipgloss.NewStyle().
		Foreground(ui.ColorPrimary).
		Bold(true).
		Underline(true).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		Padding(0, 1)

	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if dashboardTab(i) == m.tab {
			parts[i] = active.Render(label)
		} else {
			parts[i] = inactive.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderSummary shows fleet totals per level with the active filter marked
func (m dashboardModel) renderSummary() string {
	summary := domain.Summarize(m.query.Fleet().Assets())

	parts := []string{ui.StyleBold.Render(fmt.Sprintf(" %d assets", summary.Total))}
	for _, level := range domain.AllRiskLevels() {
		label := fmt.Sprintf("%s %d", level, summary.ByRisk[level])
		if m.riskFilter() == level {
			label = "[" + label + "]"
		}
		parts = append(parts, ui.FormatRisk(label))
	}
	if m.riskFilter() == "" {
		parts = append(parts, ui.FormatMuted("filter: all"))
	}
	return strings.Join(parts, "   ")
}

func (m dashboardModel) renderSearchBar() string {
	borderColor := ui.ColorMuted
	if m.mode == modeSearch {
		borderColor = ui.ColorPrimary
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width)

	prompt := ui.StyleMuted.Render(ui.IconSearch + " ")
	if m.mode == modeSearch {
		prompt = ui.StylePrimary.Render(ui.IconSearch + " ")
	}

	content := prompt + m.search.View()
	if m.mode != modeSearch && m.search.Value() == "" {
		content = prompt + ui.StyleMuted.Render("Press / to search...")
	}

	return searchStyle.Render(content)
}

func (m dashboardModel) renderAssetList(width int) string {
	if len(m.filtered) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Padding(1, 2)
		if m.search.Value() != "" || m.riskFilter() != "" {
			return emptyStyle.Render("No assets match the current filters.")
		}
		return emptyStyle.Render("No assets in this sample.")
	}

	var s strings.Builder

	end := m.offset + m.listHeight()
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := m.offset; i < end; i++ {
		s.WriteString(m.renderAssetItem(m.filtered[i], i == m.cursor, width))
		s.WriteString("\n")
	}

	return s.String()
}

func (m dashboardModel) renderAssetItem(a domain.AssetRecord, selected bool, width int) string {
	cursor := "  "
	idStyle := lipgloss.NewStyle().Foreground(ui.ColorDefault)
	if selected {
		cursor = ui.StylePrimary.Render("▶ ")
		idStyle = ui.StylePrimary.Bold(true)
	}

	typeWidth := width - 34
	if typeWidth < 8 {
		typeWidth = 8
	}

	return fmt.Sprintf("%s%s  %-*s %6s  %s",
		cursor,
		idStyle.Render(a.ID),
		typeWidth,
		truncate(a.Type, typeWidth),
		a.FailurePercent(),
		ui.FormatRisk(a.RiskLevel.String()),
	)
}

func (m dashboardModel) renderFooter() string {
	status := ui.StyleMuted.Render(fmt.Sprintf("%d of %d shown", len(m.filtered), m.query.Fleet().Len()))
	if m.message != "" {
		status = ui.StyleWarning.Render(m.message)
	}

	footerStyle := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		Padding(0, 1)

	return footerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keys)))
}

func (m dashboardModel) viewHelp() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Padding(1, 2)

	s.WriteString(titleStyle.Render("gridrisk Dashboard - Keyboard Shortcuts"))
	s.WriteString("\n\n")

	full := m.help
	full.ShowAll = true
	s.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(full.View(m.keys)))
	s.WriteString("\n\n")
	s.WriteString(ui.StyleMuted.Render("  1-5 jump to a tab, PgUp/PgDn scroll the detail pane"))
	s.WriteString("\n")
	s.WriteString(ui.StyleMuted.Render("  Press ESC or ? to return to dashboard"))
	s.WriteString("\n")

	return s.String()
}
