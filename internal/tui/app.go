// Package tui provides the interactive Bubble Tea dashboard for ratio.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/ratio/internal/config"
	"github.com/theirongolddev/ratio/internal/model"
	"github.com/theirongolddev/ratio/internal/pipeline"
	"github.com/theirongolddev/ratio/internal/store"
	"github.com/theirongolddev/ratio/internal/tui/components"
	"github.com/theirongolddev/ratio/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabOverview = iota
	tabTrends
	tabExpenses
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	storeTimeout = 5 * time.Second
	flashFor     = 3 * time.Second
)

// ledgerLoadedMsg carries the result of the initial or a manual load.
type ledgerLoadedMsg struct {
	ledger model.Ledger
	err    error
	took   time.Duration
}

// ledgerSavedMsg carries the ledger as persisted by an edit.
type ledgerSavedMsg struct {
	ledger model.Ledger
	err    error
	note   string
}

type flashExpiredMsg struct{ id int }

// App is the root Bubble Tea model.
type App struct {
	store      store.LedgerStore
	ledgerPath string
	cfg        config.Config
	now        func() time.Time

	// Data
	ledger   model.Ledger
	loaded   bool
	loadErr  error
	loadTime time.Duration
	saving   bool

	// View selection. period is nil for the all-time view; lastMonth is
	// restored when leaving it.
	period    *model.Period
	lastMonth model.Period

	// Derived for the current view
	res      model.CalculationResult
	days     []model.DayTotal
	months   []model.MonthTotal
	targets  []model.MonthTarget
	expenses []model.Expense

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	list      listState
	settings  settingsState

	form     *huh.Form
	formKind formKind
	formVals *formValues

	spinner  spinner.Model
	flash    string
	flashErr bool
	flashID  int
}

// NewApp creates the dashboard over s. period selects the initial view; nil
// starts in the all-time view.
func NewApp(s store.LedgerStore, ledgerPath string, cfg config.Config, period *model.Period) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	now := time.Now
	last := model.CurrentPeriod(now())
	if period != nil {
		last = *period
	}

	return App{
		store:      s,
		ledgerPath: ledgerPath,
		cfg:        cfg,
		now:        now,
		ledger:     model.DefaultLedger(),
		period:     period,
		lastMonth:  last,
		spinner:    sp,
		settings:   newSettingsState(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadLedgerCmd(a.store),
		a.spinner.Tick,
	)
}

func (a *App) recompute() {
	l := a.ledger
	a.res = pipeline.Calculate(l, a.period)
	a.days = pipeline.AggregateByDayAt(l.Expenses, a.cfg.General.DefaultWindowDays, a.now())
	a.months = pipeline.AggregateByMonth(l.Expenses)
	a.targets = pipeline.MonthlyTargets(l, a.months)
	a.expenses = pipeline.SortNewestFirst(pipeline.FilterByPeriod(l.Expenses, a.period))
	a.list.clamp(len(a.expenses))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width, 72))
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case ledgerLoadedMsg:
		a.loaded = true
		a.loadTime = msg.took
		a.loadErr = msg.err
		if msg.err == nil {
			a.ledger = msg.ledger
			a.recompute()
		}
		return a, nil

	case ledgerSavedMsg:
		a.saving = false
		if msg.err != nil {
			cmd := a.setFlash("Save failed: "+msg.err.Error(), true)
			return a, cmd
		}
		a.ledger = msg.ledger
		a.recompute()
		cmd := a.setFlash(msg.note, false)
		return a, cmd

	case flashExpiredMsg:
		if msg.id == a.flashID {
			a.flash = ""
			a.flashErr = false
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Cursor blinks and the like belong to whichever input is active.
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if a.form != nil {
		if key == "esc" {
			a.closeForm()
			return a, nil
		}
		return a.updateForm(msg)
	}
	if !a.loaded {
		return a, nil
	}
	if a.loadErr != nil {
		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			a.loaded = false
			return a, tea.Batch(loadLedgerCmd(a.store), a.spinner.Tick)
		}
		return a, nil
	}
	if a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case tabExpenses:
		if m, cmd, ok := a.updateExpensesKey(key); ok {
			return m, cmd
		}
	case tabSettings:
		if m, cmd, ok := a.updateSettingsKey(key); ok {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "[":
		a.shiftMonth(-1)
	case "]":
		a.shiftMonth(1)
	case "v":
		a.toggleAllTime()
	case "m":
		cmd := a.mutate("Mode changed", func(l model.Ledger) (model.Ledger, error) {
			return l.WithMode(l.Mode.Next()), nil
		})
		return a, cmd
	case "c":
		cmd := a.mutate("Currency changed", func(l model.Ledger) (model.Ledger, error) {
			return l.WithCurrency(l.Currency.Next()), nil
		})
		return a, cmd
	case "a":
		return a.openExpenseForm()
	case "i":
		return a.openIncomeForm()
	case "r":
		return a, loadLedgerCmd(a.store)
	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.loaded || a.showHelp || a.form != nil {
		return a, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabExpenses {
			a.list.move(-1, len(a.expenses))
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabExpenses {
			a.list.move(1, len(a.expenses))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// shiftMonth moves the month view by delta months. From the all-time view it
// returns to the last month shown.
func (a *App) shiftMonth(delta int) {
	p := a.lastMonth
	if a.period != nil {
		p = *a.period
		if delta < 0 {
			p = p.Prev()
		} else {
			p = p.Next()
		}
	}
	a.period = &p
	a.lastMonth = p
	a.list = listState{}
	a.recompute()
}

func (a *App) toggleAllTime() {
	if a.period == nil {
		p := a.lastMonth
		a.period = &p
	} else {
		a.lastMonth = *a.period
		a.period = nil
	}
	a.list = listState{}
	a.recompute()
}

// mutate applies fn to the stored ledger in the background.
func (a *App) mutate(note string, fn func(model.Ledger) (model.Ledger, error)) tea.Cmd {
	if a.saving {
		return nil
	}
	a.saving = true
	s := a.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		l, err := store.Update(ctx, s, fn)
		return ledgerSavedMsg{ledger: l, err: err, note: note}
	}
}

func (a *App) setFlash(text string, isErr bool) tea.Cmd {
	a.flashID++
	a.flash = text
	a.flashErr = isErr
	id := a.flashID
	return tea.Tick(flashFor, func(time.Time) tea.Msg { return flashExpiredMsg{id: id} })
}

func loadLedgerCmd(s store.LedgerStore) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		l, err := s.Load(ctx)
		return ledgerLoadedMsg{ledger: l, err: err, took: time.Since(start)}
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

func (a App) viewLabel() string {
	if a.period == nil {
		return "All time"
	}
	return a.period.Label()
}

// View implements tea.Model.
func (a App) View() string {
	switch {
	case a.width == 0:
		return ""
	case a.width < minTerminalWidth:
		return a.viewTooNarrow()
	case !a.loaded:
		return a.viewLoading()
	case a.loadErr != nil:
		return a.viewLoadError()
	case a.form != nil:
		return a.viewForm()
	case a.showHelp:
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(5, a.height)
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  ratio needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) centered(body string) string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoading() string {
	t := theme.Active
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	return a.centered(logo.Render("◈ ratio") + muted.Render(" · budget ratios") + "\n\n" +
		a.spinner.View() + muted.Render(" Loading "+a.ledgerPath))
}

func (a App) viewLoadError() string {
	t := theme.Active
	bad := lipgloss.NewStyle().Foreground(t.Bad).Background(t.Surface).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	return a.centered(bad.Render("Could not load "+a.ledgerPath) + "\n\n" +
		muted.Render(a.loadErr.Error()) + "\n\n" +
		muted.Render("[r] retry  [q] quit"))
}

func (a App) viewHelp() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	section := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	desc := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	groups := []struct {
		name     string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"o t e x", "Jump to tab"},
			{"← →", "Previous / next tab"},
			{"[ ]", "Previous / next month"},
			{"v", "Toggle all-time view"},
			{"j k", "Move in lists"},
		}},
		{"Ledger", [][2]string{
			{"a", "Add expense"},
			{"i", "Set income for this view"},
			{"d", "Delete selected expense"},
			{"m", "Cycle budget mode"},
			{"c", "Cycle currency"},
			{"r", "Reload from disk"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(title.Render("◈ Keyboard Shortcuts"))
	for _, g := range groups {
		b.WriteString("\n\n" + section.Render(g.name))
		for _, kb := range g.bindings {
			b.WriteString("\n  " + keyStyle.Render(fmt.Sprintf("%-8s", kb[0])) + desc.Render("  "+kb[1]))
		}
	}
	return a.centered(b.String())
}

func (a App) viewMain() string {
	t := theme.Active
	w, h, cw := a.width, a.height, a.contentWidth()

	pill := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	filter := pill.Render(" ") + pillAccent.Render(a.viewLabel()) +
		pill.Render(" │ ") + pillAccent.Render(string(a.ledger.Mode)) +
		pill.Render(" │ ") + pillAccent.Render(string(a.ledger.Currency)) +
		pill.Render("   [ ] month  v all-time")
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(filter)

	info := fmt.Sprintf("%d expenses · %.0fms", len(a.ledger.Expenses), float64(a.loadTime.Microseconds())/1000)
	if a.saving {
		info = "saving…"
	}
	statusBar := components.RenderStatusBar(w, a.flash, a.flashErr, info)

	contentH := max(minContentHeight, h-lipgloss.Height(header)-lipgloss.Height(statusBar))

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabTrends:
		content = a.renderTrendsTab(cw)
	case tabExpenses:
		content = a.renderExpensesTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	out := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, out,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// tabAtX returns the tab under column x of the tab bar, or -1.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tw := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tw {
			return i
		}
		pos += tw + 1 // separator
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

// chartDateLabels labels a YYYY-MM-DD series: the month name at the start
// and at month boundaries, the day number elsewhere.
func chartDateLabels(days []model.DayTotal) []string {
	labels := make([]string, len(days))
	prev := time.Month(0)
	for i, d := range days {
		dt, err := time.Parse(model.DayLayout, d.Date)
		if err != nil {
			continue
		}
		if i == 0 || dt.Month() != prev {
			labels[i] = dt.Format("Jan")
		} else {
			labels[i] = fmt.Sprintf("%d", dt.Day())
		}
		prev = dt.Month()
	}
	return labels
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// padLeft right-aligns s in w display columns.
func padLeft(s string, w int) string {
	return strings.Repeat(" ", max(0, w-lipgloss.Width(s))) + s
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	n := strings.Count(s, "\n") + 1
	if n >= h {
		return s
	}
	return s + strings.Repeat("\n", h-n)
}

// fillLinesWithBackground pads every line to w so gaps between cards keep
// the background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
