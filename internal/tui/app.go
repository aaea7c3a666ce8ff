// Package tui provides the interactive Bubble Tea budget dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/budgetboard/internal/config"
	"github.com/theirongolddev/budgetboard/internal/goals"
	"github.com/theirongolddev/budgetboard/internal/locale"
	"github.com/theirongolddev/budgetboard/internal/pipeline"
	"github.com/theirongolddev/budgetboard/internal/session"
	"github.com/theirongolddev/budgetboard/internal/tui/components"
	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

const (
	tabOverview = iota
	tabEntries
	tabFixed
	tabGoals
	tabPlan
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 160
	minContentHeight = 5

	loadTimeout  = 30 * time.Second
	flashTimeout = 4 * time.Second
)

// dataMsg carries everything the tabs render, computed off the UI goroutine.
type dataMsg struct {
	dash       session.Dashboard
	entries    session.EntriesPage
	goals      []goals.View
	plan       session.PlanPage
	categories []string
	took       time.Duration
	err        error
}

// writeMsg reports the outcome of a form submission or delete.
type writeMsg struct {
	text string
	err  error
}

type clearFlashMsg struct{ seq int }

// Options configures the dashboard.
type Options struct {
	Config    config.Config
	NeedSetup bool
	Logger    zerolog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	ctrl *session.Controller
	tr   *locale.Translator
	cfg  config.Config
	log  zerolog.Logger

	data    dataMsg
	loaded  bool
	loading bool

	width     int
	height    int
	activeTab int
	showHelp  bool

	// Selections that parameterize the load.
	period    pipeline.Period
	gran      pipeline.Granularity
	entryView pipeline.EntryView
	entryKey  string
	planMonth time.Time

	cursor   [5]int
	selected map[string]bool // plan items marked for payment

	// An open huh form captures all input until it completes or aborts.
	form     *huh.Form
	onSubmit func() tea.Cmd

	needSetup bool
	setupVals *setupValues

	flash    components.Flash
	flashSeq int
	spinner  spinner.Model
}

// NewApp returns the dashboard over ctrl.
func NewApp(ctrl *session.Controller, opts Options) App {
	theme.SetActive(opts.Config.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		ctrl:      ctrl,
		tr:        locale.New(opts.Config.General.Locale),
		cfg:       opts.Config,
		log:       opts.Logger,
		period:    pipeline.PeriodCurrentMonth,
		gran:      pipeline.Daily,
		entryView: pipeline.ViewMonth,
		selected:  make(map[string]bool),
		needSetup: opts.NeedSetup,
		loading:   true,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(tea.EnableMouseCellMotion, a.spinner.Tick, a.loadCmd())
}

// loadCmd recomputes every view from the controller's snapshot.
func (a App) loadCmd() tea.Cmd {
	ctrl := a.ctrl
	period, gran, view, key, month := a.period, a.gran, a.entryView, a.entryKey, a.planMonth
	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		var m dataMsg
		var errs []error
		collect := func(err error) {
			if err != nil {
				errs = append(errs, err)
			}
		}
		var err error
		m.dash, err = ctrl.Dashboard(ctx, period, gran)
		collect(err)
		m.entries, err = ctrl.Entries(ctx, view, key)
		collect(err)
		m.goals, err = ctrl.Goals(ctx)
		collect(err)
		m.plan, err = ctrl.Plan(ctx, month)
		collect(err)
		m.categories, err = ctrl.Categories(ctx)
		collect(err)

		if len(errs) > 0 {
			m.err = errs[0]
		}
		m.took = time.Since(start)
		return m
	}
}

func (a App) writeCmd(ok string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			return writeMsg{err: err}
		}
		return writeMsg{text: ok}
	}
}

func (a *App) setFlash(text string, isErr bool) tea.Cmd {
	a.flashSeq++
	a.flash = components.Flash{Text: text, Error: isErr}
	seq := a.flashSeq
	return tea.Tick(flashTimeout, func(time.Time) tea.Msg { return clearFlashMsg{seq: seq} })
}

// openForm shows f; submit runs once the form completes.
func (a *App) openForm(f *huh.Form, submit func() tea.Cmd) tea.Cmd {
	f = f.WithTheme(huh.ThemeCharm()).WithShowHelp(true)
	if a.width > 0 {
		f = f.WithWidth(min(a.width-4, 72))
	}
	a.form = f
	a.onSubmit = submit
	return f.Init()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width-4, 72))
		}
		return a, nil

	case dataMsg:
		a.data = msg
		a.loaded = true
		a.loading = false
		a.entryKey = msg.entries.Key
		a.planMonth = msg.plan.Month
		a.clampCursors()
		var cmd tea.Cmd
		if msg.err != nil {
			a.log.Warn().Err(msg.err).Msg("dashboard load failed")
			cmd = a.setFlash(msg.err.Error(), true)
		}
		if a.needSetup && a.form == nil {
			a.needSetup = false
			setup := a.openSetup()
			return a, tea.Batch(cmd, setup)
		}
		return a, cmd

	case writeMsg:
		var cmd tea.Cmd
		if msg.err != nil {
			cmd = a.setFlash(msg.err.Error(), true)
		} else {
			cmd = a.setFlash(msg.text, false)
		}
		a.loading = true
		return a, tea.Batch(cmd, a.loadCmd())

	case setupDoneMsg:
		return a.applySetup(msg)

	case clearFlashMsg:
		if msg.seq == a.flashSeq {
			a.flash = components.Flash{}
		}
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	if a.form != nil {
		return a.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := components.TabAt(a.tabLabels(), msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.form, a.onSubmit = nil, nil
		return a, nil
	}
	m, cmd := a.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		a.form = f
	}
	switch a.form.State {
	case huh.StateCompleted:
		submit := a.onSubmit
		a.form, a.onSubmit = nil, nil
		if submit != nil {
			return a, submit()
		}
		return a, nil
	case huh.StateAborted:
		a.form, a.onSubmit = nil, nil
		return a, nil
	}
	return a, cmd
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "?":
		a.showHelp = true
		return a, nil
	case "q":
		return a, tea.Quit
	case "r":
		a.ctrl.Invalidate()
		a.loading = true
		return a, tea.Batch(a.spinner.Tick, a.loadCmd())
	case "S":
		cmd := a.openSetup()
		return a, cmd
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "j", "down":
		a.moveCursor(1)
		return a, nil
	case "k", "up":
		a.moveCursor(-1)
		return a, nil
	}
	for i, t := range components.Tabs {
		if key == t.Key {
			a.activeTab = i
			return a, nil
		}
	}

	switch a.activeTab {
	case tabOverview:
		return a.updateOverviewKey(key)
	case tabEntries:
		return a.updateEntriesKey(key)
	case tabFixed:
		return a.updateFixedKey(key)
	case tabGoals:
		return a.updateGoalsKey(key)
	case tabPlan:
		return a.updatePlanKey(key)
	}
	return a, nil
}

func (a App) listLen(tab int) int {
	switch tab {
	case tabEntries:
		return len(a.data.entries.Rows)
	case tabFixed:
		return len(a.data.dash.Fixed)
	case tabGoals:
		return len(a.data.goals)
	case tabPlan:
		return len(a.data.plan.Expenses)
	}
	return 0
}

func (a *App) moveCursor(delta int) {
	n := a.listLen(a.activeTab)
	c := a.cursor[a.activeTab] + delta
	a.cursor[a.activeTab] = min(max(c, 0), max(n-1, 0))
}

func (a *App) clampCursors() {
	for tab := range a.cursor {
		a.cursor[tab] = min(a.cursor[tab], max(a.listLen(tab)-1, 0))
	}
	live := make(map[string]bool, len(a.selected))
	for _, it := range a.data.plan.Expenses {
		if a.selected[it.ID] && !it.IsPaid {
			live[it.ID] = true
		}
	}
	a.selected = live
}

func (a App) reload() (tea.Model, tea.Cmd) {
	a.loading = true
	return a, a.loadCmd()
}

func (a App) tabLabels() []string {
	labels := make([]string, len(components.Tabs))
	for i, t := range components.Tabs {
		labels[i] = components.TabLabel(a.tr.T(t.Name), t.Key)
	}
	return labels
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n  budgetboard needs at least %d columns.\n", a.width, minTerminalWidth)
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sub := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logo.Render("฿ budgetboard") + "\n\n" + a.spinner.View() + sub.Render(" "+a.tr.T("Loading budget..."))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card.Render(a.form.View()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

type binding struct{ key, desc string }

func (a App) viewHelp() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	title := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	section := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Info).Background(t.Surface).Bold(true)
	desc := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(title.Render("Keyboard Shortcuts") + "\n\n")
	groups := []struct {
		name     string
		bindings []binding
	}{
		{"Navigation", []binding{
			{"o e f g p", "Jump to tab"},
			{"← →", "Previous / next tab"},
			{"j k", "Move selection"},
			{"[ ]", "Older / newer period, group or month"},
			{"{ }", "Chart granularity (Overview)"},
			{"v", "Day / week / month (Entries)"},
		}},
		{"Actions", []binding{
			{"a", "Add"},
			{"d", "Delete selected"},
			{"s", "Save money to goal (Goals)"},
			{"i", "Expected income (Plan)"},
			{"space", "Mark for payment (Plan)"},
			{"enter", "Activate payments (Plan)"},
			{"r", "Reload from store"},
			{"S", "Setup"},
			{"q", "Quit"},
		}},
	}
	for _, g := range groups {
		b.WriteString(section.Render(g.name) + "\n")
		for _, bd := range g.bindings {
			fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", bd.key)), desc.Render(bd.desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) tabHints() string {
	switch a.activeTab {
	case tabOverview:
		return "[ ] period  { } granularity  a add  ? help  q quit"
	case tabEntries:
		return "v view  [ ] group  a add  d delete  ? help"
	case tabFixed:
		return "a add  d delete  ? help"
	case tabGoals:
		return "a add  s save  d delete  ? help"
	default:
		return "[ ] month  i income  a add  d delete  space mark  enter pay"
	}
}

func (a App) viewMain() string {
	t := theme.Active
	w, h, cw := a.width, a.height, a.contentWidth()

	header := components.RenderTabBar(a.tabLabels(), a.activeTab, w)

	right := fmt.Sprintf("%s · %s", a.data.dash.Today.Format("2006-01-02"), a.data.took.Round(time.Millisecond))
	if a.loading {
		right = a.spinner.View() + " " + right
	}
	status := components.RenderStatusBar(w, a.tabHints(), right, a.flash)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(status), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabEntries:
		content = a.renderEntriesTab(cw, contentH)
	case tabFixed:
		content = a.renderFixedTab(cw)
	case tabGoals:
		content = a.renderGoalsTab(cw)
	case tabPlan:
		content = a.renderPlanTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
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

// fillLinesWithBackground pads each line to w columns with the background.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// window returns the [start, end) slice of n rows that keeps cursor visible
// in height rows.
func window(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := min(max(cursor-height/2, 0), n-height)
	return start, start + height
}
