package tui

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/budgetboard/internal/config"
	"github.com/theirongolddev/budgetboard/internal/locale"
	"github.com/theirongolddev/budgetboard/internal/store"
	"github.com/theirongolddev/budgetboard/internal/tui/theme"
)

// setupValues holds the answers of the setup wizard.
type setupValues struct {
	locale      string
	payday      string
	backend     string
	sqlitePath  string
	sheetID     string
	credentials string
	postgresURL string
	theme       string
}

func newSetupValues(cfg config.Config) *setupValues {
	return &setupValues{
		locale:      cfg.General.Locale,
		payday:      strconv.Itoa(cfg.General.Payday),
		backend:     cfg.Store.Backend,
		sqlitePath:  cfg.Store.SQLitePath,
		sheetID:     cfg.Sheets.SpreadsheetID,
		credentials: cfg.Sheets.CredentialsFile,
		postgresURL: cfg.Store.PostgresURL,
		theme:       cfg.Appearance.Theme,
	}
}

func (v *setupValues) apply(cfg config.Config) config.Config {
	cfg.General.Locale = v.locale
	if n, err := strconv.Atoi(strings.TrimSpace(v.payday)); err == nil {
		cfg.General.Payday = n
	}
	cfg.Store.Backend = v.backend
	cfg.Store.SQLitePath = strings.TrimSpace(v.sqlitePath)
	cfg.Store.PostgresURL = strings.TrimSpace(v.postgresURL)
	cfg.Sheets.SpreadsheetID = strings.TrimSpace(v.sheetID)
	cfg.Sheets.CredentialsFile = strings.TrimSpace(v.credentials)
	cfg.Appearance.Theme = v.theme
	return cfg
}

func validatePayday(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 31 {
		return errors.New("enter a day between 1 and 31")
	}
	return nil
}

// SetupForm builds the first-run wizard. The returned func yields cfg with
// the answers applied once the form has completed.
func SetupForm(cfg config.Config) (*huh.Form, func() config.Config) {
	v := newSetupValues(cfg)

	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themes = append(themes, huh.NewOption(th.Name, th.Name))
	}
	isBackend := func(name string) func() bool {
		return func() bool { return v.backend != name }
	}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Welcome to budgetboard").
				Description("A few questions and your budget is ready."),
			huh.NewSelect[string]().Title("Language").
				Options(huh.NewOption("English", locale.English), huh.NewOption("ไทย", locale.Thai)).
				Value(&v.locale),
			huh.NewInput().Title("Payday").Description("Day of the month your salary arrives").
				Value(&v.payday).Validate(validatePayday),
			huh.NewSelect[string]().Title("Theme").Options(themes...).Value(&v.theme),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Where should records live?").
				Options(
					huh.NewOption("SQLite file on this machine", store.BackendSQLite),
					huh.NewOption("Google Sheets", store.BackendSheets),
					huh.NewOption("PostgreSQL", store.BackendPostgres),
				).
				Value(&v.backend),
		),
		huh.NewGroup(
			huh.NewInput().Title("SQLite path").Description("Empty uses the default data directory").
				Value(&v.sqlitePath),
		).WithHideFunc(isBackend(store.BackendSQLite)),
		huh.NewGroup(
			huh.NewInput().Title("Spreadsheet ID").Value(&v.sheetID).Validate(required),
			huh.NewInput().Title("Service account credentials file").Value(&v.credentials),
		).WithHideFunc(isBackend(store.BackendSheets)),
		huh.NewGroup(
			huh.NewInput().Title("PostgreSQL URL").Value(&v.postgresURL).Validate(required),
		).WithHideFunc(isBackend(store.BackendPostgres)),
	)
	return f, func() config.Config { return v.apply(cfg) }
}

// setupDoneMsg reports the saved configuration.
type setupDoneMsg struct {
	cfg config.Config
	err error
}

func (a *App) openSetup() tea.Cmd {
	f, result := SetupForm(a.cfg)
	return a.openForm(f, func() tea.Cmd {
		cfg := result()
		return func() tea.Msg {
			return setupDoneMsg{cfg: cfg, err: config.Save(cfg)}
		}
	})
}

func (a App) applySetup(msg setupDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		cmd := a.setFlash(msg.err.Error(), true)
		return a, cmd
	}
	storeChanged := msg.cfg.Store != a.cfg.Store || msg.cfg.Sheets != a.cfg.Sheets
	a.cfg = msg.cfg
	a.tr = locale.New(msg.cfg.General.Locale)
	theme.SetActive(msg.cfg.Appearance.Theme)
	text := a.tr.T("Settings saved.")
	if storeChanged || msg.cfg.General.Payday != a.ctrl.Payday() {
		text += " Restart to apply storage and payday changes."
	}
	cmd := a.setFlash(text, false)
	return a, cmd
}
