package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/config"
	"github.com/theirongolddev/ratio/internal/model"
	"github.com/theirongolddev/ratio/internal/tui/components"
	"github.com/theirongolddev/ratio/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldMode = iota
	settingsFieldCurrency
	settingsFieldTheme
	settingsFieldView
	settingsFieldWindow
	settingsFieldCount
)

// settingsState tracks the settings tab. Only the window field is edited as
// text; the others cycle through their choices on enter.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saveErr error
}

func newSettingsState() settingsState {
	ti := textinput.New()
	ti.CharLimit = 3
	ti.Width = 6
	ti.Placeholder = "30"
	return settingsState{input: ti}
}

func (a App) updateSettingsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		a.settings.cursor = min(settingsFieldCount-1, a.settings.cursor+1)
	case "k", "up":
		a.settings.cursor = max(0, a.settings.cursor-1)
	case "enter", " ":
		m, cmd := a.settingsActivate()
		return m, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

// settingsActivate cycles the selected field. Mode and currency live in the
// ledger; theme, view and window live in the config file.
func (a App) settingsActivate() (tea.Model, tea.Cmd) {
	a.settings.saveErr = nil

	switch a.settings.cursor {
	case settingsFieldMode:
		cmd := a.mutate("Mode changed", func(l model.Ledger) (model.Ledger, error) {
			return l.WithMode(l.Mode.Next()), nil
		})
		return a, cmd
	case settingsFieldCurrency:
		cmd := a.mutate("Currency changed", func(l model.Ledger) (model.Ledger, error) {
			return l.WithCurrency(l.Currency.Next()), nil
		})
		return a, cmd
	case settingsFieldTheme:
		next := theme.Next(a.cfg.Appearance.Theme)
		a.cfg.Appearance.Theme = next.Name
		theme.SetActive(next.Name)
		a.spinner.Style = a.spinner.Style.Foreground(next.Accent).Background(next.Surface)
	case settingsFieldView:
		if a.cfg.General.DefaultView == config.ViewAll {
			a.cfg.General.DefaultView = config.ViewMonth
		} else {
			a.cfg.General.DefaultView = config.ViewAll
		}
	case settingsFieldWindow:
		a.settings.editing = true
		a.settings.input.SetValue(strconv.Itoa(a.cfg.General.DefaultWindowDays))
		a.settings.input.CursorEnd()
		cmd := a.settings.input.Focus()
		return a, cmd
	}

	cmd := a.saveConfig("Settings saved")
	return a, cmd
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		n, err := strconv.Atoi(strings.TrimSpace(a.settings.input.Value()))
		if err != nil || n < 1 || n > 366 {
			a.settings.saveErr = errors.New("window must be between 1 and 366 days")
			return a, nil
		}
		a.settings.editing = false
		a.settings.input.Blur()
		a.cfg.General.DefaultWindowDays = n
		a.recompute()
		cmd := a.saveConfig(fmt.Sprintf("Daily window set to %d days", n))
		return a, cmd
	case "esc":
		a.settings.editing = false
		a.settings.saveErr = nil
		a.settings.input.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) saveConfig(note string) tea.Cmd {
	if err := config.Save(a.cfg); err != nil {
		a.settings.saveErr = err
		return a.setFlash("Config not saved: "+err.Error(), true)
	}
	return a.setFlash(note, false)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selLabel := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	selValue := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	marker := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	warn := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface)

	l := a.ledger
	fields := []struct{ name, value string }{
		{"Budget mode", fmt.Sprintf("%s (%s)", l.Mode, cli.FormatRatio(l.Mode.Ratios()))},
		{"Currency", fmt.Sprintf("%s %s", l.Currency, l.Currency.Symbol())},
		{"Theme", a.cfg.Appearance.Theme},
		{"Default view", a.cfg.General.DefaultView},
		{"Daily window", fmt.Sprintf("%d days", a.cfg.General.DefaultWindowDays)},
	}

	inner := components.CardInnerWidth(cw)
	var form strings.Builder
	for i, f := range fields {
		name := fmt.Sprintf("%-16s ", f.name+":")
		switch {
		case i == a.settings.cursor && a.settings.editing:
			form.WriteString(marker.Render("▸ ") + selLabel.Render(name) + a.settings.input.View())
		case i == a.settings.cursor:
			line := marker.Render("▸ ") + selLabel.Render(name) + selValue.Render(f.value)
			fill := lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", max(0, inner-lipgloss.Width(line))))
			form.WriteString(line + fill)
		default:
			form.WriteString(label.Render("  "+name) + value.Render(f.value))
		}
		form.WriteString("\n")
	}
	if a.settings.saveErr != nil {
		form.WriteString("\n" + warn.Render(a.settings.saveErr.Error()) + "\n")
	}
	form.WriteString("\n" + label.Render("[j/k] navigate  [Enter] change  [Esc] cancel"))

	var info strings.Builder
	info.WriteString(label.Render("Ledger:          ") + value.Render(a.ledgerPath) + "\n")
	info.WriteString(label.Render("Default income:  ") + value.Render(cli.FormatMoney(l.Income.InexactFloat64(), l.Currency)) + "\n")
	info.WriteString(label.Render("Month overrides: ") + value.Render(strconv.Itoa(len(l.MonthlyIncomes))) + "\n")
	info.WriteString(label.Render("Expenses:        ") + value.Render(strconv.Itoa(len(l.Expenses))) + "\n")
	info.WriteString(label.Render("Config file:     ") + value.Render(config.ConfigPath()))

	return components.ContentCard("Settings", form.String(), cw) + "\n" +
		components.ContentCard("Ledger", info.String(), cw)
}
