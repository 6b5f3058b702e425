package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/ratio/internal/cli"
	"github.com/theirongolddev/ratio/internal/model"
	"github.com/theirongolddev/ratio/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type formKind int

const (
	formNone formKind = iota
	formAddExpense
	formIncome
	formDelete
)

// formValues backs the active huh form. It lives on the heap so the form's
// value pointers survive App being copied between updates.
type formValues struct {
	amount      string
	category    model.Category
	description string
	date        string
	confirm     bool

	period *model.Period
	target model.Expense
}

func validateAmount(s string) error {
	if _, err := model.ParseAmount(s); err != nil {
		return errors.New("enter a non-negative number like 42.50")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := model.ParseDate(s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func categoryOptions() []huh.Option[model.Category] {
	opts := make([]huh.Option[model.Category], len(model.Categories))
	for i, c := range model.Categories {
		opts[i] = huh.NewOption(string(c), c)
	}
	return opts
}

func newExpenseForm(v *formValues, c model.Currency) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount ("+c.Symbol()+")").
				Placeholder("0.00").
				Validate(validateAmount).
				Value(&v.amount),
			huh.NewSelect[model.Category]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&v.category),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				Value(&v.description),
			huh.NewInput().
				Title("Date").
				Validate(validateDate).
				Value(&v.date),
		).Title("Add expense"),
	).WithShowHelp(true)
}

func newIncomeForm(v *formValues, label string, c model.Currency) *huh.Form {
	desc := "Becomes this month's income and the default for months without their own."
	if v.period == nil {
		desc = "Sets the default income used by months without their own."
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Income for "+label+" ("+c.Symbol()+")").
				Description(desc).
				Validate(validateAmount).
				Value(&v.amount),
		),
	).WithShowHelp(true)
}

func newDeleteForm(v *formValues, c model.Currency) *huh.Form {
	e := v.target
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete this expense?").
				Description(fmt.Sprintf("%s  %s  %s  %s",
					cli.FormatDate(e.Date), e.Category,
					cli.FormatMoney(e.Amount.InexactFloat64(), c), e.Description)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&v.confirm),
		),
	)
}

func (a App) openExpenseForm() (tea.Model, tea.Cmd) {
	v := &formValues{
		category: model.CategoryNeed,
		date:     a.defaultExpenseDate(),
	}
	return a.openForm(formAddExpense, newExpenseForm(v, a.ledger.Currency), v)
}

func (a App) openIncomeForm() (tea.Model, tea.Cmd) {
	v := &formValues{period: a.period}
	return a.openForm(formIncome, newIncomeForm(v, a.viewLabel(), a.ledger.Currency), v)
}

func (a App) openDeleteForm(e model.Expense) (tea.Model, tea.Cmd) {
	v := &formValues{target: e}
	return a.openForm(formDelete, newDeleteForm(v, a.ledger.Currency), v)
}

// defaultExpenseDate is today, or the first of the viewed month when a past
// or future month is shown.
func (a App) defaultExpenseDate() string {
	now := a.now()
	if a.period == nil || a.period.Contains(now) {
		return now.Format(model.DayLayout)
	}
	return a.period.Key() + "-01"
}

func (a App) openForm(kind formKind, f *huh.Form, v *formValues) (tea.Model, tea.Cmd) {
	if a.saving {
		return a, nil
	}
	if a.width > 0 {
		f = f.WithWidth(min(a.width, 72))
	}
	a.form = f
	a.formKind = kind
	a.formVals = v
	return a, a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.formVals = nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind, v := a.formKind, a.formVals
		a.closeForm()
		return a.submitForm(kind, v)
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

// submitForm turns completed form values into a ledger edit.
func (a App) submitForm(kind formKind, v *formValues) (tea.Model, tea.Cmd) {
	cur := a.ledger.Currency

	switch kind {
	case formAddExpense:
		amount, err := model.ParseAmount(v.amount)
		if err != nil {
			cmd := a.setFlash(err.Error(), true)
			return a, cmd
		}
		date := a.now()
		if v.date != date.Format(model.DayLayout) {
			if date, err = model.ParseDate(v.date); err != nil {
				cmd := a.setFlash(err.Error(), true)
				return a, cmd
			}
		}
		e := model.NewExpense(amount, v.category, v.description, date)
		note := fmt.Sprintf("Added %s %s", cli.FormatMoney(e.Amount.InexactFloat64(), cur), e.Category)
		cmd := a.mutate(note, func(l model.Ledger) (model.Ledger, error) {
			return l.WithExpense(e), nil
		})
		return a, cmd

	case formIncome:
		amount, err := model.ParseAmount(v.amount)
		if err != nil {
			cmd := a.setFlash(err.Error(), true)
			return a, cmd
		}
		p := v.period
		label := "All time"
		if p != nil {
			label = p.Label()
		}
		note := fmt.Sprintf("Income for %s set to %s", label, cli.FormatMoney(amount.InexactFloat64(), cur))
		cmd := a.mutate(note, func(l model.Ledger) (model.Ledger, error) {
			return l.WithIncomeFor(amount, p), nil
		})
		return a, cmd

	case formDelete:
		if !v.confirm {
			return a, nil
		}
		id := v.target.ID
		cmd := a.mutate("Expense deleted", func(l model.Ledger) (model.Ledger, error) {
			next, ok := l.WithoutExpense(id)
			if !ok {
				return l, fmt.Errorf("expense %s: not found", cli.ShortID(id))
			}
			return next, nil
		})
		return a, cmd
	}
	return a, nil
}

func (a App) viewForm() string {
	t := theme.Active
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("esc to cancel")
	body := strings.TrimRight(a.form.View(), "\n") + "\n\n" + hint
	return a.centered(body)
}
