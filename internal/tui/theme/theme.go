// Package theme defines color themes for the ratio dashboard.
package theme

import (
	"github.com/theirongolddev/ratio/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Theme maps the dashboard's color roles to concrete colors.
type Theme struct {
	Name          string
	Background    lipgloss.Color
	Surface       lipgloss.Color // cards and panels
	SurfaceBright lipgloss.Color // selected rows
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color
	TextDim       lipgloss.Color
	TextMuted     lipgloss.Color
	TextPrimary   lipgloss.Color
	Accent        lipgloss.Color
	AccentBright  lipgloss.Color

	// Allocation buckets.
	Needs   lipgloss.Color
	Wants   lipgloss.Color
	Excess  lipgloss.Color
	Savings lipgloss.Color

	Good lipgloss.Color
	Warn lipgloss.Color
	Bad  lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:          "flexoki-dark",
	Background:    lipgloss.Color("#100F0F"),
	Surface:       lipgloss.Color("#1C1B1A"),
	SurfaceBright: lipgloss.Color("#343331"),
	Border:        lipgloss.Color("#403E3C"),
	BorderAccent:  lipgloss.Color("#3AA99F"),
	TextDim:       lipgloss.Color("#575653"),
	TextMuted:     lipgloss.Color("#878580"),
	TextPrimary:   lipgloss.Color("#FFFCF0"),
	Accent:        lipgloss.Color("#3AA99F"),
	AccentBright:  lipgloss.Color("#5BC8BE"),
	Needs:         lipgloss.Color("#4385BE"),
	Wants:         lipgloss.Color("#D0A215"),
	Excess:        lipgloss.Color("#DA702C"),
	Savings:       lipgloss.Color("#879A39"),
	Good:          lipgloss.Color("#A3B859"),
	Warn:          lipgloss.Color("#DA702C"),
	Bad:           lipgloss.Color("#D14D41"),
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:          "catppuccin-mocha",
	Background:    lipgloss.Color("#1E1E2E"),
	Surface:       lipgloss.Color("#313244"),
	SurfaceBright: lipgloss.Color("#585B70"),
	Border:        lipgloss.Color("#585B70"),
	BorderAccent:  lipgloss.Color("#89B4FA"),
	TextDim:       lipgloss.Color("#6C7086"),
	TextMuted:     lipgloss.Color("#A6ADC8"),
	TextPrimary:   lipgloss.Color("#CDD6F4"),
	Accent:        lipgloss.Color("#89B4FA"),
	AccentBright:  lipgloss.Color("#B4D0FB"),
	Needs:         lipgloss.Color("#89B4FA"),
	Wants:         lipgloss.Color("#F9E2AF"),
	Excess:        lipgloss.Color("#FAB387"),
	Savings:       lipgloss.Color("#A6E3A1"),
	Good:          lipgloss.Color("#A6E3A1"),
	Warn:          lipgloss.Color("#FAB387"),
	Bad:           lipgloss.Color("#F38BA8"),
}

// TokyoNight is a cool blue and purple theme.
var TokyoNight = Theme{
	Name:          "tokyo-night",
	Background:    lipgloss.Color("#1A1B26"),
	Surface:       lipgloss.Color("#24283B"),
	SurfaceBright: lipgloss.Color("#414868"),
	Border:        lipgloss.Color("#565F89"),
	BorderAccent:  lipgloss.Color("#7AA2F7"),
	TextDim:       lipgloss.Color("#565F89"),
	TextMuted:     lipgloss.Color("#A9B1D6"),
	TextPrimary:   lipgloss.Color("#C0CAF5"),
	Accent:        lipgloss.Color("#7AA2F7"),
	AccentBright:  lipgloss.Color("#A9C1FF"),
	Needs:         lipgloss.Color("#7DCFFF"),
	Wants:         lipgloss.Color("#E0AF68"),
	Excess:        lipgloss.Color("#FF9E64"),
	Savings:       lipgloss.Color("#9ECE6A"),
	Good:          lipgloss.Color("#9ECE6A"),
	Warn:          lipgloss.Color("#FF9E64"),
	Bad:           lipgloss.Color("#F7768E"),
}

// Terminal sticks to the ANSI 16 palette.
var Terminal = Theme{
	Name:          "terminal",
	Background:    lipgloss.Color("0"),
	Surface:       lipgloss.Color("0"),
	SurfaceBright: lipgloss.Color("8"),
	Border:        lipgloss.Color("8"),
	BorderAccent:  lipgloss.Color("6"),
	TextDim:       lipgloss.Color("8"),
	TextMuted:     lipgloss.Color("7"),
	TextPrimary:   lipgloss.Color("15"),
	Accent:        lipgloss.Color("6"),
	AccentBright:  lipgloss.Color("14"),
	Needs:         lipgloss.Color("4"),
	Wants:         lipgloss.Color("3"),
	Excess:        lipgloss.Color("11"),
	Savings:       lipgloss.Color("2"),
	Good:          lipgloss.Color("10"),
	Warn:          lipgloss.Color("3"),
	Bad:           lipgloss.Color("1"),
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Next returns the theme after name in All, wrapping around.
func Next(name string) Theme {
	for i, t := range All {
		if t.Name == name {
			return All[(i+1)%len(All)]
		}
	}
	return All[0]
}

// Category returns the bucket color for c. Unknown categories are dimmed.
func (t Theme) Category(c model.Category) lipgloss.Color {
	switch c {
	case model.CategoryNeed:
		return t.Needs
	case model.CategoryWant:
		return t.Wants
	case model.CategoryExcess:
		return t.Excess
	case model.CategorySaving:
		return t.Savings
	}
	return t.TextDim
}
