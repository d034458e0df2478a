package theme

import (
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the explicit display configuration of a table renderer.
type Theme struct {
	NightMode bool
	// Accent colors expand toggles, the selected page,
	// and the sort indicator. None uses Plan.
	Accent Color
}

// TableClass returns the CSS classes of a table element.
func (t Theme) TableClass() string {
	if t.NightMode {
		return "datatable table table-bordered table-striped table-dark"
	}
	return "datatable table table-bordered table-striped"
}

// AccentColor returns the accent or Plan if none is set.
func (t Theme) AccentColor() Color {
	if !t.Accent.valid() {
		return Plan
	}
	return t.Accent
}

// AccentHex returns the hex value of the accent color,
// desaturated in night mode.
func (t Theme) AccentHex() string {
	hex := t.AccentColor().Hex()
	if t.NightMode {
		if reduced, err := ReducedSaturationHex(hex); err == nil {
			return reduced
		}
	}
	return hex
}

// ColumnHex returns a well distinguishable hex color for the column
// with the logical index col that stays the same for col.
// It is desaturated in night mode.
func (t Theme) ColumnHex(col int) string {
	rnd := rand.New(rand.NewPCG(uint64(col), 0))
	hex := RGBToHex(HSVToRGB(RandomHSVColor(col, rnd)))
	if t.NightMode {
		if reduced, err := ReducedSaturationHex(hex); err == nil {
			return reduced
		}
	}
	return hex
}

// ColumnStyle returns the style of the color swatch
// of the column with the logical index col.
func (t Theme) ColumnStyle(col int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.ColumnHex(col)))
}

// Styles are the lipgloss styles of the terminal table.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Cell     lipgloss.Style
	Detail   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

// Styles returns the terminal styles of the theme.
func (t Theme) Styles() Styles {
	accent := lipgloss.Color(t.AccentHex())
	text := lipgloss.AdaptiveColor{Light: "#212529", Dark: "#EEEEEE"}
	if t.NightMode {
		text = lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#EEEEEE"}
	}
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(text).Padding(0, 1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1).Underline(true),
		Cursor:   lipgloss.NewStyle().Foreground(text).Background(accent),
		Cell:     lipgloss.NewStyle().Foreground(text).Padding(0, 1),
		Detail:   lipgloss.NewStyle().Foreground(lipgloss.Color(Grey.Hex())).PaddingLeft(4),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color(Grey.Hex())),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Danger.Hex())),
	}
}
