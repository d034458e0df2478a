// Package theme holds the dashboard color palette,
// color conversions, and the Theme passed to table renderers.
package theme

import (
	"fmt"
	"strings"
)

// Color is a named color of the dashboard palette.
type Color int

const (
	None Color = iota
	Plan
	Red
	Pink
	Purple
	DeepPurple
	Indigo
	Blue
	LightBlue
	Cyan
	Teal
	Green
	LightGreen
	Lime
	Yellow
	Amber
	Orange
	DeepOrange
	Brown
	Grey
	BlueGrey
	Black
	Success
	Warning
	Danger
)

var palette = [...]struct {
	name string
	hex  string
}{
	None:       {},
	Plan:       {"plan", "#468F17"},
	Red:        {"red", "#F44336"},
	Pink:       {"pink", "#E91E63"},
	Purple:     {"purple", "#9C27B0"},
	DeepPurple: {"deep-purple", "#673AB7"},
	Indigo:     {"indigo", "#3F61B5"},
	Blue:       {"blue", "#2196F3"},
	LightBlue:  {"light-blue", "#03A9F4"},
	Cyan:       {"cyan", "#00BCD4"},
	Teal:       {"teal", "#009688"},
	Green:      {"green", "#4CAF50"},
	LightGreen: {"light-green", "#8BC34A"},
	Lime:       {"lime", "#CDDC39"},
	Yellow:     {"yellow", "#FFE821"},
	Amber:      {"amber", "#FFC107"},
	Orange:     {"orange", "#FF9800"},
	DeepOrange: {"deep-orange", "#FF5722"},
	Brown:      {"brown", "#795548"},
	Grey:       {"grey", "#9E9E9E"},
	BlueGrey:   {"blue-grey", "#607D8B"},
	Black:      {"black", "#555555"},
	Success:    {"success", "#1CC88A"},
	Warning:    {"warning", "#F6C23E"},
	Danger:     {"danger", "#e74A3B"},
}

// Colors returns all palette colors except None.
func Colors() []Color {
	colors := make([]Color, 0, len(palette)-1)
	for c := Plan; int(c) < len(palette); c++ {
		colors = append(colors, c)
	}
	return colors
}

// ColorByName returns the Color with a name like "deep-purple".
func ColorByName(name string) (Color, error) {
	for _, c := range Colors() {
		if c.Name() == name {
			return c, nil
		}
	}
	return None, fmt.Errorf("unknown color %q", name)
}

func (c Color) valid() bool { return c > None && int(c) < len(palette) }

// Name returns the CSS name of the color or "" for None.
func (c Color) Name() string {
	if !c.valid() {
		return ""
	}
	return palette[c].name
}

// Hex returns the "#RRGGBB" value of the color or "" for None.
func (c Color) Hex() string {
	if !c.valid() {
		return ""
	}
	return palette[c].hex
}

func (c Color) String() string {
	if !c.valid() {
		return "none"
	}
	return c.Name()
}

// Class returns the text color CSS class like "col-green".
func (c Color) Class() string {
	if !c.valid() {
		return ""
	}
	return "col-" + c.Name()
}

// BgClass returns the background CSS class like "bg-green".
func (c Color) BgClass() string {
	if !c.valid() {
		return ""
	}
	return "bg-" + c.Name()
}

// UnmarshalText implements encoding.TextUnmarshaler using ColorByName.
func (c *Color) UnmarshalText(text []byte) error {
	color, err := ColorByName(string(text))
	if err != nil {
		return err
	}
	*c = color
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Name()), nil
}

// BgClassToColorClass converts "bg-red" to "col-red".
func BgClassToColorClass(bgClass string) string {
	return "col-" + strings.TrimPrefix(bgClass, "bg-")
}

// ColorClassToColorName converts "col-red" to "red".
func ColorClassToColorName(colorClass string) string {
	return strings.TrimPrefix(colorClass, "col-")
}

// ColorClassToBgClass converts "col-red" to "bg-red".
func ColorClassToBgClass(colorClass string) string {
	return "bg-" + ColorClassToColorName(colorClass)
}
