// Package theme maps the syntactic roles of rendered output to
// terminal colors. A theme is resolved once from configuration and
// background detection, then passed to the renderer as a plain value.
package theme

import (
	"os"
	"strconv"
	"strings"

	"github.com/gookit/color"
)

// Colors names the display color per syntactic role. Values are
// either a named color ("blue", "red") or a hex code ("#8B0000").
type Colors struct {
	Subject   string `toml:"subject"`
	Predicate string `toml:"predicate"`
	Object    string `toml:"object"`
	Literal   string `toml:"literal"`
	Prefix    string `toml:"prefix"`
	Base      string `toml:"base"`
	Graph     string `toml:"graph"`
}

// DarkDefaults suits dark terminal backgrounds.
func DarkDefaults() Colors {
	return Colors{
		Subject:   "blue",
		Predicate: "green",
		Object:    "white",
		Literal:   "red",
		Prefix:    "yellow",
		Base:      "yellow",
		Graph:     "yellow",
	}
}

// LightDefaults replaces the bright colors with darker shades that
// stay readable on light backgrounds.
func LightDefaults() Colors {
	return Colors{
		Subject:   "blue",
		Predicate: "#006400",
		Object:    "black",
		Literal:   "#8B0000",
		Prefix:    "#B8860B",
		Base:      "#B8860B",
		Graph:     "#B8860B",
	}
}

// Merge fills unset roles from the given defaults.
func (c Colors) Merge(defaults Colors) Colors {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Colors{
		Subject:   pick(c.Subject, defaults.Subject),
		Predicate: pick(c.Predicate, defaults.Predicate),
		Object:    pick(c.Object, defaults.Object),
		Literal:   pick(c.Literal, defaults.Literal),
		Prefix:    pick(c.Prefix, defaults.Prefix),
		Base:      pick(c.Base, defaults.Base),
		Graph:     pick(c.Graph, defaults.Graph),
	}
}

var namedColors = map[string]color.Color{
	"black":        color.FgBlack,
	"red":          color.FgRed,
	"green":        color.FgGreen,
	"yellow":       color.FgYellow,
	"blue":         color.FgBlue,
	"magenta":      color.FgMagenta,
	"cyan":         color.FgCyan,
	"white":        color.FgWhite,
	"gray":         color.FgGray,
	"lightred":     color.FgLightRed,
	"lightgreen":   color.FgLightGreen,
	"lightyellow":  color.FgLightYellow,
	"lightblue":    color.FgLightBlue,
	"lightmagenta": color.FgLightMagenta,
	"lightcyan":    color.FgLightCyan,
	"lightwhite":   color.FgLightWhite,
}

// Theme paints text per role. A disabled theme returns text unchanged,
// which is the mode used when writing to a file.
type Theme struct {
	colors  Colors
	enabled bool
}

func New(colors Colors, enabled bool) Theme {
	return Theme{colors: colors, enabled: enabled}
}

func Disabled() Theme {
	return Theme{}
}

func (t Theme) Enabled() bool { return t.enabled }

func (t Theme) paint(spec, text string) string {
	if !t.enabled || spec == "" {
		return text
	}
	if strings.HasPrefix(spec, "#") {
		return color.HEX(spec).Sprint(text)
	}
	if c, ok := namedColors[strings.ToLower(spec)]; ok {
		return c.Render(text)
	}
	return text
}

func (t Theme) Subject(s string) string   { return t.paint(t.colors.Subject, s) }
func (t Theme) Predicate(s string) string { return t.paint(t.colors.Predicate, s) }
func (t Theme) Object(s string) string    { return t.paint(t.colors.Object, s) }
func (t Theme) Literal(s string) string   { return t.paint(t.colors.Literal, s) }
func (t Theme) Prefix(s string) string    { return t.paint(t.colors.Prefix, s) }
func (t Theme) Base(s string) string      { return t.paint(t.colors.Base, s) }
func (t Theme) Graph(s string) string     { return t.paint(t.colors.Graph, s) }

// Bold emphasizes the 'a' type alias.
func (t Theme) Bold(s string) string {
	if !t.enabled {
		return s
	}
	return color.Bold.Render(s)
}

// IsDarkBackground inspects the COLORFGBG convention ("fg;bg", bg 0-6
// and 8 are dark). Terminals that don't set it are assumed dark.
func IsDarkBackground() bool {
	v := os.Getenv("COLORFGBG")
	if v == "" {
		return true
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return true
	}
	return bg <= 6 || bg == 8
}
