package invoicepdf

import "strings"

// Theme selects fonts and decoration. It never changes the layout.
type Theme string

const (
	ThemeBasic  Theme = "basic"
	ThemeModern Theme = "modern"
	ThemeFormal Theme = "formal"
)

type rgb struct{ r, g, b int }

var (
	black      = rgb{0, 0, 0}
	white      = rgb{255, 255, 255}
	grey       = rgb{128, 128, 128}
	lightGrey  = rgb{211, 211, 211}
	whiteSmoke = rgb{245, 245, 245}
	slate      = rgb{0x2C, 0x3E, 0x50}
)

// Style is the visual record a theme resolves to.
type Style struct {
	Theme        Theme
	HeaderFamily string
	BodyFamily   string
	Accent       rgb
	Grid         rgb

	// Column header row of the line-item table.
	HeaderRowFill *rgb
	HeaderRowText rgb

	BoldSummary    bool
	GrandTotalFill *rgb
	BorderedHeader bool
	TitleRule      bool
}

var styles = map[Theme]Style{
	ThemeBasic: {
		Theme:         ThemeBasic,
		HeaderFamily:  "Helvetica",
		BodyFamily:    "Helvetica",
		Accent:        black,
		Grid:          black,
		HeaderRowFill: &lightGrey,
		HeaderRowText: black,
		TitleRule:     true,
	},
	ThemeModern: {
		Theme:          ThemeModern,
		HeaderFamily:   "Helvetica",
		BodyFamily:     "Helvetica",
		Accent:         slate,
		Grid:           lightGrey,
		HeaderRowFill:  &slate,
		HeaderRowText:  white,
		BoldSummary:    true,
		GrandTotalFill: &whiteSmoke,
	},
	ThemeFormal: {
		Theme:          ThemeFormal,
		HeaderFamily:   "Times",
		BodyFamily:     "Times",
		Accent:         black,
		Grid:           black,
		HeaderRowText:  black,
		BorderedHeader: true,
		TitleRule:      true,
	},
}

// ParseTheme maps a stored theme name to a Theme. "simple" is an alias of
// basic; anything unknown falls back to basic.
func ParseTheme(s string) Theme {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "modern":
		return ThemeModern
	case "formal":
		return ThemeFormal
	default:
		return ThemeBasic
	}
}

// StyleFor returns the style record of a theme.
func StyleFor(t Theme) Style {
	if s, ok := styles[t]; ok {
		return s
	}
	return styles[ThemeBasic]
}
