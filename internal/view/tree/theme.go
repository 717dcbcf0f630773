package tree

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/propbrowser/internal/style"
)

// Theme holds the styles the tree draws with.
type Theme struct {
	Base      style.Style // even rows
	Alternate style.Style // odd rows when alternating colours are on
	Header    style.Style
	Group     style.Style // marked rows of properties without value
	Branch    style.Color // expand/collapse glyphs
	Splitter  style.Color
}

// DefaultTheme returns the dark theme used by the demo.
func DefaultTheme() Theme {
	base := style.RGB(0x1c, 0x1c, 0x1c)
	text := style.RGB(0xd0, 0xd0, 0xd0)
	return Theme{
		Base:      style.Style{Foreground: text, Background: base},
		Alternate: style.Style{Foreground: text, Background: base.Lighten(0.05)},
		Header: style.Style{
			Foreground: style.White,
			Background: base.Blend(style.Blue, 0.3),
			Attributes: style.AttrBold,
		},
		Group: style.Style{
			Foreground: style.White,
			Background: base.Blend(style.Gray, 0.4),
			Attributes: style.AttrBold,
		},
		Branch:   style.Gray,
		Splitter: style.Gray.Darken(0.2),
	}
}

// convertStyle converts a style.Style to tcell.Style.
func convertStyle(s style.Style) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(convertColor(s.Foreground)).
		Background(convertColor(s.Background))

	if s.Attributes.Has(style.AttrBold) {
		st = st.Bold(true)
	}
	if s.Attributes.Has(style.AttrDim) {
		st = st.Dim(true)
	}
	if s.Attributes.Has(style.AttrItalic) {
		st = st.Italic(true)
	}
	if s.Attributes.Has(style.AttrUnderline) {
		st = st.Underline(true)
	}
	if s.Attributes.Has(style.AttrReverse) {
		st = st.Reverse(true)
	}
	return st
}

// convertColor maps the invalid colour to the terminal default.
func convertColor(c style.Color) tcell.Color {
	if !c.Valid {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
