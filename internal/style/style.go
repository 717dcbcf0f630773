// Package style provides colour and text style values shared by properties
// and viewers.
package style

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint/dim text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Color is an RGBA colour. The zero value is the invalid colour, which
// viewers treat as "use the default".
type Color struct {
	R, G, B, A uint8
	Valid      bool
}

// Invalid is the invalid (unset) colour.
var Invalid = Color{}

// Common colors.
var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
	Red   = RGB(255, 0, 0)
	Green = RGB(0, 255, 0)
	Blue  = RGB(0, 0, 255)
	Gray  = RGB(128, 128, 128)
)

// RGB creates an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255, Valid: true}
}

// RGBA creates a colour with an explicit alpha channel.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a, Valid: true}
}

// FromHex parses "#rgb" or "#rrggbb" (the leading '#' is optional).
func FromHex(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Invalid, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// Hex returns the "#RRGGBB" form, or "" for the invalid colour.
func (c Color) Hex() string {
	if !c.Valid {
		return ""
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String returns a string representation of the color.
func (c Color) String() string {
	if !c.Valid {
		return "invalid"
	}
	if c.A == 255 {
		return c.Hex()
	}
	return fmt.Sprintf("%s/%d", c.Hex(), c.A)
}

// WithAlpha returns a copy of c with the alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(cf colorful.Color, alpha uint8) Color {
	r, g, b := cf.Clamped().RGB255()
	return RGBA(r, g, b, alpha)
}

// Lighten raises the HSL lightness by amount (0..1).
func (c Color) Lighten(amount float64) Color {
	if !c.Valid {
		return c
	}
	h, s, l := c.colorful().Hsl()
	return fromColorful(colorful.Hsl(h, s, min(1, l+amount)), c.A)
}

// Darken lowers the HSL lightness by amount (0..1).
func (c Color) Darken(amount float64) Color {
	if !c.Valid {
		return c
	}
	h, s, l := c.colorful().Hsl()
	return fromColorful(colorful.Hsl(h, s, max(0, l-amount)), c.A)
}

// Blend mixes c towards other by amount (0 keeps c, 1 yields other).
// Blending with an invalid colour returns the valid operand.
func (c Color) Blend(other Color, amount float64) Color {
	switch {
	case !c.Valid:
		return other
	case !other.Valid:
		return c
	}
	return fromColorful(c.colorful().BlendRgb(other.colorful(), amount), c.A)
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default style (terminal colours, no attributes).
func DefaultStyle() Style {
	return Style{}
}

// WithForeground returns a copy with the foreground replaced.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a copy with the background replaced.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// WithAttributes returns a copy with the given attributes added.
func (s Style) WithAttributes(attrs Attribute) Style {
	s.Attributes = s.Attributes.With(attrs)
	return s
}
