package tree

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/propbrowser/internal/style"
)

// Glyphs used by the tree.
const (
	ExpandedGlyph  = '▾'
	CollapsedGlyph = '▸'
	SplitterGlyph  = '│'
	EllipsisGlyph  = '…'
)

// Header titles.
const (
	PropertyHeader = "Property"
	ValueHeader    = "Value"
)

// Surface is the part of tcell.Screen the tree draws on.
type Surface interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Draw paints the header and the visible rows onto s, scrolling so that the
// current row stays in view. It does not call Show.
func (v *View) Draw(s Surface) {
	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return
	}
	split := v.splitColumn(width)

	y := 0
	if v.cfg.HeaderVisible {
		v.drawHeader(s, width, split)
		y = 1
	}

	body := height - y
	rows := v.Rows()
	v.scroll(body)
	for i := range body {
		idx := v.top + i
		if idx >= len(rows) {
			fillRow(s, y+i, width, convertStyle(v.theme.Base))
			continue
		}
		v.drawRow(s, y+i, width, split, idx, rows[idx])
	}
}

// RowAt maps a screen line to a row index, or -1.
func (v *View) RowAt(y int) int {
	if v.cfg.HeaderVisible {
		y--
	}
	if y < 0 {
		return -1
	}
	idx := v.top + y
	if idx >= len(v.Rows()) {
		return -1
	}
	return idx
}

func (v *View) splitColumn(width int) int {
	return max(0, min(v.cfg.SplitterPosition, width-1))
}

func (v *View) scroll(body int) {
	if body <= 0 {
		return
	}
	cur := v.CurrentRow()
	switch {
	case cur < 0:
	case cur < v.top:
		v.top = cur
	case cur >= v.top+body:
		v.top = cur - body + 1
	}
	v.top = max(0, min(v.top, len(v.rows)-body))
}

func (v *View) drawHeader(s Surface, width, split int) {
	st := convertStyle(v.theme.Header)
	fillRow(s, 0, width, st)
	drawText(s, 1, 0, split, PropertyHeader, st)
	s.SetContent(split, 0, SplitterGlyph, nil, st)
	drawText(s, split+2, 0, width, ValueHeader, st)
}

func (v *View) drawRow(s Surface, y, width, split, idx int, row Row) {
	p := row.Item.Property()

	base := v.theme.Base
	if v.cfg.AlternatingRowColors && idx%2 == 1 {
		base = v.theme.Alternate
	}
	if c := v.CalculatedBackgroundColor(row.Item); c.Valid {
		base.Background = c
	}
	group := v.cfg.MarkPropertiesWithoutValue && !p.HasValue()
	if group {
		base = v.theme.Group
	}
	if !p.IsEnabled() {
		base = base.WithAttributes(style.AttrDim)
	}
	if row.Item == v.CurrentItem() {
		base = base.WithAttributes(style.AttrReverse)
	}
	fillRow(s, y, width, convertStyle(base))

	indent := max(0, v.cfg.Indentation)
	level := row.Depth
	if v.cfg.RootDecorated {
		level++
	}
	x := level * indent
	if row.HasChildren && level > 0 && indent > 0 {
		glyph := CollapsedGlyph
		if row.Expanded {
			glyph = ExpandedGlyph
		}
		s.SetContent(x-indent, y, glyph, nil, convertStyle(base.WithForeground(v.theme.Branch)))
	}

	nameStyle := base
	if c := p.NameColor(); c.Valid {
		nameStyle.Foreground = c
	}
	if p.IsModified() {
		nameStyle = nameStyle.WithAttributes(style.AttrBold)
	}
	if group {
		drawText(s, x, y, width, p.Name(), convertStyle(nameStyle))
		return
	}
	drawText(s, x, y, split, p.Name(), convertStyle(nameStyle))
	s.SetContent(split, y, SplitterGlyph, nil, convertStyle(base.WithForeground(v.theme.Splitter)))

	vx := split + 2
	if icon := p.ValueIcon(); !icon.IsNull() {
		iconStyle := base
		if icon.Color.Valid {
			iconStyle.Foreground = icon.Color
		}
		if vx < width {
			s.SetContent(vx, y, icon.Glyph, nil, convertStyle(iconStyle))
		}
		vx += 2
	}
	valueStyle := base
	if c := p.ValueColor(); c.Valid {
		valueStyle.Foreground = c
	}
	drawText(s, vx, y, width, p.DisplayText(), convertStyle(valueStyle))
}

func fillRow(s Surface, y, width int, st tcell.Style) {
	for x := range width {
		s.SetContent(x, y, ' ', nil, st)
	}
}

// drawText draws text from column x up to, not including, limit. Text that
// does not fit ends in an ellipsis. It returns the column after the text.
func drawText(s Surface, x, y, limit int, text string, st tcell.Style) int {
	if x >= limit {
		return x
	}
	truncate := uniseg.StringWidth(text) > limit-x
	end := limit
	if truncate {
		end--
	}

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		if x+w > end {
			break
		}
		runes := g.Runes()
		s.SetContent(x, y, runes[0], runes[1:], st)
		// Wide clusters own the following columns.
		x += w
	}
	if truncate && x < limit {
		s.SetContent(x, y, EllipsisGlyph, nil, st)
		x++
	}
	return x
}
