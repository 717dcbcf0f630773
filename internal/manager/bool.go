package manager

import (
	"github.com/dshills/propbrowser/internal/property"
	"github.com/dshills/propbrowser/internal/style"
)

// Check box glyphs used as bool value icons.
const (
	CheckedGlyph   = '☑'
	UncheckedGlyph = '☐'
)

type boolData struct {
	val         bool
	textVisible bool
}

// BoolManager manages boolean properties.
type BoolManager struct {
	*property.BaseManager

	values map[*property.Property]*boolData

	valueChanged       signal[bool]
	textVisibleChanged signal[bool]
}

// NewBoolManager creates a bool manager.
func NewBoolManager() *BoolManager {
	m := &BoolManager{values: make(map[*property.Property]*boolData)}
	m.BaseManager = property.NewBaseManager(m)
	return m
}

// InitializeProperty implements property.Initializer.
func (m *BoolManager) InitializeProperty(p *property.Property) {
	m.values[p] = &boolData{textVisible: true}
}

// UninitializeProperty implements property.Initializer.
func (m *BoolManager) UninitializeProperty(p *property.Property) {
	delete(m.values, p)
}

// ValueText returns "True" or "False", or "" when the text is hidden.
func (m *BoolManager) ValueText(p *property.Property) string {
	d, ok := m.values[p]
	if !ok || !d.textVisible {
		return ""
	}
	if d.val {
		return "True"
	}
	return "False"
}

// ValueIcon returns a check box glyph.
func (m *BoolManager) ValueIcon(p *property.Property) property.Icon {
	d, ok := m.values[p]
	if !ok {
		return property.Icon{}
	}
	if d.val {
		return property.Icon{Glyph: CheckedGlyph, Color: style.Green}
	}
	return property.Icon{Glyph: UncheckedGlyph, Color: style.Gray}
}

// Value returns p's value.
func (m *BoolManager) Value(p *property.Property) bool {
	if d, ok := m.values[p]; ok {
		return d.val
	}
	return false
}

// TextVisible reports whether ValueText shows the value.
func (m *BoolManager) TextVisible(p *property.Property) bool {
	if d, ok := m.values[p]; ok {
		return d.textVisible
	}
	return false
}

// SetValue sets p's value.
func (m *BoolManager) SetValue(p *property.Property, val bool) {
	d, ok := m.values[p]
	if !ok || d.val == val {
		return
	}
	d.val = val
	m.PropertyChanged(p)
	m.valueChanged.emit(p, val)
}

// SetTextVisible shows or hides the value text.
func (m *BoolManager) SetTextVisible(p *property.Property, visible bool) {
	d, ok := m.values[p]
	if !ok || d.textVisible == visible {
		return
	}
	d.textVisible = visible
	m.PropertyChanged(p)
	m.textVisibleChanged.emit(p, visible)
}

// OnValueChanged registers fn for value changes.
func (m *BoolManager) OnValueChanged(fn func(p *property.Property, val bool)) *Subscription {
	return m.valueChanged.connect(fn)
}

// OnTextVisibleChanged registers fn for text visibility changes.
func (m *BoolManager) OnTextVisibleChanged(fn func(p *property.Property, visible bool)) *Subscription {
	return m.textVisibleChanged.connect(fn)
}
