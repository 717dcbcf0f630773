package manager

import (
	"fmt"

	"github.com/dshills/propbrowser/internal/property"
	"github.com/dshills/propbrowser/internal/style"
)

// ColorSwatchGlyph is the value icon glyph of colour properties.
const ColorSwatchGlyph = '■'

// channel identifies one component of an RGBA colour.
type channel int

const (
	channelRed channel = iota
	channelGreen
	channelBlue
	channelAlpha
)

var channelNames = [...]string{"Red", "Green", "Blue", "Alpha"}

func (c channel) get(col style.Color) uint8 {
	switch c {
	case channelRed:
		return col.R
	case channelGreen:
		return col.G
	case channelBlue:
		return col.B
	default:
		return col.A
	}
}

func (c channel) set(col style.Color, v uint8) style.Color {
	switch c {
	case channelRed:
		col.R = v
	case channelGreen:
		col.G = v
	case channelBlue:
		col.B = v
	default:
		col.A = v
	}
	col.Valid = true
	return col
}

type channelRef struct {
	owner *property.Property
	ch    channel
}

// ColorManager manages RGBA colour properties. Every colour property gets
// four int sub-properties, one per channel, created by an internal
// IntManager. Editing a channel updates the colour and vice versa.
type ColorManager struct {
	*property.BaseManager

	ints     *IntManager
	values   map[*property.Property]style.Color
	channels map[*property.Property][4]*property.Property
	owners   map[*property.Property]channelRef
	watch    *property.ListenerFuncs

	valueChanged signal[style.Color]
}

// NewColorManager creates a colour manager with its channel manager.
func NewColorManager() *ColorManager {
	m := &ColorManager{
		ints:     NewIntManager(),
		values:   make(map[*property.Property]style.Color),
		channels: make(map[*property.Property][4]*property.Property),
		owners:   make(map[*property.Property]channelRef),
	}
	m.BaseManager = property.NewBaseManager(m)
	m.ints.OnValueChanged(m.channelChanged)
	m.watch = &property.ListenerFuncs{Destroyed: m.channelDestroyed}
	m.ints.Subscribe(m.watch)
	return m
}

// SubIntPropertyManager returns the manager owning the channel
// sub-properties. Bind an editor factory to it to edit channels.
func (m *ColorManager) SubIntPropertyManager() *IntManager {
	return m.ints
}

// InitializeProperty gives p an opaque black value and its channels.
func (m *ColorManager) InitializeProperty(p *property.Property) {
	val := style.RGB(0, 0, 0)
	m.values[p] = val

	var subs [4]*property.Property
	for i, name := range channelNames {
		ch := channel(i)
		sub := m.ints.AddProperty(name)
		m.ints.SetRange(sub, 0, 0xFF)
		m.ints.SetValue(sub, int(ch.get(val)))
		m.owners[sub] = channelRef{owner: p, ch: ch}
		subs[i] = sub
		p.AddSubProperty(sub)
	}
	m.channels[p] = subs
}

// UninitializeProperty destroys p's channel sub-properties.
func (m *ColorManager) UninitializeProperty(p *property.Property) {
	subs := m.channels[p]
	delete(m.channels, p)
	delete(m.values, p)
	for _, sub := range subs {
		if sub == nil {
			continue
		}
		delete(m.owners, sub)
		sub.Destroy()
	}
}

// Destroy destroys the colour properties and then the channel manager.
func (m *ColorManager) Destroy() {
	m.BaseManager.Destroy()
	m.ints.Unsubscribe(m.watch)
	m.ints.Destroy()
}

// ValueText formats the value as "[r, g, b] (a)".
func (m *ColorManager) ValueText(p *property.Property) string {
	c, ok := m.values[p]
	if !ok {
		return ""
	}
	return fmt.Sprintf("[%d, %d, %d] (%d)", c.R, c.G, c.B, c.A)
}

// ValueIcon returns a swatch in the colour itself.
func (m *ColorManager) ValueIcon(p *property.Property) property.Icon {
	c, ok := m.values[p]
	if !ok {
		return property.Icon{}
	}
	return property.Icon{Glyph: ColorSwatchGlyph, Color: c}
}

// Value returns p's colour, or style.Invalid for foreign properties.
func (m *ColorManager) Value(p *property.Property) style.Color {
	if c, ok := m.values[p]; ok {
		return c
	}
	return style.Invalid
}

// Channel returns p's sub-property for the named channel ("Red", "Green",
// "Blue" or "Alpha"), or nil.
func (m *ColorManager) Channel(p *property.Property, name string) *property.Property {
	subs, ok := m.channels[p]
	if !ok {
		return nil
	}
	for i, n := range channelNames {
		if n == name {
			return subs[i]
		}
	}
	return nil
}

// SetValue sets p's colour and updates its channels. Invalid colours are
// ignored.
func (m *ColorManager) SetValue(p *property.Property, val style.Color) {
	old, ok := m.values[p]
	if !ok || !val.Valid || old == val {
		return
	}
	m.values[p] = val

	subs := m.channels[p]
	for i, sub := range subs {
		if sub != nil {
			m.ints.SetValue(sub, int(channel(i).get(val)))
		}
	}

	m.PropertyChanged(p)
	m.valueChanged.emit(p, val)
}

// OnValueChanged registers fn for colour changes.
func (m *ColorManager) OnValueChanged(fn func(p *property.Property, val style.Color)) *Subscription {
	return m.valueChanged.connect(fn)
}

func (m *ColorManager) channelChanged(sub *property.Property, v int) {
	ref, ok := m.owners[sub]
	if !ok {
		return
	}
	c, ok := m.values[ref.owner]
	if !ok {
		return
	}
	m.SetValue(ref.owner, ref.ch.set(c, uint8(v)))
}

func (m *ColorManager) channelDestroyed(ev property.Destroyed) {
	ref, ok := m.owners[ev.Property]
	if !ok {
		return
	}
	delete(m.owners, ev.Property)
	subs := m.channels[ref.owner]
	subs[ref.ch] = nil
	m.channels[ref.owner] = subs
}
