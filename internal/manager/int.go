package manager

import (
	"math"
	"strconv"

	"github.com/dshills/propbrowser/internal/property"
)

// IntRange is an inclusive range of integer values.
type IntRange struct {
	Min, Max int
}

type intData struct {
	val      int
	min      int
	max      int
	step     int
	readOnly bool
}

// IntManager manages integer properties with a range, a single step and a
// read-only flag. Values are always kept within range.
type IntManager struct {
	*property.BaseManager

	values map[*property.Property]*intData

	valueChanged      signal[int]
	rangeChanged      signal[IntRange]
	singleStepChanged signal[int]
	readOnlyChanged   signal[bool]
}

// NewIntManager creates an int manager.
func NewIntManager() *IntManager {
	m := &IntManager{values: make(map[*property.Property]*intData)}
	m.BaseManager = property.NewBaseManager(m)
	return m
}

// InitializeProperty implements property.Initializer.
func (m *IntManager) InitializeProperty(p *property.Property) {
	m.values[p] = &intData{min: -math.MaxInt32, max: math.MaxInt32, step: 1}
}

// UninitializeProperty implements property.Initializer.
func (m *IntManager) UninitializeProperty(p *property.Property) {
	delete(m.values, p)
}

// ValueText returns the decimal value.
func (m *IntManager) ValueText(p *property.Property) string {
	d, ok := m.values[p]
	if !ok {
		return ""
	}
	return strconv.Itoa(d.val)
}

// Value returns p's value, or 0 for foreign properties.
func (m *IntManager) Value(p *property.Property) int {
	if d, ok := m.values[p]; ok {
		return d.val
	}
	return 0
}

// Minimum returns p's lower bound.
func (m *IntManager) Minimum(p *property.Property) int {
	if d, ok := m.values[p]; ok {
		return d.min
	}
	return 0
}

// Maximum returns p's upper bound.
func (m *IntManager) Maximum(p *property.Property) int {
	if d, ok := m.values[p]; ok {
		return d.max
	}
	return 0
}

// SingleStep returns the increment used by step-wise editors.
func (m *IntManager) SingleStep(p *property.Property) int {
	if d, ok := m.values[p]; ok {
		return d.step
	}
	return 0
}

// IsReadOnly reports whether editors may change p.
func (m *IntManager) IsReadOnly(p *property.Property) bool {
	if d, ok := m.values[p]; ok {
		return d.readOnly
	}
	return false
}

// SetValue sets p's value, clamped into its range.
func (m *IntManager) SetValue(p *property.Property, val int) {
	d, ok := m.values[p]
	if !ok {
		return
	}
	val = min(max(val, d.min), d.max)
	if d.val == val {
		return
	}
	d.val = val
	m.PropertyChanged(p)
	m.valueChanged.emit(p, val)
}

// SetMinimum sets the lower bound, raising the maximum and the value when
// they fall below it.
func (m *IntManager) SetMinimum(p *property.Property, lo int) {
	d, ok := m.values[p]
	if !ok || d.min == lo {
		return
	}
	m.setRange(p, d, lo, max(d.max, lo))
}

// SetMaximum sets the upper bound, lowering the minimum and the value when
// they exceed it.
func (m *IntManager) SetMaximum(p *property.Property, hi int) {
	d, ok := m.values[p]
	if !ok || d.max == hi {
		return
	}
	m.setRange(p, d, min(d.min, hi), hi)
}

// SetRange sets both bounds. Swapped bounds are reordered.
func (m *IntManager) SetRange(p *property.Property, lo, hi int) {
	d, ok := m.values[p]
	if !ok {
		return
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if d.min == lo && d.max == hi {
		return
	}
	m.setRange(p, d, lo, hi)
}

func (m *IntManager) setRange(p *property.Property, d *intData, lo, hi int) {
	old := d.val
	d.min, d.max = lo, hi
	d.val = min(max(d.val, lo), hi)

	m.rangeChanged.emit(p, IntRange{Min: lo, Max: hi})
	if d.val != old {
		m.PropertyChanged(p)
		m.valueChanged.emit(p, d.val)
	}
}

// SetSingleStep sets the step. Negative steps are treated as 0.
func (m *IntManager) SetSingleStep(p *property.Property, step int) {
	d, ok := m.values[p]
	if !ok {
		return
	}
	step = max(step, 0)
	if d.step == step {
		return
	}
	d.step = step
	m.singleStepChanged.emit(p, step)
}

// SetReadOnly sets the read-only flag.
func (m *IntManager) SetReadOnly(p *property.Property, readOnly bool) {
	d, ok := m.values[p]
	if !ok || d.readOnly == readOnly {
		return
	}
	d.readOnly = readOnly
	m.PropertyChanged(p)
	m.readOnlyChanged.emit(p, readOnly)
}

// OnValueChanged registers fn for value changes.
func (m *IntManager) OnValueChanged(fn func(p *property.Property, val int)) *Subscription {
	return m.valueChanged.connect(fn)
}

// OnRangeChanged registers fn for range changes.
func (m *IntManager) OnRangeChanged(fn func(p *property.Property, r IntRange)) *Subscription {
	return m.rangeChanged.connect(fn)
}

// OnSingleStepChanged registers fn for step changes.
func (m *IntManager) OnSingleStepChanged(fn func(p *property.Property, step int)) *Subscription {
	return m.singleStepChanged.connect(fn)
}

// OnReadOnlyChanged registers fn for read-only changes.
func (m *IntManager) OnReadOnlyChanged(fn func(p *property.Property, readOnly bool)) *Subscription {
	return m.readOnlyChanged.connect(fn)
}
