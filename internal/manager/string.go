package manager

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/propbrowser/internal/property"
)

// EchoMode controls how a string value is displayed.
type EchoMode int

const (
	// EchoNormal shows the value as is.
	EchoNormal EchoMode = iota
	// EchoNone shows nothing.
	EchoNone
	// EchoPassword masks every character.
	EchoPassword
	// EchoPasswordOnEdit masks the value unless it is being edited.
	EchoPasswordOnEdit
)

// String returns the mode name.
func (e EchoMode) String() string {
	switch e {
	case EchoNormal:
		return "normal"
	case EchoNone:
		return "none"
	case EchoPassword:
		return "password"
	case EchoPasswordOnEdit:
		return "password-on-edit"
	default:
		return "unknown"
	}
}

// MaskRune replaces each character of a masked value.
const MaskRune = '*'

type stringData struct {
	val      string
	source   string
	pattern  *regexp.Regexp
	echo     EchoMode
	readOnly bool
}

// StringManager manages string properties with an optional validation
// pattern, an echo mode and a read-only flag.
type StringManager struct {
	*property.BaseManager

	values map[*property.Property]*stringData

	valueChanged    signal[string]
	patternChanged  signal[string]
	echoModeChanged signal[EchoMode]
	readOnlyChanged signal[bool]
}

// NewStringManager creates a string manager.
func NewStringManager() *StringManager {
	m := &StringManager{values: make(map[*property.Property]*stringData)}
	m.BaseManager = property.NewBaseManager(m)
	return m
}

// InitializeProperty implements property.Initializer.
func (m *StringManager) InitializeProperty(p *property.Property) {
	m.values[p] = &stringData{}
}

// UninitializeProperty implements property.Initializer.
func (m *StringManager) UninitializeProperty(p *property.Property) {
	delete(m.values, p)
}

// ValueText returns the raw value.
func (m *StringManager) ValueText(p *property.Property) string {
	if d, ok := m.values[p]; ok {
		return d.val
	}
	return ""
}

// DisplayText returns the value as the echo mode shows it. Masking is per
// grapheme cluster.
func (m *StringManager) DisplayText(p *property.Property) string {
	d, ok := m.values[p]
	if !ok {
		return ""
	}
	switch d.echo {
	case EchoNone:
		return ""
	case EchoPassword, EchoPasswordOnEdit:
		return strings.Repeat(string(MaskRune), uniseg.GraphemeClusterCount(d.val))
	default:
		return d.val
	}
}

// Value returns p's value.
func (m *StringManager) Value(p *property.Property) string {
	return m.ValueText(p)
}

// Pattern returns the validation pattern, or "" when any value is accepted.
func (m *StringManager) Pattern(p *property.Property) string {
	if d, ok := m.values[p]; ok {
		return d.source
	}
	return ""
}

// EchoMode returns p's echo mode.
func (m *StringManager) EchoMode(p *property.Property) EchoMode {
	if d, ok := m.values[p]; ok {
		return d.echo
	}
	return EchoNormal
}

// IsReadOnly reports whether editors may change p.
func (m *StringManager) IsReadOnly(p *property.Property) bool {
	if d, ok := m.values[p]; ok {
		return d.readOnly
	}
	return false
}

// Accepts reports whether val satisfies p's pattern.
func (m *StringManager) Accepts(p *property.Property, val string) bool {
	d, ok := m.values[p]
	if !ok {
		return false
	}
	return d.pattern == nil || d.pattern.MatchString(val)
}

// SetValue sets p's value. Values the pattern rejects are ignored.
func (m *StringManager) SetValue(p *property.Property, val string) {
	d, ok := m.values[p]
	if !ok || d.val == val {
		return
	}
	if d.pattern != nil && !d.pattern.MatchString(val) {
		return
	}
	d.val = val
	m.PropertyChanged(p)
	m.valueChanged.emit(p, val)
}

// SetPattern sets the pattern values must match in full. An empty pattern
// accepts everything. The current value is left as is.
func (m *StringManager) SetPattern(p *property.Property, pattern string) error {
	d, ok := m.values[p]
	if !ok || d.source == pattern {
		return nil
	}
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		re, err = regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return fmt.Errorf("string pattern %q: %w", pattern, err)
		}
	}
	d.source, d.pattern = pattern, re
	m.patternChanged.emit(p, pattern)
	return nil
}

// SetEchoMode sets how the value is displayed.
func (m *StringManager) SetEchoMode(p *property.Property, mode EchoMode) {
	d, ok := m.values[p]
	if !ok || d.echo == mode {
		return
	}
	d.echo = mode
	m.PropertyChanged(p)
	m.echoModeChanged.emit(p, mode)
}

// SetReadOnly sets the read-only flag.
func (m *StringManager) SetReadOnly(p *property.Property, readOnly bool) {
	d, ok := m.values[p]
	if !ok || d.readOnly == readOnly {
		return
	}
	d.readOnly = readOnly
	m.PropertyChanged(p)
	m.readOnlyChanged.emit(p, readOnly)
}

// OnValueChanged registers fn for value changes.
func (m *StringManager) OnValueChanged(fn func(p *property.Property, val string)) *Subscription {
	return m.valueChanged.connect(fn)
}

// OnPatternChanged registers fn for pattern changes.
func (m *StringManager) OnPatternChanged(fn func(p *property.Property, pattern string)) *Subscription {
	return m.patternChanged.connect(fn)
}

// OnEchoModeChanged registers fn for echo mode changes.
func (m *StringManager) OnEchoModeChanged(fn func(p *property.Property, mode EchoMode)) *Subscription {
	return m.echoModeChanged.connect(fn)
}

// OnReadOnlyChanged registers fn for read-only changes.
func (m *StringManager) OnReadOnlyChanged(fn func(p *property.Property, readOnly bool)) *Subscription {
	return m.readOnlyChanged.connect(fn)
}
