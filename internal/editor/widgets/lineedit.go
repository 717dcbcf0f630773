package widgets

import (
	"github.com/dshills/propbrowser/internal/editor"
	"github.com/dshills/propbrowser/internal/manager"
	"github.com/dshills/propbrowser/internal/property"
)

// LineEdit edits a string property.
type LineEdit struct {
	factory *LineEditFactory
	manager *manager.StringManager
	prop    *property.Property
	parent  any
	text    string
	closed  bool
}

// Property implements editor.Editor.
func (e *LineEdit) Property() *property.Property { return e.prop }

// Parent returns the host the editor was created for.
func (e *LineEdit) Parent() any { return e.parent }

// Text returns the text held by the editor.
func (e *LineEdit) Text() string { return e.text }

// DisplayText returns the text as the echo mode shows it while editing.
// Values of EchoPasswordOnEdit properties are shown in clear.
func (e *LineEdit) DisplayText() string {
	if e.manager.EchoMode(e.prop) == manager.EchoPasswordOnEdit {
		return e.text
	}
	return e.manager.DisplayText(e.prop)
}

// IsClosed reports whether Close was called.
func (e *LineEdit) IsClosed() bool { return e.closed }

// SetText writes s through the manager and reports whether it was
// accepted. Read-only properties, closed editors and values rejected by the
// property's pattern leave the value unchanged.
func (e *LineEdit) SetText(s string) bool {
	if e.closed || e.manager.IsReadOnly(e.prop) || !e.manager.Accepts(e.prop, s) {
		return false
	}
	e.manager.SetValue(e.prop, s)
	return e.manager.Value(e.prop) == s
}

// Close implements editor.Editor.
func (e *LineEdit) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.factory.Release(e)
}

// LineEditFactory creates LineEdit editors for StringManager properties.
type LineEditFactory struct {
	*editor.BaseFactory
	subs map[*manager.StringManager]*manager.Subscription
}

// NewLineEditFactory creates a line edit factory.
func NewLineEditFactory() *LineEditFactory {
	f := &LineEditFactory{subs: make(map[*manager.StringManager]*manager.Subscription)}
	f.BaseFactory = editor.NewBaseFactory(f)
	return f
}

// CreateEditor implements editor.Creator.
func (f *LineEditFactory) CreateEditor(m property.Manager, p *property.Property, parent any) editor.Editor {
	sm, ok := m.(*manager.StringManager)
	if !ok {
		return nil
	}
	return &LineEdit{factory: f, manager: sm, prop: p, parent: parent, text: sm.Value(p)}
}

// ConnectPropertyManager implements editor.Creator.
func (f *LineEditFactory) ConnectPropertyManager(m property.Manager) {
	sm, ok := m.(*manager.StringManager)
	if !ok {
		return
	}
	f.subs[sm] = sm.OnValueChanged(func(p *property.Property, v string) {
		for _, e := range f.Editors(p) {
			e.(*LineEdit).text = v
		}
	})
}

// DisconnectPropertyManager implements editor.Creator.
func (f *LineEditFactory) DisconnectPropertyManager(m property.Manager) {
	sm, ok := m.(*manager.StringManager)
	if !ok {
		return
	}
	f.subs[sm].Unsubscribe()
	delete(f.subs, sm)
}
