package widgets

import (
	"github.com/dshills/propbrowser/internal/editor"
	"github.com/dshills/propbrowser/internal/manager"
	"github.com/dshills/propbrowser/internal/property"
)

// CheckBox edits a bool property.
type CheckBox struct {
	factory *CheckBoxFactory
	manager *manager.BoolManager
	prop    *property.Property
	parent  any
	checked bool
	closed  bool
}

// Property implements editor.Editor.
func (e *CheckBox) Property() *property.Property { return e.prop }

// Parent returns the host the editor was created for.
func (e *CheckBox) Parent() any { return e.parent }

// Checked returns the state shown by the editor.
func (e *CheckBox) Checked() bool { return e.checked }

// IsClosed reports whether Close was called.
func (e *CheckBox) IsClosed() bool { return e.closed }

// SetChecked writes v through the manager.
func (e *CheckBox) SetChecked(v bool) {
	if e.closed {
		return
	}
	e.manager.SetValue(e.prop, v)
}

// Toggle flips the value.
func (e *CheckBox) Toggle() {
	e.SetChecked(!e.checked)
}

// Close implements editor.Editor.
func (e *CheckBox) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.factory.Release(e)
}

// CheckBoxFactory creates CheckBox editors for BoolManager properties.
type CheckBoxFactory struct {
	*editor.BaseFactory
	subs map[*manager.BoolManager]*manager.Subscription
}

// NewCheckBoxFactory creates a check box factory.
func NewCheckBoxFactory() *CheckBoxFactory {
	f := &CheckBoxFactory{subs: make(map[*manager.BoolManager]*manager.Subscription)}
	f.BaseFactory = editor.NewBaseFactory(f)
	return f
}

// CreateEditor implements editor.Creator.
func (f *CheckBoxFactory) CreateEditor(m property.Manager, p *property.Property, parent any) editor.Editor {
	bm, ok := m.(*manager.BoolManager)
	if !ok {
		return nil
	}
	return &CheckBox{factory: f, manager: bm, prop: p, parent: parent, checked: bm.Value(p)}
}

// ConnectPropertyManager implements editor.Creator.
func (f *CheckBoxFactory) ConnectPropertyManager(m property.Manager) {
	bm, ok := m.(*manager.BoolManager)
	if !ok {
		return
	}
	f.subs[bm] = bm.OnValueChanged(func(p *property.Property, v bool) {
		for _, e := range f.Editors(p) {
			e.(*CheckBox).checked = v
		}
	})
}

// DisconnectPropertyManager implements editor.Creator.
func (f *CheckBoxFactory) DisconnectPropertyManager(m property.Manager) {
	bm, ok := m.(*manager.BoolManager)
	if !ok {
		return
	}
	f.subs[bm].Unsubscribe()
	delete(f.subs, bm)
}
