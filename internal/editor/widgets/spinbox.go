package widgets

import (
	"github.com/dshills/propbrowser/internal/editor"
	"github.com/dshills/propbrowser/internal/manager"
	"github.com/dshills/propbrowser/internal/property"
)

// SpinBox edits an int property step by step.
type SpinBox struct {
	factory *SpinBoxFactory
	manager *manager.IntManager
	prop    *property.Property
	parent  any
	value   int
	closed  bool
}

// Property implements editor.Editor.
func (e *SpinBox) Property() *property.Property { return e.prop }

// Parent returns the host the editor was created for.
func (e *SpinBox) Parent() any { return e.parent }

// Value returns the value shown by the editor.
func (e *SpinBox) Value() int { return e.value }

// IsClosed reports whether Close was called.
func (e *SpinBox) IsClosed() bool { return e.closed }

// SetValue writes v through the manager. Read-only properties and closed
// editors ignore it.
func (e *SpinBox) SetValue(v int) {
	if e.closed || e.manager.IsReadOnly(e.prop) {
		return
	}
	e.manager.SetValue(e.prop, v)
}

// StepUp adds one single step.
func (e *SpinBox) StepUp() {
	e.SetValue(e.value + e.manager.SingleStep(e.prop))
}

// StepDown subtracts one single step.
func (e *SpinBox) StepDown() {
	e.SetValue(e.value - e.manager.SingleStep(e.prop))
}

// Close implements editor.Editor.
func (e *SpinBox) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.factory.Release(e)
}

// SpinBoxFactory creates SpinBox editors for IntManager properties.
type SpinBoxFactory struct {
	*editor.BaseFactory
	subs map[*manager.IntManager]*manager.Subscription
}

// NewSpinBoxFactory creates a spin box factory.
func NewSpinBoxFactory() *SpinBoxFactory {
	f := &SpinBoxFactory{subs: make(map[*manager.IntManager]*manager.Subscription)}
	f.BaseFactory = editor.NewBaseFactory(f)
	return f
}

// CreateEditor implements editor.Creator.
func (f *SpinBoxFactory) CreateEditor(m property.Manager, p *property.Property, parent any) editor.Editor {
	im, ok := m.(*manager.IntManager)
	if !ok {
		return nil
	}
	return &SpinBox{factory: f, manager: im, prop: p, parent: parent, value: im.Value(p)}
}

// ConnectPropertyManager implements editor.Creator.
func (f *SpinBoxFactory) ConnectPropertyManager(m property.Manager) {
	im, ok := m.(*manager.IntManager)
	if !ok {
		return
	}
	f.subs[im] = im.OnValueChanged(func(p *property.Property, v int) {
		for _, e := range f.Editors(p) {
			e.(*SpinBox).value = v
		}
	})
}

// DisconnectPropertyManager implements editor.Creator.
func (f *SpinBoxFactory) DisconnectPropertyManager(m property.Manager) {
	im, ok := m.(*manager.IntManager)
	if !ok {
		return
	}
	f.subs[im].Unsubscribe()
	delete(f.subs, im)
}
