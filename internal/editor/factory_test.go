package editor

import (
	"testing"

	"github.com/dshills/propbrowser/internal/property"
)

type stubManager struct {
	*property.BaseManager
}

func newStubManager() *stubManager {
	m := &stubManager{}
	m.BaseManager = property.NewBaseManager(m)
	return m
}

func (m *stubManager) InitializeProperty(*property.Property)   {}
func (m *stubManager) UninitializeProperty(*property.Property) {}

type stubEditor struct {
	factory *stubFactory
	prop    *property.Property
	parent  any
	closed  int
}

func (e *stubEditor) Property() *property.Property { return e.prop }

func (e *stubEditor) Close() {
	e.closed++
	e.factory.Release(e)
}

type stubFactory struct {
	*BaseFactory
	connected    []property.Manager
	disconnected []property.Manager
}

func newStubFactory() *stubFactory {
	f := &stubFactory{}
	f.BaseFactory = NewBaseFactory(f)
	return f
}

func (f *stubFactory) CreateEditor(_ property.Manager, p *property.Property, parent any) Editor {
	return &stubEditor{factory: f, prop: p, parent: parent}
}

func (f *stubFactory) ConnectPropertyManager(m property.Manager) {
	f.connected = append(f.connected, m)
}

func (f *stubFactory) DisconnectPropertyManager(m property.Manager) {
	f.disconnected = append(f.disconnected, m)
}

func TestFindEditor_UnservedManager(t *testing.T) {
	m := newStubManager()
	f := newStubFactory()
	p := m.AddProperty("p")

	if e := f.FindEditor(p, nil); e != nil {
		t.Errorf("FindEditor() = %v, want nil for unserved manager", e)
	}
	if e := f.FindEditor(nil, nil); e != nil {
		t.Errorf("FindEditor(nil) = %v, want nil", e)
	}
}

func TestFindEditor(t *testing.T) {
	m := newStubManager()
	f := newStubFactory()
	f.AddPropertyManager(m)
	p := m.AddProperty("p")

	e := f.FindEditor(p, "host")
	if e == nil {
		t.Fatal("FindEditor() = nil")
	}
	if e.Property() != p {
		t.Errorf("Property() = %v, want %v", e.Property(), p)
	}
	if got := e.(*stubEditor).parent; got != "host" {
		t.Errorf("parent = %v, want host", got)
	}
	if f.EditorCount() != 1 {
		t.Errorf("EditorCount() = %d, want 1", f.EditorCount())
	}

	e.Close()
	if f.EditorCount() != 0 {
		t.Errorf("EditorCount() after Close = %d, want 0", f.EditorCount())
	}
}

func TestAddPropertyManager_Idempotent(t *testing.T) {
	m := newStubManager()
	f := newStubFactory()

	f.AddPropertyManager(m)
	f.AddPropertyManager(m)
	f.AddPropertyManager(nil)

	if len(f.connected) != 1 {
		t.Errorf("ConnectPropertyManager called %d times, want 1", len(f.connected))
	}
	if got := f.PropertyManagers(); len(got) != 1 {
		t.Errorf("PropertyManagers() len = %d, want 1", len(got))
	}
	if m.Listeners() != 1 {
		t.Errorf("Listeners() = %d, want 1", m.Listeners())
	}
}

func TestRemovePropertyManager_ClosesEditors(t *testing.T) {
	m := newStubManager()
	other := newStubManager()
	f := newStubFactory()
	f.AddPropertyManager(m)
	f.AddPropertyManager(other)

	p := m.AddProperty("p")
	q := other.AddProperty("q")
	e1 := f.FindEditor(p, nil).(*stubEditor)
	e2 := f.FindEditor(q, nil).(*stubEditor)

	f.RemovePropertyManager(m)
	f.RemovePropertyManager(m)

	if e1.closed != 1 {
		t.Errorf("editor for removed manager closed %d times, want 1", e1.closed)
	}
	if e2.closed != 0 {
		t.Errorf("editor for other manager closed %d times, want 0", e2.closed)
	}
	if len(f.disconnected) != 1 || f.disconnected[0] != property.Manager(m) {
		t.Errorf("disconnected = %v, want [m]", f.disconnected)
	}
	if m.Listeners() != 0 {
		t.Errorf("Listeners() = %d, want 0", m.Listeners())
	}
	if e := f.FindEditor(p, nil); e != nil {
		t.Errorf("FindEditor() after removal = %v, want nil", e)
	}
}

func TestPropertyDestroyed_ClosesEditors(t *testing.T) {
	m := newStubManager()
	f := newStubFactory()
	f.AddPropertyManager(m)
	p := m.AddProperty("p")

	a := f.FindEditor(p, nil).(*stubEditor)
	b := f.FindEditor(p, nil).(*stubEditor)
	p.Destroy()

	if a.closed != 1 || b.closed != 1 {
		t.Errorf("closed = %d, %d, want 1, 1", a.closed, b.closed)
	}
	if len(f.Editors(p)) != 0 {
		t.Errorf("Editors() = %v, want none", f.Editors(p))
	}
}

func TestManagerDestroyed(t *testing.T) {
	m := newStubManager()
	f := newStubFactory()
	f.AddPropertyManager(m)

	m.Destroy()

	if got := f.PropertyManagers(); len(got) != 0 {
		t.Errorf("PropertyManagers() = %v, want none", got)
	}
	if len(f.disconnected) != 0 {
		t.Errorf("DisconnectPropertyManager called for destroyed manager")
	}
}
