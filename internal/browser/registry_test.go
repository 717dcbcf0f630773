package browser

import (
	"testing"

	"github.com/dshills/propbrowser/internal/property"
)

func TestRegistry_FactoryExclusivity(t *testing.T) {
	m := newValueManager()
	p := m.AddProperty("p")
	r := NewRegistry(nil)
	v := New(nil, WithRegistry(r))
	f1, f2 := newFakeFactory(), newFakeFactory()

	v.SetFactoryForManager(m, f1)
	if len(f1.added) != 1 {
		t.Fatalf("f1 connected %d times, want 1", len(f1.added))
	}
	e1 := v.CreateEditor(p, nil)

	v.SetFactoryForManager(m, f2)

	if len(f1.removed) != 1 || f1.removed[0] != property.Manager(m) {
		t.Errorf("f1 removed = %v, want [m]", f1.removed)
	}
	if len(f2.added) != 1 {
		t.Errorf("f2 connected %d times, want 1", len(f2.added))
	}
	if got := len(f1.Editors(p)); got != 0 {
		t.Errorf("f1 still tracks %d editors", got)
	}
	if e1 == nil {
		t.Fatal("CreateEditor() with f1 = nil")
	}

	e := v.CreateEditor(p, nil)
	if e == nil || e.(*fakeEditor).factory != f2 {
		t.Errorf("CreateEditor() routed to %v, want f2", e)
	}
	if r.FactoryFor(v, m) != f2 {
		t.Errorf("FactoryFor() = %v, want f2", r.FactoryFor(v, m))
	}
}

func TestRegistry_SharedFactory(t *testing.T) {
	m := newValueManager()
	r := NewRegistry(nil)
	v1 := New(nil, WithRegistry(r))
	v2 := New(nil, WithRegistry(r))
	f := newFakeFactory()

	v1.SetFactoryForManager(m, f)
	v2.SetFactoryForManager(m, f)
	v2.SetFactoryForManager(m, f)

	if len(f.added) != 1 {
		t.Errorf("factory connected %d times, want 1", len(f.added))
	}
	if got := r.Viewers(m, f); len(got) != 2 {
		t.Errorf("Viewers() len = %d, want 2", len(got))
	}

	v1.UnsetFactoryForManager(m)
	if len(f.removed) != 0 {
		t.Error("factory released while another viewer still binds it")
	}

	v2.Close()
	if len(f.removed) != 1 {
		t.Errorf("factory released %d times, want 1", len(f.removed))
	}
	if got := r.Viewers(m, f); len(got) != 0 {
		t.Errorf("Viewers() after Close = %v, want none", got)
	}
}

func TestRegistry_RemoveViewer(t *testing.T) {
	m1, m2 := newValueManager(), newValueManager()
	r := NewRegistry(nil)
	v := New(nil, WithRegistry(r))
	f1, f2 := newFakeFactory(), newFakeFactory()

	r.SetFactoryForManager(v, m1, f1)
	r.SetFactoryForManager(v, m2, f2)
	r.RemoveViewer(v)

	if len(f1.removed) != 1 || len(f2.removed) != 1 {
		t.Errorf("removed = %d, %d, want 1, 1", len(f1.removed), len(f2.removed))
	}
	if r.FactoryFor(v, m1) != nil || r.FactoryFor(v, m2) != nil {
		t.Error("bindings survived RemoveViewer")
	}
}

func TestRegistry_NilArguments(t *testing.T) {
	r := NewRegistry(nil)
	v := New(nil, WithRegistry(r))
	m := newValueManager()

	r.SetFactoryForManager(nil, m, newFakeFactory())
	r.SetFactoryForManager(v, nil, newFakeFactory())
	r.SetFactoryForManager(v, m, nil)
	r.UnsetFactoryForManager(v, m)

	if r.FactoryFor(v, m) != nil {
		t.Error("FactoryFor() != nil after nil bindings")
	}
}
