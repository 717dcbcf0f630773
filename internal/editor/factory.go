package editor

import (
	"slices"

	"github.com/dshills/propbrowser/internal/property"
)

// BaseFactory implements the manager bookkeeping of a Factory and tracks the
// editors it has created. Concrete factories embed it and supply a Creator.
type BaseFactory struct {
	owner    Creator
	managers []property.Manager
	editors  map[*property.Property][]Editor
	watch    *property.ListenerFuncs
}

// NewBaseFactory creates a base factory dispatching to owner.
func NewBaseFactory(owner Creator) *BaseFactory {
	f := &BaseFactory{
		owner:   owner,
		editors: make(map[*property.Property][]Editor),
	}
	f.watch = &property.ListenerFuncs{
		Destroyed:        func(ev property.Destroyed) { f.closeEditors(ev.Property) },
		ManagerDestroyed: f.managerDestroyed,
	}
	return f
}

// FindEditor asks the owner for an editor if p's manager is served.
func (f *BaseFactory) FindEditor(p *property.Property, parent any) Editor {
	if p == nil {
		return nil
	}
	m := p.Manager()
	if !slices.Contains(f.managers, m) {
		return nil
	}
	e := f.owner.CreateEditor(m, p, parent)
	if e == nil {
		return nil
	}
	f.editors[p] = append(f.editors[p], e)
	return e
}

// AddPropertyManager starts serving m.
func (f *BaseFactory) AddPropertyManager(m property.Manager) {
	if m == nil || slices.Contains(f.managers, m) {
		return
	}
	f.managers = append(f.managers, m)
	m.Subscribe(f.watch)
	f.owner.ConnectPropertyManager(m)
}

// RemovePropertyManager stops serving m and closes every editor open on one
// of its properties.
func (f *BaseFactory) RemovePropertyManager(m property.Manager) {
	i := slices.Index(f.managers, m)
	if i < 0 {
		return
	}
	f.managers = slices.Delete(f.managers, i, i+1)
	m.Unsubscribe(f.watch)
	f.owner.DisconnectPropertyManager(m)

	for p := range f.editors {
		if p.Manager() == m {
			f.closeEditors(p)
		}
	}
}

// PropertyManagers returns the served managers.
func (f *BaseFactory) PropertyManagers() []property.Manager {
	return slices.Clone(f.managers)
}

// Editors returns the open editors for p.
func (f *BaseFactory) Editors(p *property.Property) []Editor {
	return slices.Clone(f.editors[p])
}

// EditorCount returns the number of open editors across all properties.
func (f *BaseFactory) EditorCount() int {
	n := 0
	for _, list := range f.editors {
		n += len(list)
	}
	return n
}

// Release forgets e. Editors call it from Close; releasing an unknown editor
// is a no-op.
func (f *BaseFactory) Release(e Editor) {
	if e == nil {
		return
	}
	p := e.Property()
	list := f.editors[p]
	i := slices.Index(list, e)
	if i < 0 {
		return
	}
	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(f.editors, p)
		return
	}
	f.editors[p] = list
}

// closeEditors closes every editor open on p. Entries are dropped first so
// that Close calling back into Release finds nothing.
func (f *BaseFactory) closeEditors(p *property.Property) {
	list := f.editors[p]
	delete(f.editors, p)
	for _, e := range list {
		e.Close()
	}
}

func (f *BaseFactory) managerDestroyed(m property.Manager) {
	if i := slices.Index(f.managers, m); i >= 0 {
		f.managers = slices.Delete(f.managers, i, i+1)
	}
}
