package property

import "github.com/dshills/propbrowser/internal/style"

// Inserted describes a new sub-property edge.
// After is nil when Property was inserted at the front of Parent's list.
type Inserted struct {
	Property *Property
	Parent   *Property
	After    *Property
}

// Removed describes a sub-property edge that is about to be removed.
type Removed struct {
	Property *Property
	Parent   *Property
}

// Changed reports that an attribute or the value of Property changed.
type Changed struct {
	Property *Property
}

// Destroyed reports that Property is about to be destroyed.
type Destroyed struct {
	Property *Property
}

// Listener receives structural notifications from a Manager.
//
// Callbacks run synchronously on the goroutine that mutated the graph and
// may themselves mutate the graph.
type Listener interface {
	OnInserted(ev Inserted)
	OnRemoved(ev Removed)
	OnChanged(ev Changed)
	OnDestroyed(ev Destroyed)
}

// ManagerObserver is an optional interface for listeners that want to know
// when a manager itself goes away.
type ManagerObserver interface {
	OnManagerDestroyed(m Manager)
}

// ListenerFuncs adapts optional callbacks to the Listener interface.
// Nil callbacks are skipped. Always subscribe a pointer.
type ListenerFuncs struct {
	Inserted         func(ev Inserted)
	Removed          func(ev Removed)
	Changed          func(ev Changed)
	Destroyed        func(ev Destroyed)
	ManagerDestroyed func(m Manager)
}

// OnInserted implements Listener.
func (f *ListenerFuncs) OnInserted(ev Inserted) {
	if f.Inserted != nil {
		f.Inserted(ev)
	}
}

// OnRemoved implements Listener.
func (f *ListenerFuncs) OnRemoved(ev Removed) {
	if f.Removed != nil {
		f.Removed(ev)
	}
}

// OnChanged implements Listener.
func (f *ListenerFuncs) OnChanged(ev Changed) {
	if f.Changed != nil {
		f.Changed(ev)
	}
}

// OnDestroyed implements Listener.
func (f *ListenerFuncs) OnDestroyed(ev Destroyed) {
	if f.Destroyed != nil {
		f.Destroyed(ev)
	}
}

// OnManagerDestroyed implements ManagerObserver.
func (f *ListenerFuncs) OnManagerDestroyed(m Manager) {
	if f.ManagerDestroyed != nil {
		f.ManagerDestroyed(m)
	}
}

// Icon is a small glyph describing a property's value.
// The zero Icon means "no icon".
type Icon struct {
	Glyph rune
	Color style.Color
}

// IsNull reports whether the icon is empty.
func (i Icon) IsNull() bool {
	return i.Glyph == 0
}
