package property

import "slices"

// Initializer is the per-kind hook pair a concrete manager implements.
type Initializer interface {
	// InitializeProperty seeds a freshly added property (default value,
	// sub-properties, ...).
	InitializeProperty(p *Property)
	// UninitializeProperty releases per-property state. It is called exactly
	// once, right before the property leaves the manager.
	UninitializeProperty(p *Property)
}

// ValueDescriber describes a property's value for viewers.
type ValueDescriber interface {
	HasValue(p *Property) bool
	ValueText(p *Property) string
	ValueIcon(p *Property) Icon
	DisplayText(p *Property) string
}

// Emitter is the notification side of a manager. Properties call these to
// announce structural changes.
type Emitter interface {
	PropertyInserted(p, parent, after *Property)
	PropertyRemoved(p, parent *Property)
	PropertyChanged(p *Property)
	PropertyDestroyed(p *Property)
}

// Manager owns a set of properties of one kind.
type Manager interface {
	Initializer
	ValueDescriber
	Emitter

	CreateProperty() *Property
	AddProperty(name string) *Property
	Properties() []*Property
	Owns(p *Property) bool
	Clear()

	Subscribe(l Listener)
	Unsubscribe(l Listener)
}

// BaseManager implements the Manager contract except for the Initializer
// hooks. Concrete managers embed it and pass themselves as owner:
//
//	m := &IntManager{values: map[*property.Property]*intData{}}
//	m.BaseManager = property.NewBaseManager(m)
//
// Methods the owner overrides (CreateProperty, ValueText, ...) are reached
// through owner, so embedding behaves like a virtual base.
type BaseManager struct {
	owner     Manager
	order     []*Property
	owned     map[*Property]struct{}
	listeners []Listener
}

// NewBaseManager creates the shared manager state for owner.
func NewBaseManager(owner Manager) *BaseManager {
	return &BaseManager{
		owner: owner,
		owned: make(map[*Property]struct{}),
	}
}

// Owner returns the concrete manager this base belongs to.
func (m *BaseManager) Owner() Manager {
	return m.owner
}

// CreateProperty returns a new property bound to the owner.
func (m *BaseManager) CreateProperty() *Property {
	return NewProperty(m.owner)
}

// AddProperty creates a property named name, takes ownership of it and
// lets the owner initialize it.
func (m *BaseManager) AddProperty(name string) *Property {
	p := m.owner.CreateProperty()
	if p == nil {
		return nil
	}
	p.name = name
	m.owned[p] = struct{}{}
	m.order = append(m.order, p)
	m.owner.InitializeProperty(p)
	return p
}

// Properties returns the owned properties in creation order.
func (m *BaseManager) Properties() []*Property {
	return slices.Clone(m.order)
}

// Owns reports whether p was created by this manager and is still alive.
func (m *BaseManager) Owns(p *Property) bool {
	_, ok := m.owned[p]
	return ok
}

// Clear destroys every property the manager still owns.
func (m *BaseManager) Clear() {
	for _, p := range m.Properties() {
		p.Destroy()
	}
}

// Destroy clears the manager and tells observers that it is gone.
// Listeners are dropped afterwards.
func (m *BaseManager) Destroy() {
	m.Clear()
	for _, l := range slices.Clone(m.listeners) {
		if obs, ok := l.(ManagerObserver); ok {
			obs.OnManagerDestroyed(m.owner)
		}
	}
	m.listeners = nil
}

// HasValue returns true; grouping managers override it.
func (m *BaseManager) HasValue(*Property) bool { return true }

// ValueText returns "".
func (m *BaseManager) ValueText(*Property) string { return "" }

// ValueIcon returns the null icon.
func (m *BaseManager) ValueIcon(*Property) Icon { return Icon{} }

// DisplayText returns the owner's ValueText.
func (m *BaseManager) DisplayText(p *Property) string {
	return m.owner.ValueText(p)
}

// Subscribe registers l. Subscribing twice has no effect.
func (m *BaseManager) Subscribe(l Listener) {
	if l == nil || slices.Contains(m.listeners, l) {
		return
	}
	m.listeners = append(m.listeners, l)
}

// Unsubscribe removes l. Unknown listeners are ignored.
func (m *BaseManager) Unsubscribe(l Listener) {
	if i := slices.Index(m.listeners, l); i >= 0 {
		m.listeners = slices.Delete(m.listeners, i, i+1)
	}
}

// Listeners returns the number of subscribed listeners.
func (m *BaseManager) Listeners() int {
	return len(m.listeners)
}

// PropertyInserted broadcasts an Inserted event.
func (m *BaseManager) PropertyInserted(p, parent, after *Property) {
	ev := Inserted{Property: p, Parent: parent, After: after}
	for _, l := range slices.Clone(m.listeners) {
		l.OnInserted(ev)
	}
}

// PropertyRemoved broadcasts a Removed event.
func (m *BaseManager) PropertyRemoved(p, parent *Property) {
	ev := Removed{Property: p, Parent: parent}
	for _, l := range slices.Clone(m.listeners) {
		l.OnRemoved(ev)
	}
}

// PropertyChanged broadcasts a Changed event for an owned property.
func (m *BaseManager) PropertyChanged(p *Property) {
	if !m.Owns(p) {
		return
	}
	ev := Changed{Property: p}
	for _, l := range slices.Clone(m.listeners) {
		l.OnChanged(ev)
	}
}

// PropertyDestroyed broadcasts a Destroyed event, runs the owner's
// UninitializeProperty and forgets p. Unowned properties are ignored.
func (m *BaseManager) PropertyDestroyed(p *Property) {
	if !m.Owns(p) {
		return
	}
	ev := Destroyed{Property: p}
	for _, l := range slices.Clone(m.listeners) {
		l.OnDestroyed(ev)
	}
	m.owner.UninitializeProperty(p)
	delete(m.owned, p)
	if i := slices.Index(m.order, p); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}
