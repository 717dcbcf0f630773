package property

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/propbrowser/internal/style"
)

// Property is one node of the property graph.
//
// Properties are created by a Manager (see BaseManager.AddProperty) and stay
// bound to it for their whole life. Parents do not own their sub-properties:
// destroying a parent only detaches its children.
type Property struct {
	id      uuid.UUID
	manager Manager

	parents  []*Property // set semantics, kept in attach order
	children []*Property

	name       string
	toolTip    string
	statusTip  string
	whatsThis  string
	enabled    bool
	modified   bool
	nameColor  style.Color
	valueColor style.Color
}

// NewProperty creates a property bound to manager. Managers call this from
// CreateProperty; client code should use Manager.AddProperty instead.
func NewProperty(manager Manager) *Property {
	return &Property{
		id:      uuid.New(),
		manager: manager,
		enabled: true,
	}
}

// ID returns the property's stable identity.
func (p *Property) ID() uuid.UUID {
	return p.id
}

// Manager returns the manager that owns the property.
func (p *Property) Manager() Manager {
	return p.manager
}

// SubProperties returns a copy of the ordered sub-property list.
func (p *Property) SubProperties() []*Property {
	return slices.Clone(p.children)
}

// Parents returns a copy of the property's parent set.
func (p *Property) Parents() []*Property {
	return slices.Clone(p.parents)
}

// HasSubProperty reports whether child is a direct sub-property of p.
func (p *Property) HasSubProperty(child *Property) bool {
	return slices.Contains(p.children, child)
}

// Name returns the property's name.
func (p *Property) Name() string { return p.name }

// ToolTip returns the property's tool tip.
func (p *Property) ToolTip() string { return p.toolTip }

// StatusTip returns the property's status tip.
func (p *Property) StatusTip() string { return p.statusTip }

// WhatsThis returns the property's help text.
func (p *Property) WhatsThis() string { return p.whatsThis }

// IsEnabled reports whether the property is enabled.
func (p *Property) IsEnabled() bool { return p.enabled }

// IsModified reports whether the property is marked modified.
func (p *Property) IsModified() bool { return p.modified }

// NameColor returns the colour used to render the name.
func (p *Property) NameColor() style.Color { return p.nameColor }

// ValueColor returns the colour used to render the value.
func (p *Property) ValueColor() style.Color { return p.valueColor }

// SetName sets the property's name.
func (p *Property) SetName(name string) {
	setField(p, &p.name, name)
}

// SetToolTip sets the property's tool tip.
func (p *Property) SetToolTip(text string) {
	setField(p, &p.toolTip, text)
}

// SetStatusTip sets the property's status tip.
func (p *Property) SetStatusTip(text string) {
	setField(p, &p.statusTip, text)
}

// SetWhatsThis sets the property's help text.
func (p *Property) SetWhatsThis(text string) {
	setField(p, &p.whatsThis, text)
}

// SetEnabled enables or disables the property.
func (p *Property) SetEnabled(enabled bool) {
	setField(p, &p.enabled, enabled)
}

// SetModified sets the property's modified flag.
func (p *Property) SetModified(modified bool) {
	setField(p, &p.modified, modified)
}

// SetNameColor sets the colour used to render the name.
func (p *Property) SetNameColor(c style.Color) {
	setField(p, &p.nameColor, c)
}

// SetValueColor sets the colour used to render the value.
func (p *Property) SetValueColor(c style.Color) {
	setField(p, &p.valueColor, c)
}

// setField assigns v and announces the change, unless nothing changed.
func setField[T comparable](p *Property, field *T, v T) {
	if *field == v {
		return
	}
	*field = v
	p.changed()
}

func (p *Property) changed() {
	if p.manager != nil {
		p.manager.PropertyChanged(p)
	}
}

// HasValue reports whether the property carries a value.
func (p *Property) HasValue() bool {
	if p.manager == nil {
		return true
	}
	return p.manager.HasValue(p)
}

// ValueText returns the value formatted for display.
func (p *Property) ValueText() string {
	if p.manager == nil {
		return ""
	}
	return p.manager.ValueText(p)
}

// ValueIcon returns an icon describing the value.
func (p *Property) ValueIcon() Icon {
	if p.manager == nil {
		return Icon{}
	}
	return p.manager.ValueIcon(p)
}

// DisplayText returns the value as an editor would display it
// (e.g. masked for password fields).
func (p *Property) DisplayText() string {
	if p.manager == nil {
		return ""
	}
	return p.manager.DisplayText(p)
}

// AddSubProperty appends child to p's sub-properties.
// It reports whether a new edge was created.
func (p *Property) AddSubProperty(child *Property) bool {
	var after *Property
	if n := len(p.children); n > 0 {
		after = p.children[n-1]
	}
	return p.InsertSubProperty(child, after)
}

// InsertSubProperty inserts child after the given sibling. A nil or unknown
// after inserts at the front. The call is a no-op, returning false, when
// child is nil, is p itself, already is a direct sub-property of p, or
// already contains p in its subtree.
func (p *Property) InsertSubProperty(child, after *Property) bool {
	if child == nil || child == p {
		return false
	}
	if child.reaches(p) {
		return false
	}

	pos := 0
	var properAfter *Property
	for i, c := range p.children {
		if c == child {
			return false
		}
		if after != nil && c == after {
			pos = i + 1
			properAfter = after
		}
	}

	p.children = slices.Insert(p.children, pos, child)
	child.addParent(p)

	notifyInserted(child, p, properAfter)
	return true
}

// RemoveSubProperty detaches child from p without destroying it.
// Listeners are told before the edge goes away.
func (p *Property) RemoveSubProperty(child *Property) bool {
	if child == nil || !p.HasSubProperty(child) {
		return false
	}

	notifyRemoved(child, p)

	// A listener may already have detached it.
	if i := slices.Index(p.children, child); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	child.removeParent(p)
	return true
}

// Destroy removes the property from the graph and from its manager.
//
// Parents are notified first, then the owning manager, while the graph is
// still intact. Afterwards p is detached from every parent and child.
// Sub-properties survive; they belong to their own managers.
func (p *Property) Destroy() {
	for _, parent := range p.Parents() {
		notifyRemoved(p, parent)
	}

	if p.manager != nil {
		p.manager.PropertyDestroyed(p)
	}

	for _, child := range slices.Clone(p.children) {
		child.removeParent(p)
	}
	for _, parent := range slices.Clone(p.parents) {
		if i := slices.Index(parent.children, p); i >= 0 {
			parent.children = slices.Delete(parent.children, i, i+1)
		}
	}
	p.children = nil
	p.parents = nil
}

// reaches reports whether target is p or lies in p's subtree. The walk is
// breadth-first with a visited set so shared sub-trees are seen once.
func (p *Property) reaches(target *Property) bool {
	pending := slices.Clone(p.children)
	visited := make(map[*Property]struct{})
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]
		if next == target {
			return true
		}
		if _, seen := visited[next]; seen {
			continue
		}
		visited[next] = struct{}{}
		pending = append(pending, next.children...)
	}
	return false
}

func (p *Property) addParent(parent *Property) {
	if !slices.Contains(p.parents, parent) {
		p.parents = append(p.parents, parent)
	}
}

func (p *Property) removeParent(parent *Property) {
	if i := slices.Index(p.parents, parent); i >= 0 {
		p.parents = slices.Delete(p.parents, i, i+1)
	}
}

// notifyInserted announces a new edge through the child's manager and,
// when it differs, through the parent's manager as well, so that any viewer
// already tracking the parent hears about it.
func notifyInserted(child, parent, after *Property) {
	cm, pm := child.manager, parent.manager
	if cm != nil {
		cm.PropertyInserted(child, parent, after)
	}
	if pm != nil && pm != cm {
		pm.PropertyInserted(child, parent, after)
	}
}

// notifyRemoved is the removal counterpart of notifyInserted.
func notifyRemoved(child, parent *Property) {
	cm, pm := child.manager, parent.manager
	if cm != nil {
		cm.PropertyRemoved(child, parent)
	}
	if pm != nil && pm != cm {
		pm.PropertyRemoved(child, parent)
	}
}
