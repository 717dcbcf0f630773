// Package browser implements the viewer engine that mirrors a property graph
// as a forest of items.
//
// A Browser tracks a list of top-level properties. For every path from a
// top-level property down the sub-property graph it keeps one Item, and it
// keeps those items in step with the graph by listening to the managers of
// every property it can reach. Concrete viewers supply a View and render the
// items the engine hands them.
package browser

import (
	"slices"

	"github.com/dshills/propbrowser/internal/editor"
	"github.com/dshills/propbrowser/internal/logging"
	"github.com/dshills/propbrowser/internal/property"
)

// View receives the presentation hooks of a Browser.
type View interface {
	// ItemInserted is called after item joined the forest. preceding is the
	// sibling it follows, or nil when item is first among its siblings.
	ItemInserted(item, preceding *Item)

	// ItemRemoved is called right before item leaves the forest. Children
	// are always removed before their parent.
	ItemRemoved(item *Item)

	// ItemChanged is called when item's property changed.
	ItemChanged(item *Item)
}

// Option configures a Browser.
type Option func(*Browser)

// WithRegistry makes the browser record its factory bindings in r.
// Browsers sharing a registry share factory lifetimes.
func WithRegistry(r *Registry) Option {
	return func(b *Browser) {
		b.registry = r
	}
}

// WithLogger sets the browser's logger.
func WithLogger(l *logging.Logger) Option {
	return func(b *Browser) {
		b.logger = l
	}
}

// Browser is the viewer engine.
type Browser struct {
	view     View
	registry *Registry
	logger   *logging.Logger
	listener *listener

	managerToProperties    map[property.Manager][]*property.Property
	propertyToParents      map[*property.Property][]*property.Property
	propertyToItems        map[*property.Property][]*Item
	topLevelPropertyToItem map[*property.Property]*Item
	topLevelProperties     []*property.Property
	topLevelItems          []*Item

	current         *Item
	currentHandlers []func(*Item)
}

// New creates a browser reporting to view. A nil view discards the hooks.
func New(view View, opts ...Option) *Browser {
	if view == nil {
		view = nopView{}
	}
	b := &Browser{
		view:                   view,
		managerToProperties:    make(map[property.Manager][]*property.Property),
		propertyToParents:      make(map[*property.Property][]*property.Property),
		propertyToItems:        make(map[*property.Property][]*Item),
		topLevelPropertyToItem: make(map[*property.Property]*Item),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logging.Null()
	}
	b.logger = b.logger.WithComponent("browser")
	if b.registry == nil {
		b.registry = NewRegistry(b.logger)
	}
	b.listener = &listener{b: b}
	return b
}

// Registry returns the registry holding the browser's factory bindings.
func (b *Browser) Registry() *Registry {
	return b.registry
}

// Properties returns the top-level properties in display order.
func (b *Browser) Properties() []*property.Property {
	return slices.Clone(b.topLevelProperties)
}

// Items returns every item showing p, in creation order.
func (b *Browser) Items(p *property.Property) []*Item {
	return slices.Clone(b.propertyToItems[p])
}

// TopLevelItem returns the top-level item for p, or nil.
func (b *Browser) TopLevelItem(p *property.Property) *Item {
	return b.topLevelPropertyToItem[p]
}

// TopLevelItems returns the top-level items in display order.
func (b *Browser) TopLevelItems() []*Item {
	return slices.Clone(b.topLevelItems)
}

// AddProperty appends p to the top-level list. It returns p's top-level
// item, or nil if p was already top-level.
func (b *Browser) AddProperty(p *property.Property) *Item {
	var after *property.Property
	if n := len(b.topLevelProperties); n > 0 {
		after = b.topLevelProperties[n-1]
	}
	return b.InsertProperty(p, after)
}

// InsertProperty inserts p into the top-level list right after after, or at
// the front when after is nil or not top-level. It returns p's top-level
// item, or nil if p was already top-level.
func (b *Browser) InsertProperty(p, after *property.Property) *Item {
	if p == nil || slices.Contains(b.topLevelProperties, p) {
		return nil
	}

	pos := 0
	var properAfter *property.Property
	if i := slices.Index(b.topLevelProperties, after); after != nil && i >= 0 {
		pos = i + 1
		properAfter = after
	}

	b.insertSubTree(p, nil)
	b.createBrowserIndexes(p, nil, properAfter)
	b.topLevelProperties = slices.Insert(b.topLevelProperties, pos, p)

	return b.topLevelPropertyToItem[p]
}

// RemoveProperty removes p from the top-level list together with its items.
// The property itself is left untouched.
func (b *Browser) RemoveProperty(p *property.Property) {
	i := slices.Index(b.topLevelProperties, p)
	if i < 0 {
		return
	}
	b.topLevelProperties = slices.Delete(b.topLevelProperties, i, i+1)
	b.removeSubTree(p, nil)
	b.removeBrowserIndexes(p, nil)
}

// Clear removes every top-level property, last first.
func (b *Browser) Clear() {
	for n := len(b.topLevelProperties); n > 0; n = len(b.topLevelProperties) {
		b.RemoveProperty(b.topLevelProperties[n-1])
	}
}

// Close clears the browser and drops its factory bindings.
func (b *Browser) Close() {
	b.Clear()
	b.registry.RemoveViewer(b)
	b.currentHandlers = nil
}

// SetFactoryForManager binds f as the editor factory for m's properties.
func (b *Browser) SetFactoryForManager(m property.Manager, f editor.Factory) {
	b.registry.SetFactoryForManager(b, m, f)
}

// UnsetFactoryForManager drops the factory bound to m, if any.
func (b *Browser) UnsetFactoryForManager(m property.Manager) {
	b.registry.UnsetFactoryForManager(b, m)
}

// FactoryForManager returns the factory bound to m, or nil.
func (b *Browser) FactoryForManager(m property.Manager) editor.Factory {
	return b.registry.FactoryFor(b, m)
}

// CreateEditor returns an editor for p hosted in parent, or nil if no
// factory is bound to p's manager.
func (b *Browser) CreateEditor(p *property.Property, parent any) editor.Editor {
	if p == nil {
		return nil
	}
	f := b.registry.FactoryFor(b, p.Manager())
	if f == nil {
		return nil
	}
	return f.FindEditor(p, parent)
}

// CurrentItem returns the current item, or nil.
func (b *Browser) CurrentItem() *Item {
	return b.current
}

// SetCurrentItem makes item current. Items of other browsers are ignored.
func (b *Browser) SetCurrentItem(item *Item) {
	if item != nil && item.browser != b {
		return
	}
	if item == b.current {
		return
	}
	b.current = item
	for _, fn := range slices.Clone(b.currentHandlers) {
		fn(item)
	}
}

// OnCurrentItemChanged registers fn to run whenever the current item
// changes, including when it is reset to nil.
func (b *Browser) OnCurrentItemChanged(fn func(*Item)) {
	if fn != nil {
		b.currentHandlers = append(b.currentHandlers, fn)
	}
}

// insertSubTree records p under parent and, the first time p is seen,
// subscribes to its manager and walks its sub-properties.
func (b *Browser) insertSubTree(p, parent *property.Property) {
	if parents, ok := b.propertyToParents[p]; ok {
		if !slices.Contains(parents, parent) {
			b.propertyToParents[p] = append(parents, parent)
		}
		return
	}

	m := p.Manager()
	if len(b.managerToProperties[m]) == 0 {
		b.logger.Debug("subscribing to manager %T", m)
		m.Subscribe(b.listener)
	}
	b.managerToProperties[m] = append(b.managerToProperties[m], p)
	b.propertyToParents[p] = []*property.Property{parent}

	for _, sub := range p.SubProperties() {
		b.insertSubTree(sub, p)
	}
}

// removeSubTree undoes insertSubTree for the edge (parent, p).
func (b *Browser) removeSubTree(p, parent *property.Property) {
	parents, ok := b.propertyToParents[p]
	if !ok {
		return
	}
	if i := slices.Index(parents, parent); i >= 0 {
		parents = slices.Delete(parents, i, i+1)
	}
	if len(parents) > 0 {
		b.propertyToParents[p] = parents
		return
	}
	delete(b.propertyToParents, p)

	m := p.Manager()
	props := b.managerToProperties[m]
	if i := slices.Index(props, p); i >= 0 {
		props = slices.Delete(props, i, i+1)
	}
	if len(props) == 0 {
		delete(b.managerToProperties, m)
		b.logger.Debug("unsubscribing from manager %T", m)
		m.Unsubscribe(b.listener)
	} else {
		b.managerToProperties[m] = props
	}

	for _, sub := range p.SubProperties() {
		b.removeSubTree(sub, p)
	}
}

// createBrowserIndexes creates one item for p under every item of parent
// (or a top-level item when parent is nil), placed after after's item.
func (b *Browser) createBrowserIndexes(p, parent, after *property.Property) {
	type slot struct {
		parent, after *Item
	}
	var slots []slot

	switch {
	case after != nil:
		for _, it := range b.propertyToItems[after] {
			if underParent(it, parent) {
				slots = append(slots, slot{parent: it.parent, after: it})
			}
		}
	case parent != nil:
		for _, it := range b.propertyToItems[parent] {
			slots = append(slots, slot{parent: it})
		}
	default:
		slots = append(slots, slot{})
	}

	for _, s := range slots {
		if s.parent != nil && s.parent.childFor(p) != nil {
			continue
		}
		if s.parent == nil && b.topLevelPropertyToItem[p] != nil {
			continue
		}
		b.createBrowserIndex(p, s.parent, s.after)
	}
}

func (b *Browser) createBrowserIndex(p *property.Property, parentItem, afterItem *Item) *Item {
	item := &Item{browser: b, property: p, parent: parentItem}
	if parentItem != nil {
		parentItem.addChild(item, afterItem)
	} else {
		pos := slices.Index(b.topLevelItems, afterItem) + 1
		b.topLevelItems = slices.Insert(b.topLevelItems, pos, item)
		b.topLevelPropertyToItem[p] = item
	}
	b.propertyToItems[p] = append(b.propertyToItems[p], item)

	b.view.ItemInserted(item, afterItem)

	var afterChild *Item
	for _, sub := range p.SubProperties() {
		afterChild = b.createBrowserIndex(sub, item, afterChild)
	}
	return item
}

// removeBrowserIndexes removes every item of p whose parent item shows
// parent (top-level items when parent is nil).
func (b *Browser) removeBrowserIndexes(p, parent *property.Property) {
	var doomed []*Item
	for _, it := range b.propertyToItems[p] {
		if underParent(it, parent) {
			doomed = append(doomed, it)
		}
	}
	for _, it := range doomed {
		b.removeBrowserIndex(it)
	}
}

func (b *Browser) removeBrowserIndex(item *Item) {
	children := slices.Clone(item.children)
	for i := len(children) - 1; i >= 0; i-- {
		b.removeBrowserIndex(children[i])
	}

	b.view.ItemRemoved(item)

	if item.parent != nil {
		item.parent.removeChild(item)
	} else {
		if i := slices.Index(b.topLevelItems, item); i >= 0 {
			b.topLevelItems = slices.Delete(b.topLevelItems, i, i+1)
		}
		delete(b.topLevelPropertyToItem, item.property)
	}

	items := b.propertyToItems[item.property]
	if i := slices.Index(items, item); i >= 0 {
		items = slices.Delete(items, i, i+1)
	}
	if len(items) == 0 {
		delete(b.propertyToItems, item.property)
	} else {
		b.propertyToItems[item.property] = items
	}

	if b.current == item {
		b.SetCurrentItem(nil)
	}
}

func underParent(it *Item, parent *property.Property) bool {
	if parent == nil {
		return it.parent == nil
	}
	return it.parent != nil && it.parent.property == parent
}

func (b *Browser) propertyInserted(ev property.Inserted) {
	if _, ok := b.propertyToParents[ev.Parent]; !ok {
		return
	}
	b.createBrowserIndexes(ev.Property, ev.Parent, ev.After)
	b.insertSubTree(ev.Property, ev.Parent)
}

func (b *Browser) propertyRemoved(ev property.Removed) {
	if _, ok := b.propertyToParents[ev.Parent]; !ok {
		return
	}
	b.removeSubTree(ev.Property, ev.Parent)
	b.removeBrowserIndexes(ev.Property, ev.Parent)
}

func (b *Browser) propertyChanged(ev property.Changed) {
	for _, it := range slices.Clone(b.propertyToItems[ev.Property]) {
		b.view.ItemChanged(it)
	}
}

func (b *Browser) propertyDestroyed(ev property.Destroyed) {
	if slices.Contains(b.topLevelProperties, ev.Property) {
		b.RemoveProperty(ev.Property)
	}
}

// listener keeps the event handlers off the Browser's exported surface.
type listener struct {
	b *Browser
}

func (l *listener) OnInserted(ev property.Inserted)   { l.b.propertyInserted(ev) }
func (l *listener) OnRemoved(ev property.Removed)     { l.b.propertyRemoved(ev) }
func (l *listener) OnChanged(ev property.Changed)     { l.b.propertyChanged(ev) }
func (l *listener) OnDestroyed(ev property.Destroyed) { l.b.propertyDestroyed(ev) }

type nopView struct{}

func (nopView) ItemInserted(*Item, *Item) {}
func (nopView) ItemRemoved(*Item)         {}
func (nopView) ItemChanged(*Item)         {}
