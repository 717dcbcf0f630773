package browser

import (
	"slices"

	"github.com/dshills/propbrowser/internal/property"
)

// Item is one occurrence of a property in a browser. A property reachable
// along several paths has one Item per path.
type Item struct {
	browser  *Browser
	property *property.Property
	parent   *Item
	children []*Item
}

// Property returns the property this item shows.
func (i *Item) Property() *property.Property {
	return i.property
}

// Parent returns the enclosing item, or nil for a top-level item.
func (i *Item) Parent() *Item {
	return i.parent
}

// Children returns the child items in display order.
func (i *Item) Children() []*Item {
	return slices.Clone(i.children)
}

// Browser returns the browser that owns the item.
func (i *Item) Browser() *Browser {
	return i.browser
}

// Depth returns 0 for top-level items and grows by one per level.
func (i *Item) Depth() int {
	d := 0
	for it := i.parent; it != nil; it = it.parent {
		d++
	}
	return d
}

// childFor returns the direct child showing p, if any.
func (i *Item) childFor(p *property.Property) *Item {
	for _, c := range i.children {
		if c.property == p {
			return c
		}
	}
	return nil
}

// addChild inserts child right after after, or first when after is nil or
// not a child of i.
func (i *Item) addChild(child, after *Item) {
	pos := slices.Index(i.children, after) + 1
	i.children = slices.Insert(i.children, pos, child)
}

func (i *Item) removeChild(child *Item) {
	if pos := slices.Index(i.children, child); pos >= 0 {
		i.children = slices.Delete(i.children, pos, pos+1)
	}
}
