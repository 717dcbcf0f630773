// Package editor defines editor factories: objects that produce interactive
// editors for the properties of the managers bound to them.
package editor

import "github.com/dshills/propbrowser/internal/property"

// Editor is an interactive control bound to exactly one property.
type Editor interface {
	// Property returns the property the editor edits.
	Property() *property.Property

	// Close releases the editor. Closing twice is a no-op.
	Close()
}

// Factory produces editors for the properties of the managers it serves.
type Factory interface {
	// FindEditor returns a new editor for p hosted in parent, or nil if the
	// factory does not serve p's manager or has no editor for p.
	FindEditor(p *property.Property, parent any) Editor

	// AddPropertyManager starts serving m. Adding a served manager is a no-op.
	AddPropertyManager(m property.Manager)

	// RemovePropertyManager stops serving m and closes its editors.
	RemovePropertyManager(m property.Manager)

	// PropertyManagers returns the served managers in the order they were added.
	PropertyManagers() []property.Manager
}

// Creator is implemented by concrete factories embedding BaseFactory.
type Creator interface {
	// CreateEditor builds an editor for p. m is p's manager and is always
	// served by the factory when called.
	CreateEditor(m property.Manager, p *property.Property, parent any) Editor

	// ConnectPropertyManager is called when the factory starts serving m.
	ConnectPropertyManager(m property.Manager)

	// DisconnectPropertyManager is called when the factory stops serving m.
	DisconnectPropertyManager(m property.Manager)
}
