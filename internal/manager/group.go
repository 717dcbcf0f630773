package manager

import "github.com/dshills/propbrowser/internal/property"

// GroupManager creates value-less properties used to group others.
type GroupManager struct {
	*property.BaseManager
}

// NewGroupManager creates a group manager.
func NewGroupManager() *GroupManager {
	m := &GroupManager{}
	m.BaseManager = property.NewBaseManager(m)
	return m
}

// HasValue is always false for groups.
func (m *GroupManager) HasValue(*property.Property) bool { return false }

// InitializeProperty implements property.Initializer.
func (m *GroupManager) InitializeProperty(*property.Property) {}

// UninitializeProperty implements property.Initializer.
func (m *GroupManager) UninitializeProperty(*property.Property) {}
