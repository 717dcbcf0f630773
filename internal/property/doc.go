// Package property provides the shared property graph and the manager
// contract that owns and mutates it.
//
// A Property is a named node with an ordered list of sub-properties and a
// set of parents. The graph is a DAG: a property may appear under several
// parents, but never beneath itself. Sub-properties are not owned by their
// parents; every property is owned by the Manager that created it and only
// that manager destroys it.
//
// # Notifications
//
// Managers broadcast four structural events to subscribed Listeners:
//
//	Inserted{Property, Parent, After}  - a sub-property edge was created
//	Removed{Property, Parent}          - a sub-property edge is about to go away
//	Changed{Property}                  - an attribute or value changed
//	Destroyed{Property}                - the property is about to be destroyed
//
// Removal and destruction are announced before the graph is mutated so
// listeners can still inspect the structure they are about to lose.
//
// # Threading
//
// The graph is single-threaded. Notification delivery is synchronous and
// re-entrant: a listener may mutate the graph from inside a callback.
// Every loop over a collection a callee may mutate iterates over a copy.
package property
