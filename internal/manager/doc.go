// Package manager provides the concrete property managers: groups, integers,
// strings, booleans and colours.
//
// Each manager keeps per-property value state, announces every visible
// change through property.Manager's Changed event and additionally offers
// typed callbacks (OnValueChanged, ...) for editors that need the new value.
package manager
