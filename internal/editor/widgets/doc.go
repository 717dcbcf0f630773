// Package widgets provides the editors and factories for the concrete
// managers: a spin box for ints, a line edit for strings and a check box for
// bools.
//
// Editors are plain state holders. A viewer draws them and forwards key
// presses; the editor writes through its manager and mirrors value changes
// made elsewhere while it is open.
package widgets
