// Package formats holds the static descriptors of the formats fileconv
// converts between.
//
// The set of formats is closed: Kinds enumerates them and every descriptor
// is declared once in this package and never modified. Loaders and dumpers
// are looked up by Kind through pkg/registry.
package formats
