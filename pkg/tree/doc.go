// Package tree defines the Document Tree shared by every loader and dumper.
//
// A document value is one of:
//
//   - *Map: string-keyed mapping that remembers insertion order
//   - []any: ordered sequence
//   - string, int64, float64, bool, nil
//   - time.Time: date-time
//   - Data: opaque byte blob
//
// Key order is part of a document's identity: two maps with the same entries
// in a different order are not Equal. Loaders never keep references to the
// source text, so a loaded tree is a plain value graph without cycles.
package tree
