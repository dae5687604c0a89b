// Package dumpers renders Document Trees as JSON, YAML or XML property
// lists.
//
// Dumpers expect a tree that has already been normalized for their format
// (see package normalize). Options are passed as params.Params and are
// validated against each dumper's params.Spec, so unknown names are
// ignored. Every output ends with a newline.
package dumpers
