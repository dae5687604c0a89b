// Package loaders parses source text into a Document Tree.
//
// There is one Loader per format. A loader never touches the filesystem:
// callers read the source and hand over its bytes. Syntax and semantic
// problems in the source come back as PARSE_FAILURE errors carrying the
// 1-based line and, when the underlying parser reports it, the column.
//
// The package also owns the inline directive convention: a comment near the
// top of a document, written in that document's own comment syntax, that
// declares conversion options.
package loaders
