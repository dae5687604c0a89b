// Package fileconv converts structured documents between JSON, YAML and
// XML property lists.
//
// A conversion loads the source into a Document Tree, normalizes the tree
// for the target format, dumps it and derives a destination name that lets
// the conversion be reversed by name alone:
//
//	c := fileconv.New()
//	res, err := c.ConvertFile(ctx, fileconv.Request{
//		SourcePath:   "Example.YAML-tmLanguage",
//		TargetFormat: "plist",
//	})
//
// The target format comes from the request, then from a [fileconv]
// directive in the first lines of the source, then from the configuration.
// Dump parameters are layered the same way, the request winning.
package fileconv
