// Package filesystem provides the filesystem fileconv reads sources from
// and writes conversions to.
//
// Everything goes through afero, so the OS filesystem and in-memory test
// filesystems behave the same. WriteFile is atomic: data is written to a
// temporary file next to the destination and renamed into place.
package filesystem
